package app

import (
	"context"
	"net/url"
	"slices"

	"github.com/vrcorp/videohive/internal/domain"
)

// Decision is a guard verdict. When not allowed, RedirectTo carries the
// target view with the originally requested location preserved for the
// post-login redirect.
type Decision struct {
	Allowed    bool
	RedirectTo string
	From       string
}

// RoleGuard permits a view iff the current role is in its allow-list.
// Evaluation always reads the role store fresh, and OnChange re-evaluates
// on every role notification, so authorization is reactive rather than
// frozen at first render.
type RoleGuard struct {
	roles     *RoleStore
	allow     []domain.Role
	loginPath string
}

// NewRoleGuard creates a guard allowing the given roles.
func NewRoleGuard(roles *RoleStore, loginPath string, allow ...domain.Role) *RoleGuard {
	return &RoleGuard{roles: roles, allow: allow, loginPath: loginPath}
}

// Evaluate checks the current role against the allow-list. from is the
// requested location, preserved on the redirect.
func (g *RoleGuard) Evaluate(ctx context.Context, from string) Decision {
	role := g.roles.Get(ctx)
	if slices.Contains(g.allow, role) {
		return Decision{Allowed: true, From: from}
	}
	return Decision{
		Allowed:    false,
		RedirectTo: redirectWithFrom(g.loginPath, from),
		From:       from,
	}
}

// OnChange re-evaluates the guard on every role change and hands the fresh
// decision to fn. Returns a cancel function.
func (g *RoleGuard) OnChange(from string, fn func(ctx context.Context, d Decision)) func() {
	return g.roles.Subscribe(func(ctx context.Context, _ domain.RoleChange) {
		fn(ctx, g.Evaluate(ctx, from))
	})
}

// TenantAdminGuard permits tenant-admin views iff the account is flagged as
// owning an LMS tenant; everyone else is sent to the pricing view.
type TenantAdminGuard struct {
	roles       *RoleStore
	pricingPath string
}

// NewTenantAdminGuard creates the tenant-admin guard.
func NewTenantAdminGuard(roles *RoleStore, pricingPath string) *TenantAdminGuard {
	return &TenantAdminGuard{roles: roles, pricingPath: pricingPath}
}

// Evaluate checks the account's owner flag.
func (g *TenantAdminGuard) Evaluate(_ context.Context, account domain.Account, from string) Decision {
	if account.OwnsTenant {
		return Decision{Allowed: true, From: from}
	}
	return Decision{
		Allowed:    false,
		RedirectTo: redirectWithFrom(g.pricingPath, from),
		From:       from,
	}
}

// OnChange re-evaluates for the given account on every role change.
func (g *TenantAdminGuard) OnChange(account domain.Account, from string, fn func(ctx context.Context, d Decision)) func() {
	return g.roles.Subscribe(func(ctx context.Context, _ domain.RoleChange) {
		fn(ctx, g.Evaluate(ctx, account, from))
	})
}

func redirectWithFrom(path, from string) string {
	if from == "" {
		return path
	}
	return path + "?from=" + url.QueryEscape(from)
}
