package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/vrcorp/videohive/internal/domain"
)

// TenantAuth holds per-tenant sessions keyed by slug, isolated from the
// marketplace-wide role store. Logging into tenant "acme" never touches
// tenant "beta" or the global role.
type TenantAuth struct {
	kv       domain.KeyValueStore
	tenants  domain.TenantDirectory
	accounts domain.AccountDirectory
	logger   *slog.Logger
}

// NewTenantAuth creates the tenant session store.
func NewTenantAuth(kv domain.KeyValueStore, tenants domain.TenantDirectory, accounts domain.AccountDirectory, logger *slog.Logger) *TenantAuth {
	if logger == nil {
		logger = slog.Default()
	}
	return &TenantAuth{kv: kv, tenants: tenants, accounts: accounts, logger: logger}
}

// Login resolves the tenant from its slug and the account from its email,
// verifies credentials, and persists a session under the tenant's keys.
// Returns ErrTenantNotFound for an unknown slug and ErrInvalidCredentials
// for an unknown email or a wrong password. An empty role keeps the
// account's directory role.
func (a *TenantAuth) Login(ctx context.Context, slug, email, password string, role domain.Role) (domain.TenantSession, error) {
	tenant, err := a.tenants.GetBySlug(ctx, slug)
	if err != nil {
		return domain.TenantSession{}, err
	}

	account, err := a.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.TenantSession{}, domain.ErrInvalidCredentials
		}
		return domain.TenantSession{}, fmt.Errorf("resolving account: %w", err)
	}

	// Demo accounts have no hash and accept any password.
	if account.PasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
			return domain.TenantSession{}, domain.ErrInvalidCredentials
		}
	}

	if role == "" {
		role = account.Role
	}

	sess := domain.TenantSession{
		User: domain.TenantUser{
			ID:       account.ID,
			Name:     account.Name,
			Email:    account.Email,
			Role:     role,
			TenantID: tenant.ID,
			Avatar:   account.AvatarURL,
		},
		TenantSlug: slug,
	}

	raw, err := json.Marshal(sess.User)
	if err != nil {
		return domain.TenantSession{}, fmt.Errorf("encoding tenant session: %w", err)
	}
	if err := a.kv.Set(ctx, domain.TenantAuthKey(slug), string(raw)); err != nil {
		return domain.TenantSession{}, fmt.Errorf("persisting tenant session: %w", err)
	}
	if err := a.kv.Set(ctx, domain.TenantRoleKey(slug), string(role)); err != nil {
		return domain.TenantSession{}, fmt.Errorf("persisting tenant role: %w", err)
	}

	return sess, nil
}

// Session restores the persisted session for a slug. A session whose
// embedded tenant id no longer matches the tenant resolved for the slug is
// discarded: that defends against sessions outliving a renamed or reused
// slug. Missing or corrupt state restores as unauthenticated.
func (a *TenantAuth) Session(ctx context.Context, slug string) (domain.TenantSession, bool) {
	raw, err := a.kv.Get(ctx, domain.TenantAuthKey(slug))
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			a.logger.Warn("tenant session storage unavailable", "slug", slug, "error", err)
		}
		return domain.TenantSession{}, false
	}

	var user domain.TenantUser
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		a.logger.Warn("corrupt tenant session discarded", "slug", slug, "error", err)
		a.clear(ctx, slug)
		return domain.TenantSession{}, false
	}

	tenant, err := a.tenants.GetBySlug(ctx, slug)
	if err != nil {
		return domain.TenantSession{}, false
	}

	sess := domain.TenantSession{User: user, TenantSlug: slug}
	if !sess.MatchesTenant(tenant.ID) {
		a.logger.Warn("stale tenant session discarded",
			"slug", slug, "sessionTenantId", user.TenantID, "tenantId", tenant.ID)
		a.clear(ctx, slug)
		return domain.TenantSession{}, false
	}

	return sess, true
}

// IsAuthenticated reports whether a valid session exists for the slug.
func (a *TenantAuth) IsAuthenticated(ctx context.Context, slug string) bool {
	_, ok := a.Session(ctx, slug)
	return ok
}

// Role returns the session's role for a slug, or guest when no valid
// session exists.
func (a *TenantAuth) Role(ctx context.Context, slug string) domain.Role {
	if sess, ok := a.Session(ctx, slug); ok {
		return sess.User.Role
	}
	return domain.RoleGuest
}

// Logout clears the current tenant's session keys only. Other tenants'
// sessions and the global role store are untouched.
func (a *TenantAuth) Logout(ctx context.Context, slug string) {
	a.clear(ctx, slug)
}

func (a *TenantAuth) clear(ctx context.Context, slug string) {
	if err := a.kv.Delete(ctx, domain.TenantAuthKey(slug)); err != nil {
		a.logger.Warn("tenant session key not cleared", "slug", slug, "error", err)
	}
	if err := a.kv.Delete(ctx, domain.TenantRoleKey(slug)); err != nil {
		a.logger.Warn("tenant role key not cleared", "slug", slug, "error", err)
	}
}
