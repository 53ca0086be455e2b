package app

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/vrcorp/videohive/internal/domain"
)

// Directory manages the tenant and account lookup tables the session
// subsystem otherwise only reads.
type Directory struct {
	tenants  domain.TenantDirectory
	accounts domain.AccountDirectory
}

// NewDirectory creates the directory service.
func NewDirectory(tenants domain.TenantDirectory, accounts domain.AccountDirectory) *Directory {
	return &Directory{tenants: tenants, accounts: accounts}
}

// CreateTenant registers a tenant, rejecting a slug already in use.
func (d *Directory) CreateTenant(ctx context.Context, name, slug string) (domain.Tenant, error) {
	if _, err := d.tenants.GetBySlug(ctx, slug); err == nil {
		return domain.Tenant{}, &domain.SlugConflictError{Slug: slug}
	}

	id, err := generateID()
	if err != nil {
		return domain.Tenant{}, fmt.Errorf("generating tenant id: %w", err)
	}

	tenant := domain.NewTenant(id, name, slug)
	if err := d.tenants.Create(ctx, tenant); err != nil {
		return domain.Tenant{}, fmt.Errorf("creating tenant: %w", err)
	}
	return tenant, nil
}

// ListTenants returns all registered tenants.
func (d *Directory) ListTenants(ctx context.Context) ([]domain.Tenant, error) {
	return d.tenants.List(ctx)
}

// GetTenant resolves a tenant by slug.
func (d *Directory) GetTenant(ctx context.Context, slug string) (domain.Tenant, error) {
	return d.tenants.GetBySlug(ctx, slug)
}

// CreateAccount registers an account. A non-empty password is stored as a
// bcrypt hash; an empty one marks a demo account.
func (d *Directory) CreateAccount(ctx context.Context, email, name string, role domain.Role, password string, ownsTenant bool) (domain.Account, error) {
	id, err := generateID()
	if err != nil {
		return domain.Account{}, fmt.Errorf("generating account id: %w", err)
	}

	account := domain.NewAccount(id, email, name, role)
	account.OwnsTenant = ownsTenant
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return domain.Account{}, fmt.Errorf("hashing password: %w", err)
		}
		account.PasswordHash = string(hash)
	}

	if err := d.accounts.Create(ctx, account); err != nil {
		return domain.Account{}, fmt.Errorf("creating account: %w", err)
	}
	return account, nil
}

// GetAccount resolves an account by email.
func (d *Directory) GetAccount(ctx context.Context, email string) (domain.Account, error) {
	return d.accounts.GetByEmail(ctx, email)
}
