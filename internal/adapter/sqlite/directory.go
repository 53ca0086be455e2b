package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vrcorp/videohive/internal/domain"
)

// TenantDirectory implements domain.TenantDirectory using SQLite.
type TenantDirectory struct {
	db *sql.DB
}

var _ domain.TenantDirectory = (*TenantDirectory)(nil)

// NewTenantDirectory creates the tenant directory over an opened database.
func NewTenantDirectory(db *sql.DB) *TenantDirectory {
	return &TenantDirectory{db: db}
}

func (d *TenantDirectory) Create(ctx context.Context, t domain.Tenant) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO tenants (id, name, slug, logo_url, accent_color, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Slug, t.LogoURL, t.AccentColor,
		t.CreatedAt.Format(timeFormat),
		t.UpdatedAt.Format(timeFormat),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.SlugConflictError{Slug: t.Slug}
		}
		return fmt.Errorf("inserting tenant: %w", err)
	}
	return nil
}

func (d *TenantDirectory) GetBySlug(ctx context.Context, slug string) (domain.Tenant, error) {
	return scanTenant(d.db.QueryRowContext(ctx,
		`SELECT id, name, slug, logo_url, accent_color, created_at, updated_at
		 FROM tenants WHERE slug = ?`, slug,
	))
}

func (d *TenantDirectory) GetByID(ctx context.Context, id string) (domain.Tenant, error) {
	return scanTenant(d.db.QueryRowContext(ctx,
		`SELECT id, name, slug, logo_url, accent_color, created_at, updated_at
		 FROM tenants WHERE id = ?`, id,
	))
}

func (d *TenantDirectory) List(ctx context.Context) ([]domain.Tenant, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, name, slug, logo_url, accent_color, created_at, updated_at
		 FROM tenants ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing tenants: %w", err)
	}
	defer rows.Close()

	var tenants []domain.Tenant
	for rows.Next() {
		var t domain.Tenant
		var createdAt, updatedAt string
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.LogoURL, &t.AccentColor, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning tenant row: %w", err)
		}
		t.CreatedAt, _ = time.Parse(timeFormat, createdAt)
		t.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)
		tenants = append(tenants, t)
	}

	return tenants, rows.Err()
}

func scanTenant(row *sql.Row) (domain.Tenant, error) {
	var t domain.Tenant
	var createdAt, updatedAt string

	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.LogoURL, &t.AccentColor, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Tenant{}, domain.ErrTenantNotFound
		}
		return domain.Tenant{}, fmt.Errorf("scanning tenant: %w", err)
	}

	t.CreatedAt, _ = time.Parse(timeFormat, createdAt)
	t.UpdatedAt, _ = time.Parse(timeFormat, updatedAt)

	return t, nil
}

// AccountDirectory implements domain.AccountDirectory using SQLite.
type AccountDirectory struct {
	db *sql.DB
}

var _ domain.AccountDirectory = (*AccountDirectory)(nil)

// NewAccountDirectory creates the account directory over an opened database.
func NewAccountDirectory(db *sql.DB) *AccountDirectory {
	return &AccountDirectory{db: db}
}

func (d *AccountDirectory) Create(ctx context.Context, a domain.Account) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO accounts (id, email, name, role, password_hash, avatar_url, owns_tenant, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Email, a.Name, string(a.Role), a.PasswordHash, a.AvatarURL,
		a.OwnsTenant, a.CreatedAt.Format(timeFormat),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.EmailConflictError{Email: a.Email}
		}
		return fmt.Errorf("inserting account: %w", err)
	}
	return nil
}

func (d *AccountDirectory) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	var a domain.Account
	var role, createdAt string

	err := d.db.QueryRowContext(ctx,
		`SELECT id, email, name, role, password_hash, avatar_url, owns_tenant, created_at
		 FROM accounts WHERE email = ?`, email,
	).Scan(&a.ID, &a.Email, &a.Name, &role, &a.PasswordHash, &a.AvatarURL, &a.OwnsTenant, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Account{}, domain.ErrAccountNotFound
		}
		return domain.Account{}, fmt.Errorf("scanning account: %w", err)
	}

	a.Role = domain.ParseRole(role)
	a.CreatedAt, _ = time.Parse(timeFormat, createdAt)

	return a, nil
}
