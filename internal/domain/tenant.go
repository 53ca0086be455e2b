package domain

import "time"

// Tenant is a directory record for one LMS tenant: the slug→tenant lookup
// table the session subsystem treats as read-only.
type Tenant struct {
	ID          string
	Name        string
	Slug        string
	LogoURL     string
	AccentColor string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTenant creates a tenant directory record.
func NewTenant(id, name, slug string) Tenant {
	now := time.Now().UTC()
	return Tenant{
		ID:        id,
		Name:      name,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Account is a directory record for one known account: the email→account
// lookup table consumed by tenant login and the tenant-admin guard.
// PasswordHash is a bcrypt hash; an empty hash marks a demo account that
// accepts any password.
type Account struct {
	ID           string
	Email        string
	Name         string
	Role         Role
	PasswordHash string
	AvatarURL    string
	OwnsTenant   bool
	CreatedAt    time.Time
}

// NewAccount creates an account directory record.
func NewAccount(id, email, name string, role Role) Account {
	return Account{
		ID:        id,
		Email:     email,
		Name:      name,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
}
