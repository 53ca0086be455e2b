package domain

// TenantUser is the account record embedded in a tenant session. It is
// persisted as JSON under the tenant's auth key.
type TenantUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	TenantID string `json:"tenantId"`
	Avatar   string `json:"avatar,omitempty"`
}

// TenantSession is an authentication record scoped to one tenant slug,
// independent of the marketplace-wide role.
type TenantSession struct {
	User       TenantUser `json:"user"`
	TenantSlug string     `json:"tenantSlug"`
}

// MatchesTenant reports whether the session still belongs to the tenant
// currently resolved for its slug. A mismatch means the tenant was renamed
// or removed, or the slug now points at a different tenant; such sessions
// must be discarded.
func (s TenantSession) MatchesTenant(tenantID string) bool {
	return s.User.TenantID != "" && s.User.TenantID == tenantID
}

// TenantAuthKey is the storage key holding a tenant's session user record.
func TenantAuthKey(slug string) string {
	return "tenant_" + slug + "_auth"
}

// TenantRoleKey is the storage key holding a tenant's session role string.
func TenantRoleKey(slug string) string {
	return "tenant_" + slug + "_role"
}
