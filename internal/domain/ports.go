package domain

import "context"

// KeyValueStore is the persistence port every component writes through.
// Values are plain strings; structured state is stored as JSON. Get returns
// ErrKeyNotFound for absent keys; Delete of an absent key is a no-op.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// TenantDirectory is the slug→tenant lookup table.
type TenantDirectory interface {
	Create(ctx context.Context, tenant Tenant) error
	GetBySlug(ctx context.Context, slug string) (Tenant, error)
	GetByID(ctx context.Context, id string) (Tenant, error)
	List(ctx context.Context) ([]Tenant, error)
}

// AccountDirectory is the email→account lookup table.
type AccountDirectory interface {
	Create(ctx context.Context, account Account) error
	GetByEmail(ctx context.Context, email string) (Account, error)
}

// ChangePublisher is the durable role-change delivery channel consumed by
// contexts outside the writing process. In-process listeners are served
// synchronously by the role store itself; both paths carry the same payload.
type ChangePublisher interface {
	Publish(ctx context.Context, change RoleChange) error
}

// TransitionValidator checks session-state transitions against
// SessionTransitions and returns the destination state.
type TransitionValidator interface {
	Apply(ctx context.Context, current SessionState, event SessionEvent) (SessionState, error)
}
