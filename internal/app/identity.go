// Package app holds the identity and scoped-state services, wired together
// through the domain ports.
package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vrcorp/videohive/internal/domain"
)

// Identity assigns and persists the anonymous identity for this profile.
// The id is minted lazily on first access and survives until a promotion
// clears it.
type Identity struct {
	kv     domain.KeyValueStore
	logger *slog.Logger
}

// NewIdentity creates the anonymous identity provider.
func NewIdentity(kv domain.KeyValueStore, logger *slog.Logger) *Identity {
	if logger == nil {
		logger = slog.Default()
	}
	return &Identity{kv: kv, logger: logger}
}

// GetOrCreate returns the persisted guest id, minting and persisting a new
// one if absent. Repeated calls return the same value until Clear. Storage
// failures degrade to a fresh ephemeral id; identity is not critical enough
// to surface an error for.
func (i *Identity) GetOrCreate(ctx context.Context) string {
	v, err := i.kv.Get(ctx, domain.GuestIDKey)
	if err == nil && v != "" {
		return v
	}
	if err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		i.logger.Warn("guest id storage unavailable, using ephemeral id", "error", err)
		return newGuestID()
	}

	id := newGuestID()
	if err := i.kv.Set(ctx, domain.GuestIDKey, id); err != nil {
		i.logger.Warn("guest id not persisted", "error", err)
	}
	return id
}

// Peek returns the persisted guest id without minting one. Empty means no
// identity has been assigned yet.
func (i *Identity) Peek(ctx context.Context) string {
	v, err := i.kv.Get(ctx, domain.GuestIDKey)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			i.logger.Warn("guest id storage unavailable", "error", err)
		}
		return ""
	}
	return v
}

// Clear deletes the persisted guest id. Called by the promotion coordinator
// after a successful merge, never by UI code.
func (i *Identity) Clear(ctx context.Context) {
	if err := i.kv.Delete(ctx, domain.GuestIDKey); err != nil {
		i.logger.Warn("guest id not cleared", "error", err)
	}
}
