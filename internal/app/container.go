package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vrcorp/videohive/internal/domain"
)

// Container is a partition-aware ordered collection of line items.
// The active partition is re-resolved from the role store on every
// operation, so a role change rebinds the container without any remount.
// Items are kept unique by id; order is append order.
type Container[T domain.Item] struct {
	kind     domain.ContainerKind
	kv       domain.KeyValueStore
	identity *Identity
	roles    *RoleStore
	logger   *slog.Logger
}

// NewContainer creates a scoped state container of the given kind.
func NewContainer[T domain.Item](kind domain.ContainerKind, kv domain.KeyValueStore, identity *Identity, roles *RoleStore, logger *slog.Logger) *Container[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Container[T]{
		kind:     kind,
		kv:       kv,
		identity: identity,
		roles:    roles,
		logger:   logger,
	}
}

// Kind returns the container kind.
func (c *Container[T]) Kind() domain.ContainerKind { return c.kind }

// activeKey resolves the storage key for the current role. Guest sessions
// mint their identity lazily here; that is the "first access" the identity
// contract talks about.
func (c *Container[T]) activeKey(ctx context.Context) string {
	role := c.roles.Get(ctx)
	if role.IsAuthenticated() {
		return domain.StorageKey(c.kind, domain.PartitionUser)
	}
	return domain.StorageKey(c.kind, domain.GuestPartition(c.identity.GetOrCreate(ctx)))
}

// loadKey reads and decodes the sequence stored under key. A missing key is
// an empty sequence; corrupted data is treated the same, logged, and never
// surfaced to the caller.
func (c *Container[T]) loadKey(ctx context.Context, key string) []T {
	raw, err := c.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			c.logger.Warn("container storage unavailable, treating as empty",
				"kind", c.kind, "key", key, "error", err)
		}
		return nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		c.logger.Warn("corrupt container state discarded",
			"kind", c.kind, "key", key, "error", err)
		return nil
	}
	return items
}

// persistKey serializes the full sequence under key.
func (c *Container[T]) persistKey(ctx context.Context, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s state: %w", c.kind, err)
	}
	if err := c.kv.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("persisting %s state: %w", c.kind, err)
	}
	return nil
}

// Items returns the active partition's sequence in stored order.
func (c *Container[T]) Items(ctx context.Context) []T {
	return c.loadKey(ctx, c.activeKey(ctx))
}

// Add appends the item unless its id is already present. A duplicate is not
// an error: added is false and the sequence is untouched, leaving the
// caller to show a notice.
func (c *Container[T]) Add(ctx context.Context, item T) (added bool, err error) {
	key := c.activeKey(ctx)
	items := c.loadKey(ctx, key)

	for _, existing := range items {
		if existing.ItemID() == item.ItemID() {
			return false, nil
		}
	}

	items = append(items, item)
	if err := c.persistKey(ctx, key, items); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes the item with the given id; absent ids are a no-op.
func (c *Container[T]) Remove(ctx context.Context, id string) error {
	key := c.activeKey(ctx)
	items := c.loadKey(ctx, key)

	kept := items[:0]
	for _, item := range items {
		if item.ItemID() != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return nil
	}
	return c.persistKey(ctx, key, kept)
}

// Clear empties the active partition.
func (c *Container[T]) Clear(ctx context.Context) error {
	return c.persistKey(ctx, c.activeKey(ctx), nil)
}

// Contains reports whether an item with the given id is present.
func (c *Container[T]) Contains(ctx context.Context, id string) bool {
	for _, item := range c.Items(ctx) {
		if item.ItemID() == id {
			return true
		}
	}
	return false
}

// TotalCount returns the number of items in the active partition.
func (c *Container[T]) TotalCount(ctx context.Context) int {
	return len(c.Items(ctx))
}

// TransferGuestToUser moves the guest partition's sequence into the user
// partition and deletes the guest key. Items the authenticated partition
// already held survive: the result is a first-seen-wins union with guest
// items first, which keeps pre-existing user state while preserving guest
// order. Calling with no guest partition present is a no-op.
func (c *Container[T]) TransferGuestToUser(ctx context.Context) error {
	guestID := c.identity.Peek(ctx)
	if guestID == "" {
		return nil
	}

	guestKey := domain.StorageKey(c.kind, domain.GuestPartition(guestID))
	raw, err := c.kv.Get(ctx, guestKey)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		c.logger.Warn("guest partition unreadable, skipping transfer",
			"kind", c.kind, "key", guestKey, "error", err)
		return nil
	}

	var guestItems []T
	if err := json.Unmarshal([]byte(raw), &guestItems); err != nil {
		c.logger.Warn("corrupt guest partition discarded on transfer",
			"kind", c.kind, "key", guestKey, "error", err)
		guestItems = nil
	}

	userKey := domain.StorageKey(c.kind, domain.PartitionUser)
	merged := mergeByID(guestItems, c.loadKey(ctx, userKey))

	if err := c.persistKey(ctx, userKey, merged); err != nil {
		return err
	}
	if err := c.kv.Delete(ctx, guestKey); err != nil {
		return fmt.Errorf("deleting guest partition: %w", err)
	}
	return nil
}

// MergeUser folds the persisted user-partition sequence into the active
// sequence, first-seen-wins by id. Covers the case where the authenticated
// account already had persisted items from a previous session.
func (c *Container[T]) MergeUser(ctx context.Context) error {
	userKey := domain.StorageKey(c.kind, domain.PartitionUser)
	persisted := c.loadKey(ctx, userKey)
	if len(persisted) == 0 {
		return nil
	}

	key := c.activeKey(ctx)
	items := c.loadKey(ctx, key)
	merged := mergeByID(items, persisted)
	if len(merged) == len(items) {
		return nil
	}
	return c.persistKey(ctx, key, merged)
}

// mergeByID appends items from extra whose id is not already present in
// base. Base order is preserved; new items keep their relative order.
func mergeByID[T domain.Item](base, extra []T) []T {
	seen := make(map[string]struct{}, len(base))
	for _, item := range base {
		seen[item.ItemID()] = struct{}{}
	}

	merged := base
	for _, item := range extra {
		if _, ok := seen[item.ItemID()]; ok {
			continue
		}
		seen[item.ItemID()] = struct{}{}
		merged = append(merged, item)
	}
	return merged
}
