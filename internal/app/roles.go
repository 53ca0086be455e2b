package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vrcorp/videohive/internal/domain"
)

// Listener receives role-change notifications. Listeners run synchronously
// inside Set/Clear, strictly after the new role has been persisted, so a
// listener reading the store observes the fresh value.
type Listener func(ctx context.Context, change domain.RoleChange)

type subscriber struct {
	id int
	fn Listener
}

// RoleStore holds the single marketplace-wide role. It keeps no cache:
// every read goes to storage, and change notifications tell cached readers
// to re-read.
type RoleStore struct {
	kv        domain.KeyValueStore
	publisher domain.ChangePublisher
	logger    *slog.Logger

	mu     sync.Mutex
	subs   []subscriber
	nextID int
}

// NewRoleStore creates the role store. publisher may be nil when no durable
// change feed is configured.
func NewRoleStore(kv domain.KeyValueStore, publisher domain.ChangePublisher, logger *slog.Logger) *RoleStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RoleStore{kv: kv, publisher: publisher, logger: logger}
}

// Get reads the current role, defaulting to guest when the key is absent or
// holds an unrecognized value.
func (s *RoleStore) Get(ctx context.Context) domain.Role {
	v, err := s.kv.Get(ctx, domain.RoleKey)
	if err != nil {
		return domain.RoleGuest
	}
	return domain.ParseRole(v)
}

// Set persists the new role and then notifies. Persist-before-notify is the
// ordering guarantee listeners rely on.
func (s *RoleStore) Set(ctx context.Context, role domain.Role) error {
	prev := s.Get(ctx)
	if err := s.kv.Set(ctx, domain.RoleKey, string(role)); err != nil {
		return fmt.Errorf("persisting role: %w", err)
	}
	s.announce(ctx, domain.RoleChange{Role: role, Previous: prev})
	return nil
}

// Clear removes the persisted role, returning the session to guest, and
// notifies with the guest role as payload.
func (s *RoleStore) Clear(ctx context.Context) error {
	prev := s.Get(ctx)
	if err := s.kv.Delete(ctx, domain.RoleKey); err != nil {
		return fmt.Errorf("clearing role: %w", err)
	}
	s.announce(ctx, domain.RoleChange{Role: domain.RoleGuest, Previous: prev})
	return nil
}

// Subscribe registers a listener for every subsequent role change and
// returns a cancel function. Listeners fire in subscription order.
func (s *RoleStore) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// announce dispatches to in-process listeners first, then to the durable
// feed. The role is already persisted and announced locally by the time the
// publisher runs, so a publish failure is logged rather than unwinding the
// role change.
func (s *RoleStore) announce(ctx context.Context, change domain.RoleChange) {
	s.mu.Lock()
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(ctx, change)
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, change); err != nil {
			s.logger.Warn("role change not published to durable feed",
				"event", domain.RoleChangeEvent,
				"role", change.Role,
				"error", err,
			)
		}
	}
}
