// Package memory provides a map-backed KeyValueStore used by tests and as
// a throwaway store when no database is configured.
package memory

import (
	"context"
	"sync"

	"github.com/vrcorp/videohive/internal/domain"
)

// Compile-time check: Store implements domain.KeyValueStore.
var _ domain.KeyValueStore = (*Store)(nil)

// Store is an in-memory key-value store safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{data: make(map[string]string)}
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return v, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Keys returns a snapshot of all stored keys. Test helper.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys
}
