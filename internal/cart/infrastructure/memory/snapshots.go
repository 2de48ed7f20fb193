// Package memory provides the in-process snapshot slot used when no
// Redis address is configured.
package memory

import (
	"context"
	"sync"

	"github.com/ecommerce-app/storefront/internal/cart/application"
)

type SnapshotStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{slots: make(map[string][]byte)}
}

func (s *SnapshotStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.slots[key]
	if !ok {
		return nil, application.ErrNoSnapshot
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *SnapshotStore) Set(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	s.slots[key] = stored
	return nil
}
