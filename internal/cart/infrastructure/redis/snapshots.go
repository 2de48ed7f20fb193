// Package redis persists cart snapshots in a Redis key so the cart
// survives process restarts. Last writer wins across sessions, which
// matches the storage slot's contract.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecommerce-app/storefront/internal/cart/application"
	"github.com/redis/go-redis/v9"
)

type SnapshotStore struct {
	client *redis.Client
}

func NewSnapshotStore(client *redis.Client) *SnapshotStore {
	return &SnapshotStore{client: client}
}

func (s *SnapshotStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, application.ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (s *SnapshotStore) Set(ctx context.Context, key string, data []byte) error {
	// Carts have no natural expiry; the slot lives until overwritten.
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}
