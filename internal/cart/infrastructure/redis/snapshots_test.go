package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/ecommerce-app/storefront/internal/cart/application"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*SnapshotStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSnapshotStore(client), mr
}

func TestGet_MissingKey(t *testing.T) {
	store, _ := setupStore(t)
	_, err := store.Get(context.Background(), application.SnapshotKey)
	assert.ErrorIs(t, err, application.ErrNoSnapshot)
}

func TestSetThenGet(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	payload := []byte(`[{"id":"p1","quantity":2}]`)
	require.NoError(t, store.Set(ctx, application.SnapshotKey, payload))

	got, err := store.Get(ctx, application.SnapshotKey)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestSet_Overwrites(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, application.SnapshotKey, []byte(`[]`)))
	require.NoError(t, store.Set(ctx, application.SnapshotKey, []byte(`[{"id":"p2","quantity":1}]`)))

	stored, err := mr.Get(application.SnapshotKey)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"p2","quantity":1}]`, stored)
}
