package application

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	catalogdomain "github.com/ecommerce-app/storefront/internal/catalog/domain"
	"github.com/ecommerce-app/storefront/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSnapshots struct {
	mu     sync.Mutex
	data   []byte
	getErr error
	writes int
}

func (m *mockSnapshots) Get(context.Context, string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.data == nil {
		return nil, ErrNoSnapshot
	}
	return m.data, nil
}

func (m *mockSnapshots) Set(_ context.Context, _ string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	m.writes++
	return nil
}

func product(id string, amount string) catalogdomain.Product {
	return catalogdomain.Product{
		ID:    id,
		Name:  "Product " + id,
		Price: money.New(decimal.RequireFromString(amount), "USD"),
	}
}

func loadedStore(t *testing.T) (*Store, *mockSnapshots) {
	t.Helper()
	snaps := &mockSnapshots{}
	s := NewStore(slog.Default(), snaps)
	require.NoError(t, s.Load(context.Background()))
	return s, snaps
}

func TestLoad_NoSnapshotStartsEmpty(t *testing.T) {
	s, _ := loadedStore(t)
	assert.True(t, s.Loaded())
	assert.Empty(t, s.Items())
}

func TestLoad_CorruptSnapshotStartsEmpty(t *testing.T) {
	snaps := &mockSnapshots{data: []byte(`{"not":"an array"`)}
	s := NewStore(slog.Default(), snaps)
	require.NoError(t, s.Load(context.Background()))
	assert.True(t, s.Loaded())
	assert.Empty(t, s.Items())
}

func TestLoad_ReadFailureStartsEmpty(t *testing.T) {
	snaps := &mockSnapshots{getErr: errors.New("storage offline")}
	s := NewStore(slog.Default(), snaps)
	require.NoError(t, s.Load(context.Background()))
	assert.True(t, s.Loaded())
	assert.Empty(t, s.Items())
}

func TestMutationsBeforeLoadAreRejected(t *testing.T) {
	snaps := &mockSnapshots{}
	s := NewStore(slog.Default(), snaps)
	ctx := context.Background()

	assert.ErrorIs(t, s.AddItem(ctx, product("p1", "10"), 1), ErrNotLoaded)
	assert.ErrorIs(t, s.RemoveItem(ctx, "p1"), ErrNotLoaded)
	assert.ErrorIs(t, s.Clear(ctx), ErrNotLoaded)
	assert.Zero(t, snaps.writes, "nothing may be persisted before load")
}

func TestAddItem_DistinctProducts(t *testing.T) {
	s, _ := loadedStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddItem(ctx, product("p1", "10"), 2))
	require.NoError(t, s.AddItem(ctx, product("p2", "20"), 3))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, "p2", items[1].ID)
	assert.Equal(t, 5, s.TotalItemCount())
}

func TestAddItem_SameProductIncrementsQuantity(t *testing.T) {
	s, _ := loadedStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddItem(ctx, product("p1", "10"), 1))
	require.NoError(t, s.AddItem(ctx, product("p1", "10"), 2))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	s, _ := loadedStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddItem(ctx, product("p1", "10"), 1))
	require.NoError(t, s.RemoveItem(ctx, "p1"))
	assert.Empty(t, s.Items())

	// Absent product is a no-op, not an error.
	require.NoError(t, s.RemoveItem(ctx, "ghost"))
}

func TestSetQuantity(t *testing.T) {
	s, _ := loadedStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddItem(ctx, product("p1", "10"), 1))
	require.NoError(t, s.AddItem(ctx, product("p2", "20"), 1))

	require.NoError(t, s.SetQuantity(ctx, "p1", 5))
	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, "p1", items[0].ID, "order unaffected by quantity update")
}

func TestSetQuantity_ZeroRemoves(t *testing.T) {
	s, _ := loadedStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddItem(ctx, product("p1", "10"), 2))
	require.NoError(t, s.SetQuantity(ctx, "p1", 0))
	assert.Empty(t, s.Items())

	require.NoError(t, s.AddItem(ctx, product("p1", "10"), 2))
	require.NoError(t, s.SetQuantity(ctx, "p1", -4))
	assert.Empty(t, s.Items())
}

func TestClear(t *testing.T) {
	s, _ := loadedStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddItem(ctx, product("p1", "10"), 2))
	require.NoError(t, s.Clear(ctx))
	assert.Empty(t, s.Items())
	assert.Zero(t, s.TotalItemCount())
}

func TestSubtotal(t *testing.T) {
	s, _ := loadedStore(t)
	ctx := context.Background()

	sub, err := s.Subtotal()
	require.NoError(t, err)
	assert.True(t, sub.Amount.IsZero())
	assert.Equal(t, "USD", sub.Currency)

	require.NoError(t, s.AddItem(ctx, product("p1", "9.99"), 3))
	require.NoError(t, s.AddItem(ctx, product("p2", "20"), 1))

	sub, err = s.Subtotal()
	require.NoError(t, err)
	assert.True(t, sub.Amount.Equal(decimal.RequireFromString("49.97")), "got %s", sub)
}

func TestEveryMutationPersists(t *testing.T) {
	s, snaps := loadedStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddItem(ctx, product("p1", "10"), 1))
	require.NoError(t, s.SetQuantity(ctx, "p1", 4))
	require.NoError(t, s.RemoveItem(ctx, "p1"))
	require.NoError(t, s.Clear(ctx))
	assert.Equal(t, 4, snaps.writes)
}

func TestSnapshotRoundTrip(t *testing.T) {
	snaps := &mockSnapshots{}
	ctx := context.Background()

	first := NewStore(slog.Default(), snaps)
	require.NoError(t, first.Load(ctx))
	require.NoError(t, first.AddItem(ctx, product("p1", "9.99"), 2))
	require.NoError(t, first.AddItem(ctx, product("p2", "19.98"), 1))

	second := NewStore(slog.Default(), snaps)
	require.NoError(t, second.Load(ctx))
	assert.Equal(t, first.Items(), second.Items())
	assert.Equal(t, first.TotalItemCount(), second.TotalItemCount())
}
