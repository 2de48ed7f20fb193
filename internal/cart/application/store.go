package application

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	catalogdomain "github.com/ecommerce-app/storefront/internal/catalog/domain"
	"github.com/ecommerce-app/storefront/internal/cart/domain"
	"github.com/ecommerce-app/storefront/pkg/money"
)

// ErrNotLoaded is returned by mutations issued before Load completed.
// The load gate is what keeps an empty initial state from clobbering a
// persisted cart.
var ErrNotLoaded = errors.New("cart not loaded")

// Store is the single-session shopping cart: an ordered set of line
// items keyed by product id, persisted as a whole snapshot after every
// mutation once the initial load has completed.
type Store struct {
	mu        sync.Mutex
	log       *slog.Logger
	snapshots SnapshotStore
	items     []domain.LineItem
	loaded    bool
}

func NewStore(log *slog.Logger, snapshots SnapshotStore) *Store {
	return &Store{log: log, snapshots: snapshots}
}

// Load reads the persisted snapshot once at session start. A missing
// snapshot and a corrupt one both resolve to an empty cart; either way
// the store transitions to loaded and mutations become persistable.
// Calling Load again is a no-op.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}

	data, err := s.snapshots.Get(ctx, SnapshotKey)
	switch {
	case errors.Is(err, ErrNoSnapshot):
		// First visit.
	case err != nil:
		s.log.Warn("cart snapshot read failed, starting empty", "err", err)
	default:
		var items []domain.LineItem
		if err := json.Unmarshal(data, &items); err != nil {
			s.log.Warn("cart snapshot corrupt, starting empty", "err", err)
		} else {
			s.items = items
		}
	}
	s.loaded = true
	return nil
}

// Loaded reports whether the one-way Unloaded -> Loaded transition happened.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// AddItem appends a line item for the product, or increments the
// quantity of the existing one. Insertion order is preserved for display.
func (s *Store) AddItem(ctx context.Context, product catalogdomain.Product, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	for i := range s.items {
		if s.items[i].ID == product.ID {
			s.items[i].Quantity += quantity
			s.persist(ctx)
			return nil
		}
	}
	s.items = append(s.items, domain.LineItem{Product: product, Quantity: quantity})
	s.persist(ctx)
	return nil
}

// RemoveItem drops the line item for productID. Absent items are a no-op.
func (s *Store) RemoveItem(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	for i := range s.items {
		if s.items[i].ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.persist(ctx)
	return nil
}

// SetQuantity updates the quantity in place, keeping item order. A new
// quantity of zero or less removes the item instead.
func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, productID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	for i := range s.items {
		if s.items[i].ID == productID {
			s.items[i].Quantity = quantity
			break
		}
	}
	s.persist(ctx)
	return nil
}

// Clear empties the cart, e.g. after a confirmed checkout.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	s.items = nil
	s.persist(ctx)
	return nil
}

// Items returns the line items in insertion order.
func (s *Store) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Subtotal sums unit price x quantity over the cart. An empty cart
// subtotals to zero USD.
func (s *Store) Subtotal() (money.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prices := make([]money.Money, 0, len(s.items))
	for _, li := range s.items {
		prices = append(prices, li.ExtendedPrice())
	}
	return money.Sum(prices)
}

// TotalItemCount sums quantities across line items.
func (s *Store) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, li := range s.items {
		total += li.Quantity
	}
	return total
}

// persist writes the full serialized cart to the storage slot. Write
// failures are logged and swallowed; the in-memory cart stays
// authoritative for the session. Callers hold s.mu.
func (s *Store) persist(ctx context.Context) {
	items := s.items
	if items == nil {
		items = []domain.LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		s.log.Error("cart snapshot marshal failed", "err", err)
		return
	}
	if err := s.snapshots.Set(ctx, SnapshotKey, data); err != nil {
		s.log.Error("cart snapshot write failed", "err", err)
	}
}
