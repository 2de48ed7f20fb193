// Package memory is the default order store: a process-wide map keyed
// by order id, listing in insertion order. Orders are never deleted
// within the process lifetime.
package memory

import (
	"context"
	"sync"

	"github.com/ecommerce-app/storefront/internal/order/application"
	"github.com/ecommerce-app/storefront/internal/order/domain"
)

type Repository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
	seq    []string
}

func NewRepository() *Repository {
	return &Repository{orders: make(map[string]domain.Order)}
}

// Save inserts or replaces the full order record. Overwrites are how
// the lifecycle transition lands; there is a single scheduled writer
// per order so last-write-wins is safe here.
func (r *Repository) Save(_ context.Context, o domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.orders[o.ID]; !exists {
		r.seq = append(r.seq, o.ID)
	}
	r.orders[o.ID] = o
	return nil
}

func (r *Repository) Get(_ context.Context, id string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return domain.Order{}, application.ErrNotFound
	}
	return o, nil
}

func (r *Repository) List(_ context.Context) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Order, 0, len(r.seq))
	for _, id := range r.seq {
		out = append(out, r.orders[id])
	}
	return out, nil
}
