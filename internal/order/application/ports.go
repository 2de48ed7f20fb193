package application

import (
	"context"
	"errors"

	catalogdomain "github.com/ecommerce-app/storefront/internal/catalog/domain"
	"github.com/ecommerce-app/storefront/internal/order/domain"
)

var (
	// ErrEmptyCheckout rejects a checkout request naming no products.
	ErrEmptyCheckout = errors.New("no products to checkout")
	// ErrUnresolvableProducts aborts the whole checkout when any
	// requested product id does not exist in the catalog.
	ErrUnresolvableProducts = errors.New("unable to checkout some products")
	// ErrNotFound is the first-class miss signal for order lookups.
	ErrNotFound = errors.New("order not found")
)

type Repository interface {
	Save(ctx context.Context, o domain.Order) error
	Get(ctx context.Context, id string) (domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
}

// Catalog is the read-only slice of the product catalog checkout needs.
type Catalog interface {
	GetProduct(ctx context.Context, id string) (catalogdomain.Product, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, eventType, orderID string, payload []byte) error
}

// NopPublisher drops events; the default when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, []byte) error { return nil }
