package application

import (
	"context"
	"errors"

	"github.com/ecommerce-app/storefront/internal/catalog/domain"
)

// ErrNotFound is the first-class not-found signal for catalog lookups.
var ErrNotFound = errors.New("not found")

type Repository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	ListProductsByCategory(ctx context.Context, slug string) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id string) (domain.Category, error)
}
