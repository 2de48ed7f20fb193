// Package memory holds the in-memory catalog repository seeded with
// deterministic fixture data. It stands in for a real product database
// and keeps the placeholder catalog stable across restarts.
package memory

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/ecommerce-app/storefront/internal/catalog/application"
	"github.com/ecommerce-app/storefront/internal/catalog/domain"
	"github.com/ecommerce-app/storefront/pkg/money"
	"github.com/shopspring/decimal"
)

const (
	categoryCount = 5
	productCount  = 50
)

type Repository struct {
	mu         sync.RWMutex
	products   []domain.Product
	categories []domain.Category
	byID       map[string]int
	catByID    map[string]int
}

// NewRepository returns a repository pre-seeded with the fixture catalog:
// 5 categories and 50 products priced at n x 9.99 USD.
func NewRepository() *Repository {
	r := &Repository{
		byID:    make(map[string]int),
		catByID: make(map[string]int),
	}
	for i := 1; i <= categoryCount; i++ {
		r.categories = append(r.categories, fixtureCategory(i))
		r.catByID[r.categories[i-1].ID] = i - 1
	}
	for i := 1; i <= productCount; i++ {
		r.products = append(r.products, fixtureProduct(i))
		r.byID[r.products[i-1].ID] = i - 1
	}
	return r
}

func (r *Repository) ListProducts(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *Repository) GetProduct(_ context.Context, id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byID[id]
	if !ok {
		return domain.Product{}, application.ErrNotFound
	}
	return r.products[i], nil
}

func (r *Repository) ListProductsByCategory(_ context.Context, slug string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Product
	for _, p := range r.products {
		if p.InCategory(slug) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *Repository) ListCategories(_ context.Context) ([]domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Category, len(r.categories))
	copy(out, r.categories)
	return out, nil
}

func (r *Repository) GetCategory(_ context.Context, id string) (domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.catByID[id]
	if !ok {
		return domain.Category{}, application.ErrNotFound
	}
	return r.categories[i], nil
}

// FixtureID renders the deterministic uuid used for seeded entities.
func FixtureID(n int) string {
	return fmt.Sprintf("00000000-0000-0000-0000-%012d", n)
}

func fixtureCategory(n int) domain.Category {
	name := fmt.Sprintf("Category %d", n)
	return domain.Category{
		ID:          FixtureID(n),
		Slug:        fmt.Sprintf("category-%d", n),
		Name:        name,
		Description: fmt.Sprintf("Description for %s.", name),
		Image:       placeholderImage(name),
	}
}

func fixtureProduct(n int) domain.Product {
	name := fmt.Sprintf("Product %d", n)
	images := make([]string, 0, 3)
	for j := 1; j <= 3; j++ {
		images = append(images, placeholderImage(fmt.Sprintf("%s - Image %d", name, j)))
	}
	// Three distinct category slugs assigned round-robin.
	categories := make([]string, 0, 3)
	for j := 0; j < 3; j++ {
		categories = append(categories, fmt.Sprintf("category-%d", (n+j)%categoryCount+1))
	}
	return domain.Product{
		ID:          FixtureID(n),
		Name:        name,
		Description: fmt.Sprintf("Description for %s.", name),
		Price: money.New(
			decimal.RequireFromString("9.99").Mul(decimal.NewFromInt(int64(n))),
			money.DefaultCurrency,
		),
		Images:     images,
		Categories: categories,
	}
}

func placeholderImage(text string) string {
	return "https://placehold.co/1000x1000?text=" + url.QueryEscape(text)
}
