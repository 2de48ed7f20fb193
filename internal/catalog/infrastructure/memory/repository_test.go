package memory

import (
	"context"
	"testing"

	"github.com/ecommerce-app/storefront/internal/catalog/application"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRepository_SeedsFixtures(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	products, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 50)

	categories, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 5)

	first := products[0]
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", first.ID)
	assert.Equal(t, "Product 1", first.Name)
	assert.Equal(t, "USD", first.Price.Currency)
	assert.True(t, first.Price.Amount.Equal(decimal.RequireFromString("9.99")))
	assert.Len(t, first.Images, 3)
	assert.Len(t, first.Categories, 3)
}

func TestNewRepository_Deterministic(t *testing.T) {
	ctx := context.Background()
	a, err := NewRepository().ListProducts(ctx)
	require.NoError(t, err)
	b, err := NewRepository().ListProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGetProduct(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	p, err := repo.GetProduct(ctx, FixtureID(7))
	require.NoError(t, err)
	assert.Equal(t, "Product 7", p.Name)
	assert.True(t, p.Price.Amount.Equal(decimal.RequireFromString("69.93")))

	_, err = repo.GetProduct(ctx, "no-such-product")
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestGetCategory(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	c, err := repo.GetCategory(ctx, FixtureID(3))
	require.NoError(t, err)
	assert.Equal(t, "category-3", c.Slug)

	_, err = repo.GetCategory(ctx, "no-such-category")
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestListProductsByCategory(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	products, err := repo.ListProductsByCategory(ctx, "category-1")
	require.NoError(t, err)
	require.NotEmpty(t, products)
	for _, p := range products {
		assert.True(t, p.InCategory("category-1"), "product %s not in category-1", p.ID)
	}

	none, err := repo.ListProductsByCategory(ctx, "category-999")
	require.NoError(t, err)
	assert.Empty(t, none)
}
