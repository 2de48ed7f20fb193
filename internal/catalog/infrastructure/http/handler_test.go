package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecommerce-app/storefront/internal/catalog/application"
	"github.com/ecommerce-app/storefront/internal/catalog/infrastructure/memory"
	"github.com/ecommerce-app/storefront/pkg/httpx"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() http.Handler {
	svc := application.NewService(slog.Default(), memory.NewRepository())
	r := chi.NewRouter()
	NewHandler(slog.Default(), svc).Register(r)
	return r
}

func get(t *testing.T, router http.Handler, path string) (*httptest.ResponseRecorder, httpx.Envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	var env httpx.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestListProducts(t *testing.T) {
	router := newTestRouter()

	rec, env := get(t, router, "/products")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Found 50 product item(s).", env.Message)
	products := env.Data.([]any)
	assert.Len(t, products, 50)
}

func TestListProducts_CategoryFilter(t *testing.T) {
	router := newTestRouter()

	rec, env := get(t, router, "/products?category=category-1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	products := env.Data.([]any)
	require.NotEmpty(t, products)
	for _, raw := range products {
		p := raw.(map[string]any)
		assert.Contains(t, p["categories"], "category-1")
	}
}

func TestGetProduct(t *testing.T) {
	router := newTestRouter()

	rec, env := get(t, router, "/products/"+memory.FixtureID(5))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Item found.", env.Message)
	p := env.Data.(map[string]any)
	assert.Equal(t, "Product 5", p["name"])
}

func TestGetProduct_NotFound(t *testing.T) {
	router := newTestRouter()

	rec, env := get(t, router, "/products/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Item not found!", env.Message)
	assert.Nil(t, env.Data)
}

func TestListCategories(t *testing.T) {
	router := newTestRouter()

	rec, env := get(t, router, "/categories")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Found 5 item(s).", env.Message)
	assert.Len(t, env.Data.([]any), 5)
}

func TestGetCategory_NotFound(t *testing.T) {
	router := newTestRouter()

	rec, env := get(t, router, "/categories/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
}
