package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	catalogapp "github.com/ecommerce-app/storefront/internal/catalog/application"
	catalogmem "github.com/ecommerce-app/storefront/internal/catalog/infrastructure/memory"
	"github.com/ecommerce-app/storefront/internal/cart/application"
	cartmem "github.com/ecommerce-app/storefront/internal/cart/infrastructure/memory"
	"github.com/ecommerce-app/storefront/pkg/httpx"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	catalog := catalogapp.NewService(slog.Default(), catalogmem.NewRepository())
	cart := application.NewStore(slog.Default(), cartmem.NewSnapshotStore())
	require.NoError(t, cart.Load(context.Background()))

	r := chi.NewRouter()
	NewHandler(slog.Default(), cart, catalog).Register(r)
	return r
}

func do(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, httpx.Envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	var env httpx.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func cartData(t *testing.T, env httpx.Envelope) (items []any, totalItems float64) {
	t.Helper()
	data, ok := env.Data.(map[string]any)
	require.True(t, ok)
	items, _ = data["items"].([]any)
	totalItems, _ = data["totalItems"].(float64)
	return items, totalItems
}

func TestGetCart_Empty(t *testing.T) {
	router := newTestRouter(t)

	rec, env := do(t, router, http.MethodGet, "/cart", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	items, total := cartData(t, env)
	assert.Empty(t, items)
	assert.Zero(t, total)
}

func TestAddItem_ThenGet(t *testing.T) {
	router := newTestRouter(t)

	body := `{"productId":"` + catalogmem.FixtureID(1) + `","quantity":2}`
	rec, env := do(t, router, http.MethodPost, "/cart/items", body)
	require.Equal(t, http.StatusOK, rec.Code)
	items, total := cartData(t, env)
	assert.Len(t, items, 1)
	assert.Equal(t, float64(2), total)

	// Re-adding the same product increments its quantity.
	rec, env = do(t, router, http.MethodPost, "/cart/items", body)
	require.Equal(t, http.StatusOK, rec.Code)
	items, total = cartData(t, env)
	assert.Len(t, items, 1)
	assert.Equal(t, float64(4), total)
}

func TestAddItem_UnknownProduct(t *testing.T) {
	router := newTestRouter(t)

	rec, env := do(t, router, http.MethodPost, "/cart/items", `{"productId":"ghost"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
}

func TestAddItem_InvalidPayload(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := do(t, router, http.MethodPost, "/cart/items", `{"quantity":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetQuantity_ZeroRemoves(t *testing.T) {
	router := newTestRouter(t)
	productID := catalogmem.FixtureID(1)

	_, _ = do(t, router, http.MethodPost, "/cart/items", `{"productId":"`+productID+`","quantity":3}`)

	rec, env := do(t, router, http.MethodPut, "/cart/items/"+productID, `{"quantity":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	items, _ := cartData(t, env)
	assert.Empty(t, items)
}

func TestRemoveAndClear(t *testing.T) {
	router := newTestRouter(t)
	first := catalogmem.FixtureID(1)
	second := catalogmem.FixtureID(2)

	_, _ = do(t, router, http.MethodPost, "/cart/items", `{"productId":"`+first+`"}`)
	_, _ = do(t, router, http.MethodPost, "/cart/items", `{"productId":"`+second+`"}`)

	rec, env := do(t, router, http.MethodDelete, "/cart/items/"+first, "")
	require.Equal(t, http.StatusOK, rec.Code)
	items, _ := cartData(t, env)
	assert.Len(t, items, 1)

	rec, env = do(t, router, http.MethodDelete, "/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)
	items, total := cartData(t, env)
	assert.Empty(t, items)
	assert.Zero(t, total)
}
