// Package http exposes the demo session's cart over the API. The
// browser build keeps this state client-side; the server rendition
// drives the same store through these routes.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	catalogapp "github.com/ecommerce-app/storefront/internal/catalog/application"
	"github.com/ecommerce-app/storefront/internal/cart/application"
	cartdomain "github.com/ecommerce-app/storefront/internal/cart/domain"
	"github.com/ecommerce-app/storefront/pkg/httpx"
	"github.com/ecommerce-app/storefront/pkg/money"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type Handler struct {
	log     *slog.Logger
	cart    *application.Store
	catalog *catalogapp.Service
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, cart *application.Store, catalog *catalogapp.Service) *Handler {
	return &Handler{
		log:     log,
		cart:    cart,
		catalog: catalog,
		tracer:  otel.Tracer("cart-http"),
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/cart", h.getCart)
	r.Post("/cart/items", h.addItem)
	r.Put("/cart/items/{productID}", h.setQuantity)
	r.Delete("/cart/items/{productID}", h.removeItem)
	r.Delete("/cart", h.clearCart)
}

type cartView struct {
	Items      []cartdomain.LineItem `json:"items"`
	Subtotal   money.Money           `json:"subtotal"`
	TotalItems int                   `json:"totalItems"`
}

type addItemReq struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity,omitempty"`
}

type setQuantityReq struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "GetCart")
	defer span.End()

	h.respondCart(w)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "AddCartItem")
	defer span.End()

	var req addItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		httpx.Error(w, http.StatusBadRequest, "Invalid cart item payload.")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := h.catalog.GetProduct(ctx, req.ProductID)
	if errors.Is(err, catalogapp.ErrNotFound) {
		httpx.Error(w, http.StatusNotFound, "Item not found!")
		return
	}
	if err != nil {
		h.log.Error("cart product lookup failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Failed to add item to cart.")
		return
	}

	if err := h.cart.AddItem(ctx, product, req.Quantity); err != nil {
		h.log.Error("cart add failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Failed to add item to cart.")
		return
	}
	h.respondCart(w)
}

func (h *Handler) setQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "SetCartQuantity")
	defer span.End()

	var req setQuantityReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Error(w, http.StatusBadRequest, "Invalid quantity payload.")
		return
	}

	if err := h.cart.SetQuantity(ctx, chi.URLParam(r, "productID"), req.Quantity); err != nil {
		h.log.Error("cart quantity update failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Failed to update cart.")
		return
	}
	h.respondCart(w)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RemoveCartItem")
	defer span.End()

	if err := h.cart.RemoveItem(ctx, chi.URLParam(r, "productID")); err != nil {
		h.log.Error("cart remove failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Failed to update cart.")
		return
	}
	h.respondCart(w)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ClearCart")
	defer span.End()

	if err := h.cart.Clear(ctx); err != nil {
		h.log.Error("cart clear failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Failed to clear cart.")
		return
	}
	h.respondCart(w)
}

func (h *Handler) respondCart(w http.ResponseWriter) {
	subtotal, err := h.cart.Subtotal()
	if err != nil {
		h.log.Error("cart subtotal failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Failed to compute cart totals.")
		return
	}
	items := h.cart.Items()
	if items == nil {
		items = []cartdomain.LineItem{}
	}
	httpx.OK(w, "Cart loaded.", cartView{
		Items:      items,
		Subtotal:   subtotal,
		TotalItems: h.cart.TotalItemCount(),
	})
}
