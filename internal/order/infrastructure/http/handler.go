package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ecommerce-app/storefront/internal/order/application"
	"github.com/ecommerce-app/storefront/internal/order/domain"
	"github.com/ecommerce-app/storefront/pkg/httpx"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		tracer:  otel.Tracer("order-http"),
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/checkout", h.checkout)
	r.Get("/orders", h.listOrders)
	r.Get("/orders/{orderID}", h.getOrder)
}

type checkoutReq struct {
	User     *domain.User          `json:"user,omitempty"`
	Products []domain.CheckoutItem `json:"products"`
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Checkout")
	defer span.End()

	var req checkoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Products) == 0 {
		httpx.Error(w, http.StatusBadRequest, "Failed to place order: invalid request!")
		return
	}

	user := domain.User{}
	if req.User != nil {
		user = *req.User
	}

	order, err := h.service.Checkout(ctx, user, req.Products)
	switch {
	case errors.Is(err, application.ErrEmptyCheckout):
		httpx.Error(w, http.StatusBadRequest, "Failed to place order: invalid request!")
		return
	case errors.Is(err, application.ErrUnresolvableProducts):
		httpx.Error(w, http.StatusUnprocessableEntity, "Failed to place order: "+err.Error())
		return
	case err != nil:
		h.log.Error("checkout failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Failed to place order: internal error.")
		return
	}

	httpx.OK(w, "Order placed successfully.", order)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ListOrders")
	defer span.End()

	orders, err := h.service.ListOrders(ctx)
	if err != nil {
		h.log.Error("list orders failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Failed to list orders.")
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}

	httpx.OK(w, fmt.Sprintf("Found %d item(s).", len(orders)), orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetOrder")
	defer span.End()

	order, err := h.service.GetOrder(ctx, chi.URLParam(r, "orderID"))
	if errors.Is(err, application.ErrNotFound) {
		httpx.Error(w, http.StatusNotFound, "Item not found!")
		return
	}
	if err != nil {
		h.log.Error("get order failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Failed to load order.")
		return
	}

	httpx.OK(w, "Item found.", order)
}
