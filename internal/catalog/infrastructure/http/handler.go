package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ecommerce-app/storefront/internal/catalog/application"
	"github.com/ecommerce-app/storefront/internal/catalog/domain"
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
		tracer:  otel.Tracer("catalog-http"),
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/products", h.listProducts)
	r.Get("/products/{productID}", h.getProduct)
	r.Get("/categories", h.listCategories)
	r.Get("/categories/{categoryID}", h.getCategory)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ListProducts")
	defer span.End()

	var (
		products []domain.Product
		err      error
	)
	if category := r.URL.Query().Get("category"); category != "" {
		products, err = h.service.ListProductsByCategory(ctx, category)
	} else {
		products, err = h.service.ListProducts(ctx)
	}
	if err != nil {
		h.log.Error("list products failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Failed to list products.")
		return
	}

	httpx.OK(w, fmt.Sprintf("Found %d product item(s).", len(products)), products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetProduct")
	defer span.End()

	product, err := h.service.GetProduct(ctx, chi.URLParam(r, "productID"))
	if errors.Is(err, application.ErrNotFound) {
		httpx.Error(w, http.StatusNotFound, "Item not found!")
		return
	}
	if err != nil {
		h.log.Error("get product failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Failed to load product.")
		return
	}

	httpx.OK(w, "Item found.", product)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ListCategories")
	defer span.End()

	categories, err := h.service.ListCategories(ctx)
	if err != nil {
		h.log.Error("list categories failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Failed to list categories.")
		return
	}

	httpx.OK(w, fmt.Sprintf("Found %d item(s).", len(categories)), categories)
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetCategory")
	defer span.End()

	category, err := h.service.GetCategory(ctx, chi.URLParam(r, "categoryID"))
	if errors.Is(err, application.ErrNotFound) {
		httpx.Error(w, http.StatusNotFound, "Item not found!")
		return
	}
	if err != nil {
		h.log.Error("get category failed", "err", err)
		httpx.Error(w, http.StatusInternalServerError, "Failed to load category.")
		return
	}

	httpx.OK(w, "Item found.", category)
}
