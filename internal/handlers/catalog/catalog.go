package cataloghandler

import (
	"context"
	"log/slog"
	"net/http"

	"storefront/internal/handlers"
	"storefront/internal/models"
	"storefront/pkg/lib/urlparser"

	"github.com/google/uuid"
)

type CatalogService interface {
	ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (models.Product, error)
	CreateProduct(ctx context.Context, input models.ProductInput) (models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input models.ProductInput) (models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	log     *slog.Logger
	service CatalogService
}

func New(log *slog.Logger, service CatalogService) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// GET /products?category=&min_price=&max_price=
// GET /admin/products
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.ListProducts"
	log := h.log.With("op", op)

	filter, err := urlparser.ParseProductFilter(r.URL.Query())
	if err != nil {
		handlers.WriteError(w, log, "Bad product filter", err)
		return
	}

	products, err := h.service.ListProducts(r.Context(), models.ProductFilter(filter))
	if err != nil {
		handlers.WriteError(w, log, "Failed to list products", err)
		return
	}

	handlers.WriteJSON(w, log, http.StatusOK, products)
}

// GET /products/{productId}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request, sproductId string) {
	const op = "handlers.catalog.GetProduct"
	log := h.log.With("op", op)

	productId, err := urlparser.ParseID("productId", sproductId)
	if err != nil {
		handlers.WriteError(w, log, "Bad product id", err)
		return
	}

	product, err := h.service.GetProduct(r.Context(), productId)
	if err != nil {
		handlers.WriteError(w, log, "Failed to get product", err)
		return
	}

	handlers.WriteJSON(w, log, http.StatusOK, product)
}

// POST /admin/products
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.CreateProduct"
	log := h.log.With("op", op)

	var input models.ProductInput
	if err := handlers.DecodeJSON(r, &input); err != nil {
		handlers.WriteError(w, log, "Bad product", err)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), input)
	if err != nil {
		handlers.WriteError(w, log, "Failed to create product", err)
		return
	}

	handlers.WriteJSON(w, log, http.StatusCreated, product)
}

// PUT /admin/products/{productId}
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request, sproductId string) {
	const op = "handlers.catalog.UpdateProduct"
	log := h.log.With("op", op)

	productId, err := urlparser.ParseID("productId", sproductId)
	if err != nil {
		handlers.WriteError(w, log, "Bad product id", err)
		return
	}

	var input models.ProductInput
	if err := handlers.DecodeJSON(r, &input); err != nil {
		handlers.WriteError(w, log, "Bad product", err)
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), productId, input)
	if err != nil {
		handlers.WriteError(w, log, "Failed to update product", err)
		return
	}

	handlers.WriteJSON(w, log, http.StatusOK, product)
}

// DELETE /admin/products/{productId}
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request, sproductId string) {
	const op = "handlers.catalog.DeleteProduct"
	log := h.log.With("op", op)

	productId, err := urlparser.ParseID("productId", sproductId)
	if err != nil {
		handlers.WriteError(w, log, "Bad product id", err)
		return
	}

	if err := h.service.DeleteProduct(r.Context(), productId); err != nil {
		handlers.WriteError(w, log, "Failed to delete product", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
