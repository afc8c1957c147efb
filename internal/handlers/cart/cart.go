package carthandler

import (
	"context"
	"log/slog"
	"net/http"

	"storefront/internal/handlers"
	"storefront/internal/models"
	"storefront/pkg/lib/urlparser"

	"github.com/google/uuid"
)

type CartItemService interface {
	AddToCart(ctx context.Context, userId uuid.UUID, req models.AddToCartRequest) (models.CartItem, error)
	AddBulkToCart(ctx context.Context, userId uuid.UUID, req models.BulkAddRequest) ([]models.CartItem, error)
	RemoveFromCart(ctx context.Context, userId uuid.UUID, itemId uuid.UUID) error
	ViewCart(ctx context.Context, userId uuid.UUID) (models.Cart, error)
	ClearCart(ctx context.Context, userId uuid.UUID) error
}

type Handler struct {
	log     *slog.Logger
	service CartItemService
}

func New(log *slog.Logger, service CartItemService) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// GET /me/cart
func (h *Handler) ViewCart(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.ViewCart"
	log := h.log.With("op", op)

	user, ok := handlers.CurrentUser(w, r)
	if !ok {
		return
	}

	cart, err := h.service.ViewCart(r.Context(), user.Id)
	if err != nil {
		handlers.WriteError(w, log, "Failed to view cart", err)
		return
	}

	handlers.WriteJSON(w, log, http.StatusOK, cart)
}

// POST /me/cart/items
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.AddToCart"
	log := h.log.With("op", op)

	user, ok := handlers.CurrentUser(w, r)
	if !ok {
		return
	}

	var req models.AddToCartRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.WriteError(w, log, "Bad add to cart request", err)
		return
	}

	item, err := h.service.AddToCart(r.Context(), user.Id, req)
	if err != nil {
		handlers.WriteError(w, log, "Failed to add item to cart", err)
		return
	}

	handlers.WriteJSON(w, log, http.StatusCreated, item)
}

// POST /me/cart/items/bulk
func (h *Handler) AddBulkToCart(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.AddBulkToCart"
	log := h.log.With("op", op)

	user, ok := handlers.CurrentUser(w, r)
	if !ok {
		return
	}

	var req models.BulkAddRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.WriteError(w, log, "Bad bulk order request", err)
		return
	}

	items, err := h.service.AddBulkToCart(r.Context(), user.Id, req)
	if err != nil {
		handlers.WriteError(w, log, "Failed to add bulk order to cart", err)
		return
	}

	handlers.WriteJSON(w, log, http.StatusCreated, items)
}

// DELETE /me/cart/items/{itemId}
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request, sitemId string) {
	const op = "handlers.cart.RemoveFromCart"
	log := h.log.With("op", op)

	user, ok := handlers.CurrentUser(w, r)
	if !ok {
		return
	}

	itemId, err := urlparser.ParseID("itemId", sitemId)
	if err != nil {
		handlers.WriteError(w, log, "Bad item id", err)
		return
	}

	if err := h.service.RemoveFromCart(r.Context(), user.Id, itemId); err != nil {
		handlers.WriteError(w, log, "Failed to remove item from cart", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DELETE /me/cart
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.ClearCart"
	log := h.log.With("op", op)

	user, ok := handlers.CurrentUser(w, r)
	if !ok {
		return
	}

	if err := h.service.ClearCart(r.Context(), user.Id); err != nil {
		handlers.WriteError(w, log, "Failed to clear cart", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
