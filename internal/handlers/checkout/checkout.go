package checkouthandler

import (
	"context"
	"log/slog"
	"net/http"

	"storefront/internal/handlers"
	"storefront/internal/models"

	"github.com/google/uuid"
)

type CheckoutService interface {
	Checkout(ctx context.Context, userId uuid.UUID, req models.CheckoutRequest) (models.Order, error)
}

type Handler struct {
	log     *slog.Logger
	service CheckoutService
}

func New(log *slog.Logger, service CheckoutService) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// POST /me/checkout
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.checkout.Checkout"
	log := h.log.With("op", op)

	user, ok := handlers.CurrentUser(w, r)
	if !ok {
		return
	}

	var req models.CheckoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.WriteError(w, log, "Bad checkout request", err)
		return
	}

	order, err := h.service.Checkout(r.Context(), user.Id, req)
	if err != nil {
		handlers.WriteError(w, log, "Checkout failed", err)
		return
	}

	handlers.WriteJSON(w, log, http.StatusCreated, order)
}
