package orderhandler

import (
	"context"
	"log/slog"
	"net/http"

	"storefront/internal/handlers"
	"storefront/internal/models"
	"storefront/pkg/lib/urlparser"

	"github.com/google/uuid"
)

type OrderService interface {
	ListUserOrders(ctx context.Context, userId uuid.UUID) ([]models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error
}

type Handler struct {
	log     *slog.Logger
	service OrderService
}

func New(log *slog.Logger, service OrderService) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// GET /me/orders
func (h *Handler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.orders.ListMyOrders"
	log := h.log.With("op", op)

	user, ok := handlers.CurrentUser(w, r)
	if !ok {
		return
	}

	orders, err := h.service.ListUserOrders(r.Context(), user.Id)
	if err != nil {
		handlers.WriteError(w, log, "Failed to list orders", err)
		return
	}

	handlers.WriteJSON(w, log, http.StatusOK, orders)
}

// GET /admin/orders
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.orders.ListOrders"
	log := h.log.With("op", op)

	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		handlers.WriteError(w, log, "Failed to list orders", err)
		return
	}

	handlers.WriteJSON(w, log, http.StatusOK, orders)
}

// PATCH /admin/orders/{orderId}/status
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request, sorderId string) {
	const op = "handlers.orders.UpdateOrderStatus"
	log := h.log.With("op", op)

	orderId, err := urlparser.ParseID("orderId", sorderId)
	if err != nil {
		handlers.WriteError(w, log, "Bad order id", err)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.WriteError(w, log, "Bad status update", err)
		return
	}

	if err := h.service.UpdateOrderStatus(r.Context(), orderId, req.Status); err != nil {
		handlers.WriteError(w, log, "Failed to update order status", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
