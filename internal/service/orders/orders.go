package orderservice

import (
	"context"
	"fmt"
	"log/slog"

	"storefront/internal/models"
	serviceerrors "storefront/internal/service"
	"storefront/pkg/lib/logger/sl"

	"github.com/google/uuid"
)

type OrderStorage interface {
	ListOrdersByUser(ctx context.Context, userId uuid.UUID) ([]models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error
}

type OrderService struct {
	log     *slog.Logger
	storage OrderStorage
}

func New(log *slog.Logger, storage OrderStorage) *OrderService {
	return &OrderService{
		log:     log,
		storage: storage,
	}
}

// ListUserOrders returns the user's order history, newest first.
func (o *OrderService) ListUserOrders(ctx context.Context, userId uuid.UUID) ([]models.Order, error) {
	const op = "service.orders.ListUserOrders"
	log := o.log.With("op", op)

	if err := serviceerrors.ContextErr(ctx); err != nil {
		log.Warn("context is over", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	orders, err := o.storage.ListOrdersByUser(ctx, userId)
	if err != nil {
		err = serviceerrors.Translate(err)
		serviceerrors.Log(log, "Failed to list user orders", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return orders, nil
}

func (o *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	const op = "service.orders.ListOrders"
	log := o.log.With("op", op)

	if err := serviceerrors.ContextErr(ctx); err != nil {
		log.Warn("context is over", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	orders, err := o.storage.ListOrders(ctx)
	if err != nil {
		err = serviceerrors.Translate(err)
		serviceerrors.Log(log, "Failed to list orders", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return orders, nil
}

func (o *OrderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error {
	const op = "service.orders.UpdateOrderStatus"
	log := o.log.With("op", op)

	if err := serviceerrors.ContextErr(ctx); err != nil {
		log.Warn("context is over", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if !models.IsOrderStatus(status) {
		err := fmt.Errorf("%w: unknown status %q", serviceerrors.ErrInvalidArgument, status)
		log.Warn("bad status", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := o.storage.UpdateOrderStatus(ctx, id, status); err != nil {
		err = serviceerrors.Translate(err)
		serviceerrors.Log(log, "Failed to update order status", err)
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("order status updated", slog.String("order_id", id.String()), slog.String("status", status))
	return nil
}
