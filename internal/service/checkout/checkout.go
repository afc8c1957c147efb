package checkoutservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/payment"
	serviceerrors "storefront/internal/service"
	"storefront/pkg/lib/logger/sl"

	"github.com/google/uuid"
)

type OrderStorage interface {
	ViewCart(ctx context.Context, userId uuid.UUID) (models.Cart, error)
	CreateOrder(ctx context.Context, order models.Order) (models.Order, error)
}

type PaymentGateway interface {
	Authorize(ctx context.Context, charge payment.Charge) (payment.Authorization, error)
	Void(ctx context.Context, authorizationId string) error
}

type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event models.OrderPlacedEvent) error
}

type CheckoutService struct {
	log       *slog.Logger
	storage   OrderStorage
	payments  PaymentGateway
	publisher EventPublisher
	now       func() time.Time
}

// New builds the service. publisher may be nil, then no events are sent.
func New(log *slog.Logger, storage OrderStorage, payments PaymentGateway, publisher EventPublisher) *CheckoutService {
	return &CheckoutService{
		log:       log,
		storage:   storage,
		payments:  payments,
		publisher: publisher,
		now:       time.Now,
	}
}

// Checkout turns the user's cart into a pending order. The card is
// authorized before anything is written; if the order cannot be stored the
// authorization is voided.
func (c *CheckoutService) Checkout(ctx context.Context, userId uuid.UUID, req models.CheckoutRequest) (models.Order, error) {
	const op = "service.checkout.Checkout"
	log := c.log.With("op", op, slog.String("user_id", userId.String()))

	if err := serviceerrors.ContextErr(ctx); err != nil {
		log.Warn("context is over", sl.Err(err))
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	address, err := normalizeAddress(req.ShippingAddress)
	if err != nil {
		log.Warn("bad shipping address", sl.Err(err))
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	cardNumber := strings.TrimSpace(req.CardNumber)
	if cardNumber == "" {
		err := fmt.Errorf("%w: card number is required", serviceerrors.ErrInvalidArgument)
		log.Warn("missing card", sl.Err(err))
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	cart, err := c.storage.ViewCart(ctx, userId)
	if err != nil {
		err = serviceerrors.Translate(err)
		serviceerrors.Log(log, "Failed to load cart", err)
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	if len(cart.Items) == 0 {
		log.Warn("nothing to check out", sl.Err(serviceerrors.ErrEmptyCart))
		return models.Order{}, fmt.Errorf("%s: %w", op, serviceerrors.ErrEmptyCart)
	}

	order := newOrder(userId, cart, address, c.now().UTC())
	log = log.With(slog.String("order_id", order.Id.String()))

	auth, err := c.payments.Authorize(ctx, payment.Charge{
		Amount:     order.Total,
		CardNumber: cardNumber,
		Reference:  order.Id.String(),
	})
	if err != nil {
		err = translatePayment(err)
		serviceerrors.Log(log, "Failed to authorize payment", err)
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	created, err := c.storage.CreateOrder(ctx, order)
	if err != nil {
		err = serviceerrors.Translate(err)
		serviceerrors.Log(log, "Failed to create order", err)

		if voidErr := c.payments.Void(context.WithoutCancel(ctx), auth.Id); voidErr != nil {
			log.Error("Failed to void authorization", slog.String("authorization_id", auth.Id), sl.Err(voidErr))
		}
		return models.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("order placed", slog.String("total", created.Total.StringFixed(2)))
	c.publishPlaced(context.WithoutCancel(ctx), log, created)

	return created, nil
}

func (c *CheckoutService) publishPlaced(ctx context.Context, log *slog.Logger, order models.Order) {
	if c.publisher == nil {
		return
	}

	event := models.OrderPlacedEvent{
		OrderId:  order.Id,
		UserId:   order.UserId,
		Total:    order.Total,
		Items:    order.Items,
		PlacedAt: order.CreatedAt,
	}
	if err := c.publisher.PublishOrderPlaced(ctx, event); err != nil {
		log.Error("Failed to publish order placed event", sl.Err(err))
	}
}

func newOrder(userId uuid.UUID, cart models.Cart, address models.ShippingAddress, now time.Time) models.Order {
	order := models.Order{
		Id:              uuid.New(),
		UserId:          userId,
		Status:          models.StatusPending,
		Total:           models.CartTotal(cart.Items),
		ShippingAddress: address,
		Items:           make([]models.OrderItem, 0, len(cart.Items)),
		CreatedAt:       now,
	}

	for _, item := range cart.Items {
		order.Items = append(order.Items, models.OrderItem{
			Id:          uuid.New(),
			OrderId:     order.Id,
			ProductId:   item.ProductId,
			Quantity:    item.Quantity,
			Size:        item.Size,
			Color:       item.Color,
			JerseyName:  item.JerseyName,
			ChestNumber: item.ChestNumber,
			PriceAtTime: item.Price,
			Product:     &models.ProductSummary{Name: item.ProductName},
		})
	}

	return order
}

func normalizeAddress(a models.ShippingAddress) (models.ShippingAddress, error) {
	a = models.ShippingAddress{
		FullName:     strings.TrimSpace(a.FullName),
		AddressLine1: strings.TrimSpace(a.AddressLine1),
		AddressLine2: strings.TrimSpace(a.AddressLine2),
		City:         strings.TrimSpace(a.City),
		State:        strings.TrimSpace(a.State),
		PostalCode:   strings.TrimSpace(a.PostalCode),
		Country:      strings.TrimSpace(a.Country),
		Phone:        strings.TrimSpace(a.Phone),
	}

	required := []struct{ name, value string }{
		{"full_name", a.FullName},
		{"address_line1", a.AddressLine1},
		{"city", a.City},
		{"state", a.State},
		{"postal_code", a.PostalCode},
		{"country", a.Country},
		{"phone", a.Phone},
	}
	for _, field := range required {
		if field.value == "" {
			return models.ShippingAddress{}, fmt.Errorf("%w: %s is required", serviceerrors.ErrInvalidArgument, field.name)
		}
	}

	return a, nil
}

func translatePayment(err error) error {
	switch {
	case errors.Is(err, payment.ErrDeclined):
		return serviceerrors.ErrPaymentDeclined
	case errors.Is(err, payment.ErrInvalidCard):
		return fmt.Errorf("%w: %w", serviceerrors.ErrInvalidArgument, err)
	default:
		return serviceerrors.Translate(err)
	}
}
