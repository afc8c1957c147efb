package mocks

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type Storage struct {
	mock.Mock
}

func (m *Storage) ViewCart(ctx context.Context, userId uuid.UUID) (models.Cart, error) {
	args := m.Called(ctx, userId)
	return args.Get(0).(models.Cart), args.Error(1)
}

func (m *Storage) CreateOrder(ctx context.Context, order models.Order) (models.Order, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(models.Order), args.Error(1)
}

type PaymentGateway struct {
	mock.Mock
}

func (m *PaymentGateway) Authorize(ctx context.Context, charge payment.Charge) (payment.Authorization, error) {
	args := m.Called(ctx, charge)
	return args.Get(0).(payment.Authorization), args.Error(1)
}

func (m *PaymentGateway) Void(ctx context.Context, authorizationId string) error {
	args := m.Called(ctx, authorizationId)
	return args.Error(0)
}

type Publisher struct {
	mock.Mock
}

func (m *Publisher) PublishOrderPlaced(ctx context.Context, event models.OrderPlacedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
