package mocks

import (
	"context"

	"storefront/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type Service struct {
	mock.Mock
}

func (m *Service) AddToCart(ctx context.Context, userId uuid.UUID, req models.AddToCartRequest) (models.CartItem, error) {
	args := m.Called(ctx, userId, req)
	return args.Get(0).(models.CartItem), args.Error(1)
}

func (m *Service) AddBulkToCart(ctx context.Context, userId uuid.UUID, req models.BulkAddRequest) ([]models.CartItem, error) {
	args := m.Called(ctx, userId, req)
	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *Service) RemoveFromCart(ctx context.Context, userId uuid.UUID, itemId uuid.UUID) error {
	args := m.Called(ctx, userId, itemId)
	return args.Error(0)
}

func (m *Service) ViewCart(ctx context.Context, userId uuid.UUID) (models.Cart, error) {
	args := m.Called(ctx, userId)
	return args.Get(0).(models.Cart), args.Error(1)
}

func (m *Service) ClearCart(ctx context.Context, userId uuid.UUID) error {
	args := m.Called(ctx, userId)
	return args.Error(0)
}
