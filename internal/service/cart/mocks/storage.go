package mocks

import (
	"context"

	"storefront/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type Storage struct {
	mock.Mock
}

func (m *Storage) GetProduct(ctx context.Context, id uuid.UUID) (models.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Product), args.Error(1)
}

func (m *Storage) AddToCart(ctx context.Context, items []models.CartItem) ([]models.CartItem, error) {
	args := m.Called(ctx, items)
	return args.Get(0).([]models.CartItem), args.Error(1)
}

func (m *Storage) RemoveFromCart(ctx context.Context, userId uuid.UUID, itemId uuid.UUID) error {
	args := m.Called(ctx, userId, itemId)
	return args.Error(0)
}

func (m *Storage) ViewCart(ctx context.Context, userId uuid.UUID) (models.Cart, error) {
	args := m.Called(ctx, userId)
	return args.Get(0).(models.Cart), args.Error(1)
}

func (m *Storage) ClearCart(ctx context.Context, userId uuid.UUID) error {
	args := m.Called(ctx, userId)
	return args.Error(0)
}
