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

func (m *Storage) ListOrdersByUser(ctx context.Context, userId uuid.UUID) ([]models.Order, error) {
	args := m.Called(ctx, userId)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *Storage) ListOrders(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *Storage) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
