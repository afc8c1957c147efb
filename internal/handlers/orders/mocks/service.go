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

func (m *Service) ListUserOrders(ctx context.Context, userId uuid.UUID) ([]models.Order, error) {
	args := m.Called(ctx, userId)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *Service) ListOrders(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *Service) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
