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

func (m *Service) Checkout(ctx context.Context, userId uuid.UUID, req models.CheckoutRequest) (models.Order, error) {
	args := m.Called(ctx, userId, req)
	return args.Get(0).(models.Order), args.Error(1)
}
