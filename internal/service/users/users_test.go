package userservice_test

import (
	"context"
	"testing"

	databaseerrors "storefront/internal/database"
	"storefront/internal/models"
	serviceerrors "storefront/internal/service"
	userservice "storefront/internal/service/users"
	"storefront/internal/service/users/mocks"
	"storefront/pkg/lib/logger/slogdiscard"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(storage *mocks.Storage) *userservice.UserService {
	return userservice.New(slogdiscard.NewDiscardLogger(), storage)
}

func TestRegister(t *testing.T) {
	t.Run("Normalizes email and forces user role", func(t *testing.T) {
		storage := new(mocks.Storage)
		storage.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
			return u.Email == "ann@example.com" && u.Role == models.RoleUser && u.Id != uuid.Nil && !u.CreatedAt.IsZero()
		})).Return(models.User{Email: "ann@example.com", Role: models.RoleUser}, nil)

		user, err := newTestService(storage).Register(context.Background(), models.RegisterRequest{
			Email:    " Ann@Example.com ",
			FullName: "Ann Lee",
		})
		require.NoError(t, err)
		assert.Equal(t, models.RoleUser, user.Role)
		storage.AssertExpectations(t)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		storage := new(mocks.Storage)
		storage.On("CreateUser", mock.Anything, mock.Anything).Return(models.User{}, databaseerrors.ErrAlreadyExists)

		_, err := newTestService(storage).Register(context.Background(), models.RegisterRequest{
			Email:    "ann@example.com",
			FullName: "Ann Lee",
		})
		assert.ErrorIs(t, err, serviceerrors.ErrAlreadyExists)
		storage.AssertExpectations(t)
	})

	t.Run("Blank name", func(t *testing.T) {
		storage := new(mocks.Storage)

		_, err := newTestService(storage).Register(context.Background(), models.RegisterRequest{
			Email:    "ann@example.com",
			FullName: "  ",
		})
		assert.ErrorIs(t, err, serviceerrors.ErrInvalidArgument)
		storage.AssertExpectations(t)
	})
}

func TestGetUser(t *testing.T) {
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		storage := new(mocks.Storage)
		storage.On("GetUser", mock.Anything, id).Return(models.User{Id: id}, nil)

		user, err := newTestService(storage).GetUser(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, user.Id)
		storage.AssertExpectations(t)
	})

	t.Run("Not found", func(t *testing.T) {
		storage := new(mocks.Storage)
		storage.On("GetUser", mock.Anything, id).Return(models.User{}, databaseerrors.ErrNotFound)

		_, err := newTestService(storage).GetUser(context.Background(), id)
		assert.ErrorIs(t, err, serviceerrors.ErrNotFound)
		storage.AssertExpectations(t)
	})

	t.Run("Context canceled", func(t *testing.T) {
		storage := new(mocks.Storage)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newTestService(storage).GetUser(ctx, id)
		assert.ErrorIs(t, err, serviceerrors.ErrContextCanceled)
		storage.AssertExpectations(t)
	})
}

func TestListUsers(t *testing.T) {
	storage := new(mocks.Storage)
	storage.On("ListUsers", mock.Anything).Return([]models.User{{Email: "a@b.c"}, {Email: "d@e.f"}}, nil)

	users, err := newTestService(storage).ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
	storage.AssertExpectations(t)
}

func TestUpdateUserRole(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name    string
		role    string
		setup   func(s *mocks.Storage)
		wantErr error
	}{
		{
			name: "Promote to admin",
			role: models.RoleAdmin,
			setup: func(s *mocks.Storage) {
				s.On("UpdateUserRole", mock.Anything, id, models.RoleAdmin).Return(nil)
			},
		},
		{
			name:    "Unknown role",
			role:    "owner",
			setup:   func(s *mocks.Storage) {},
			wantErr: serviceerrors.ErrInvalidArgument,
		},
		{
			name: "Unknown user",
			role: models.RoleUser,
			setup: func(s *mocks.Storage) {
				s.On("UpdateUserRole", mock.Anything, id, models.RoleUser).Return(databaseerrors.ErrNotFound)
			},
			wantErr: serviceerrors.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := new(mocks.Storage)
			tt.setup(storage)

			err := newTestService(storage).UpdateUserRole(context.Background(), id, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			storage.AssertExpectations(t)
		})
	}
}
