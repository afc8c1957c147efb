package userservice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"storefront/internal/models"
	serviceerrors "storefront/internal/service"
	"storefront/pkg/lib/logger/sl"

	"github.com/google/uuid"
)

type UserStorage interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUserRole(ctx context.Context, id uuid.UUID, role string) error
}

type UserService struct {
	log     *slog.Logger
	storage UserStorage
}

func New(log *slog.Logger, storage UserStorage) *UserService {
	return &UserService{
		log:     log,
		storage: storage,
	}
}

// Register creates a customer account. New accounts never get the admin
// role; that takes UpdateUserRole.
func (u *UserService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	const op = "service.users.Register"
	log := u.log.With("op", op)

	if err := serviceerrors.ContextErr(ctx); err != nil {
		log.Warn("context is over", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	fullName := strings.TrimSpace(req.FullName)
	if email == "" || fullName == "" {
		err := fmt.Errorf("%w: email and full name are required", serviceerrors.ErrInvalidArgument)
		log.Warn("incomplete registration", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Id:        uuid.New(),
		Email:     email,
		FullName:  fullName,
		AvatarURL: req.AvatarURL,
		Role:      models.RoleUser,
		CreatedAt: time.Now().UTC(),
	}

	created, err := u.storage.CreateUser(ctx, user)
	if err != nil {
		err = serviceerrors.Translate(err)
		serviceerrors.Log(log, "Failed to create user", err)
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.String("user_id", created.Id.String()))
	return created, nil
}

func (u *UserService) GetUser(ctx context.Context, id uuid.UUID) (models.User, error) {
	const op = "service.users.GetUser"
	log := u.log.With("op", op)

	if err := serviceerrors.ContextErr(ctx); err != nil {
		log.Warn("context is over", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	user, err := u.storage.GetUser(ctx, id)
	if err != nil {
		err = serviceerrors.Translate(err)
		serviceerrors.Log(log, "Failed to get user", err)
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (u *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	const op = "service.users.ListUsers"
	log := u.log.With("op", op)

	if err := serviceerrors.ContextErr(ctx); err != nil {
		log.Warn("context is over", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	users, err := u.storage.ListUsers(ctx)
	if err != nil {
		err = serviceerrors.Translate(err)
		serviceerrors.Log(log, "Failed to list users", err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return users, nil
}

func (u *UserService) UpdateUserRole(ctx context.Context, id uuid.UUID, role string) error {
	const op = "service.users.UpdateUserRole"
	log := u.log.With("op", op)

	if err := serviceerrors.ContextErr(ctx); err != nil {
		log.Warn("context is over", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if !models.IsRole(role) {
		err := fmt.Errorf("%w: unknown role %q", serviceerrors.ErrInvalidArgument, role)
		log.Warn("bad role", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := u.storage.UpdateUserRole(ctx, id, role); err != nil {
		err = serviceerrors.Translate(err)
		serviceerrors.Log(log, "Failed to update user role", err)
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("role updated", slog.String("user_id", id.String()), slog.String("role", role))
	return nil
}
