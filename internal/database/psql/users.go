package psql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	databaseerrors "storefront/internal/database"
	"storefront/internal/models"
	"storefront/pkg/lib/logger/sl"

	"github.com/google/uuid"
)

const userColumns = `id, email, full_name, avatar_url, role, created_at`

func (s *Storage) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const op = "database.psql.CreateUser"
	log := s.log.With("op", op)

	if err := contextOver(ctx); err != nil {
		log.Error("Context is over", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, full_name, avatar_url, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`, user.Id, user.Email, user.FullName, user.AvatarURL, user.Role, user.CreatedAt); err != nil {
		if hasCode(err, codeUniqueViolation) {
			log.Warn("User already exists", sl.Err(databaseerrors.ErrAlreadyExists))
			return models.User{}, fmt.Errorf("%s: %w", op, databaseerrors.ErrAlreadyExists)
		}

		log.Error("Failed to insert user", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Storage) GetUser(ctx context.Context, id uuid.UUID) (models.User, error) {
	const op = "database.psql.GetUser"
	log := s.log.With("op", op)

	if err := contextOver(ctx); err != nil {
		log.Error("Context is over", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	var user models.User
	err := s.db.GetContext(ctx, &user, `
		SELECT `+userColumns+` FROM users
		WHERE id=$1;
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("User doesn't exist", sl.Err(databaseerrors.ErrNotFound))
			return models.User{}, fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
		}

		log.Error("Failed to select user", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]models.User, error) {
	const op = "database.psql.ListUsers"
	log := s.log.With("op", op)

	if err := contextOver(ctx); err != nil {
		log.Error("Context is over", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	users := make([]models.User, 0)
	if err := s.db.SelectContext(ctx, &users, `
		SELECT `+userColumns+` FROM users
		ORDER BY created_at DESC;
	`); err != nil {
		log.Error("Failed to select users", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return users, nil
}

func (s *Storage) UpdateUserRole(ctx context.Context, id uuid.UUID, role string) error {
	const op = "database.psql.UpdateUserRole"
	log := s.log.With("op", op)

	if err := contextOver(ctx); err != nil {
		log.Error("Context is over", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET role=$1
		WHERE id=$2;
	`, role, id)
	if err != nil {
		log.Error("Failed to update user role", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		log.Error("Failed to get affected rows", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		log.Warn("User doesn't exist", sl.Err(databaseerrors.ErrNotFound))
		return fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
	}

	return nil
}
