package psql

import (
	"context"
	"fmt"

	databaseerrors "storefront/internal/database"
	"storefront/internal/models"
	"storefront/pkg/lib/logger/sl"

	"github.com/google/uuid"
)

// AddToCart inserts all items in one transaction. An unknown user or
// product fails the whole batch with ErrNotFound.
func (s *Storage) AddToCart(ctx context.Context, items []models.CartItem) ([]models.CartItem, error) {
	const op = "database.psql.AddToCart"
	log := s.log.With("op", op)

	if err := contextOver(ctx); err != nil {
		log.Error("Context is over", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		log.Error("Failed to begin transaction", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	for _, item := range items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO cart_items (id, user_id, product_id, quantity, size, color, jersey_name, chest_number, added_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
		`,
			item.Id, item.UserId, item.ProductId, item.Quantity, item.Size, item.Color,
			item.JerseyName, item.ChestNumber, item.AddedAt,
		); err != nil {
			if hasCode(err, codeForeignKeyViolation) {
				log.Warn("User or product doesn't exist", sl.Err(databaseerrors.ErrNotFound))
				return nil, fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
			}

			log.Error("Failed to insert cart item", sl.Err(err))
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

func (s *Storage) RemoveFromCart(ctx context.Context, userId uuid.UUID, itemId uuid.UUID) error {
	const op = "database.psql.RemoveFromCart"
	log := s.log.With("op", op)

	if err := contextOver(ctx); err != nil {
		log.Error("Context is over", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE id=$1 AND user_id=$2;
	`, itemId, userId)
	if err != nil {
		log.Error("Failed to delete cart item", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		log.Error("Failed to get affected rows", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		log.Warn("Cart item doesn't exist", sl.Err(databaseerrors.ErrNotFound))
		return fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
	}

	return nil
}

func (s *Storage) ViewCart(ctx context.Context, userId uuid.UUID) (models.Cart, error) {
	const op = "database.psql.ViewCart"
	log := s.log.With("op", op)

	if err := contextOver(ctx); err != nil {
		log.Error("Context is over", sl.Err(err))
		return models.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	items := make([]models.CartItem, 0, 10)
	if err := s.db.SelectContext(ctx, &items, `
		SELECT ci.id, ci.user_id, ci.product_id, ci.quantity, ci.size, ci.color,
		       ci.jersey_name, ci.chest_number, ci.added_at, p.name AS product_name, p.price
		FROM cart_items AS ci
		JOIN products AS p
		ON ci.product_id = p.id
		WHERE ci.user_id=$1
		ORDER BY ci.added_at, ci.id;
	`, userId); err != nil {
		log.Error("Failed to select cart items", sl.Err(err))
		return models.Cart{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.Cart{
		UserId: userId,
		Items:  items,
	}, nil
}

func (s *Storage) ClearCart(ctx context.Context, userId uuid.UUID) error {
	const op = "database.psql.ClearCart"
	log := s.log.With("op", op)

	if err := contextOver(ctx); err != nil {
		log.Error("Context is over", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE user_id=$1;
	`, userId); err != nil {
		log.Error("Failed to clear cart", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
