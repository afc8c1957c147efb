package psql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	databaseerrors "storefront/internal/database"
	"storefront/internal/models"
	"storefront/pkg/lib/logger/sl"

	"github.com/google/uuid"
)

const productColumns = `id, name, description, price, category, images, sizes, colors, stock, created_at`

func (s *Storage) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	const op = "database.psql.ListProducts"
	log := s.log.With("op", op)

	if err := contextOver(ctx); err != nil {
		log.Error("Context is over", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var (
		conds []string
		args  []any
	)
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		conds = append(conds, fmt.Sprintf("price>=$%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		conds = append(conds, fmt.Sprintf("price<=$%d", len(args)))
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC;`

	products := make([]models.Product, 0)
	if err := s.db.SelectContext(ctx, &products, query, args...); err != nil {
		log.Error("Failed to select products", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return products, nil
}

func (s *Storage) GetProduct(ctx context.Context, id uuid.UUID) (models.Product, error) {
	const op = "database.psql.GetProduct"
	log := s.log.With("op", op)

	if err := contextOver(ctx); err != nil {
		log.Error("Context is over", sl.Err(err))
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	var product models.Product
	err := s.db.GetContext(ctx, &product, `
		SELECT `+productColumns+` FROM products
		WHERE id=$1;
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("Product doesn't exist", sl.Err(databaseerrors.ErrNotFound))
			return models.Product{}, fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
		}

		log.Error("Failed to select product", sl.Err(err))
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	return product, nil
}

func (s *Storage) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	const op = "database.psql.CreateProduct"
	log := s.log.With("op", op)

	if err := contextOver(ctx); err != nil {
		log.Error("Context is over", sl.Err(err))
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO products (id, name, description, price, category, images, sizes, colors, stock, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`,
		product.Id, product.Name, product.Description, product.Price, product.Category,
		product.Images, product.Sizes, product.Colors, product.Stock, product.CreatedAt,
	); err != nil {
		if hasCode(err, codeUniqueViolation) {
			log.Warn("Product already exists", sl.Err(err))
			return models.Product{}, fmt.Errorf("%s: %w", op, databaseerrors.ErrAlreadyExists)
		}

		log.Error("Failed to insert product", sl.Err(err))
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	return product, nil
}

func (s *Storage) UpdateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	const op = "database.psql.UpdateProduct"
	log := s.log.With("op", op)

	if err := contextOver(ctx); err != nil {
		log.Error("Context is over", sl.Err(err))
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	err := s.db.QueryRowxContext(ctx, `
		UPDATE products
		SET name=$2, description=$3, price=$4, category=$5, images=$6, sizes=$7, colors=$8, stock=$9
		WHERE id=$1
		RETURNING created_at;
	`,
		product.Id, product.Name, product.Description, product.Price, product.Category,
		product.Images, product.Sizes, product.Colors, product.Stock,
	).Scan(&product.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn("Product doesn't exist", sl.Err(databaseerrors.ErrNotFound))
			return models.Product{}, fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
		}

		log.Error("Failed to update product", sl.Err(err))
		return models.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	return product, nil
}

func (s *Storage) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	const op = "database.psql.DeleteProduct"
	log := s.log.With("op", op)

	if err := contextOver(ctx); err != nil {
		log.Error("Context is over", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM products
		WHERE id=$1;
	`, id)
	if err != nil {
		if hasCode(err, codeForeignKeyViolation) {
			log.Warn("Product is referenced by orders", sl.Err(err))
			return fmt.Errorf("%s: %w", op, databaseerrors.ErrReferenced)
		}

		log.Error("Failed to delete product", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		log.Error("Failed to get affected rows", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		log.Warn("Product doesn't exist", sl.Err(databaseerrors.ErrNotFound))
		return fmt.Errorf("%s: %w", op, databaseerrors.ErrNotFound)
	}

	return nil
}
