package psql

import (
	"context"
	"fmt"

	"storefront/internal/models"
	"storefront/pkg/lib/logger/sl"
)

func (s *Storage) Stats(ctx context.Context) (models.Stats, error) {
	const op = "database.psql.Stats"
	log := s.log.With("op", op)

	if err := contextOver(ctx); err != nil {
		log.Error("Context is over", sl.Err(err))
		return models.Stats{}, fmt.Errorf("%s: %w", op, err)
	}

	var stats models.Stats
	if err := s.db.QueryRowxContext(ctx, `
		SELECT
			(SELECT COALESCE(SUM(total), 0) FROM orders),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM users);
	`).Scan(&stats.TotalSales, &stats.TotalOrders, &stats.TotalProducts, &stats.TotalUsers); err != nil {
		log.Error("Failed to collect stats", sl.Err(err))
		return models.Stats{}, fmt.Errorf("%s: %w", op, err)
	}

	return stats, nil
}
