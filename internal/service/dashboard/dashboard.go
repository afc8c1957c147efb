package dashboardservice

import (
	"context"
	"fmt"
	"log/slog"

	"storefront/internal/models"
	serviceerrors "storefront/internal/service"
	"storefront/pkg/lib/logger/sl"
)

type StatsStorage interface {
	Stats(ctx context.Context) (models.Stats, error)
}

type DashboardService struct {
	log     *slog.Logger
	storage StatsStorage
}

func New(log *slog.Logger, storage StatsStorage) *DashboardService {
	return &DashboardService{
		log:     log,
		storage: storage,
	}
}

func (d *DashboardService) Stats(ctx context.Context) (models.Stats, error) {
	const op = "service.dashboard.Stats"
	log := d.log.With("op", op)

	if err := serviceerrors.ContextErr(ctx); err != nil {
		log.Warn("context is over", sl.Err(err))
		return models.Stats{}, fmt.Errorf("%s: %w", op, err)
	}

	stats, err := d.storage.Stats(ctx)
	if err != nil {
		err = serviceerrors.Translate(err)
		serviceerrors.Log(log, "Failed to collect stats", err)
		return models.Stats{}, fmt.Errorf("%s: %w", op, err)
	}

	return stats, nil
}
