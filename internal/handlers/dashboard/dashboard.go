package dashboardhandler

import (
	"context"
	"log/slog"
	"net/http"

	"storefront/internal/handlers"
	"storefront/internal/models"
)

type DashboardService interface {
	Stats(ctx context.Context) (models.Stats, error)
}

type Handler struct {
	log     *slog.Logger
	service DashboardService
}

func New(log *slog.Logger, service DashboardService) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// GET /admin/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.Stats"
	log := h.log.With("op", op)

	stats, err := h.service.Stats(r.Context())
	if err != nil {
		handlers.WriteError(w, log, "Failed to collect stats", err)
		return
	}

	handlers.WriteJSON(w, log, http.StatusOK, stats)
}
