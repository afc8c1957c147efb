package userhandler

import (
	"context"
	"log/slog"
	"net/http"

	"storefront/internal/handlers"
	"storefront/internal/models"
	"storefront/pkg/lib/urlparser"

	"github.com/google/uuid"
)

type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUserRole(ctx context.Context, id uuid.UUID, role string) error
}

type Handler struct {
	log     *slog.Logger
	service UserService
}

func New(log *slog.Logger, service UserService) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// POST /users
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.Register"
	log := h.log.With("op", op)

	var req models.RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.WriteError(w, log, "Bad registration", err)
		return
	}

	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		handlers.WriteError(w, log, "Failed to register user", err)
		return
	}

	handlers.WriteJSON(w, log, http.StatusCreated, user)
}

// GET /me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := handlers.CurrentUser(w, r)
	if !ok {
		return
	}

	handlers.WriteJSON(w, h.log.With("op", "handlers.users.Me"), http.StatusOK, user)
}

// GET /admin/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.ListUsers"
	log := h.log.With("op", op)

	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		handlers.WriteError(w, log, "Failed to list users", err)
		return
	}

	handlers.WriteJSON(w, log, http.StatusOK, users)
}

// PATCH /admin/users/{userId}/role
func (h *Handler) UpdateUserRole(w http.ResponseWriter, r *http.Request, suserId string) {
	const op = "handlers.users.UpdateUserRole"
	log := h.log.With("op", op)

	userId, err := urlparser.ParseID("userId", suserId)
	if err != nil {
		handlers.WriteError(w, log, "Bad user id", err)
		return
	}

	var req models.UpdateRoleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.WriteError(w, log, "Bad role update", err)
		return
	}

	if err := h.service.UpdateUserRole(r.Context(), userId, req.Role); err != nil {
		handlers.WriteError(w, log, "Failed to update user role", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
