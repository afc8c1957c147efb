package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"storefront/internal/models"
	serviceerrors "storefront/internal/service"
	"storefront/pkg/lib/httputil"
	"storefront/pkg/lib/logger/sl"

	"github.com/google/uuid"
)

// UserHeader carries the caller's user id.
const UserHeader = "X-User-ID"

type ctxKey struct{}

type UserLoader interface {
	GetUser(ctx context.Context, id uuid.UUID) (models.User, error)
}

type Middleware struct {
	log   *slog.Logger
	users UserLoader
}

func New(log *slog.Logger, users UserLoader) *Middleware {
	return &Middleware{
		log:   log,
		users: users,
	}
}

func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(ctxKey{}).(models.User)
	return user, ok
}

// Authenticate resolves the caller from the X-User-ID header and rejects
// the request when the header is missing or names no user.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const op = "middleware.auth.Authenticate"
		log := m.log.With("op", op)

		raw := strings.TrimSpace(r.Header.Get(UserHeader))
		if raw == "" {
			log.Debug("no user header")
			httputil.ErrorResponse(w, http.StatusUnauthorized, "UNAUTHORIZED", "sign in required")
			return
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			log.Warn("malformed user header", sl.Err(err))
			httputil.ErrorResponse(w, http.StatusUnauthorized, "UNAUTHORIZED", "sign in required")
			return
		}

		user, err := m.users.GetUser(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, serviceerrors.ErrNotFound):
				log.Warn("unknown user", slog.String("user_id", id.String()))
				httputil.ErrorResponse(w, http.StatusUnauthorized, "UNAUTHORIZED", "sign in required")
			case errors.Is(err, serviceerrors.ErrContextCanceled):
				httputil.ErrorResponse(w, httputil.StatusClientClosedRequest, "CONTEXT_CANCELED", "context canceled")
			case errors.Is(err, serviceerrors.ErrDeadlineExceeded):
				httputil.ErrorResponse(w, http.StatusGatewayTimeout, "DEADLINE_EXCEEDED", "deadline exceeded")
			default:
				log.Error("Failed to load user", sl.Err(err))
				httputil.ErrorResponse(w, http.StatusInternalServerError, "INTERNAL", "failed to load user")
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// RequireAdmin lets only admins through. It expects Authenticate to run
// first.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			httputil.ErrorResponse(w, http.StatusUnauthorized, "UNAUTHORIZED", "sign in required")
			return
		}
		if user.Role != models.RoleAdmin {
			m.log.Warn("admin route refused", slog.String("op", "middleware.auth.RequireAdmin"), slog.String("user_id", user.Id.String()))
			httputil.ErrorResponse(w, http.StatusForbidden, "FORBIDDEN", "admin role required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
