// Package handlers holds what every HTTP handler shares: request decoding,
// the error to status mapping and access to the signed-in user.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"storefront/internal/middleware/auth"
	"storefront/internal/models"
	serviceerrors "storefront/internal/service"
	"storefront/pkg/lib/httputil"
	"storefront/pkg/lib/logger/sl"
	"storefront/pkg/lib/urlparser"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var validate = validator.New()

var ErrBadRequest = errors.New("bad request")

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{serviceerrors.ErrContextCanceled, httputil.StatusClientClosedRequest, "CONTEXT_CANCELED"},
	{serviceerrors.ErrDeadlineExceeded, http.StatusGatewayTimeout, "DEADLINE_EXCEEDED"},
	{serviceerrors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{serviceerrors.ErrAlreadyExists, http.StatusConflict, "ALREADY_EXISTS"},
	{serviceerrors.ErrInsufficientStock, http.StatusConflict, "INSUFFICIENT_STOCK"},
	{serviceerrors.ErrConflict, http.StatusConflict, "CONFLICT"},
	{serviceerrors.ErrEmptyCart, http.StatusBadRequest, "EMPTY_CART"},
	{serviceerrors.ErrInvalidArgument, http.StatusBadRequest, "INVALID_ARGUMENT"},
	{ErrBadRequest, http.StatusBadRequest, "BAD_REQUEST"},
	{urlparser.ErrInvalidParam, http.StatusBadRequest, "INVALID_PARAM"},
	{serviceerrors.ErrPaymentDeclined, http.StatusPaymentRequired, "PAYMENT_DECLINED"},
}

// Status maps an error onto the HTTP status, the error code and the
// message a client gets to see. Unknown errors stay opaque.
func Status(err error) (int, string, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.code, publicMessage(err, m.target)
		}
	}
	return http.StatusInternalServerError, "INTERNAL", "internal error"
}

// publicMessage drops the op prefixes that wrap target.
func publicMessage(err, target error) string {
	msg := err.Error()
	if i := strings.Index(msg, target.Error()); i >= 0 {
		return msg[i:]
	}
	return target.Error()
}

// WriteError logs err and answers with the mapped status.
func WriteError(w http.ResponseWriter, log *slog.Logger, msg string, err error) {
	status, code, public := Status(err)
	if status == http.StatusInternalServerError {
		log.Error(msg, sl.Err(err))
	} else {
		log.Warn(msg, sl.Err(err))
	}
	httputil.ErrorResponse(w, status, code, public)
}

// WriteJSON encodes data. By the time encoding fails the status line is out,
// so the failure is only logged.
func WriteJSON(w http.ResponseWriter, log *slog.Logger, status int, data any) {
	if err := httputil.JSONResponse(w, status, data); err != nil {
		log.Error("Failed to respond", sl.Err(err))
	}
}

// DecodeJSON reads a JSON body into v and runs its validate tags.
func DecodeJSON(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: cannot read request body", ErrBadRequest)
	}
	defer r.Body.Close()

	if len(body) == 0 {
		return fmt.Errorf("%w: request body is empty", ErrBadRequest)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: cannot unmarshal request body: %s", ErrBadRequest, err.Error())
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s", serviceerrors.ErrInvalidArgument, err.Error())
	}

	return nil
}

// CurrentUser returns the authenticated caller or answers 401.
func CurrentUser(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		httputil.ErrorResponse(w, http.StatusUnauthorized, "UNAUTHORIZED", "sign in required")
		return models.User{}, false
	}
	return user, true
}
