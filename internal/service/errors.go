package serviceerrors

import (
	"context"
	"errors"
	"log/slog"

	databaseerrors "storefront/internal/database"
	"storefront/pkg/lib/logger/sl"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrContextCanceled   = errors.New("context canceled")
	ErrDeadlineExceeded  = errors.New("deadline exceeded")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrPaymentDeclined   = errors.New("payment declined")
	ErrConflict          = errors.New("conflict")
)

// ContextErr reports a finished context as ErrContextCanceled or
// ErrDeadlineExceeded, and nil while the context is still live.
func ContextErr(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return Translate(ctx.Err())
	default:
		return nil
	}
}

// Translate maps context and storage errors onto service errors. Errors it
// does not know are returned unchanged.
func Translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled):
		return ErrContextCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return ErrDeadlineExceeded
	case errors.Is(err, databaseerrors.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, databaseerrors.ErrAlreadyExists):
		return ErrAlreadyExists
	case errors.Is(err, databaseerrors.ErrInsufficientStock):
		return ErrInsufficientStock
	case errors.Is(err, databaseerrors.ErrReferenced):
		return ErrConflict
	default:
		return err
	}
}

// IsExpected reports whether err is a client-side condition that should be
// logged as a warning rather than an error.
func IsExpected(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrAlreadyExists, ErrContextCanceled, ErrDeadlineExceeded,
		ErrInvalidArgument, ErrEmptyCart, ErrInsufficientStock, ErrPaymentDeclined, ErrConflict,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Log writes err at warn level for expected conditions and at error level
// otherwise.
func Log(log *slog.Logger, msg string, err error) {
	if IsExpected(err) {
		log.Warn(msg, sl.Err(err))
		return
	}
	log.Error(msg, sl.Err(err))
}
