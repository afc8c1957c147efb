package psql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/database/psql"
	"storefront/pkg/lib/logger/slogdiscard"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

func newTestStorage(t *testing.T) (*psql.Storage, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %s", err)
	}

	storage := psql.NewWithParams(slogdiscard.NewDiscardLogger(), sqlx.NewDb(db, "postgres"))
	cleanup := func() { db.Close() }
	return storage, mock, cleanup
}

func canceledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

func expiredContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*10)
	t.Cleanup(cancel)
	time.Sleep(time.Millisecond * 15)
	return ctx
}

var (
	errDB         = errors.New("db error")
	errUnique     = &pq.Error{Code: "23505"}
	errForeignKey = &pq.Error{Code: "23503"}
)

func TestContextOver(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	t.Run("canceled", func(t *testing.T) {
		_, err := storage.ListProducts(canceledContext(), zeroFilter)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("deadline exceeded", func(t *testing.T) {
		_, err := storage.ListUsers(expiredContext(t))
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("expected context.DeadlineExceeded, got %v", err)
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
