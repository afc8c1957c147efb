package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/app"
	"storefront/internal/database/psql"
	"storefront/internal/payment"
	"storefront/pkg/config"
	"storefront/pkg/lib/logger/slogdiscard"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_ServesCatalogFromStorage(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	log := slogdiscard.NewDiscardLogger()
	storage := psql.NewWithParams(log, sqlx.NewDb(db, "postgres"))
	payments := payment.New(log, "http://127.0.0.1:0", "usd", time.Second)

	application := app.New(log, config.HTTPConfig{Port: 0}, storage, payments, nil)

	mock.ExpectQuery("FROM products").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "description", "price", "category", "images", "sizes", "colors", "stock", "created_at",
		}))

	ww := httptest.NewRecorder()
	application.Handler().ServeHTTP(ww, httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.Equal(t, http.StatusOK, ww.Code)
	assert.JSONEq(t, `[]`, ww.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApp_ShutdownBeforeRun(t *testing.T) {
	log := slogdiscard.NewDiscardLogger()
	application := app.New(log, config.HTTPConfig{Port: 0}, psql.NewWithParams(log, nil), nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.NoError(t, application.Shutdown(ctx))
}
