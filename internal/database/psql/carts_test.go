package psql_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	databaseerrors "storefront/internal/database"
	"storefront/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartItems(userId uuid.UUID, n int) []models.CartItem {
	productId := uuid.New()
	items := make([]models.CartItem, 0, n)
	for i := 0; i < n; i++ {
		name := "PLAYER"
		number := 10 + i
		items = append(items, models.CartItem{
			Id:          uuid.New(),
			UserId:      userId,
			ProductId:   productId,
			Quantity:    1,
			Size:        "M",
			Color:       "red",
			JerseyName:  &name,
			ChestNumber: &number,
			AddedAt:     time.Now().UTC(),
		})
	}
	return items
}

const insertCartItem = `INSERT INTO cart_items (id, user_id, product_id, quantity, size, color, jersey_name, chest_number, added_at)`

func TestAddToCart_Success(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	userId := uuid.New()
	items := cartItems(userId, 2)

	mock.ExpectBegin()
	for _, item := range items {
		mock.ExpectExec(regexp.QuoteMeta(insertCartItem)).
			WithArgs(item.Id, userId, item.ProductId, 1, "M", "red", *item.JerseyName, *item.ChestNumber, item.AddedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	got, err := storage.AddToCart(context.Background(), items)
	require.NoError(t, err)
	assert.Equal(t, items, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	items := cartItems(uuid.New(), 2)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertCartItem)).WillReturnError(errForeignKey)
	mock.ExpectRollback()

	_, err := storage.AddToCart(context.Background(), items)
	assert.ErrorIs(t, err, databaseerrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToCart_SecondInsertFails(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	items := cartItems(uuid.New(), 2)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertCartItem)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertCartItem)).WillReturnError(errDB)
	mock.ExpectRollback()

	_, err := storage.AddToCart(context.Background(), items)
	assert.ErrorIs(t, err, errDB)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToCart_BeginFail(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	mock.ExpectBegin().WillReturnError(errors.New("begin error"))

	_, err := storage.AddToCart(context.Background(), cartItems(uuid.New(), 1))
	if err == nil || err.Error() != "database.psql.AddToCart: begin error" {
		t.Fatalf("expected begin error, got %v", err)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveFromCart(t *testing.T) {
	userId, itemId := uuid.New(), uuid.New()

	t.Run("Success", func(t *testing.T) {
		storage, mock, cleanup := newTestStorage(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cart_items WHERE id=$1 AND user_id=$2;`)).
			WithArgs(itemId, userId).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, storage.RemoveFromCart(context.Background(), userId, itemId))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Someone else's item", func(t *testing.T) {
		storage, mock, cleanup := newTestStorage(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cart_items WHERE id=$1 AND user_id=$2;`)).
			WithArgs(itemId, userId).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := storage.RemoveFromCart(context.Background(), userId, itemId)
		assert.ErrorIs(t, err, databaseerrors.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Context canceled", func(t *testing.T) {
		storage, mock, cleanup := newTestStorage(t)
		defer cleanup()

		err := storage.RemoveFromCart(canceledContext(), userId, itemId)
		assert.ErrorIs(t, err, context.Canceled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestViewCart(t *testing.T) {
	cols := []string{"id", "user_id", "product_id", "quantity", "size", "color", "jersey_name", "chest_number", "added_at", "product_name", "price"}

	t.Run("Success", func(t *testing.T) {
		storage, mock, cleanup := newTestStorage(t)
		defer cleanup()

		userId := uuid.New()
		rows := sqlmock.NewRows(cols).
			AddRow(uuid.NewString(), userId.String(), uuid.NewString(), 2, "M", "red", nil, nil, time.Now(), "Home jersey", "59.90").
			AddRow(uuid.NewString(), userId.String(), uuid.NewString(), 1, "L", "blue", "MESSI", 10, time.Now(), "Away jersey", "49.90")

		mock.ExpectQuery(regexp.QuoteMeta(`FROM cart_items AS ci JOIN products AS p ON ci.product_id = p.id WHERE ci.user_id=$1 ORDER BY ci.added_at, ci.id;`)).
			WithArgs(userId).
			WillReturnRows(rows)

		cart, err := storage.ViewCart(context.Background(), userId)
		require.NoError(t, err)
		assert.Equal(t, userId, cart.UserId)
		require.Len(t, cart.Items, 2)
		assert.Equal(t, "Home jersey", cart.Items[0].ProductName)
		assert.Nil(t, cart.Items[0].JerseyName)
		require.NotNil(t, cart.Items[1].ChestNumber)
		assert.Equal(t, 10, *cart.Items[1].ChestNumber)
		assert.True(t, decimal.RequireFromString("49.90").Equal(cart.Items[1].Price))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Query error", func(t *testing.T) {
		storage, mock, cleanup := newTestStorage(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(`FROM cart_items`)).WillReturnError(errors.New("query failure"))

		_, err := storage.ViewCart(context.Background(), uuid.New())
		if err == nil || err.Error() != "database.psql.ViewCart: query failure" {
			t.Errorf("unexpected error message: %v", err)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestClearCart(t *testing.T) {
	storage, mock, cleanup := newTestStorage(t)
	defer cleanup()

	userId := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM cart_items WHERE user_id=$1;`)).
		WithArgs(userId).
		WillReturnResult(sqlmock.NewResult(0, 3))

	assert.NoError(t, storage.ClearCart(context.Background(), userId))
	assert.NoError(t, mock.ExpectationsWereMet())
}
