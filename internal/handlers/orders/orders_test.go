package orderhandler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/handlers/orders/mocks"
	orderhandler "storefront/internal/handlers/orders"
	"storefront/internal/middleware/auth"
	"storefront/internal/models"
	serviceerrors "storefront/internal/service"
	"storefront/pkg/lib/logger/slogdiscard"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestHandler(service *mocks.Service) *orderhandler.Handler {
	return orderhandler.New(slogdiscard.NewDiscardLogger(), service)
}

func TestHandler_ListMyOrders(t *testing.T) {
	customer := models.User{Id: uuid.New()}

	t.Run("Success", func(t *testing.T) {
		mockService := new(mocks.Service)
		mockService.On("ListUserOrders", mock.Anything, customer.Id).Return([]models.Order{
			{Id: uuid.New(), Items: []models.OrderItem{{Quantity: 1, Product: &models.ProductSummary{Name: "Jersey"}}}},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/me/orders", nil)
		req = req.WithContext(auth.WithUser(req.Context(), customer))
		ww := httptest.NewRecorder()
		newTestHandler(mockService).ListMyOrders(ww, req)

		assert.Equal(t, http.StatusOK, ww.Code)
		var got []models.Order
		require.NoError(t, json.NewDecoder(ww.Body).Decode(&got))
		require.Len(t, got, 1)
		assert.Equal(t, "Jersey", got[0].Items[0].Product.Name)
		mockService.AssertExpectations(t)
	})

	t.Run("Anonymous", func(t *testing.T) {
		mockService := new(mocks.Service)

		ww := httptest.NewRecorder()
		newTestHandler(mockService).ListMyOrders(ww, httptest.NewRequest(http.MethodGet, "/me/orders", nil))

		assert.Equal(t, http.StatusUnauthorized, ww.Code)
		mockService.AssertExpectations(t)
	})
}

func TestHandler_ListOrders(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
	}{
		{"Success", nil, http.StatusOK},
		{"Deadline exceeded", serviceerrors.ErrDeadlineExceeded, http.StatusGatewayTimeout},
		{"Service error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.Service)
			mockService.On("ListOrders", mock.Anything).Return([]models.Order{
				{Id: uuid.New(), Customer: &models.Customer{Email: "ann@example.com"}},
			}, tt.err)

			ww := httptest.NewRecorder()
			newTestHandler(mockService).ListOrders(ww, httptest.NewRequest(http.MethodGet, "/admin/orders", nil))

			assert.Equal(t, tt.expectedCode, ww.Code)
			if tt.err == nil {
				assert.Contains(t, ww.Body.String(), `"email":"ann@example.com"`)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestHandler_UpdateOrderStatus(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name         string
		orderId      string
		body         string
		setupMock    func(s *mocks.Service)
		expectedCode int
	}{
		{
			name:    "Success",
			orderId: id.String(),
			body:    `{"status":"shipped"}`,
			setupMock: func(s *mocks.Service) {
				s.On("UpdateOrderStatus", mock.Anything, id, models.StatusShipped).Return(nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name:         "Unknown status",
			orderId:      id.String(),
			body:         `{"status":"lost"}`,
			setupMock:    func(s *mocks.Service) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Invalid orderId",
			orderId:      "7",
			body:         `{"status":"shipped"}`,
			setupMock:    func(s *mocks.Service) {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:    "Unknown order",
			orderId: id.String(),
			body:    `{"status":"delivered"}`,
			setupMock: func(s *mocks.Service) {
				s.On("UpdateOrderStatus", mock.Anything, id, models.StatusDelivered).Return(serviceerrors.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.Service)
			tt.setupMock(mockService)

			req := httptest.NewRequest(http.MethodPatch, "/admin/orders/"+tt.orderId+"/status", bytes.NewBufferString(tt.body))
			ww := httptest.NewRecorder()
			newTestHandler(mockService).UpdateOrderStatus(ww, req, tt.orderId)

			assert.Equal(t, tt.expectedCode, ww.Code)
			mockService.AssertExpectations(t)
		})
	}
}
