package checkouthandler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	checkouthandler "storefront/internal/handlers/checkout"
	"storefront/internal/handlers/checkout/mocks"
	"storefront/internal/middleware/auth"
	"storefront/internal/models"
	serviceerrors "storefront/internal/service"
	"storefront/pkg/lib/httputil"
	"storefront/pkg/lib/logger/slogdiscard"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const validBody = `{
	"shipping_address": {
		"full_name": "Ann Lee",
		"address_line1": "1 Main St",
		"city": "Springfield",
		"state": "IL",
		"postal_code": "62701",
		"country": "US",
		"phone": "+1 555 0100"
	},
	"card_number": "4242424242424242"
}`

func TestHandler_Checkout(t *testing.T) {
	customer := models.User{Id: uuid.New()}
	orderId := uuid.New()

	tests := []struct {
		name         string
		body         string
		setupMock    func(s *mocks.Service)
		expectedCode int
		expectedErr  string
	}{
		{
			name: "Success",
			body: validBody,
			setupMock: func(s *mocks.Service) {
				s.On("Checkout", mock.Anything, customer.Id, mock.MatchedBy(func(req models.CheckoutRequest) bool {
					return req.ShippingAddress.City == "Springfield" && req.CardNumber == "4242424242424242"
				})).Return(models.Order{Id: orderId, Status: models.StatusPending}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "Missing city",
			body:         `{"shipping_address":{"full_name":"Ann","address_line1":"1 Main","state":"IL","postal_code":"1","country":"US","phone":"1"},"card_number":"4242424242424242"}`,
			setupMock:    func(s *mocks.Service) {},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "INVALID_ARGUMENT",
		},
		{
			name:         "Card fails checksum",
			body:         `{"shipping_address":{"full_name":"Ann","address_line1":"1 Main","city":"X","state":"IL","postal_code":"1","country":"US","phone":"1"},"card_number":"1234"}`,
			setupMock:    func(s *mocks.Service) {},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "INVALID_ARGUMENT",
		},
		{
			name: "Empty cart",
			body: validBody,
			setupMock: func(s *mocks.Service) {
				s.On("Checkout", mock.Anything, customer.Id, mock.Anything).Return(models.Order{}, serviceerrors.ErrEmptyCart)
			},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "EMPTY_CART",
		},
		{
			name: "Declined",
			body: validBody,
			setupMock: func(s *mocks.Service) {
				s.On("Checkout", mock.Anything, customer.Id, mock.Anything).Return(models.Order{}, serviceerrors.ErrPaymentDeclined)
			},
			expectedCode: http.StatusPaymentRequired,
			expectedErr:  "PAYMENT_DECLINED",
		},
		{
			name: "Out of stock",
			body: validBody,
			setupMock: func(s *mocks.Service) {
				s.On("Checkout", mock.Anything, customer.Id, mock.Anything).Return(models.Order{}, serviceerrors.ErrInsufficientStock)
			},
			expectedCode: http.StatusConflict,
			expectedErr:  "INSUFFICIENT_STOCK",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.Service)
			tt.setupMock(mockService)
			handler := checkouthandler.New(slogdiscard.NewDiscardLogger(), mockService)

			req := httptest.NewRequest(http.MethodPost, "/me/checkout", bytes.NewBufferString(tt.body))
			req = req.WithContext(auth.WithUser(req.Context(), customer))
			ww := httptest.NewRecorder()

			handler.Checkout(ww, req)

			assert.Equal(t, tt.expectedCode, ww.Code)
			if tt.expectedErr != "" {
				var body httputil.ErrorBody
				require.NoError(t, json.NewDecoder(ww.Body).Decode(&body))
				assert.Equal(t, tt.expectedErr, body.Code)
			} else {
				var got models.Order
				require.NoError(t, json.NewDecoder(ww.Body).Decode(&got))
				assert.Equal(t, orderId, got.Id)
			}
			mockService.AssertExpectations(t)
		})
	}
}
