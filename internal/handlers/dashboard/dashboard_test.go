package dashboardhandler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	dashboardhandler "storefront/internal/handlers/dashboard"
	"storefront/internal/handlers/dashboard/mocks"
	"storefront/internal/models"
	"storefront/pkg/lib/logger/slogdiscard"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHandler_Stats(t *testing.T) {
	tests := []struct {
		name         string
		stats        models.Stats
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success",
			stats:        models.Stats{TotalSales: decimal.RequireFromString("120.5"), TotalOrders: 2, TotalProducts: 7, TotalUsers: 3},
			expectedCode: http.StatusOK,
			expectedBody: `{"total_sales":"120.5","total_orders":2,"total_products":7,"total_users":3}`,
		},
		{
			name:         "Service error",
			err:          errors.New("boom"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"error":"internal error","code":"INTERNAL"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(mocks.Service)
			mockService.On("Stats", mock.Anything).Return(tt.stats, tt.err)

			ww := httptest.NewRecorder()
			dashboardhandler.New(slogdiscard.NewDiscardLogger(), mockService).
				Stats(ww, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))

			assert.Equal(t, tt.expectedCode, ww.Code)
			assert.JSONEq(t, tt.expectedBody, ww.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
