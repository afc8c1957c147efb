package payment_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/payment"
	"storefront/pkg/lib/logger/slogdiscard"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *payment.Client {
	return payment.New(slogdiscard.NewDiscardLogger(), url, "usd", time.Second)
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		response   string
		wantId     string
		wantErr    error
		wantErrMsg string
	}{
		{
			name:       "Authorized",
			statusCode: http.StatusOK,
			response:   `{"id":"auth_1","status":"authorized"}`,
			wantId:     "auth_1",
		},
		{
			name:       "Declined",
			statusCode: http.StatusPaymentRequired,
			response:   `{"status":"declined"}`,
			wantErr:    payment.ErrDeclined,
		},
		{
			name:       "Bad card",
			statusCode: http.StatusBadRequest,
			response:   `{"error":"card number is malformed"}`,
			wantErr:    payment.ErrInvalidCard,
			wantErrMsg: "card number is malformed",
		},
		{
			name:       "Gateway down",
			statusCode: http.StatusBadGateway,
			response:   `upstream unavailable`,
			wantErrMsg: "unexpected status code 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got payment.Charge
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/authorizations", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.response))
			}))
			defer srv.Close()

			auth, err := newTestClient(srv.URL).Authorize(context.Background(), payment.Charge{
				Amount:     decimal.RequireFromString("42.50"),
				CardNumber: "4242424242424242",
				Reference:  "order-1",
			})

			assert.Equal(t, "usd", got.Currency)
			assert.Equal(t, "order-1", got.Reference)
			assert.True(t, decimal.RequireFromString("42.5").Equal(got.Amount))

			if tt.wantErr == nil && tt.wantErrMsg == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.wantId, auth.Id)
				return
			}
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantErrMsg != "" {
				assert.ErrorContains(t, err, tt.wantErrMsg)
			}
		})
	}
}

func TestAuthorize_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(srv.URL).Authorize(ctx, payment.Charge{Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestVoid(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/authorizations/auth_1/void", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		assert.NoError(t, newTestClient(srv.URL+"/").Void(context.Background(), "auth_1"))
	})

	t.Run("Unknown authorization", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"no such authorization"}`))
		}))
		defer srv.Close()

		err := newTestClient(srv.URL).Void(context.Background(), "auth_2")
		assert.ErrorContains(t, err, "no such authorization")
	})
}
