package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"storefront/pkg/lib/logger/sl"

	"github.com/shopspring/decimal"
)

var (
	ErrDeclined    = errors.New("payment declined")
	ErrInvalidCard = errors.New("invalid card")
)

// Charge is the amount to hold on a card. Reference ties the
// authorization to the order it pays for.
type Charge struct {
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	CardNumber string          `json:"card_number"`
	Reference  string          `json:"reference"`
}

type Authorization struct {
	Id     string `json:"id"`
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Client talks to the payment gateway over HTTP.
type Client struct {
	log        *slog.Logger
	baseURL    string
	currency   string
	httpClient *http.Client
}

func New(log *slog.Logger, baseURL, currency string, timeout time.Duration) *Client {
	return &Client{
		log:      log,
		baseURL:  strings.TrimRight(baseURL, "/"),
		currency: currency,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Authorize places a hold for the charge. A declined card is reported as
// ErrDeclined and a malformed one as ErrInvalidCard.
func (c *Client) Authorize(ctx context.Context, charge Charge) (Authorization, error) {
	const op = "payment.Authorize"
	log := c.log.With("op", op, slog.String("reference", charge.Reference))

	if charge.Currency == "" {
		charge.Currency = c.currency
	}

	body, err := json.Marshal(charge)
	if err != nil {
		log.Error("Failed to marshal charge", sl.Err(err))
		return Authorization{}, fmt.Errorf("%s: %w", op, err)
	}

	status, respBody, err := c.post(ctx, c.baseURL+"/authorizations", body)
	if err != nil {
		log.Error("Failed to call payment gateway", sl.Err(err))
		return Authorization{}, fmt.Errorf("%s: %w", op, err)
	}

	switch status {
	case http.StatusOK, http.StatusCreated:
		var auth Authorization
		if err := json.Unmarshal(respBody, &auth); err != nil {
			log.Error("Failed to unmarshal authorization", sl.Err(err))
			return Authorization{}, fmt.Errorf("%s: %w", op, err)
		}
		log.Info("payment authorized", slog.String("authorization_id", auth.Id))
		return auth, nil
	case http.StatusPaymentRequired:
		log.Warn("payment declined", slog.String("card", maskCardNumber(charge.CardNumber)))
		return Authorization{}, fmt.Errorf("%s: %w", op, ErrDeclined)
	case http.StatusBadRequest:
		err := fmt.Errorf("%w: %s", ErrInvalidCard, gatewayMessage(respBody))
		log.Warn("payment rejected", sl.Err(err))
		return Authorization{}, fmt.Errorf("%s: %w", op, err)
	default:
		err := fmt.Errorf("unexpected status code %d: %s", status, gatewayMessage(respBody))
		log.Error("Payment gateway failed", sl.Err(err))
		return Authorization{}, fmt.Errorf("%s: %w", op, err)
	}
}

// Void releases a hold that will not be captured.
func (c *Client) Void(ctx context.Context, authorizationId string) error {
	const op = "payment.Void"
	log := c.log.With("op", op, slog.String("authorization_id", authorizationId))

	status, respBody, err := c.post(ctx, c.baseURL+"/authorizations/"+authorizationId+"/void", nil)
	if err != nil {
		log.Error("Failed to call payment gateway", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if status != http.StatusOK && status != http.StatusNoContent {
		err := fmt.Errorf("unexpected status code %d: %s", status, gatewayMessage(respBody))
		log.Error("Failed to void authorization", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("authorization voided")
	return nil
}

func (c *Client) post(ctx context.Context, url string, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, respBody, nil
}

func gatewayMessage(body []byte) string {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Error != "" {
		return resp.Error
	}
	return strings.TrimSpace(string(body))
}

// maskCardNumber keeps the last four digits for logs.
func maskCardNumber(cardNumber string) string {
	if len(cardNumber) < 4 {
		return "****"
	}
	return "****" + cardNumber[len(cardNumber)-4:]
}
