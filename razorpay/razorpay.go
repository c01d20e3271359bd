// Package razorpay is a minimal client for the payment gateway's orders and
// payments REST endpoints.
package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"bazaar/utils"
)

const defaultBaseURL = "https://api.razorpay.com"

type Client struct {
	BaseURL    string
	KeyID      string
	KeySecret  string
	HTTPClient *http.Client
}

func NewFromEnv() *Client {
	base := os.Getenv("RAZORPAY_BASE_URL")
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		BaseURL:    base,
		KeyID:      os.Getenv("RAZORPAY_KEY_ID"),
		KeySecret:  os.Getenv("RAZORPAY_KEY_SECRET"),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Order is the gateway's order object. Amount is in the smallest currency
// unit (paise).
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type Payment struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`
	Amount  int64  `json:"amount"`
	Status  string `json:"status"`
	Method  string `json:"method"`
}

// CreateOrder registers an order for amount (in rupees) with the gateway.
// Amounts are converted to paise on the wire.
func (c *Client) CreateOrder(ctx context.Context, amount float64) (*Order, error) {
	payload := map[string]interface{}{
		"amount":          int64(amount * 100),
		"currency":        "INR",
		"receipt":         "receipt_" + utils.GetUUID(),
		"payment_capture": 1,
	}

	var order Order
	if err := c.do(ctx, http.MethodPost, "/v1/orders", payload, &order); err != nil {
		return nil, fmt.Errorf("razorpay create order: %w", err)
	}
	return &order, nil
}

// FetchPayment returns the gateway's view of a captured payment.
func (c *Client) FetchPayment(ctx context.Context, paymentID string) (*Payment, error) {
	var payment Payment
	if err := c.do(ctx, http.MethodGet, "/v1/payments/"+paymentID, nil, &payment); err != nil {
		return nil, fmt.Errorf("razorpay fetch payment: %w", err)
	}
	return &payment, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.KeyID, c.KeySecret)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
