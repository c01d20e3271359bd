package razorpay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(server *httptest.Server) *Client {
	return &Client{
		BaseURL:    server.URL,
		KeyID:      "key_test",
		KeySecret:  "secret_test",
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestCreateOrderConvertsToPaise(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/orders" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "key_test" || pass != "secret_test" {
			t.Error("basic auth credentials not forwarded")
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("invalid request body: %v", err)
		}
		json.NewEncoder(w).Encode(Order{
			ID:       "order_123",
			Amount:   49999,
			Currency: "INR",
			Status:   "created",
		})
	}))
	defer server.Close()

	order, err := testClient(server).CreateOrder(context.Background(), 499.99)
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	if order.ID != "order_123" {
		t.Fatalf("expected order_123, got %s", order.ID)
	}

	if received["amount"] != float64(49999) {
		t.Fatalf("expected amount in paise 49999, got %v", received["amount"])
	}
	if received["currency"] != "INR" {
		t.Fatalf("expected currency INR, got %v", received["currency"])
	}
	if received["receipt"] == "" {
		t.Fatal("expected a generated receipt")
	}
}

func TestCreateOrderGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	if _, err := testClient(server).CreateOrder(context.Background(), 100); err == nil {
		t.Fatal("expected error on gateway 400")
	}
}

func TestFetchPayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payments/pay_42" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Payment{
			ID:     "pay_42",
			Status: "captured",
			Method: "card",
		})
	}))
	defer server.Close()

	payment, err := testClient(server).FetchPayment(context.Background(), "pay_42")
	if err != nil {
		t.Fatalf("FetchPayment returned error: %v", err)
	}
	if payment.Method != "card" || payment.Status != "captured" {
		t.Fatalf("unexpected payment: %+v", payment)
	}
}
