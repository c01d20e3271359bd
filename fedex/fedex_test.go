package fedex

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bazaar/models"
)

func testAddress() models.Address {
	return models.Address{
		AddressID:    "addrTest",
		HouseNumber:  "12-B",
		Area:         "Market Road",
		City:         "New Delhi",
		Pincode:      110045,
		State:        "Delhi",
		MobileNumber: "9999999999",
	}
}

func newTestClient(server *httptest.Server) *Client {
	return &Client{
		BaseURL:      server.URL,
		ClientID:     "client_test",
		ClientSecret: "secret_test",
		Shipper: ShipperConfig{
			PersonName:  "Warehouse",
			PhoneNumber: "1234567890",
			CompanyName: "Bazaar",
			StreetLine:  "1 Depot Lane",
			City:        "New Delhi",
			PostalCode:  "110001",
			CountryCode: "IN",
			AccountNo:   "740561073",
		},
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
		Tokens:     &MemoryTokenStore{},
	}
}

func TestAccessTokenIsCached(t *testing.T) {
	tokenCalls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth/token":
			tokenCalls++
			json.NewEncoder(w).Encode(map[string]interface{}{
				"access_token": "tok_abc",
				"expires_in":   3600,
			})
		case "/track/v1/associatedshipments":
			if got := r.Header.Get("Authorization"); got != "Bearer tok_abc" {
				t.Errorf("unexpected auth header %q", got)
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"output": map[string]interface{}{}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := newTestClient(server)
	ctx := context.Background()

	if _, err := client.Track(ctx, "794923657233"); err != nil {
		t.Fatalf("first track: %v", err)
	}
	if _, err := client.Track(ctx, "794923657233"); err != nil {
		t.Fatalf("second track: %v", err)
	}

	if tokenCalls != 1 {
		t.Fatalf("expected 1 token fetch, got %d", tokenCalls)
	}
}

func TestCreateShipmentExtractsTrackingNumber(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth/token":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"access_token": "tok_abc",
				"expires_in":   3600,
			})
		case "/ship/v1/shipments":
			var payload map[string]interface{}
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				t.Errorf("invalid shipment payload: %v", err)
			}
			if _, ok := payload["requestedShipment"]; !ok {
				t.Error("payload missing requestedShipment")
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"output": map[string]interface{}{
					"transactionShipments": []interface{}{
						map[string]interface{}{"masterTrackingNumber": "794923657233"},
					},
				},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	result, err := newTestClient(server).CreateShipment(context.Background(), testAddress(), "Asha Verma")
	if err != nil {
		t.Fatalf("CreateShipment returned error: %v", err)
	}
	if result.TrackingNumber != "794923657233" {
		t.Fatalf("expected tracking number 794923657233, got %q", result.TrackingNumber)
	}
}

func TestCreateShipmentCarrierFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth/token" {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"access_token": "tok_abc",
				"expires_in":   3600,
			})
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	if _, err := newTestClient(server).CreateShipment(context.Background(), testAddress(), "Asha Verma"); err == nil {
		t.Fatal("expected error when carrier is unavailable")
	}
}

func TestMemoryTokenStoreExpiry(t *testing.T) {
	store := &MemoryTokenStore{}
	ctx := context.Background()

	if _, ok := store.Get(ctx, tokenCacheKey); ok {
		t.Fatal("empty store should miss")
	}

	store.Set(ctx, tokenCacheKey, "tok", time.Minute)
	if tok, ok := store.Get(ctx, tokenCacheKey); !ok || tok != "tok" {
		t.Fatalf("expected cached token, got %q ok=%v", tok, ok)
	}

	store.Set(ctx, tokenCacheKey, "tok", -time.Second)
	if _, ok := store.Get(ctx, tokenCacheKey); ok {
		t.Fatal("expired token should miss")
	}
}
