// Package fedex wraps the carrier's shipment, pickup and tracking REST APIs.
// OAuth tokens are fetched with the client-credentials grant and cached so
// consecutive calls reuse them until expiry.
package fedex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"bazaar/models"
	"bazaar/rdx"
)

const tokenCacheKey = "fedex:access_token"

// TokenStore caches the carrier access token between requests.
type TokenStore interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}

// RedisTokenStore keeps tokens in redis so all instances share one token.
type RedisTokenStore struct{}

func (RedisTokenStore) Get(ctx context.Context, key string) (string, bool) {
	v, err := rdx.RdxGet(key)
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}

func (RedisTokenStore) Set(ctx context.Context, key, value string, ttl time.Duration) {
	_ = rdx.SetWithExpiry(key, value, ttl)
}

// MemoryTokenStore is a process-local token cache.
type MemoryTokenStore struct {
	token  string
	expiry time.Time
}

func (m *MemoryTokenStore) Get(_ context.Context, _ string) (string, bool) {
	if m.token == "" || time.Now().After(m.expiry) {
		return "", false
	}
	return m.token, true
}

func (m *MemoryTokenStore) Set(_ context.Context, _ string, value string, ttl time.Duration) {
	m.token = value
	m.expiry = time.Now().Add(ttl)
}

// ShipperConfig is the sender side of every shipment, loaded from env.
type ShipperConfig struct {
	PersonName  string
	PhoneNumber string
	CompanyName string
	StreetLine  string
	City        string
	PostalCode  string
	CountryCode string
	AccountNo   string
}

func shipperFromEnv() ShipperConfig {
	cfg := ShipperConfig{
		PersonName:  os.Getenv("FEDEX_SHIPPER_NAME"),
		PhoneNumber: os.Getenv("FEDEX_SHIPPER_PHONE"),
		CompanyName: os.Getenv("FEDEX_SHIPPER_COMPANY"),
		StreetLine:  os.Getenv("FEDEX_SHIPPER_STREET"),
		City:        os.Getenv("FEDEX_SHIPPER_CITY"),
		PostalCode:  os.Getenv("FEDEX_SHIPPER_POSTAL_CODE"),
		CountryCode: os.Getenv("FEDEX_SHIPPER_COUNTRY"),
		AccountNo:   os.Getenv("FEDEX_ACCOUNT_NUMBER"),
	}
	if cfg.CountryCode == "" {
		cfg.CountryCode = "IN"
	}
	return cfg
}

type Client struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Shipper      ShipperConfig
	HTTPClient   *http.Client
	Tokens       TokenStore
}

func NewFromEnv() *Client {
	return &Client{
		BaseURL:      os.Getenv("FEDEX_BASE_URL"),
		ClientID:     os.Getenv("FEDEX_API_KEY"),
		ClientSecret: os.Getenv("FEDEX_API_SECRET"),
		Shipper:      shipperFromEnv(),
		HTTPClient:   &http.Client{Timeout: 20 * time.Second},
		Tokens:       RedisTokenStore{},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// accessToken returns a cached token or fetches a fresh one.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	if tok, ok := c.Tokens.Get(ctx, tokenCacheKey); ok {
		return tok, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.ClientID)
	form.Set("client_secret", c.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/oauth/token", bytes.NewBufferString(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fedex token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fedex token request returned status %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", err
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("fedex token response missing access_token")
	}

	ttl := time.Duration(tr.ExpiresIn) * time.Second
	if ttl <= 0 {
		ttl = 55 * time.Minute
	}
	// Refresh slightly before the carrier expires it.
	c.Tokens.Set(ctx, tokenCacheKey, tr.AccessToken, ttl-30*time.Second)
	return tr.AccessToken, nil
}

type ShipmentResult struct {
	TrackingNumber string
	Raw            map[string]interface{}
}

// CreateShipment registers a shipment from the configured shipper to the
// buyer's address and returns the assigned tracking number.
func (c *Client) CreateShipment(ctx context.Context, recipient models.Address, recipientName string) (*ShipmentResult, error) {
	payload := map[string]interface{}{
		"accountNumber": map[string]string{"value": c.Shipper.AccountNo},
		"requestedShipment": map[string]interface{}{
			"shipper": map[string]interface{}{
				"contact": map[string]string{
					"personName":  c.Shipper.PersonName,
					"phoneNumber": c.Shipper.PhoneNumber,
					"companyName": c.Shipper.CompanyName,
				},
				"address": map[string]interface{}{
					"streetLines": []string{c.Shipper.StreetLine},
					"city":        c.Shipper.City,
					"postalCode":  c.Shipper.PostalCode,
					"countryCode": c.Shipper.CountryCode,
				},
			},
			"recipient": map[string]interface{}{
				"contact": map[string]string{
					"personName":  recipientName,
					"phoneNumber": recipient.MobileNumber,
					"companyName": "HOME",
				},
				"address": map[string]interface{}{
					"streetLines": []string{recipient.HouseNumber + ", " + recipient.Area},
					"city":        recipient.City,
					"postalCode":  strconv.Itoa(recipient.Pincode),
					"countryCode": c.Shipper.CountryCode,
				},
			},
			"shippingChargesPayment": map[string]interface{}{
				"paymentType": "SENDER",
				"payor": map[string]interface{}{
					"responsibleParty": map[string]interface{}{
						"accountNumber": map[string]string{"value": c.Shipper.AccountNo},
						"countryCode":   c.Shipper.CountryCode,
					},
				},
			},
			"labelSpecification": map[string]string{
				"labelFormatType": "COMMON2D",
				"imageType":       "PDF",
				"labelStockType":  "PAPER_LETTER",
			},
			"requestedPackageLineItems": []map[string]interface{}{
				{
					"weight": map[string]interface{}{"units": "KG", "value": 2},
					"dimensions": map[string]interface{}{
						"length": 10, "width": 5, "height": 5, "units": "IN",
					},
				},
			},
			"serviceType":   "FEDEX_GROUND",
			"packagingType": "YOUR_PACKAGING",
		},
	}

	var raw map[string]interface{}
	if err := c.post(ctx, "/ship/v1/shipments", payload, &raw); err != nil {
		return nil, fmt.Errorf("fedex create shipment: %w", err)
	}

	return &ShipmentResult{
		TrackingNumber: extractTrackingNumber(raw),
		Raw:            raw,
	}, nil
}

// extractTrackingNumber digs the tracking number out of the carrier's nested
// response shape.
func extractTrackingNumber(raw map[string]interface{}) string {
	output, _ := raw["output"].(map[string]interface{})
	shipments, _ := output["transactionShipments"].([]interface{})
	if len(shipments) == 0 {
		return ""
	}
	first, _ := shipments[0].(map[string]interface{})
	tn, _ := first["masterTrackingNumber"].(string)
	return tn
}

// SchedulePickup books an on-call pickup for a freshly created shipment.
func (c *Client) SchedulePickup(ctx context.Context, trackingNumber string) (map[string]interface{}, error) {
	payload := map[string]interface{}{
		"pickupType":    "ON_CALL",
		"accountNumber": map[string]string{"value": c.Shipper.AccountNo},
		"pickupOrigin": map[string]interface{}{
			"pickupLocation": map[string]interface{}{
				"contact": map[string]string{
					"personName":  c.Shipper.PersonName,
					"phoneNumber": c.Shipper.PhoneNumber,
					"companyName": c.Shipper.CompanyName,
				},
				"address": map[string]interface{}{
					"streetLines": []string{c.Shipper.StreetLine},
					"city":        c.Shipper.City,
					"postalCode":  c.Shipper.PostalCode,
					"countryCode": c.Shipper.CountryCode,
				},
			},
			"packageLocation": "FRONT_DOOR",
		},
		"pickupRequestSource": "CUSTOMER_INITIATED",
		"totalWeight":         map[string]interface{}{"units": "KG", "value": 5.0},
		"carrierCode":         "FDXG",
		"trackingNumber":      trackingNumber,
		"readyTimestamp":      time.Now().Format(time.RFC3339),
		"customerCloseTime":   "17:00:00",
	}

	var raw map[string]interface{}
	if err := c.post(ctx, "/pickup/v1/pickups", payload, &raw); err != nil {
		return nil, fmt.Errorf("fedex schedule pickup: %w", err)
	}
	return raw, nil
}

// Track fetches the current scan history for a tracking number.
func (c *Client) Track(ctx context.Context, trackingNumber string) (map[string]interface{}, error) {
	payload := map[string]interface{}{
		"trackingInfo": []map[string]interface{}{
			{
				"trackingNumberInfo": map[string]string{
					"trackingNumber": trackingNumber,
				},
			},
		},
		"includeDetailedScans": true,
	}

	var raw map[string]interface{}
	if err := c.post(ctx, "/track/v1/associatedshipments", payload, &raw); err != nil {
		return nil, fmt.Errorf("fedex track shipment: %w", err)
	}
	return raw, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("carrier returned status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
