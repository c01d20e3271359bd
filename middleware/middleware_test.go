package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bazaar/globals"
	"bazaar/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func signTestToken(t *testing.T, userID, role string, ttl time.Duration) string {
	t.Helper()
	claims := &Claims{
		Email:  "test@example.com",
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestAuthenticateValidToken(t *testing.T) {
	var gotUserID, gotRole string
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUserID, _ = r.Context().Value(globals.UserIDKey).(string)
		gotRole, _ = r.Context().Value(globals.RoleKey).(string)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "u123", "user", time.Minute))
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotUserID != "u123" || gotRole != "user" {
		t.Fatalf("context not populated: userID=%q role=%q", gotUserID, gotRole)
	}
}

func TestAuthenticateMissingToken(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler must not run without a token")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected JSON envelope, got Content-Type %q", ct)
	}
	var env utils.Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Success || env.StatusCode != http.StatusUnauthorized || env.Message != "Missing token" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler must not run with an expired token")
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "u123", "user", -time.Minute))
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticateCookieFallback(t *testing.T) {
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: signTestToken(t, "u123", "user", time.Minute)})
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 via cookie, got %d", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	handler := Authenticate(RequireRole(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	}, "admin", "superadmin"))

	req := httptest.NewRequest(http.MethodPost, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "u1", "admin", time.Minute))
	rec := httptest.NewRecorder()
	handler(rec, req, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin should pass, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "u2", "user", time.Minute))
	rec = httptest.NewRecorder()
	handler(rec, req, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("plain user should be forbidden, got %d", rec.Code)
	}
	var env utils.Envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Success || env.Message != "Forbidden" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestValidateJWTRoundTrip(t *testing.T) {
	token := signTestToken(t, "u99", "user", time.Minute)

	claims, err := ValidateJWT("Bearer " + token)
	if err != nil {
		t.Fatalf("ValidateJWT returned error: %v", err)
	}
	if claims.UserID != "u99" {
		t.Fatalf("expected userID u99, got %s", claims.UserID)
	}

	if _, err := ValidateJWT("garbage"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
