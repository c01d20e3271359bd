package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bazaar/middleware"
	"bazaar/models"
)

func TestGenerateAccessTokenCarriesClaims(t *testing.T) {
	user := models.User{
		UserID: "uABC123",
		Email:  "buyer@example.com",
		Role:   models.RoleUser,
	}

	token, err := generateAccessToken(user)
	if err != nil {
		t.Fatalf("generateAccessToken: %v", err)
	}

	claims, err := middleware.ValidateJWT(token)
	if err != nil {
		t.Fatalf("token did not validate: %v", err)
	}
	if claims.UserID != user.UserID || claims.Email != user.Email || claims.Role != user.Role {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestGenerateRefreshTokenIsRandomHex(t *testing.T) {
	a, err := generateRefreshToken()
	if err != nil {
		t.Fatalf("generateRefreshToken: %v", err)
	}
	b, err := generateRefreshToken()
	if err != nil {
		t.Fatalf("generateRefreshToken: %v", err)
	}

	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
	if a == b {
		t.Fatal("two refresh tokens must not collide")
	}
}

func TestHashTokenDeterministic(t *testing.T) {
	if hashToken("abc") != hashToken("abc") {
		t.Fatal("hash must be deterministic")
	}
	if hashToken("abc") == hashToken("abd") {
		t.Fatal("different tokens must hash differently")
	}
	if len(hashToken("abc")) != 64 {
		t.Fatal("expected sha256 hex digest")
	}
}

func TestSetAndClearAuthCookies(t *testing.T) {
	rec := httptest.NewRecorder()
	setAuthCookies(rec, "access-val", "refresh-val")

	cookies := rec.Result().Cookies()
	if len(cookies) != 2 {
		t.Fatalf("expected 2 cookies, got %d", len(cookies))
	}
	for _, c := range cookies {
		if !c.HttpOnly || !c.Secure {
			t.Fatalf("cookie %s must be httpOnly and secure", c.Name)
		}
		if c.SameSite != http.SameSiteStrictMode {
			t.Fatalf("cookie %s must be SameSite=Strict", c.Name)
		}
	}

	rec = httptest.NewRecorder()
	clearAuthCookies(rec)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge != -1 {
			t.Fatalf("cleared cookie %s should have MaxAge -1", c.Name)
		}
	}
}
