package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"bazaar/globals"
	"bazaar/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func signTestToken(t *testing.T, userID, role string) string {
	t.Helper()
	claims := &middleware.Claims{
		Email:  "test@example.com",
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestProductMutationsRequireAdmin(t *testing.T) {
	router := httprouter.New()
	AddProductRoutes(router)

	userToken := signTestToken(t, "u1", "user")
	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/product/product-listing/cat123"},
		{http.MethodPatch, "/api/v1/product/update-product/p123"},
		{http.MethodPatch, "/api/v1/product/update-product-images/p123"},
		{http.MethodDelete, "/api/v1/product/delete-product/p123"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		req.Header.Set("Authorization", "Bearer "+userToken)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("%s %s: plain user expected 403, got %d", tc.method, tc.path, rec.Code)
		}
	}

	// Anonymous callers are stopped one layer earlier.
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/product/delete-product/p123", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous delete expected 401, got %d", rec.Code)
	}
}

func TestChangeRoleRequiresSuperAdmin(t *testing.T) {
	router := httprouter.New()
	AddAuthRoutes(router)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/change-role/u2", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "u1", "admin"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("admin expected 403 on change-role, got %d", rec.Code)
	}
}

func TestStaticMountServesStoredProductPicPath(t *testing.T) {
	dir := filepath.Join("static", "productpic")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll("static") })
	if err := os.WriteFile(filepath.Join(dir, "x.jpg"), []byte("jpegbytes"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	router := httprouter.New()
	AddStaticRoutes(router)

	// Same path shape the product handlers persist on upload.
	req := httptest.NewRequest(http.MethodGet, "/static/productpic/x.jpg", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for stored asset path, got %d", rec.Code)
	}
	if rec.Body.String() != "jpegbytes" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}
