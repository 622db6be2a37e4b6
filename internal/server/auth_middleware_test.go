package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Salguod-ohlamar/deposito-teixeira/internal/server/authctx"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func accessClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub":        "42",
		"email":      "ana@deposito.com",
		"name":       "Ana",
		"role":       "admin",
		"token_type": "access",
		"iat":        now.Unix(),
		"exp":        now.Add(15 * time.Minute).Unix(),
	}
}

func protectedEcho(t *testing.T) (http.Handler, *authctx.CurrentUser) {
	var captured authctx.CurrentUser
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u := authctx.FromContext(r.Context()); u != nil {
			captured = *u
		}
		w.WriteHeader(http.StatusOK)
	})
	return AuthMiddleware(testSecret)(inner), &captured
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	h, captured := protectedEcho(t)

	req := httptest.NewRequest("GET", "/produtos", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, accessClaims()))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if captured.ID != 42 || captured.Email != "ana@deposito.com" || string(captured.Role) != "admin" {
		t.Errorf("context user = %+v", captured)
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	h, _ := protectedEcho(t)

	req := httptest.NewRequest("GET", "/produtos", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	h, _ := protectedEcho(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims())
	signed, err := token.SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	req := httptest.NewRequest("GET", "/produtos", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthMiddleware_RejectsRefreshToken(t *testing.T) {
	h, _ := protectedEcho(t)

	claims := accessClaims()
	claims["token_type"] = "refresh"
	req := httptest.NewRequest("GET", "/produtos", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, claims))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	h, _ := protectedEcho(t)

	claims := accessClaims()
	claims["exp"] = time.Now().Add(-time.Minute).Unix()
	req := httptest.NewRequest("GET", "/produtos", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, claims))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
