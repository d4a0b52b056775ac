package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/leadnest/leadnest-api/internal/middleware"
	"github.com/leadnest/leadnest-api/internal/pkg/jwt"
)

func TestAuthMissingHeader(t *testing.T) {
	jwtSvc := jwt.NewService("test-secret")

	handler := middleware.Auth(jwtSvc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached without a token")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/credits/balance", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthInvalidToken(t *testing.T) {
	jwtSvc := jwt.NewService("test-secret")

	handler := middleware.Auth(jwtSvc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached with a bad token")
	}))

	for _, header := range []string{"Bearer not-a-token", "Basic abc", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/credits/balance", nil)
		req.Header.Set("Authorization", header)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestAuthWrongSecret(t *testing.T) {
	issuer := jwt.NewService("other-secret")
	token, err := issuer.GenerateAccessToken(uuid.New(), "user", time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	jwtSvc := jwt.NewService("test-secret")
	handler := middleware.Auth(jwtSvc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached with a foreign token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/credits/balance", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthValidToken(t *testing.T) {
	jwtSvc := jwt.NewService("test-secret")
	userID := uuid.New()

	token, err := jwtSvc.GenerateAccessToken(userID, "user", time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	var gotID uuid.UUID
	handler := middleware.Auth(jwtSvc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = middleware.GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/credits/balance", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotID != userID {
		t.Fatalf("expected user id %s in context, got %s", userID, gotID)
	}
}

func TestRequireAdmin(t *testing.T) {
	jwtSvc := jwt.NewService("test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := middleware.Auth(jwtSvc)(middleware.RequireAdmin()(next))

	userToken, _ := jwtSvc.GenerateAccessToken(uuid.New(), "user", time.Minute)
	adminToken, _ := jwtSvc.GenerateAccessToken(uuid.New(), "admin", time.Minute)

	req := httptest.NewRequest(http.MethodPost, "/billing/adjust", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/billing/adjust", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", rec.Code)
	}
}
