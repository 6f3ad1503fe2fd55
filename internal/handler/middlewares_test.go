package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/zestotech/cost-estimator/backend/internal/config"
	"github.com/zestotech/cost-estimator/backend/internal/domain"
)

const testJWTSecret = "this-is-a-test-secret-with-32-bytes!"

func testHandler() *Handler {
	cfg := &config.Config{}
	cfg.JWT.Secret = testJWTSecret
	cfg.InitialAdmin.Username = "admin"
	return &Handler{config: cfg}
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequirePermission(t *testing.T) {
	h := testHandler()

	tests := []struct {
		name    string
		user    *domain.User
		perm    domain.Permission
		allowed bool
	}{
		{"no session", nil, domain.PermissionViewMaterials, false},
		{"viewer reads materials", &domain.User{Role: domain.RoleViewer}, domain.PermissionViewMaterials, true},
		{"viewer cannot edit", &domain.User{Role: domain.RoleViewer}, domain.PermissionEditMaterials, false},
		{"estimator cannot bulk upload", &domain.User{Role: domain.RoleEstimator}, domain.PermissionBulkUpload, false},
		{"manager bulk uploads", &domain.User{Role: domain.RoleManager}, domain.PermissionBulkUpload, true},
		{"manager cannot manage users", &domain.User{Role: domain.RoleManager}, domain.PermissionUserManagement, false},
		{"admin manages users", &domain.User{Role: domain.RoleAdmin}, domain.PermissionUserManagement, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			mw := h.requirePermission(tt.perm)(okHandler(&called))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.user != nil {
				req = req.WithContext(context.WithValue(req.Context(), CurrentUserCtxKey, tt.user))
			}
			rec := httptest.NewRecorder()
			mw.ServeHTTP(rec, req)

			if called != tt.allowed {
				t.Fatalf("expected allowed=%v, handler called=%v", tt.allowed, called)
			}
			if !tt.allowed {
				resp := decodeResponse(t, rec)
				if resp.Success || resp.Message != "permission denied" {
					t.Errorf("unexpected refusal response: %+v", resp)
				}
			}
		})
	}
}

func TestAuthMissingCookie(t *testing.T) {
	h := testHandler()
	called := false
	mw := h.auth(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	if called {
		t.Fatal("handler should not run without a cookie")
	}
	if resp := decodeResponse(t, rec); resp.Message != "not logged in" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestAuthInvalidToken(t *testing.T) {
	h := testHandler()
	called := false
	mw := h.auth(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: authCookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	if called {
		t.Fatal("handler should not run with an unparseable token")
	}
	if resp := decodeResponse(t, rec); resp.Message != "invalid token" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestAuthValidToken(t *testing.T) {
	h := testHandler()

	claims := &AuthClaims{
		Role: string(domain.RoleAdmin),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	var gotSub string
	mw := h.auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSub, _ = r.Context().Value(SubCtxKey).(string)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: authCookieName, Value: token})
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	if gotSub != "42" {
		t.Errorf("expected subject 42 in context, got %q", gotSub)
	}
}

func TestAuthExpiredToken(t *testing.T) {
	h := testHandler()

	claims := &AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	called := false
	mw := h.auth(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: authCookieName, Value: token})
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)

	if called {
		t.Fatal("handler should not run with an expired token")
	}
	if resp := decodeResponse(t, rec); resp.Message != "invalid token" {
		t.Errorf("unexpected message: %q", resp.Message)
	}
}

func TestPreventOperateInitialAdmin(t *testing.T) {
	h := testHandler()

	tests := []struct {
		name    string
		user    *domain.User
		allowed bool
	}{
		{"initial admin blocked", &domain.User{Username: "admin", Role: domain.RoleAdmin}, false},
		{"other admin allowed", &domain.User{Username: "second.admin", Role: domain.RoleAdmin}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			mw := h.preventOperateInitialAdmin(okHandler(&called))

			req := httptest.NewRequest(http.MethodPatch, "/", nil)
			req = req.WithContext(context.WithValue(req.Context(), UserInfoCtxKey, tt.user))
			rec := httptest.NewRecorder()
			mw.ServeHTTP(rec, req)

			if called != tt.allowed {
				t.Fatalf("expected allowed=%v, handler called=%v", tt.allowed, called)
			}
		})
	}
}
