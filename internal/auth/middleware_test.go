package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret []byte, tenantID, role string) string {
	t.Helper()
	claims := Claims{
		TenantID: tenantID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestMiddlewareRBAC(t *testing.T) {
	secret := []byte("test-secret")
	mw := NewMiddleware(secret, NewDefaultPolicy([]string{"/healthz"}, nil))

	cases := []struct {
		name   string
		method string
		path   string
		role   string // empty means no token
		want   int
	}{
		{"no token rejected", http.MethodGet, "/api/v1/devices", "", http.StatusUnauthorized},
		{"viewer reads devices", http.MethodGet, "/api/v1/devices", "viewer", http.StatusOK},
		{"viewer cannot create", http.MethodPost, "/api/v1/devices", "viewer", http.StatusForbidden},
		{"operator creates", http.MethodPost, "/api/v1/devices", "operator", http.StatusOK},
		{"operator cannot delete", http.MethodDelete, "/api/v1/devices/d1", "operator", http.StatusForbidden},
		{"admin deletes", http.MethodDelete, "/api/v1/devices/d1", "admin", http.StatusOK},
		{"viewer reads dashboard", http.MethodGet, "/api/v1/dashboard/summary", "viewer", http.StatusOK},
		{"operator cannot export", http.MethodGet, "/api/v1/exports/budget.xlsx", "operator", http.StatusForbidden},
		{"admin exports", http.MethodGet, "/api/v1/exports/budget.xlsx", "admin", http.StatusOK},
		{"healthz exempt", http.MethodGet, "/healthz", "", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.role != "" {
				req.Header.Set("Authorization", "Bearer "+signToken(t, secret, "tenant-a", tc.role))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestMiddlewarePropagatesIdentity(t *testing.T) {
	secret := []byte("test-secret")
	mw := NewMiddleware(secret, NewDefaultPolicy(nil, nil))

	var seen Identity
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, secret, "tenant-a", "viewer"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if seen.TenantID != "tenant-a" || seen.Subject != "user-1" || seen.Role != RoleViewer {
		t.Errorf("identity = %+v", seen)
	}
}

func TestMiddlewareRejectsBadTokens(t *testing.T) {
	secret := []byte("test-secret")
	mw := NewMiddleware(secret, NewDefaultPolicy(nil, nil))
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	wrongSecret := signToken(t, []byte("other-secret"), "tenant-a", "admin")
	for name, header := range map[string]string{
		"wrong secret": "Bearer " + wrongSecret,
		"not a token":  "Bearer garbage",
		"wrong scheme": "Basic abc123",
		"empty bearer": "Bearer ",
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/devices", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", name, rec.Code)
		}
	}
}
