// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexisarthi/api/internal/core"
)

type fakeVerifier struct {
	claims map[string]*Claims
}

func (f *fakeVerifier) Verify(
	_ context.Context,
	token string,
) (*Claims, error) {
	claims, ok := f.claims[token]
	if !ok {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}
	return claims, nil
}

func newFakeVerifier() *fakeVerifier {
	return &fakeVerifier{claims: map[string]*Claims{
		"user-token": {
			UserID: "user-1",
			Email:  "asha@example.com",
			Role:   RoleUser,
		},
		"admin-token": {
			UserID: "admin-1",
			Email:  "admin@example.com",
			Role:   RoleAdmin,
		},
	}}
}

func echoIdentity(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-User-ID", GetUserID(r.Context()))
	w.Header().Set("X-User-Role", GetUserRole(r.Context()))
	w.WriteHeader(http.StatusOK)
}

func TestAuthenticator(t *testing.T) {
	handler := Authenticator(newFakeVerifier())(
		http.HandlerFunc(echoIdentity),
	)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUserID string
	}{
		{
			name:       "valid bearer token",
			header:     "Bearer user-token",
			wantStatus: http.StatusOK,
			wantUserID: "user-1",
		},
		{
			name:       "case-insensitive scheme",
			header:     "bearer user-token",
			wantStatus: http.StatusOK,
			wantUserID: "user-1",
		},
		{
			name:       "missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unknown token",
			header:     "Bearer forged-token",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantUserID != "" {
				assert.Equal(t, tt.wantUserID, rec.Header().Get("X-User-ID"))
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	handler := Authenticator(newFakeVerifier())(
		RequireAdmin(http.HandlerFunc(echoIdentity)),
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, RoleAdmin, rec.Header().Get("X-User-Role"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer user-token")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminWithoutAuthentication(t *testing.T) {
	handler := RequireAdmin(http.HandlerFunc(echoIdentity))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExtractToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", ExtractToken(req))

	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	assert.Equal(t, "abc.def.ghi", ExtractToken(req))

	req.Header.Set("Authorization", "Token abc")
	assert.Equal(t, "", ExtractToken(req))
}
