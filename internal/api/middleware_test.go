package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MS0C54073/CarWashApp-sub001/internal/user"
)

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestRequireRole_AllowsListedRole(t *testing.T) {
	next, called := okHandler()
	h := RequireRole(user.RoleAdmin, user.RoleSubadmin)(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUser(req.Context(), &user.User{ID: "u-1", Role: user.RoleSubadmin}))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.True(t, *called)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_RejectsOtherRole(t *testing.T) {
	next, called := okHandler()
	h := RequireRole(user.RoleAdmin)(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUser(req.Context(), &user.User{ID: "u-1", Role: user.RoleDriver}))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.False(t, *called)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "FORBIDDEN")
}

func TestRequireRole_RejectsMissingIdentity(t *testing.T) {
	next, called := okHandler()
	h := RequireRole(user.RoleClient)(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.False(t, *called)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCORSMiddleware_AllowsConfiguredOrigin(t *testing.T) {
	next, _ := okHandler()
	h := CORSMiddleware(CORSOptions{AllowedOrigins: []string{"https://track.example.com"}})(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://track.example.com")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.Equal(t, "https://track.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddleware_IgnoresUnknownOrigin(t *testing.T) {
	next, _ := okHandler()
	h := CORSMiddleware(CORSOptions{AllowedOrigins: []string{"https://track.example.com"}})(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	next, called := okHandler()
	h := CORSMiddleware(CORSOptions{AllowedOrigins: []string{"https://track.example.com"}})(next)

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://track.example.com")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.False(t, *called)
	require.Equal(t, http.StatusNoContent, rec.Code)
}
