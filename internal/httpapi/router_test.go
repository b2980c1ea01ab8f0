package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MS0C54073/CarWashApp-sub001/pkg/config"
)

// Surface check: every endpoint below must exist and sit behind session
// auth (401 without a token), without touching the database.
func TestRouter_Surface(t *testing.T) {
	h := NewRouter(Dependencies{Cfg: config.Config{}})

	cases := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"health is public", http.MethodGet, "/healthz", http.StatusOK},
		{"cancel reachable for any session", http.MethodPost, "/v1/bookings/b-1/cancel", http.StatusUnauthorized},
		{"status endpoint gated", http.MethodPut, "/v1/bookings/b-1/status", http.StatusUnauthorized},
		{"user suspension endpoint exists", http.MethodPut, "/v1/admin/users/u-1/suspend", http.StatusUnauthorized},
		{"user activation endpoint exists", http.MethodPut, "/v1/admin/users/u-1/active", http.StatusUnauthorized},
		{"unknown route", http.MethodGet, "/v1/nope", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
			require.Equal(t, tc.want, rec.Code)
		})
	}
}
