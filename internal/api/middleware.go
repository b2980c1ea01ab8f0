package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/MS0C54073/CarWashApp-sub001/internal/user"
	"github.com/MS0C54073/CarWashApp-sub001/pkg/config"
	"github.com/MS0C54073/CarWashApp-sub001/pkg/token"
)

// SessionAuth authenticates portal requests.
//
// Contract:
// - Caller must provide `Authorization: Bearer <JWT>` issued by the login endpoint.
// - Middleware verifies the token, loads the user record and attaches it to context.
// - Deactivated or suspended accounts are rejected even if their token is still valid.
func SessionAuth(cfg config.Config, users *user.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := strings.TrimSpace(r.Header.Get("Authorization"))
			if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing session token")
				return
			}

			claims, err := token.Verify(strings.TrimSpace(authz[7:]), cfg.Auth.JWTSecret, time.Now())
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid session token")
				return
			}

			u, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unknown user")
				return
			}
			if !u.IsActive || u.IsSuspended {
				WriteError(w, http.StatusForbidden, "ACCOUNT_DISABLED", "account is deactivated or suspended")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// RequireRole gates a route group to the given roles. Role dispatch happens
// here, at the routing boundary, not inside handlers.
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	allowed := make(map[user.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := UserFromContext(r.Context())
			if u == nil {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
				return
			}
			if !allowed[u.Role] {
				WriteError(w, http.StatusForbidden, "FORBIDDEN", "role not permitted")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
