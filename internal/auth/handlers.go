package auth

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/MS0C54073/CarWashApp-sub001/internal/api"
	"github.com/MS0C54073/CarWashApp-sub001/internal/user"
	"github.com/MS0C54073/CarWashApp-sub001/pkg/config"
	"github.com/MS0C54073/CarWashApp-sub001/pkg/token"
)

type Handlers struct {
	Cfg   config.Config
	Users *user.Repository
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	NRC      string `json:"nrc"`
	Role     string `json:"role"`
	Password string `json:"password"`

	// Driver fields.
	LicenseNo     string `json:"licenseNo"`
	LicenseExpiry string `json:"licenseExpiry"` // RFC 3339 date

	// Carwash fields.
	CarWashName string `json:"carWashName"`
	Location    string `json:"location"`
	Bays        int    `json:"bays"`
}

// Register creates a self-service account. Clients are usable immediately;
// driver and carwash accounts land in the admin approval queue.
func (h Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || !strings.Contains(req.Email, "@") {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "name and a valid email are required")
		return
	}

	role, err := user.ParseRole(req.Role)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid role")
		return
	}
	// Admin accounts are never self-registered.
	if role == user.RoleAdmin || role == user.RoleSubadmin {
		api.WriteError(w, http.StatusForbidden, "FORBIDDEN", "role cannot self-register")
		return
	}

	params := user.CreateParams{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          strings.TrimSpace(req.Phone),
		NRC:            strings.TrimSpace(req.NRC),
		Role:           role,
		ApprovalStatus: user.ApprovalApproved,
	}

	switch role {
	case user.RoleDriver:
		params.LicenseNo = strings.TrimSpace(req.LicenseNo)
		if params.LicenseNo == "" {
			api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "licenseNo is required for drivers")
			return
		}
		if req.LicenseExpiry != "" {
			t, err := time.Parse(time.RFC3339, req.LicenseExpiry)
			if err != nil {
				api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "licenseExpiry must be RFC 3339")
				return
			}
			params.LicenseExpiry = &t
		}
		params.ApprovalStatus = user.ApprovalPending
	case user.RoleCarwash:
		params.CarWashName = strings.TrimSpace(req.CarWashName)
		params.Location = strings.TrimSpace(req.Location)
		params.Bays = req.Bays
		if params.CarWashName == "" || params.Location == "" || params.Bays <= 0 {
			api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "carWashName, location and bays are required for carwashes")
			return
		}
		params.ApprovalStatus = user.ApprovalPending
	}

	hash, err := user.HashPassword(req.Password)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}
	params.PasswordHash = hash

	if _, err := h.Users.GetByEmail(r.Context(), req.Email); err == nil {
		api.WriteError(w, http.StatusConflict, "EMAIL_TAKEN", "email already registered")
		return
	}

	u, err := h.Users.Create(r.Context(), params)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to create account")
		return
	}

	api.WriteJSON(w, http.StatusCreated, map[string]any{"user": u})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}

	u, err := h.Users.GetByEmail(r.Context(), strings.TrimSpace(req.Email))
	if err != nil || !user.CheckPassword(u.PasswordHash, req.Password) {
		// Same response for unknown email and wrong password.
		api.WriteError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
		return
	}

	if !u.IsActive || u.IsSuspended {
		api.WriteError(w, http.StatusForbidden, "ACCOUNT_DISABLED", "account is deactivated or suspended")
		return
	}
	if !u.IsApproved() {
		api.WriteError(w, http.StatusForbidden, "APPROVAL_PENDING", "account is awaiting approval")
		return
	}

	now := time.Now()
	t, err := token.Issue(u.ID, string(u.Role), h.Cfg.Auth.JWTSecret, now, h.Cfg.Auth.TokenTTL)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to issue token")
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{
		"token":     t,
		"expiresAt": now.Add(h.Cfg.Auth.TokenTTL),
		"user":      u,
	})
}

// Me returns the authenticated user's profile.
func (h Handlers) Me(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"user": u})
}

type profileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (h Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "name is required")
		return
	}

	updated, err := h.Users.UpdateProfile(r.Context(), u.ID, user.ProfileUpdate{
		Name:  req.Name,
		Phone: strings.TrimSpace(req.Phone),
	})
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to update profile")
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{"user": updated})
}
