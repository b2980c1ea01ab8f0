package admin

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MS0C54073/CarWashApp-sub001/internal/api"
	"github.com/MS0C54073/CarWashApp-sub001/internal/audit"
	"github.com/MS0C54073/CarWashApp-sub001/internal/user"
	"github.com/MS0C54073/CarWashApp-sub001/pkg/db"
)

type Handlers struct {
	DB    *pgxpool.Pool
	Users *user.Repository
}

func (h Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	var (
		items []*user.User
		err   error
	)
	if roleParam := strings.TrimSpace(r.URL.Query().Get("role")); roleParam != "" {
		role, perr := user.ParseRole(roleParam)
		if perr != nil {
			api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid role")
			return
		}
		items, err = h.Users.ListByRole(r.Context(), role)
	} else {
		items, err = h.Users.List(r.Context())
	}
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []*user.User{}
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

type decideRequest struct {
	Decision string `json:"decision"` // approved | rejected
}

// DecideApproval settles a pending account. The row lock keeps two admins
// from deciding the same account twice; decisions are final.
func (h Handlers) DecideApproval(w http.ResponseWriter, r *http.Request) {
	actor := api.UserFromContext(r.Context())
	if actor == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	var req decideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	decision, err := user.ParseApprovalStatus(req.Decision)
	if err != nil || decision == user.ApprovalPending {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "decision must be approved or rejected")
		return
	}

	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		u, err := user.GetForUpdate(r.Context(), tx, id)
		if err != nil {
			return err
		}

		if !user.CanDecide(u.ApprovalStatus, decision) {
			api.WriteError(w, http.StatusConflict, "APPROVAL_ALREADY_DECIDED", "account is not pending approval")
			return pgx.ErrTxCommitRollback
		}

		if err := user.SetApproval(r.Context(), tx, u.ID, decision); err != nil {
			return err
		}

		return audit.Insert(r.Context(), tx, actor.ID, nil, "USER_APPROVAL_DECIDED",
			map[string]any{"userId": u.ID, "decision": decision})
	})
	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "user not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type suspendRequest struct {
	Suspended bool `json:"suspended"`
}

func (h Handlers) SetSuspended(w http.ResponseWriter, r *http.Request) {
	actor := api.UserFromContext(r.Context())
	if actor == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	var req suspendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}

	if err := h.Users.SetSuspended(r.Context(), id, req.Suspended); err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "user not found")
		return
	}

	_ = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		return audit.Insert(r.Context(), tx, actor.ID, nil, "USER_SUSPENSION_CHANGED",
			map[string]any{"userId": id, "suspended": req.Suspended})
	})

	w.WriteHeader(http.StatusNoContent)
}

type activeRequest struct {
	Active bool `json:"active"`
}

// SetActive soft-deactivates (or restores) an account. Deactivated users
// fail login and session checks; nothing is ever hard-deleted.
func (h Handlers) SetActive(w http.ResponseWriter, r *http.Request) {
	actor := api.UserFromContext(r.Context())
	if actor == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	var req activeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}

	if err := h.Users.SetActive(r.Context(), id, req.Active); err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "user not found")
		return
	}

	_ = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		return audit.Insert(r.Context(), tx, actor.ID, nil, "USER_ACTIVATION_CHANGED",
			map[string]any{"userId": id, "active": req.Active})
	})

	w.WriteHeader(http.StatusNoContent)
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// CreateUser lets admin staff provision accounts directly. Accounts created
// by a subadmin land as approval pending; a full admin's creations are
// approved immediately.
func (h Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	actor := api.UserFromContext(r.Context())
	if actor == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "name and email are required")
		return
	}
	role, err := user.ParseRole(req.Role)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid role")
		return
	}
	// Only a full admin can mint other admin accounts.
	if (role == user.RoleAdmin || role == user.RoleSubadmin) && actor.Role != user.RoleAdmin {
		api.WriteError(w, http.StatusForbidden, "FORBIDDEN", "only admin can create admin accounts")
		return
	}

	hash, err := user.HashPassword(req.Password)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
		return
	}

	approval := user.ApprovalApproved
	if actor.Role == user.RoleSubadmin {
		approval = user.ApprovalPending
	}

	if _, err := h.Users.GetByEmail(r.Context(), req.Email); err == nil {
		api.WriteError(w, http.StatusConflict, "EMAIL_TAKEN", "email already registered")
		return
	}

	created, err := h.Users.Create(r.Context(), user.CreateParams{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          strings.TrimSpace(req.Phone),
		Role:           role,
		PasswordHash:   hash,
		ApprovalStatus: approval,
	})
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to create user")
		return
	}

	_ = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		return audit.Insert(r.Context(), tx, actor.ID, nil, "USER_CREATED",
			map[string]any{"userId": created.ID, "role": role, "approvalStatus": approval})
	})

	api.WriteJSON(w, http.StatusCreated, map[string]any{"user": created})
}

func (h Handlers) AuditLog(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}

	items, err := audit.List(r.Context(), h.DB, limit)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []audit.Entry{}
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}
