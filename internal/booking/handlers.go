package booking

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/MS0C54073/CarWashApp-sub001/internal/adminaction"
	"github.com/MS0C54073/CarWashApp-sub001/internal/api"
	"github.com/MS0C54073/CarWashApp-sub001/internal/audit"
	"github.com/MS0C54073/CarWashApp-sub001/internal/events"
	"github.com/MS0C54073/CarWashApp-sub001/internal/service"
	"github.com/MS0C54073/CarWashApp-sub001/internal/track"
	"github.com/MS0C54073/CarWashApp-sub001/internal/user"
	"github.com/MS0C54073/CarWashApp-sub001/internal/vehicle"
	"github.com/MS0C54073/CarWashApp-sub001/pkg/db"
)

type Handlers struct {
	DB       *pgxpool.Pool
	Bookings *Repository
	Vehicles *vehicle.Repository
	Services *service.Repository
	Users    *user.Repository

	TrackTTL time.Duration
}

// statusesByRole lists the target statuses each portal role may set through
// the normal transition endpoint. Admin roles bypass this table (any legal
// transition); nothing bypasses CanTransition except the audited override.
var statusesByRole = map[user.Role]map[Status]bool{
	user.RoleClient: {
		StatusCancelled: true,
	},
	user.RoleDriver: {
		StatusPickedUp:  true,
		StatusAtWash:    true,
		StatusDelivered: true,
		StatusCompleted: true,
	},
	user.RoleCarwash: {
		StatusAccepted:      true,
		StatusDeclined:      true,
		StatusWaitingBay:    true,
		StatusWashingBay:    true,
		StatusDryingBay:     true,
		StatusWashCompleted: true,
	},
}

func roleMaySet(role user.Role, to Status) bool {
	if role == user.RoleAdmin || role == user.RoleSubadmin {
		return true
	}
	return statusesByRole[role][to]
}

// visibleTo scopes a booking row to the caller: clients see their own,
// drivers their assignments, carwashes their shop, admin roles everything.
func (b *Booking) visibleTo(u *user.User) bool {
	switch u.Role {
	case user.RoleAdmin, user.RoleSubadmin:
		return true
	case user.RoleClient:
		return b.ClientID == u.ID
	case user.RoleDriver:
		return b.Assigned() && *b.DriverID == u.ID
	case user.RoleCarwash:
		return b.CarWashID == u.ID
	}
	return false
}

type createRequest struct {
	CarWashID      string `json:"carWashId"`
	VehicleID      string `json:"vehicleId"`
	ServiceID      string `json:"serviceId"`
	PickupLocation string `json:"pickupLocation"`
	Notes          string `json:"notes"`
}

func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	req.PickupLocation = strings.TrimSpace(req.PickupLocation)
	if req.CarWashID == "" || req.VehicleID == "" || req.ServiceID == "" || req.PickupLocation == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "carWashId, vehicleId, serviceId and pickupLocation are required")
		return
	}

	v, err := h.Vehicles.GetByID(r.Context(), req.VehicleID)
	if err != nil || v.ClientID != u.ID {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "vehicle not found")
		return
	}

	svc, err := h.Services.GetByID(r.Context(), req.ServiceID)
	if err != nil || svc.CarWashID != req.CarWashID {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "service not found")
		return
	}
	if !svc.IsActive {
		api.WriteError(w, http.StatusConflict, "SERVICE_INACTIVE", "service is not available")
		return
	}

	price, err := decimal.NewFromString(svc.Price)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	total, err := ComputeTotal(price, decimal.Zero)
	if err != nil {
		api.WriteError(w, http.StatusConflict, "TOTAL_INVALID", err.Error())
		return
	}

	var created *Booking
	var trackToken string
	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		var err error
		created, err = Create(r.Context(), tx, CreateParams{
			ClientID:       u.ID,
			CarWashID:      req.CarWashID,
			VehicleID:      req.VehicleID,
			ServiceID:      req.ServiceID,
			TotalAmount:    total,
			PickupLocation: req.PickupLocation,
			Notes:          strings.TrimSpace(req.Notes),
		})
		if err != nil {
			return err
		}

		trackToken, err = track.Issue(r.Context(), tx, created.ID, time.Now().Add(h.TrackTTL))
		if err != nil {
			return err
		}

		return events.Insert(r.Context(), tx, created.ID, "BOOKING_CREATED", "Booking created", string(u.Role), time.Now(),
			map[string]any{"serviceId": svc.ID, "total": total})
	})
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	api.WriteJSON(w, http.StatusCreated, map[string]any{
		"booking":    created,
		"trackToken": trackToken,
	})
}

func (h Handlers) List(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	var (
		items []*Booking
		err   error
	)
	switch u.Role {
	case user.RoleClient:
		items, err = h.Bookings.ListByClient(r.Context(), u.ID)
	case user.RoleDriver:
		items, err = h.Bookings.ListByDriver(r.Context(), u.ID)
	case user.RoleCarwash:
		items, err = h.Bookings.ListByCarWash(r.Context(), u.ID)
	default:
		items, err = h.Bookings.ListAll(r.Context())
	}
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if items == nil {
		items = []*Booking{}
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h Handlers) Get(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	b, err := h.Bookings.GetByID(r.Context(), id)
	if err != nil || !b.visibleTo(u) {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{"booking": b})
}

func (h Handlers) Events(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	b, err := h.Bookings.GetByID(r.Context(), id)
	if err != nil || !b.visibleTo(u) {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
		return
	}

	evs, err := events.ListByBooking(r.Context(), h.DB, b.ID)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if evs == nil {
		evs = []events.Event{}
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{"items": evs})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus is the single write path of the lifecycle. The requested
// status must equal the booking's designated next status (or an absorbing
// state); everything else is a 409. The row lock serializes concurrent
// actors.
func (h Handlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	next, err := ParseStatus(req.Status)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid status")
		return
	}

	h.transition(w, r, u, id, next)
}

// Cancel is sugar for the cancelled transition, kept as its own endpoint so
// callers don't have to know status spellings. Role rights are the same as
// the status endpoint: clients cancel their own bookings, admin staff any.
func (h Handlers) Cancel(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	h.transition(w, r, u, id, StatusCancelled)
}

func (h Handlers) transition(w http.ResponseWriter, r *http.Request, u *user.User, id string, next Status) {
	err := db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		b, err := GetForUpdate(r.Context(), tx, id)
		if err != nil {
			return err
		}
		if !b.visibleTo(u) {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
			return pgx.ErrTxCommitRollback
		}

		if !roleMaySet(u.Role, next) {
			api.WriteError(w, http.StatusForbidden, "FORBIDDEN", "role may not set this status")
			return pgx.ErrTxCommitRollback
		}
		if !CanTransition(b.Status, next) {
			api.WriteError(w, http.StatusConflict, "INVALID_STATUS_TRANSITION", "invalid status transition")
			return pgx.ErrTxCommitRollback
		}

		// A driver cannot start the pickup leg before assignment.
		if next == StatusPickedUp && !b.Assigned() {
			api.WriteError(w, http.StatusConflict, "DRIVER_NOT_ASSIGNED", "no driver assigned")
			return pgx.ErrTxCommitRollback
		}

		if err := UpdateStatus(r.Context(), tx, b.ID, next); err != nil {
			return err
		}

		// A finished booking has nothing left to track.
		if IsTerminal(next) {
			if err := track.Revoke(r.Context(), tx, b.ID); err != nil {
				return err
			}
		}

		return events.Insert(r.Context(), tx, b.ID, "STATUS_CHANGED", "Status changed", string(u.Role), time.Now(),
			map[string]any{"from": b.Status, "to": next})
	})
	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type assignDriverRequest struct {
	DriverID string `json:"driverId"`
}

// AssignDriver attaches an approved driver to an early-stage booking.
func (h Handlers) AssignDriver(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	var req assignDriverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DriverID == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "driverId is required")
		return
	}

	d, err := h.Users.GetByID(r.Context(), req.DriverID)
	if err != nil || d.Role != user.RoleDriver {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "driver not found")
		return
	}
	if !d.IsApproved() || !d.IsActive || d.IsSuspended {
		api.WriteError(w, http.StatusConflict, "DRIVER_UNAVAILABLE", "driver is not approved and active")
		return
	}

	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		b, err := GetForUpdate(r.Context(), tx, id)
		if err != nil {
			return err
		}

		if b.Status != StatusPending && b.Status != StatusAccepted {
			api.WriteError(w, http.StatusConflict, "ASSIGNMENT_TOO_LATE", "driver can only be assigned before pickup")
			return pgx.ErrTxCommitRollback
		}

		if err := AssignDriver(r.Context(), tx, b.ID, d.ID); err != nil {
			return err
		}

		bID := b.ID
		_ = audit.Insert(r.Context(), tx, u.ID, &bID, "DRIVER_ASSIGNED", map[string]any{"driverId": d.ID})
		return events.Insert(r.Context(), tx, b.ID, "DRIVER_ASSIGNED", "Driver assigned", string(u.Role), time.Now(),
			map[string]any{"driverId": d.ID})
	})
	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type overrideStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// OverrideStatus is the audited escape hatch: an admin may force a status
// outside the linear order, with a mandatory reason. Terminal bookings stay
// terminal even here.
func (h Handlers) OverrideStatus(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	var req overrideStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	if strings.TrimSpace(req.Reason) == "" {
		api.WriteError(w, http.StatusBadRequest, "OVERRIDE_REASON_REQUIRED", "reason is required")
		return
	}
	next, err := ParseStatus(req.Status)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid status")
		return
	}

	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		b, err := GetForUpdate(r.Context(), tx, id)
		if err != nil {
			return err
		}

		if IsTerminal(b.Status) {
			api.WriteError(w, http.StatusConflict, "INVALID_STATUS_TRANSITION", "booking is terminal")
			return pgx.ErrTxCommitRollback
		}
		if next == b.Status {
			api.WriteError(w, http.StatusConflict, "INVALID_STATUS_TRANSITION", "booking already in requested status")
			return pgx.ErrTxCommitRollback
		}

		if err := UpdateStatus(r.Context(), tx, b.ID, next); err != nil {
			return err
		}

		if IsTerminal(next) {
			if err := track.Revoke(r.Context(), tx, b.ID); err != nil {
				return err
			}
		}

		if err := adminaction.Insert(r.Context(), tx, b.ID, adminaction.ActionOverrideStatus, req.Reason, u.ID,
			map[string]any{"from": b.Status, "to": next}); err != nil {
			return err
		}

		bID := b.ID
		_ = audit.Insert(r.Context(), tx, u.ID, &bID, "STATUS_OVERRIDDEN", map[string]any{"from": b.Status, "to": next})
		return events.Insert(r.Context(), tx, b.ID, "STATUS_OVERRIDDEN", "Status overridden", string(u.Role), time.Now(),
			map[string]any{"from": b.Status, "to": next, "reason": req.Reason})
	})
	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
