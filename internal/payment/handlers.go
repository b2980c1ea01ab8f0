package payment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/MS0C54073/CarWashApp-sub001/internal/api"
	"github.com/MS0C54073/CarWashApp-sub001/internal/audit"
	"github.com/MS0C54073/CarWashApp-sub001/internal/booking"
	"github.com/MS0C54073/CarWashApp-sub001/internal/events"
	"github.com/MS0C54073/CarWashApp-sub001/internal/user"
	"github.com/MS0C54073/CarWashApp-sub001/pkg/db"
)

type Handlers struct {
	DB   *pgxpool.Pool
	Repo *Repository
}

type createRequest struct {
	Method        string `json:"method"`
	TransactionID string `json:"transactionId"`
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Create records the settlement for a booking. Amount is always the booking
// total; the payment engine is independent of the status lifecycle.
func (h Handlers) Create(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	// Settlement is initiated by the paying client or by admin staff.
	switch u.Role {
	case user.RoleClient, user.RoleAdmin, user.RoleSubadmin:
	default:
		api.WriteError(w, http.StatusForbidden, "FORBIDDEN", "role may not record payments")
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	method, err := ParseMethod(strings.TrimSpace(req.Method))
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid payment method")
		return
	}

	var created *Payment
	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		b, err := booking.GetForUpdate(r.Context(), tx, bookingID)
		if err != nil {
			return err
		}
		if u.Role == user.RoleClient && b.ClientID != u.ID {
			api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
			return pgx.ErrTxCommitRollback
		}

		exists, err := ExistsForBooking(r.Context(), tx, b.ID)
		if err != nil {
			return err
		}
		if exists {
			api.WriteError(w, http.StatusConflict, "PAYMENT_EXISTS", "payment already recorded for booking")
			return pgx.ErrTxCommitRollback
		}

		amount, err := decimal.NewFromString(b.TotalAmount)
		if err != nil {
			return err
		}

		created, err = Create(r.Context(), tx, b.ID, amount, method, strings.TrimSpace(req.TransactionID))
		if err != nil {
			return err
		}

		_ = events.Insert(r.Context(), tx, b.ID, "PAYMENT_INITIATED", "Payment initiated", string(u.Role), time.Now(),
			map[string]any{"paymentId": created.ID, "method": method})
		return nil
	})
	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		// A concurrent insert slipping past the existence check lands on the
		// unique booking_id index; report it as the same conflict.
		if isUniqueViolation(err) {
			api.WriteError(w, http.StatusConflict, "PAYMENT_EXISTS", "payment already recorded for booking")
			return
		}
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "booking not found")
		return
	}

	api.WriteJSON(w, http.StatusCreated, map[string]any{"payment": created})
}

// GetForBooking returns the settlement record for one booking, scoped the
// same way as booking reads.
func (h Handlers) GetForBooking(w http.ResponseWriter, r *http.Request) {
	u := api.UserFromContext(r.Context())
	if u == nil {
		api.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user identity")
		return
	}

	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing id")
		return
	}

	p, err := h.Repo.GetByBooking(r.Context(), bookingID)
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "payment not found")
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{"payment": p})
}

type setStatusRequest struct {
	Status        string `json:"status"`
	TransactionID string `json:"transactionId"`
}

// SetStatus is the admin settlement endpoint. The booking's payment_status
// column mirrors the payment row inside the same tx.
func (h Handlers) SetStatus(w http.ResponseWriter, r *http.Request) {
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

	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid json")
		return
	}
	next, err := ParseStatus(req.Status)
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "invalid payment status")
		return
	}

	err = db.WithTx(r.Context(), h.DB, func(tx pgx.Tx) error {
		p, err := GetForUpdate(r.Context(), tx, id)
		if err != nil {
			return err
		}

		if !CanTransition(p.Status, next) {
			api.WriteError(w, http.StatusConflict, "INVALID_PAYMENT_TRANSITION", "invalid payment status transition")
			return pgx.ErrTxCommitRollback
		}

		if err := UpdateStatus(r.Context(), tx, p.ID, next, strings.TrimSpace(req.TransactionID)); err != nil {
			return err
		}
		if err := booking.SetPaymentStatus(r.Context(), tx, p.BookingID, string(next)); err != nil {
			return err
		}

		bID := p.BookingID
		_ = audit.Insert(r.Context(), tx, u.ID, &bID, "PAYMENT_STATUS_CHANGED",
			map[string]any{"paymentId": p.ID, "from": p.Status, "to": next})
		_ = events.Insert(r.Context(), tx, p.BookingID, "PAYMENT_STATUS_CHANGED", "Payment status changed", string(u.Role), time.Now(),
			map[string]any{"paymentId": p.ID, "from": p.Status, "to": next})
		return nil
	})
	if err != nil {
		if err == pgx.ErrTxCommitRollback {
			return
		}
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "payment not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
