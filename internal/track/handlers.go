package track

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MS0C54073/CarWashApp-sub001/internal/api"
	"github.com/MS0C54073/CarWashApp-sub001/internal/events"
)

type Handlers struct {
	DB *pgxpool.Pool
}

// BookingView is the public projection of a booking: enough to follow the
// wash, nothing that identifies other parties.
type BookingView struct {
	BookingID     string `json:"bookingId"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
	CarWashName   string `json:"carWashName"`
	ServiceName   string `json:"serviceName"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

func (h Handlers) View(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing token")
		return
	}

	const q = `
SELECT b.id, b.status, b.payment_status, COALESCE(cw.car_wash_name, cw.name), s.name,
       b.created_at::text, b.updated_at::text
FROM track_tokens t
JOIN bookings b ON b.id = t.booking_id
JOIN users cw ON cw.id = b.car_wash_id
JOIN services s ON s.id = b.service_id
WHERE t.token = $1 AND t.revoked_at IS NULL AND t.expires_at > $2
`
	var v BookingView
	if err := h.DB.QueryRow(r.Context(), q, token, time.Now()).Scan(
		&v.BookingID, &v.Status, &v.PaymentStatus, &v.CarWashName, &v.ServiceName,
		&v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "tracking link not found")
		return
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{"booking": v})
}

func (h Handlers) Events(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		api.WriteError(w, http.StatusBadRequest, "VALIDATION_FAILED", "missing token")
		return
	}

	bookingID, err := Resolve(r.Context(), h.DB, token, time.Now())
	if err != nil {
		api.WriteError(w, http.StatusNotFound, "NOT_FOUND", "tracking link not found")
		return
	}

	evs, err := events.ListByBooking(r.Context(), h.DB, bookingID)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	if evs == nil {
		evs = []events.Event{}
	}

	api.WriteJSON(w, http.StatusOK, map[string]any{"items": evs})
}
