package audit

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Insert records an admin-side action. bookingID is nil for actions that
// target users rather than bookings (approvals, suspensions).
func Insert(ctx context.Context, tx pgx.Tx, actorID string, bookingID *string, action string, metadata any) error {
	var s *string
	if metadata != nil {
		b, _ := json.Marshal(metadata)
		str := string(b)
		s = &str
	}
	const q = `
INSERT INTO audit_logs (actor_id, booking_id, action, metadata)
VALUES ($1, $2, $3, CAST($4 AS jsonb))
`
	_, err := tx.Exec(ctx, q, actorID, bookingID, action, s)
	return err
}

type Entry struct {
	ID        string  `json:"id"`
	ActorID   string  `json:"actorId"`
	BookingID *string `json:"bookingId,omitempty"`
	Action    string  `json:"action"`
	Metadata  any     `json:"metadata,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

func List(ctx context.Context, db *pgxpool.Pool, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	const q = `
SELECT id, actor_id, booking_id, action, COALESCE(metadata, '{}'::jsonb), created_at::text
FROM audit_logs
ORDER BY created_at DESC
LIMIT $1
`
	rows, err := db.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.ActorID, &e.BookingID, &e.Action, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
