package adminaction

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
)

// Insert records an override-style action with its mandatory reason. These
// rows are the escape-hatch trail: anything that bypassed the normal
// transition guard must appear here.
func Insert(ctx context.Context, tx pgx.Tx, bookingID string, actionType ActionType, reason, actorID string, metadata any) error {
	var s *string
	if metadata != nil {
		b, _ := json.Marshal(metadata)
		str := string(b)
		s = &str
	}
	const q = `
INSERT INTO admin_actions (booking_id, action_type, reason, actor_id, metadata)
VALUES ($1, $2, $3, $4, CAST($5 AS jsonb))
`
	_, err := tx.Exec(ctx, q, bookingID, string(actionType), reason, actorID, s)
	return err
}
