package track

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TokenRecord struct {
	ID        string     `json:"id"`
	BookingID string     `json:"bookingId"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	RevokedAt *time.Time `json:"revokedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Issue creates a tracking token for a booking inside the caller's tx and
// returns the opaque token value.
func Issue(ctx context.Context, tx pgx.Tx, bookingID string, expiresAt time.Time) (string, error) {
	token := randomHex(32)
	const q = `
INSERT INTO track_tokens (booking_id, token, expires_at)
VALUES ($1, $2, $3)
`
	if _, err := tx.Exec(ctx, q, bookingID, token, expiresAt); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve maps an unexpired, unrevoked token to its booking id.
func Resolve(ctx context.Context, db *pgxpool.Pool, token string, now time.Time) (string, error) {
	const q = `
SELECT booking_id
FROM track_tokens
WHERE token = $1 AND revoked_at IS NULL AND expires_at > $2
`
	var bookingID string
	if err := db.QueryRow(ctx, q, token, now).Scan(&bookingID); err != nil {
		return "", err
	}
	return bookingID, nil
}

// Revoke disables all tracking links for a booking.
func Revoke(ctx context.Context, tx pgx.Tx, bookingID string) error {
	const q = `UPDATE track_tokens SET revoked_at = NOW() WHERE booking_id = $1 AND revoked_at IS NULL`
	_, err := tx.Exec(ctx, q, bookingID)
	return err
}

func randomHex(nBytes int) string {
	b := make([]byte, nBytes)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
