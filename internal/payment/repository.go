package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const paymentColumns = `
id, booking_id, amount::text, method, status, COALESCE(transaction_id,''), created_at, updated_at`

func scanPayment(row pgx.Row) (*Payment, error) {
	p := &Payment{}
	if err := row.Scan(
		&p.ID, &p.BookingID, &p.Amount, &p.Method, &p.Status, &p.TransactionID,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts the settlement record for a booking. The unique index on
// booking_id keeps payments one-to-one with bookings.
func Create(ctx context.Context, tx pgx.Tx, bookingID string, amount decimal.Decimal, method Method, transactionID string) (*Payment, error) {
	const q = `
INSERT INTO payments (id, booking_id, amount, method, status, transaction_id)
VALUES ($1, $2, $3, $4, 'pending', NULLIF($5,''))
RETURNING ` + paymentColumns
	return scanPayment(tx.QueryRow(ctx, q, uuid.NewString(), bookingID, amount, string(method), transactionID))
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Payment, error) {
	const q = `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return scanPayment(r.db.QueryRow(ctx, q, id))
}

func (r *Repository) GetByBooking(ctx context.Context, bookingID string) (*Payment, error) {
	const q = `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1`
	return scanPayment(r.db.QueryRow(ctx, q, bookingID))
}

// ExistsForBooking reports whether a settlement row is already recorded,
// read under the caller's tx so the check and the insert share one snapshot.
func ExistsForBooking(ctx context.Context, tx pgx.Tx, bookingID string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM payments WHERE booking_id = $1)`
	var exists bool
	err := tx.QueryRow(ctx, q, bookingID).Scan(&exists)
	return exists, err
}

func GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (*Payment, error) {
	const q = `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1 FOR UPDATE`
	return scanPayment(tx.QueryRow(ctx, q, id))
}

func UpdateStatus(ctx context.Context, tx pgx.Tx, id string, next Status, transactionID string) error {
	const q = `
UPDATE payments
SET status = $1, transaction_id = COALESCE(NULLIF($2,''), transaction_id), updated_at = NOW()
WHERE id = $3
`
	_, err := tx.Exec(ctx, q, string(next), transactionID, id)
	return err
}
