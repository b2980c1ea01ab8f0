package booking

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

const bookingColumns = `
id, client_id, car_wash_id, vehicle_id, service_id, driver_id,
status, payment_status, total_amount::text, pickup_location, COALESCE(notes,''),
created_at, updated_at`

func scanBooking(row pgx.Row) (*Booking, error) {
	b := &Booking{}
	if err := row.Scan(
		&b.ID, &b.ClientID, &b.CarWashID, &b.VehicleID, &b.ServiceID, &b.DriverID,
		&b.Status, &b.PaymentStatus, &b.TotalAmount, &b.PickupLocation, &b.Notes,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return b, nil
}

type CreateParams struct {
	ClientID       string
	CarWashID      string
	VehicleID      string
	ServiceID      string
	TotalAmount    decimal.Decimal
	PickupLocation string
	Notes          string
}

func Create(ctx context.Context, tx pgx.Tx, p CreateParams) (*Booking, error) {
	const q = `
INSERT INTO bookings (id, client_id, car_wash_id, vehicle_id, service_id,
                      status, payment_status, total_amount, pickup_location, notes)
VALUES ($1, $2, $3, $4, $5, 'pending', 'pending', $6, $7, NULLIF($8,''))
RETURNING ` + bookingColumns
	return scanBooking(tx.QueryRow(ctx, q,
		uuid.NewString(), p.ClientID, p.CarWashID, p.VehicleID, p.ServiceID,
		p.TotalAmount, p.PickupLocation, p.Notes,
	))
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(r.db.QueryRow(ctx, q, id))
}

func (r *Repository) list(ctx context.Context, q string, args ...any) ([]*Booking, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repository) ListByClient(ctx context.Context, clientID string) ([]*Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE client_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, q, clientID)
}

func (r *Repository) ListByDriver(ctx context.Context, driverID string) ([]*Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE driver_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, q, driverID)
}

func (r *Repository) ListByCarWash(ctx context.Context, carWashID string) ([]*Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE car_wash_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, q, carWashID)
}

func (r *Repository) ListAll(ctx context.Context) ([]*Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`
	return r.list(ctx, q)
}

// GetForUpdate locks the booking row for the duration of the surrounding tx.
// Every status transition goes through this lock, so two concurrent actors
// (say driver and admin) serialize instead of racing last-write-wins.
func GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (*Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`
	return scanBooking(tx.QueryRow(ctx, q, id))
}

func UpdateStatus(ctx context.Context, tx pgx.Tx, id string, next Status) error {
	const q = `UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2`
	_, err := tx.Exec(ctx, q, string(next), id)
	return err
}

func AssignDriver(ctx context.Context, tx pgx.Tx, id, driverID string) error {
	const q = `UPDATE bookings SET driver_id = $1, updated_at = NOW() WHERE id = $2`
	_, err := tx.Exec(ctx, q, driverID, id)
	return err
}

func SetPaymentStatus(ctx context.Context, tx pgx.Tx, id, paymentStatus string) error {
	const q = `UPDATE bookings SET payment_status = $1, updated_at = NOW() WHERE id = $2`
	_, err := tx.Exec(ctx, q, paymentStatus, id)
	return err
}
