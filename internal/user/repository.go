package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const userColumns = `
id, name, email, COALESCE(phone,''), COALESCE(nrc,''), role, password_hash,
is_active, is_suspended, approval_status,
COALESCE(license_no,''), license_expiry,
COALESCE(car_wash_name,''), COALESCE(location,''), COALESCE(bays,0),
created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	u := &User{}
	if err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.NRC, &u.Role, &u.PasswordHash,
		&u.IsActive, &u.IsSuspended, &u.ApprovalStatus,
		&u.LicenseNo, &u.LicenseExpiry,
		&u.CarWashName, &u.Location, &u.Bays,
		&u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return u, nil
}

type CreateParams struct {
	Name           string
	Email          string
	Phone          string
	NRC            string
	Role           Role
	PasswordHash   string
	ApprovalStatus ApprovalStatus
	LicenseNo      string
	LicenseExpiry  *time.Time
	CarWashName    string
	Location       string
	Bays           int
}

func (r *Repository) Create(ctx context.Context, p CreateParams) (*User, error) {
	const q = `
INSERT INTO users (id, name, email, phone, nrc, role, password_hash, approval_status,
                   license_no, license_expiry, car_wash_name, location, bays)
VALUES ($1, $2, $3, NULLIF($4,''), NULLIF($5,''), $6, $7, $8,
        NULLIF($9,''), $10, NULLIF($11,''), NULLIF($12,''), NULLIF($13,0))
RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, q,
		uuid.NewString(), p.Name, p.Email, p.Phone, p.NRC, string(p.Role), p.PasswordHash,
		string(p.ApprovalStatus), p.LicenseNo, p.LicenseExpiry, p.CarWashName, p.Location, p.Bays,
	))
}

func (r *Repository) GetByID(ctx context.Context, id string) (*User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, q, id))
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	return scanUser(r.db.QueryRow(ctx, q, email))
}

func (r *Repository) ListByRole(ctx context.Context, role Role) ([]*User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, q, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *Repository) List(ctx context.Context) ([]*User, error) {
	const q = `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// GetForUpdate locks the user row for the duration of the surrounding tx.
// Approval decisions go through this so two admins cannot decide the same
// pending account twice.
func GetForUpdate(ctx context.Context, tx pgx.Tx, id string) (*User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1 FOR UPDATE`
	return scanUser(tx.QueryRow(ctx, q, id))
}

func SetApproval(ctx context.Context, tx pgx.Tx, id string, status ApprovalStatus) error {
	const q = `UPDATE users SET approval_status = $1, updated_at = NOW() WHERE id = $2`
	_, err := tx.Exec(ctx, q, string(status), id)
	return err
}

func (r *Repository) SetSuspended(ctx context.Context, id string, suspended bool) error {
	const q = `UPDATE users SET is_suspended = $1, updated_at = NOW() WHERE id = $2`
	ct, err := r.db.Exec(ctx, q, suspended, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) SetActive(ctx context.Context, id string, active bool) error {
	const q = `UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2`
	ct, err := r.db.Exec(ctx, q, active, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

type ProfileUpdate struct {
	Name  string
	Phone string
}

func (r *Repository) UpdateProfile(ctx context.Context, id string, p ProfileUpdate) (*User, error) {
	const q = `
UPDATE users
SET name = $1, phone = NULLIF($2,''), updated_at = NOW()
WHERE id = $3
RETURNING ` + userColumns
	return scanUser(r.db.QueryRow(ctx, q, p.Name, p.Phone, id))
}
