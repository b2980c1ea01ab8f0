package service

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

const serviceColumns = `
id, car_wash_id, name, COALESCE(description,''), price::text, is_active, created_at, updated_at`

func scanService(row pgx.Row) (*Service, error) {
	s := &Service{}
	if err := row.Scan(
		&s.ID, &s.CarWashID, &s.Name, &s.Description, &s.Price, &s.IsActive,
		&s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return s, nil
}

type CreateParams struct {
	CarWashID   string
	Name        string
	Description string
	Price       decimal.Decimal
}

func (r *Repository) Create(ctx context.Context, p CreateParams) (*Service, error) {
	const q = `
INSERT INTO services (id, car_wash_id, name, description, price)
VALUES ($1, $2, $3, NULLIF($4,''), $5)
RETURNING ` + serviceColumns
	return scanService(r.db.QueryRow(ctx, q, uuid.NewString(), p.CarWashID, p.Name, p.Description, p.Price))
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Service, error) {
	const q = `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`
	return scanService(r.db.QueryRow(ctx, q, id))
}

func (r *Repository) ListByCarWash(ctx context.Context, carWashID string, activeOnly bool) ([]*Service, error) {
	q := `SELECT ` + serviceColumns + ` FROM services WHERE car_wash_id = $1`
	if activeOnly {
		q += ` AND is_active`
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q, carWashID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repository) CountActive(ctx context.Context, carWashID string) (int, error) {
	const q = `SELECT COUNT(*) FROM services WHERE car_wash_id = $1 AND is_active`
	var n int
	if err := r.db.QueryRow(ctx, q, carWashID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

type UpdateParams struct {
	Name        string
	Description string
	Price       decimal.Decimal
}

func (r *Repository) Update(ctx context.Context, carWashID, id string, p UpdateParams) (*Service, error) {
	const q = `
UPDATE services
SET name = $1, description = NULLIF($2,''), price = $3, updated_at = NOW()
WHERE car_wash_id = $4 AND id = $5
RETURNING ` + serviceColumns
	return scanService(r.db.QueryRow(ctx, q, p.Name, p.Description, p.Price, carWashID, id))
}

func (r *Repository) SetActive(ctx context.Context, carWashID, id string, active bool) error {
	const q = `UPDATE services SET is_active = $1, updated_at = NOW() WHERE car_wash_id = $2 AND id = $3`
	ct, err := r.db.Exec(ctx, q, active, carWashID, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
