package vehicle

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

type CreateParams struct {
	ClientID string
	Make     string
	Model    string
	PlateNo  string
	Color    string
}

func (r *Repository) Create(ctx context.Context, p CreateParams) (*Vehicle, error) {
	const q = `
INSERT INTO vehicles (id, client_id, make, model, plate_no, color)
VALUES ($1, $2, $3, $4, $5, NULLIF($6,''))
RETURNING id, client_id, make, model, plate_no, COALESCE(color,''), created_at
`
	v := &Vehicle{}
	if err := r.db.QueryRow(ctx, q, uuid.NewString(), p.ClientID, p.Make, p.Model, p.PlateNo, p.Color).Scan(
		&v.ID, &v.ClientID, &v.Make, &v.Model, &v.PlateNo, &v.Color, &v.CreatedAt,
	); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Vehicle, error) {
	const q = `
SELECT id, client_id, make, model, plate_no, COALESCE(color,''), created_at
FROM vehicles
WHERE id = $1
`
	v := &Vehicle{}
	if err := r.db.QueryRow(ctx, q, id).Scan(
		&v.ID, &v.ClientID, &v.Make, &v.Model, &v.PlateNo, &v.Color, &v.CreatedAt,
	); err != nil {
		return nil, err
	}
	return v, nil
}

func (r *Repository) ListByClient(ctx context.Context, clientID string) ([]*Vehicle, error) {
	const q = `
SELECT id, client_id, make, model, plate_no, COALESCE(color,''), created_at
FROM vehicles
WHERE client_id = $1
ORDER BY created_at DESC
`
	rows, err := r.db.Query(ctx, q, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Vehicle
	for rows.Next() {
		v := &Vehicle{}
		if err := rows.Scan(&v.ID, &v.ClientID, &v.Make, &v.Model, &v.PlateNo, &v.Color, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
