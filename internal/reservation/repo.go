package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("reservation not found")
)

type Repository interface {
	Create(ctx context.Context, res *Reservation) error
	GetByID(ctx context.Context, id string) (*Reservation, error)
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]Reservation, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, res *Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO reservations (id, name, phone, table_code, party_size, starts_at, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,NOW(),NOW())
	`, res.ID, res.Name, res.Phone, res.TableCode, res.PartySize, res.StartsAt, res.Status)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var res Reservation
	err := r.db.QueryRow(ctx, `
		SELECT id, name, phone, table_code, party_size, starts_at, status, created_at, updated_at
		FROM reservations WHERE id=$1
	`, id).Scan(&res.ID, &res.Name, &res.Phone, &res.TableCode, &res.PartySize, &res.StartsAt, &res.Status, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}

func (r *PGRepo) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, name, phone, table_code, party_size, starts_at, status, created_at, updated_at
		FROM reservations
		WHERE starts_at >= $1 AND status <> 'CANCELLED'
		ORDER BY starts_at
		LIMIT $2
	`, from, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Reservation
	for rows.Next() {
		var res Reservation
		if err := rows.Scan(&res.ID, &res.Name, &res.Phone, &res.TableCode, &res.PartySize, &res.StartsAt, &res.Status, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE reservations SET status=$2, updated_at=NOW() WHERE id=$1
	`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
