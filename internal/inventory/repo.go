package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound     = errors.New("ingredient not found")
	ErrInsufficient = errors.New("insufficient stock")
)

type Repository interface {
	Create(ctx context.Context, ing *Ingredient) error
	GetByID(ctx context.Context, id int64) (*Ingredient, error)
	List(ctx context.Context) ([]Ingredient, error)
	Adjust(ctx context.Context, id int64, delta string) (*Ingredient, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, ing *Ingredient) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.db.QueryRow(ctx, `
		INSERT INTO ingredients (name, unit, quantity, low_stock_threshold, created_at, updated_at)
		VALUES ($1,$2,$3,$4,NOW(),NOW())
		RETURNING id, created_at, updated_at
	`, ing.Name, ing.Unit, ing.Quantity, ing.LowStockThreshold).Scan(&ing.ID, &ing.CreatedAt, &ing.UpdatedAt)
}

func (r *PGRepo) GetByID(ctx context.Context, id int64) (*Ingredient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var ing Ingredient
	err := r.db.QueryRow(ctx, `
		SELECT id, name, unit, quantity::text, low_stock_threshold::text, created_at, updated_at
		FROM ingredients WHERE id=$1
	`, id).Scan(&ing.ID, &ing.Name, &ing.Unit, &ing.Quantity, &ing.LowStockThreshold, &ing.CreatedAt, &ing.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ing, nil
}

func (r *PGRepo) List(ctx context.Context) ([]Ingredient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, unit, quantity::text, low_stock_threshold::text, created_at, updated_at
		FROM ingredients ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Ingredient
	for rows.Next() {
		var ing Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.Unit, &ing.Quantity, &ing.LowStockThreshold, &ing.CreatedAt, &ing.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, ing)
	}
	return out, rows.Err()
}

// Adjust applies a relative delta; the WHERE clause rejects any change
// that would push the stock below zero.
func (r *PGRepo) Adjust(ctx context.Context, id int64, delta string) (*Ingredient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var ing Ingredient
	err := r.db.QueryRow(ctx, `
		UPDATE ingredients
		SET quantity = quantity + $2, updated_at = NOW()
		WHERE id = $1 AND quantity + $2 >= 0
		RETURNING id, name, unit, quantity::text, low_stock_threshold::text, created_at, updated_at
	`, id, delta).Scan(&ing.ID, &ing.Name, &ing.Unit, &ing.Quantity, &ing.LowStockThreshold, &ing.CreatedAt, &ing.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// either the row is missing or the delta would go negative
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return nil, ErrNotFound
			}
			return nil, ErrInsufficient
		}
		return nil, err
	}
	return &ing, nil
}

func (r *PGRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM ingredients WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
