package payment

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	ListByOrder(ctx context.Context, orderID string) ([]Payment, error)
	TotalPaid(ctx context.Context, orderID string) (decimal.Decimal, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, p *Payment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO payments (id, order_id, amount_thb, method, received_by, created_at)
		VALUES ($1,$2,$3,$4,$5,NOW())
	`, p.ID, p.OrderID, p.AmountTHB, p.Method, p.ReceivedBy)
	return err
}

func (r *PGRepo) ListByOrder(ctx context.Context, orderID string) ([]Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, order_id, amount_thb::text, method, received_by, created_at
		FROM payments WHERE order_id=$1
		ORDER BY created_at
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.OrderID, &p.AmountTHB, &p.Method, &p.ReceivedBy, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) TotalPaid(ctx context.Context, orderID string) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var total string
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount_thb), 0)::text FROM payments WHERE order_id=$1
	`, orderID).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(total)
}
