package menu

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("menu item not found")
)

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Query struct {
	Q        string
	Category string
	Limit    int
	Offset   int
}

type Repository interface {
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id int64) (*Item, error)
	List(ctx context.Context, q Query) ([]Item, error)
	Update(ctx context.Context, it *Item, updatePrice bool) error
	Delete(ctx context.Context, id int64) (bool, error)
	GetPricesByIDs(ctx context.Context, ids []int64) (map[int64]decimal.Decimal, error)
}

type PGRepo struct{ db DBPool }

func NewPGRepo(db DBPool) *PGRepo { return &PGRepo{db: db} }

// GetPricesByIDs returns the current price for every available menu
// item in ids; an absent or unavailable id simply has no map entry.
func (r *PGRepo) GetPricesByIDs(ctx context.Context, ids []int64) (map[int64]decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, price_thb::text
		FROM menu_items
		WHERE id = ANY($1) AND available
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]decimal.Decimal, len(ids))
	for rows.Next() {
		var id int64
		var price string
		if err := rows.Scan(&id, &price); err != nil {
			return nil, err
		}
		d, err := decimal.NewFromString(price)
		if err != nil {
			return nil, err
		}
		out[id] = d
	}
	return out, rows.Err()
}

func (r *PGRepo) Create(ctx context.Context, it *Item) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.db.QueryRow(ctx, `
		INSERT INTO menu_items (name, description, price_thb, category, available, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,NOW(),NOW())
		RETURNING id, created_at, updated_at
	`, it.Name, it.Description, it.PriceTHB, it.Category, it.Available).Scan(&it.ID, &it.CreatedAt, &it.UpdatedAt)
}

func (r *PGRepo) GetByID(ctx context.Context, id int64) (*Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var it Item
	err := r.db.QueryRow(ctx, `
		SELECT id, name, description, price_thb::text, category, available, created_at, updated_at
		FROM menu_items WHERE id=$1
	`, id).Scan(&it.ID, &it.Name, &it.Description, &it.PriceTHB, &it.Category, &it.Available, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

func (r *PGRepo) List(ctx context.Context, q Query) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	limit := q.Limit
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	search := strings.TrimSpace(q.Q)

	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, price_thb::text, category, available, created_at, updated_at
		FROM menu_items
		WHERE ($1 = '' OR name ILIKE '%'||$1||'%' OR description ILIKE '%'||$1||'%')
		  AND ($2 = '' OR category = $2)
		ORDER BY category, name
		LIMIT $3 OFFSET $4
	`, search, q.Category, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.PriceTHB, &it.Category, &it.Available, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, it *Item, updatePrice bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if updatePrice {
		_, err := r.db.Exec(ctx, `
			UPDATE menu_items
			SET name = COALESCE(NULLIF($2,''), name),
			    description = COALESCE(NULLIF($3,''), description),
			    price_thb = $4,
			    category = COALESCE(NULLIF($5,''), category),
			    available = $6,
			    updated_at = NOW()
			WHERE id = $1
		`, it.ID, it.Name, it.Description, it.PriceTHB, it.Category, it.Available)
		return err
	}

	_, err := r.db.Exec(ctx, `
		UPDATE menu_items
		SET name = COALESCE(NULLIF($2,''), name),
		    description = COALESCE(NULLIF($3,''), description),
		    category = COALESCE(NULLIF($4,''), category),
		    available = $5,
		    updated_at = NOW()
		WHERE id = $1
	`, it.ID, it.Name, it.Description, it.Category, it.Available)
	return err
}

func (r *PGRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `DELETE FROM menu_items WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
