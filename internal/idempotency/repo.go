package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGStore struct{ db *pgxpool.Pool }

func NewPGStore(db *pgxpool.Pool) *PGStore { return &PGStore{db: db} }

func (s *PGStore) FindValidRecord(ctx context.Context, key string) (*Record, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rec Record
	err := s.db.QueryRow(ctx, `
    SELECT key, request_hash, response_status, response_body, expires_at
    FROM idempotency_records
    WHERE key = $1 AND expires_at > NOW()
  `, key).Scan(&rec.Key, &rec.RequestHash, &rec.ResponseStatus, &rec.ResponseBody, &rec.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// InsertRecord upserts on key. The unique constraint plus the upsert
// makes concurrent fresh-key submissions settle on one record, and
// lets a fresh request supersede an expired one.
func (s *PGStore) InsertRecord(ctx context.Context, rec *Record) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.db.Exec(ctx, `
    INSERT INTO idempotency_records (key, request_hash, response_status, response_body, expires_at)
    VALUES ($1,$2,$3,$4,$5)
    ON CONFLICT (key) DO UPDATE SET
      request_hash = EXCLUDED.request_hash,
      response_status = EXCLUDED.response_status,
      response_body = EXCLUDED.response_body,
      expires_at = EXCLUDED.expires_at
  `, rec.Key, rec.RequestHash, rec.ResponseStatus, rec.ResponseBody, rec.ExpiresAt)
	return err
}
