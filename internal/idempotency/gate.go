// Package idempotency deduplicates guest order submissions keyed by a
// client-supplied Idempotency-Key header plus a content digest of the
// request body. Dedup here is a best-effort convenience: a duplicate
// order is a recoverable business error, losing the ability to take
// orders is not, so every storage fault makes the gate fail open.
package idempotency

import (
	"context"
	"log"
	"regexp"
	"time"
)

// Keys outside this pattern bypass the gate entirely (walk-in and
// other unkeyed requests).
var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

const conflictBody = `{"error":"Idempotency key conflict: request body differs"}`

// Record is one stored response, replayable until ExpiresAt.
type Record struct {
	Key            string
	RequestHash    string
	ResponseStatus int
	ResponseBody   []byte
	ExpiresAt      time.Time
}

// Store persists idempotency records. FindValidRecord returns nil for
// absent or expired keys. InsertRecord upserts on key so a fresh
// request supersedes an expired record.
type Store interface {
	FindValidRecord(ctx context.Context, key string) (*Record, error)
	InsertRecord(ctx context.Context, rec *Record) error
}

// Handler produces the side-effecting response the gate protects.
type Handler func() (status int, body []byte)

type Gate struct {
	store Store
	ttl   time.Duration
}

func NewGate(store Store, ttl time.Duration) *Gate {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Gate{store: store, ttl: ttl}
}

// ValidKey reports whether key passes the allow-list pattern.
func ValidKey(key string) bool { return keyPattern.MatchString(key) }

// Execute runs handler at most once per (key, requestHash) within the
// expiry window. A same-hash replay returns the stored response without
// re-executing; a different-hash reuse of a live key returns 409. Any
// store fault falls back to executing the handler without dedup.
func (g *Gate) Execute(ctx context.Context, key, requestHash string, handler Handler) (int, []byte) {
	if g == nil || g.store == nil || !ValidKey(key) {
		return handler()
	}

	rec, err := g.store.FindValidRecord(ctx, key)
	if err != nil {
		log.Printf("[idempotency] lookup failed for key %q, proceeding without dedup: %v", key, err)
		return handler()
	}
	if rec != nil {
		if rec.RequestHash != requestHash {
			return 409, []byte(conflictBody)
		}
		return rec.ResponseStatus, rec.ResponseBody
	}

	status, body := handler()
	if status >= 500 {
		// Infrastructure faults are not worth replaying; let the
		// client retry against a clean slate.
		return status, body
	}
	if err := g.store.InsertRecord(ctx, &Record{
		Key:            key,
		RequestHash:    requestHash,
		ResponseStatus: status,
		ResponseBody:   body,
		ExpiresAt:      time.Now().Add(g.ttl),
	}); err != nil {
		log.Printf("[idempotency] record insert failed for key %q: %v", key, err)
	}
	return status, body
}
