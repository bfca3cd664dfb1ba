package idempotency

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	records   map[string]*Record
	findErr   error
	insertErr error
	inserts   int
}

func newMemStore() *memStore {
	return &memStore{records: map[string]*Record{}}
}

func (m *memStore) FindValidRecord(ctx context.Context, key string) (*Record, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	rec, ok := m.records[key]
	if !ok || !time.Now().Before(rec.ExpiresAt) {
		return nil, nil
	}
	return rec, nil
}

func (m *memStore) InsertRecord(ctx context.Context, rec *Record) error {
	m.inserts++
	if m.insertErr != nil {
		return m.insertErr
	}
	m.records[rec.Key] = rec
	return nil
}

func countingHandler(status int, body string, calls *int) Handler {
	return func() (int, []byte) {
		*calls++
		return status, []byte(body)
	}
}

func TestGate_ReplayReturnsStoredResponse(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	gate := NewGate(store, time.Hour)
	ctx := context.Background()

	calls := 0
	h := countingHandler(201, `{"id":"o-1"}`, &calls)

	status1, body1 := gate.Execute(ctx, "key-1", "hash-a", h)
	status2, body2 := gate.Execute(ctx, "key-1", "hash-a", h)

	require.Equal(t, 201, status1)
	assert.Equal(t, status1, status2)
	assert.Equal(t, body1, body2, "replay must be byte-identical")
	assert.Equal(t, 1, calls, "side effect must run exactly once")
}

func TestGate_DifferentHashConflicts(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	gate := NewGate(store, time.Hour)
	ctx := context.Background()

	calls := 0
	_, _ = gate.Execute(ctx, "key-1", "hash-a", countingHandler(201, `{"id":"o-1"}`, &calls))
	status, body := gate.Execute(ctx, "key-1", "hash-b", countingHandler(201, `{"id":"o-2"}`, &calls))

	assert.Equal(t, 409, status)
	assert.JSONEq(t, `{"error":"Idempotency key conflict: request body differs"}`, string(body))
	assert.Equal(t, 1, calls, "conflicting request must not execute the handler")
}

func TestGate_ExpiredRecordReExecutes(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	gate := NewGate(store, time.Hour)
	ctx := context.Background()

	store.records["key-1"] = &Record{
		Key:            "key-1",
		RequestHash:    "hash-a",
		ResponseStatus: 201,
		ResponseBody:   []byte(`{"id":"old"}`),
		ExpiresAt:      time.Now().Add(-time.Minute),
	}

	calls := 0
	status, body := gate.Execute(ctx, "key-1", "hash-a", countingHandler(201, `{"id":"new"}`, &calls))

	assert.Equal(t, 201, status)
	assert.Equal(t, `{"id":"new"}`, string(body))
	assert.Equal(t, 1, calls)
	// fresh record superseded the expired one
	assert.Equal(t, []byte(`{"id":"new"}`), store.records["key-1"].ResponseBody)
	assert.True(t, store.records["key-1"].ExpiresAt.After(time.Now()))
}

func TestGate_InvalidKeysBypass(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	gate := NewGate(store, time.Hour)
	ctx := context.Background()

	long := make([]byte, 65)
	for i := range long {
		long[i] = 'a'
	}

	for _, key := range []string{"", "has space", "bad!key", "ключ", string(long)} {
		calls := 0
		_, _ = gate.Execute(ctx, key, "hash-a", countingHandler(201, `{}`, &calls))
		_, _ = gate.Execute(ctx, key, "hash-a", countingHandler(201, `{}`, &calls))
		assert.Equal(t, 2, calls, "key %q must bypass dedup", key)
	}
	assert.Zero(t, store.inserts, "bypassed requests must not be persisted")
}

func TestGate_LookupFaultFailsOpen(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.findErr = errors.New("db down")
	gate := NewGate(store, time.Hour)

	calls := 0
	status, body := gate.Execute(context.Background(), "key-1", "hash-a", countingHandler(201, `{"id":"o-1"}`, &calls))

	assert.Equal(t, 201, status)
	assert.Equal(t, `{"id":"o-1"}`, string(body))
	assert.Equal(t, 1, calls)
}

func TestGate_InsertFaultStillReturnsResult(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.insertErr = errors.New("db down")
	gate := NewGate(store, time.Hour)

	calls := 0
	status, _ := gate.Execute(context.Background(), "key-1", "hash-a", countingHandler(201, `{"id":"o-1"}`, &calls))
	assert.Equal(t, 201, status)

	// the record never made it in, so a retry executes again
	status, _ = gate.Execute(context.Background(), "key-1", "hash-a", countingHandler(201, `{"id":"o-1"}`, &calls))
	assert.Equal(t, 201, status)
	assert.Equal(t, 2, calls)
}

func TestGate_ServerErrorsAreNotRecorded(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	gate := NewGate(store, time.Hour)
	ctx := context.Background()

	calls := 0
	status, _ := gate.Execute(ctx, "key-1", "hash-a", countingHandler(500, `{"error":"internal error"}`, &calls))
	require.Equal(t, 500, status)
	assert.Zero(t, store.inserts)

	// retry after the fault executes the handler again
	status, _ = gate.Execute(ctx, "key-1", "hash-a", countingHandler(201, `{"id":"o-1"}`, &calls))
	assert.Equal(t, 201, status)
	assert.Equal(t, 2, calls)
}

func TestGate_NilGateExecutesDirectly(t *testing.T) {
	t.Parallel()

	var gate *Gate
	calls := 0
	status, _ := gate.Execute(context.Background(), "key-1", "hash-a", countingHandler(201, `{}`, &calls))
	assert.Equal(t, 201, status)
	assert.Equal(t, 1, calls)
}

func TestValidKey(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidKey("abc-DEF_123"))
	assert.True(t, ValidKey("a"))
	assert.False(t, ValidKey(""))
	assert.False(t, ValidKey("a b"))
	assert.False(t, ValidKey("a!b"))
}
