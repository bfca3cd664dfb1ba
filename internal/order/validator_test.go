package order

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func item(id, price string, qty int) LineItem {
	return LineItem{ID: id, Name: "item " + id, PriceTHB: d(price), Quantity: qty}
}

func TestValidateTotal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		items []LineItem
		total string
		want  bool
	}{
		{
			name:  "exact integer sum",
			items: []LineItem{item("m-1", "199", 1), item("m-2", "249", 1)},
			total: "448",
			want:  true,
		},
		{
			name:  "quantity multiplies price",
			items: []LineItem{item("m-1", "60.50", 3)},
			total: "181.50",
			want:  true,
		},
		{
			name:  "declared total rounded to two decimals",
			items: []LineItem{item("m-1", "1.005", 1)},
			total: "1.01",
			want:  true,
		},
		{
			name:  "off by one satang",
			items: []LineItem{item("m-1", "199", 1), item("m-2", "249", 1)},
			total: "448.01",
			want:  false,
		},
		{
			name:  "wildly wrong total",
			items: []LineItem{item("m-1", "199", 1), item("m-2", "249", 1)},
			total: "1",
			want:  false,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ValidateTotal(tt.items, d(tt.total)))
		})
	}
}

// Perturbing any single item while holding the total fixed must flip a
// previously exact match to false.
func TestValidateTotal_PerturbationFlips(t *testing.T) {
	t.Parallel()

	items := []LineItem{item("m-1", "199", 2), item("m-2", "80.25", 1)}
	total := d("478.25")
	require.True(t, ValidateTotal(items, total))

	bumpPrice := []LineItem{item("m-1", "199.01", 2), item("m-2", "80.25", 1)}
	assert.False(t, ValidateTotal(bumpPrice, total))

	bumpQty := []LineItem{item("m-1", "199", 3), item("m-2", "80.25", 1)}
	assert.False(t, ValidateTotal(bumpQty, total))
}

func TestParseItemID(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		in   string
		want int64
		ok   bool
	}{
		{"m-1", 1, true},
		{"m-042", 42, true},
		{"7", 7, true},
		{"", 0, false},
		{"m-", 0, false},
		{"x-1", 0, false},
		{"m-1x", 0, false},
		{"-1", 0, false},
	} {
		got, ok := ParseItemID(tt.in)
		assert.Equal(t, tt.ok, ok, "id %q", tt.in)
		if ok {
			assert.Equal(t, tt.want, got, "id %q", tt.in)
		}
	}
}

type stubPrices struct {
	prices  map[int64]decimal.Decimal
	err     error
	calls   int
	lastIDs []int64
}

func (s *stubPrices) GetPricesByIDs(ctx context.Context, ids []int64) (map[int64]decimal.Decimal, error) {
	s.calls++
	s.lastIDs = ids
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[int64]decimal.Decimal, len(ids))
	for _, id := range ids {
		if p, ok := s.prices[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func TestValidateAgainstMenu_Valid(t *testing.T) {
	t.Parallel()

	src := &stubPrices{prices: map[int64]decimal.Decimal{1: d("199"), 2: d("249")}}
	v := ValidateAgainstMenu(context.Background(), src, []LineItem{
		item("m-1", "199", 1),
		item("2", "249", 2), // bare numeric id is accepted too
	})
	assert.True(t, v.Valid)
	assert.Empty(t, v.Err)
}

func TestValidateAgainstMenu_InvalidID(t *testing.T) {
	t.Parallel()

	src := &stubPrices{prices: map[int64]decimal.Decimal{1: d("199")}}
	v := ValidateAgainstMenu(context.Background(), src, []LineItem{
		item("m-1", "199", 1),
		item("soup", "50", 1),
	})
	assert.False(t, v.Valid)
	assert.Equal(t, "Invalid item ID: soup", v.Err)
	assert.Zero(t, src.calls, "menu store must not be queried when an id does not parse")
}

func TestValidateAgainstMenu_ItemNotFound(t *testing.T) {
	t.Parallel()

	src := &stubPrices{prices: map[int64]decimal.Decimal{1: d("199")}}
	v := ValidateAgainstMenu(context.Background(), src, []LineItem{item("m-9", "10", 1)})
	assert.False(t, v.Valid)
	assert.Equal(t, "Item not found: m-9", v.Err)
}

// A client claiming 99 for an item priced 199 must be rejected even
// when the declared total matches the claimed price.
func TestValidateAgainstMenu_PriceTamper(t *testing.T) {
	t.Parallel()

	src := &stubPrices{prices: map[int64]decimal.Decimal{1: d("199")}}
	v := ValidateAgainstMenu(context.Background(), src, []LineItem{item("m-1", "99", 1)})
	assert.False(t, v.Valid)
	assert.Equal(t, "Price mismatch for m-1: expected 199.00", v.Err)
}

func TestValidateAgainstMenu_PriceComparedAtTwoDecimals(t *testing.T) {
	t.Parallel()

	src := &stubPrices{prices: map[int64]decimal.Decimal{1: d("199.00")}}
	v := ValidateAgainstMenu(context.Background(), src, []LineItem{item("m-1", "199", 1)})
	assert.True(t, v.Valid)
}

func TestValidateAgainstMenu_StoreError(t *testing.T) {
	t.Parallel()

	src := &stubPrices{err: errors.New("connection refused")}
	v := ValidateAgainstMenu(context.Background(), src, []LineItem{item("m-1", "199", 1)})
	assert.False(t, v.Valid)
	assert.Equal(t, "Menu validation failed", v.Err)
}

func TestValidateAgainstMenu_BatchesDistinctIDs(t *testing.T) {
	t.Parallel()

	src := &stubPrices{prices: map[int64]decimal.Decimal{1: d("55")}}
	v := ValidateAgainstMenu(context.Background(), src, []LineItem{
		item("m-1", "55", 1),
		item("m-1", "55", 2),
		item("1", "55", 1),
	})
	assert.True(t, v.Valid)
	assert.Equal(t, 1, src.calls)
	assert.Equal(t, []int64{1}, src.lastIDs)
}

func TestSubmissionValidate(t *testing.T) {
	t.Parallel()

	ok := Submission{Items: []LineItem{item("m-1", "199", 1)}, Total: d("199")}
	assert.Empty(t, ok.Validate())

	empty := Submission{Total: d("1")}
	assert.Equal(t, "items cannot be empty", empty.Validate())

	tooMany := Submission{Total: d("1")}
	for i := 0; i < 51; i++ {
		tooMany.Items = append(tooMany.Items, item("m-1", "1", 1))
	}
	assert.Contains(t, tooMany.Validate(), "maximum of 50 items")

	zeroQty := Submission{Items: []LineItem{item("m-1", "199", 0)}, Total: d("199")}
	assert.Equal(t, "items[0].quantity must be at least 1", zeroQty.Validate())

	zeroTotal := Submission{Items: []LineItem{item("m-1", "199", 1)}}
	assert.Equal(t, "total must be greater than 0", zeroTotal.Validate())
}

func TestSubmissionFingerprint(t *testing.T) {
	t.Parallel()

	a := Submission{Items: []LineItem{item("m-1", "199", 1)}, Total: d("199"), TableCode: "T-07"}
	b := Submission{Items: []LineItem{item("m-1", "199.00", 1)}, Total: d("199.00"), TableCode: "T-07"}
	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "equivalent payloads must hash identically")

	c := Submission{Items: []LineItem{item("m-1", "199", 2)}, Total: d("398"), TableCode: "T-07"}
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())

	dsub := Submission{Items: []LineItem{item("m-1", "199", 1)}, Total: d("199"), TableCode: "T-08"}
	assert.NotEqual(t, a.Fingerprint(), dsub.Fingerprint())
}
