package order

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"
)

// Menu item ids arrive as "m-<int>" from the QR menu UI or as a bare
// "<int>" from the staff terminal.
var itemIDPattern = regexp.MustCompile(`^(?:m-)?([0-9]+)$`)

// PriceSource is the read-only view of the menu store the validator
// needs. An absent id produces an absent map entry, not an error.
type PriceSource interface {
	GetPricesByIDs(ctx context.Context, ids []int64) (map[int64]decimal.Decimal, error)
}

// MenuValidation is the outcome of validating submitted items against
// the live menu.
type MenuValidation struct {
	Valid bool
	Err   string
}

func round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// ValidateTotal reports whether the declared total equals the sum of
// price*quantity over all items, with both sides rounded to two
// decimals. There is no tolerance beyond the rounding itself.
func ValidateTotal(items []LineItem, declared decimal.Decimal) bool {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.PriceTHB.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return round2(declared).Equal(round2(sum))
}

// ParseItemID extracts the numeric menu id from an item id string.
func ParseItemID(id string) (int64, bool) {
	m := itemIDPattern.FindStringSubmatch(id)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ValidateAgainstMenu checks every submitted item against the
// authoritative menu prices: the id must parse, the menu item must
// exist, and the client-declared price must equal the menu price at
// two-decimal precision. Clients never get to self-report prices.
//
// Callers must run ValidateTotal first; an internally inconsistent
// total is rejected before the menu store is queried at all.
func ValidateAgainstMenu(ctx context.Context, src PriceSource, items []LineItem) MenuValidation {
	parsed := make([]int64, len(items))
	seen := make(map[int64]bool)
	var ids []int64
	for i, it := range items {
		n, ok := ParseItemID(it.ID)
		if !ok {
			return MenuValidation{Err: fmt.Sprintf("Invalid item ID: %s", it.ID)}
		}
		parsed[i] = n
		if !seen[n] {
			seen[n] = true
			ids = append(ids, n)
		}
	}

	prices, err := src.GetPricesByIDs(ctx, ids)
	if err != nil {
		log.Printf("[order] menu price lookup failed: %v", err)
		return MenuValidation{Err: "Menu validation failed"}
	}

	for i, it := range items {
		menuPrice, ok := prices[parsed[i]]
		if !ok {
			return MenuValidation{Err: fmt.Sprintf("Item not found: %s", it.ID)}
		}
		if !round2(it.PriceTHB).Equal(round2(menuPrice)) {
			return MenuValidation{Err: fmt.Sprintf("Price mismatch for %s: expected %s", it.ID, round2(menuPrice).StringFixed(2))}
		}
	}
	return MenuValidation{Valid: true}
}
