package order

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

const maxItems = 50

// LineItem is one line of a submitted order. The id references a menu
// item as "m-<int>" or a bare "<int>".
// swagger:model LineItem
type LineItem struct {
	ID       string          `json:"id"       example:"m-1"`
	Name     string          `json:"name"     example:"Pad Krapow Moo"`
	PriceTHB decimal.Decimal `json:"price_thb" example:"199"`
	Quantity int             `json:"quantity" example:"2"`
}

// Submission is the request payload for creating an order.
// swagger:model Submission
type Submission struct {
	Items     []LineItem      `json:"items"`
	Total     decimal.Decimal `json:"total" example:"448"`
	TableCode string          `json:"table_code" example:"T-07"`
}

// Validate checks the shape of the submission before any pricing logic
// runs. It returns an empty string when the payload is well formed.
func (s *Submission) Validate() string {
	if len(s.Items) == 0 {
		return "items cannot be empty"
	}
	if len(s.Items) > maxItems {
		return fmt.Sprintf("a maximum of %d items is allowed", maxItems)
	}
	for i, it := range s.Items {
		if it.ID == "" {
			return fmt.Sprintf("items[%d].id is required", i)
		}
		if it.Quantity < 1 {
			return fmt.Sprintf("items[%d].quantity must be at least 1", i)
		}
		if it.PriceTHB.IsNegative() {
			return fmt.Sprintf("items[%d].price_thb must not be negative", i)
		}
	}
	if !s.Total.IsPositive() {
		return "total must be greater than 0"
	}
	return ""
}

// Fingerprint returns a deterministic content digest of the submission.
// Prices and the total are normalized to two decimals so that
// semantically identical payloads hash identically.
func (s *Submission) Fingerprint() string {
	type canonicalItem struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Price    string `json:"price"`
		Quantity int    `json:"quantity"`
	}
	canonical := struct {
		Items     []canonicalItem `json:"items"`
		Total     string          `json:"total"`
		TableCode string          `json:"table_code"`
	}{
		Items:     make([]canonicalItem, 0, len(s.Items)),
		Total:     s.Total.StringFixed(2),
		TableCode: s.TableCode,
	}
	for _, it := range s.Items {
		canonical.Items = append(canonical.Items, canonicalItem{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.PriceTHB.StringFixed(2),
			Quantity: it.Quantity,
		})
	}
	raw, _ := json.Marshal(canonical)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// UpdateStatusRequest is the payload for the staff status change endpoint.
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status string `json:"status" example:"CONFIRMED"`
}
