package inventory

import "time"

type Ingredient struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Unit string `json:"unit"`
	// NUMERIC -> string, fractional stock (kg, litres) is common
	Quantity          string    `json:"quantity"`
	LowStockThreshold string    `json:"low_stock_threshold"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// CreateIngredientRequest payload of creation.
// swagger:model CreateIngredientRequest
type CreateIngredientRequest struct {
	Name              string `json:"name"                example:"jasmine rice"`
	Unit              string `json:"unit"                example:"kg"`
	Quantity          string `json:"quantity"            example:"25.000"`
	LowStockThreshold string `json:"low_stock_threshold" example:"5.000"`
}

// AdjustRequest payload for a relative stock adjustment.
// swagger:model AdjustRequest
type AdjustRequest struct {
	Delta string `json:"delta" example:"-1.500"`
}
