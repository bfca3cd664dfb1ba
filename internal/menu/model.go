package menu

import "time"

type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// We store price as a string to avoid rounding errors (NUMERIC in Postgres)
	PriceTHB  string    `json:"price_thb"`
	Category  string    `json:"category,omitempty"`
	Available bool      `json:"available"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateItemRequest payload of creation.
// swagger:model CreateItemRequest
type CreateItemRequest struct {
	Name        string `json:"name"        example:"Tom Yum Goong"`
	Description string `json:"description" example:"spicy shrimp soup"`
	PriceTHB    string `json:"price_thb"   example:"249.00"`
	Category    string `json:"category"    example:"soup"`
	Available   *bool  `json:"available"`
}

// UpdateItemRequest payload of partial update.
// swagger:model UpdateItemRequest
type UpdateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceTHB    string `json:"price_thb"`
	Category    string `json:"category"`
	Available   *bool  `json:"available"`
}
