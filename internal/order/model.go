package order

import "time"

// Order statuses. An order is created PENDING; items and totals are
// immutable after creation, only the status moves.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

// legal status transitions, keyed by current status
var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID        string     `json:"id"`
	Items     []LineItem `json:"items"`
	Subtotal  string     `json:"subtotal"` // NUMERIC -> string
	Total     string     `json:"total"`    // NUMERIC -> string
	Status    string     `json:"status"`
	TableCode string     `json:"table_code,omitempty"`
	CreatedBy string     `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
