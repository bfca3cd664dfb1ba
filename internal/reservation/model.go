package reservation

import "time"

const (
	StatusBooked    = "BOOKED"
	StatusSeated    = "SEATED"
	StatusCancelled = "CANCELLED"
)

// ValidStatus reports whether s is a known reservation status.
func ValidStatus(s string) bool {
	switch s {
	case StatusBooked, StatusSeated, StatusCancelled:
		return true
	}
	return false
}

type Reservation struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	TableCode string    `json:"table_code,omitempty"`
	PartySize int       `json:"party_size"`
	StartsAt  time.Time `json:"starts_at"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateReservationRequest payload of creation.
// swagger:model CreateReservationRequest
type CreateReservationRequest struct {
	Name      string    `json:"name"       example:"Khun Nok"`
	Phone     string    `json:"phone"      example:"+66812345678"`
	TableCode string    `json:"table_code" example:"T-07"`
	PartySize int       `json:"party_size" example:"4"`
	StartsAt  time.Time `json:"starts_at"`
}
