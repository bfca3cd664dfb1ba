package payment

import "time"

const (
	MethodCash      = "CASH"
	MethodCard      = "CARD"
	MethodPromptPay = "PROMPTPAY"
)

// ValidMethod reports whether m is an accepted payment method.
func ValidMethod(m string) bool {
	switch m {
	case MethodCash, MethodCard, MethodPromptPay:
		return true
	}
	return false
}

type Payment struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	AmountTHB  string    `json:"amount_thb"` // NUMERIC -> string
	Method     string    `json:"method"`
	ReceivedBy string    `json:"received_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreatePaymentRequest payload for recording a payment against an order.
// swagger:model CreatePaymentRequest
type CreatePaymentRequest struct {
	AmountTHB string `json:"amount_thb" example:"448.00"`
	Method    string `json:"method"     example:"CASH"`
}
