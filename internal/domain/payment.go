package domain

// Payment method constants.
const (
	MethodCard     = "CARD"
	MethodCash     = "CASH"
	MethodTransfer = "TRANSFER"
)

// Payment status constants as reported by the payment service.
const (
	PaymentStatusPaid   = "PAID"
	PaymentStatusFailed = "FAILED"
)

// ValidPaymentMethod reports whether m is an accepted payment method.
func ValidPaymentMethod(m string) bool {
	switch m {
	case MethodCard, MethodCash, MethodTransfer:
		return true
	}
	return false
}

// CardDetails carries the card fields attached to CARD payments only.
type CardDetails struct {
	CardNumber string `json:"cardNumber"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
	OwnerName  string `json:"ownerName"`
}

// Payment is a read-only projection fetched from the payment service.
type Payment struct {
	ID        int64  `json:"id"`
	OrderID   int64  `json:"orderId"`
	Amount    int64  `json:"amount"`
	Method    string `json:"method"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt,omitempty"`
}
