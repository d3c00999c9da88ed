package domain

// Order status constants as reported by the order service.
const (
	OrderStatusCreated   = "CREATED"
	OrderStatusPaid      = "PAID"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusCancelled = "CANCELLED"
)

// Order is a read-only projection fetched from the order service; the
// dashboard consumes but never owns it.
type Order struct {
	ID         int64  `json:"id"`
	ClientID   int64  `json:"clientId"`
	ProductID  int64  `json:"productId"`
	Quantity   int    `json:"quantity"`
	TotalPrice int64  `json:"totalPrice"`
	Status     string `json:"status"`
}

// IsPending reports whether the order still awaits payment.
func (o Order) IsPending() bool {
	return o.Status == OrderStatusCreated
}

// ValidOrderStatus reports whether s is a status the order service accepts.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusCreated, OrderStatusPaid, OrderStatusShipped, OrderStatusCancelled:
		return true
	}
	return false
}

// Product is the catalog projection consumed from the product service.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock,omitempty"`
}

// Notification is a message surfaced on the dashboard's notification feed.
type Notification struct {
	ID        int64  `json:"id"`
	To        string `json:"to,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Text      string `json:"text,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}
