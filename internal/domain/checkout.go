package domain

import "time"

// Checkout policy constants. Both behaviors exist in the product history;
// which one runs is configuration.
const (
	// PolicyStrict clears the cart only when every order-creation call
	// succeeds; any failure leaves the cart untouched.
	PolicyStrict = "strict"

	// PolicyPermissive clears the cart as long as at least one order was
	// created; failed line items are reported but not retried.
	PolicyPermissive = "permissive"
)

// ValidCheckoutPolicy reports whether p names a known policy.
func ValidCheckoutPolicy(p string) bool {
	return p == PolicyStrict || p == PolicyPermissive
}

// CheckoutResult is the per-invocation aggregate of a checkout fan-out. It is
// produced once, reported to the caller, and not retained in memory.
type CheckoutResult struct {
	Attempted   int         `json:"attempted"`
	Succeeded   int         `json:"succeeded"`
	FailedItems []CartEntry `json:"failed_items,omitempty"`
	Orders      []Order     `json:"orders,omitempty"`
	CartCleared bool        `json:"cart_cleared"`
}

// AllSucceeded reports whether every attempted order was created.
func (r *CheckoutResult) AllSucceeded() bool {
	return r.Attempted > 0 && r.Succeeded == r.Attempted
}

// CheckoutRecord is one row of the durable checkout activity log.
type CheckoutRecord struct {
	ID        int64     `json:"id"`
	ClientID  int64     `json:"client_id"`
	Attempted int       `json:"attempted"`
	Succeeded int       `json:"succeeded"`
	Policy    string    `json:"policy"`
	CreatedAt time.Time `json:"created_at"`
}
