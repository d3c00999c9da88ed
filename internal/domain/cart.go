package domain

import "time"

// CartEntry is one product line item held client-side before order creation.
// Prices are in minor currency units (cents).
type CartEntry struct {
	ProductID   int64  `json:"product_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int    `json:"quantity"`
}

// LineTotal returns unit price times quantity for this entry.
func (e CartEntry) LineTotal() int64 {
	return e.UnitPrice * int64(e.Quantity)
}

// Cart is the authoritative shopping cart for one user. Entries hold at most
// one line per product id, and every entry has quantity >= 1; the store
// enforces both.
type Cart struct {
	UserID    int64       `json:"user_id"`
	Entries   []CartEntry `json:"entries"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// ItemCount returns the sum of quantities across all entries.
func (c *Cart) ItemCount() int {
	var count int
	for _, e := range c.Entries {
		count += e.Quantity
	}
	return count
}

// Subtotal returns the sum of line totals across all entries.
func (c *Cart) Subtotal() int64 {
	var subtotal int64
	for _, e := range c.Entries {
		subtotal += e.LineTotal()
	}
	return subtotal
}

// EntryIndex returns the index of the entry for the given product id, or -1.
func (c *Cart) EntryIndex(productID int64) int {
	for i := range c.Entries {
		if c.Entries[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// ShippingPolicy holds the free-shipping threshold and flat fee, both in
// minor currency units. Defaults are 500.00 / 50.00.
type ShippingPolicy struct {
	FreeThreshold int64
	FlatFee       int64
}

// DefaultShippingPolicy returns the documented defaults.
func DefaultShippingPolicy() ShippingPolicy {
	return ShippingPolicy{FreeThreshold: 50000, FlatFee: 5000}
}

// Cost returns the shipping cost for the given subtotal. The threshold is
// strict: a subtotal exactly at the threshold still pays the fee.
func (p ShippingPolicy) Cost(subtotal int64) int64 {
	if subtotal > p.FreeThreshold {
		return 0
	}
	return p.FlatFee
}

// CartTotals is the derived read model for the cart summary view.
type CartTotals struct {
	ItemCount    int   `json:"item_count"`
	Subtotal     int64 `json:"subtotal"`
	ShippingCost int64 `json:"shipping_cost"`
	Total        int64 `json:"total"`
}

// Totals computes the full derived summary under the given shipping policy.
func (c *Cart) Totals(policy ShippingPolicy) CartTotals {
	subtotal := c.Subtotal()
	shipping := policy.Cost(subtotal)
	return CartTotals{
		ItemCount:    c.ItemCount(),
		Subtotal:     subtotal,
		ShippingCost: shipping,
		Total:        subtotal + shipping,
	}
}
