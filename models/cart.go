package models

import "time"

// CartItem is one product line in a draft cart.
type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// Cart is the draft order a browsing session is assembling. Carts live in
// the session store with a TTL; they are created when the first item is
// added and torn down on clear or expiry, never held as ambient state.
type Cart struct {
	SessionID string     `json:"session_id"` // Cart session identifier (UUID), issued to the client
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Total sums the cart's line totals.
func (c *Cart) Total() float64 {
	var total float64
	for _, it := range c.Items {
		total += it.UnitPrice * float64(it.Quantity)
	}
	return total
}

// Quantity returns the units of the given product currently in the cart.
func (c *Cart) Quantity(productID string) int {
	for _, it := range c.Items {
		if it.ProductID == productID {
			return it.Quantity
		}
	}
	return 0
}
