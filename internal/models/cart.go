package models

// CartLine is a single product-and-quantity entry within a user's cart.
// A line references its product by ID only; product details are resolved
// against the live catalog whenever the cart is read or mutated.
type CartLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Cart is the authoritative per-user cart. Lines are kept in insertion order
// and keyed by product ID (at most one line per product). Version is bumped
// on every save and used for optimistic concurrency control at the store.
type Cart struct {
	UserID  string     `json:"user_id"`
	Lines   []CartLine `json:"lines"`
	Version int64      `json:"version"`
}

// Line returns a pointer to the line for productID, or nil if absent.
func (c *Cart) Line(productID string) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i]
		}
	}
	return nil
}

// Upsert sets the quantity for productID, appending a new line if needed.
func (c *Cart) Upsert(productID string, quantity int) {
	if line := c.Line(productID); line != nil {
		line.Quantity = quantity
		return
	}
	c.Lines = append(c.Lines, CartLine{ProductID: productID, Quantity: quantity})
}

// Remove drops the line for productID if present. Removing an absent line
// is a no-op.
func (c *Cart) Remove(productID string) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// CartViewLine is the client-visible form of one cart line, with the
// product resolved and the line subtotal computed.
type CartViewLine struct {
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal float64         `json:"subtotal"`
}

// CartView is the derived, read-only view of a user's cart. Lines whose
// product no longer exists in the catalog are omitted.
type CartView struct {
	Items     []CartViewLine `json:"items"`
	ItemCount int            `json:"item_count"`
	Total     float64        `json:"total"`
}
