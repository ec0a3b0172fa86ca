package cart

import (
	"sync"

	"katalog/internal/models"
)

// Line is a single cart entry: a product snapshot plus a positive quantity.
type Line struct {
	Product  models.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Cart holds the line items of one browsing session, ordered by insertion.
// It is ephemeral: discarded on submission or explicit clear, never persisted
// and never shared across sessions. At most one line exists per product id and
// quantity is always >= 1; any operation that would drop a quantity to zero or
// below removes the line instead.
//
// Construct independent instances with New; there is no shared singleton.
type Cart struct {
	mu    sync.Mutex
	order []string // product ids, insertion order
	lines map[string]*Line
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{
		lines: make(map[string]*Line),
	}
}

// AddItem inserts a line for the product, or increments the existing line's
// quantity by the requested amount. A quantity below 1 is a safe no-op so the
// cart can never enter an invalid state.
func (c *Cart) AddItem(product models.Product, quantity int) {
	if quantity < 1 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if line, ok := c.lines[product.ID]; ok {
		line.Quantity += quantity
		return
	}
	c.lines[product.ID] = &Line{Product: product, Quantity: quantity}
	c.order = append(c.order, product.ID)
}

// UpdateQuantity sets the line's quantity. A quantity of zero or below removes
// the line entirely. Unknown product ids are a no-op.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	line, ok := c.lines[productID]
	if !ok {
		return
	}
	if quantity <= 0 {
		c.removeLocked(productID)
		return
	}
	line.Quantity = quantity
}

// RemoveItem deletes the line if present; no-op otherwise.
func (c *Cart) RemoveItem(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(productID)
}

func (c *Cart) removeLocked(productID string) {
	if _, ok := c.lines[productID]; !ok {
		return
	}
	delete(c.lines, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear empties the cart unconditionally. Called after a successful
// order request submission.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = nil
	c.lines = make(map[string]*Line)
}

// Items returns a copy of the current lines in insertion order.
func (c *Cart) Items() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		items = append(items, *c.lines[id])
	}
	return items
}

// TotalItems returns the sum of all line quantities, recomputed from the
// current lines on every call.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice returns the sum of base price times quantity over all lines.
// It is recomputed fresh on every call; prices here are display-only
// estimates, not contractual.
func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0.0
	for _, line := range c.lines {
		total += line.Product.BasePrice * float64(line.Quantity)
	}
	return total
}
