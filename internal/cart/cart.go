package cart

import (
	"sync"

	"bookbazaar/pkg/domain"
)

// Cart holds the session's line items keyed by catalog item ID. Insertion
// order is display order. The cart is session-scoped: nothing here persists
// across restarts.
type Cart struct {
	mu    sync.RWMutex
	lines map[int64]domain.CartLine
	order []int64
}

// New initializes an empty cart.
func New() *Cart {
	return &Cart{lines: make(map[int64]domain.CartLine)}
}

// Add inserts a line for the book or, when one already exists, increments its
// quantity. A non-positive qty counts as 1.
func (c *Cart) Add(b domain.Book, qty int) {
	if qty <= 0 {
		qty = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if line, ok := c.lines[b.ID]; ok {
		line.Quantity += qty
		c.lines[b.ID] = line
		return
	}
	c.lines[b.ID] = domain.CartLine{
		ItemID:    b.ID,
		Title:     b.Title,
		Author:    b.Author,
		UnitPrice: b.Price,
		ImageURL:  b.ImageURL,
		Quantity:  qty,
	}
	c.order = append(c.order, b.ID)
}

// UpdateQuantity sets a line's quantity. Zero or negative removes the line.
// No-op when the ID is absent.
func (c *Cart) UpdateQuantity(id int64, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	line, ok := c.lines[id]
	if !ok {
		return
	}
	if qty <= 0 {
		c.removeLocked(id)
		return
	}
	line.Quantity = qty
	c.lines[id] = line
}

// Remove deletes a line unconditionally. No-op when absent.
func (c *Cart) Remove(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(id)
}

func (c *Cart) removeLocked(id int64) {
	if _, ok := c.lines[id]; !ok {
		return
	}
	delete(c.lines, id)
	filtered := c.order[:0]
	for _, item := range c.order {
		if item != id {
			filtered = append(filtered, item)
		}
	}
	c.order = filtered
}

// Lines returns the line items in insertion order.
func (c *Cart) Lines() []domain.CartLine {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res := make([]domain.CartLine, 0, len(c.order))
	for _, id := range c.order {
		if line, ok := c.lines[id]; ok {
			res = append(res, line)
		}
	}
	return res
}

// Count returns the total quantity across lines, recomputed on every call.
func (c *Cart) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// Total returns the price sum across lines, recomputed on every call.
func (c *Cart) Total() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := 0.0
	for _, line := range c.lines {
		total += line.UnitPrice * float64(line.Quantity)
	}
	return total
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = make(map[int64]domain.CartLine)
	c.order = nil
}
