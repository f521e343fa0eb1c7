// Package cart implements the customer's uncommitted selection of services.
//
// A Cart is an ordered set unique by service ID. It is not safe for concurrent
// use on its own; the checkout session owning it serializes access.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/SammyMuraya-DA/online-cyber/internal/domain/catalog"
)

// Cart holds the services a customer has selected but not yet paid for.
// The zero value is an empty, usable cart.
type Cart struct {
	items []catalog.Service
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add inserts the service unless one with the same ID is already present.
// Adding a duplicate is a no-op, not an error.
func (c *Cart) Add(s catalog.Service) {
	if c.Contains(s.ID) {
		return
	}
	c.items = append(c.items, s)
}

// Remove drops the service with the given ID. Removing an absent ID is a no-op.
func (c *Cart) Remove(serviceID string) {
	for i, item := range c.items {
		if item.ID == serviceID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Contains reports whether a service with the given ID is in the cart.
func (c *Cart) Contains(serviceID string) bool {
	for _, item := range c.items {
		if item.ID == serviceID {
			return true
		}
	}
	return false
}

// Total returns the sum of prices over the current selection, or zero for an
// empty cart.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Price)
	}
	return total
}

// Count returns the number of distinct selected services.
func (c *Cart) Count() int {
	return len(c.items)
}

// Items returns a copy of the selection in insertion order.
func (c *Cart) Items() []catalog.Service {
	out := make([]catalog.Service, len(c.items))
	copy(out, c.items)
	return out
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}
