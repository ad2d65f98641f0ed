// Package cart holds the customer's in-memory selection before it becomes an
// order. Nothing here talks to the network: Checkout only serializes.
package cart

import (
	"sync"

	"qrdine/internal/api"
	"qrdine/internal/models"
)

type Line struct {
	Item     models.MenuItem
	Quantity int
}

type Cart struct {
	mu    sync.Mutex
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// Add puts qty more of the item in the cart, merging with an existing line
// for the same menu item id.
func (c *Cart) Add(item models.MenuItem, qty int) {
	if qty <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Item.ID == item.ID {
			c.lines[i].Quantity += qty
			return
		}
	}
	c.lines = append(c.lines, Line{Item: item, Quantity: qty})
}

// SetQuantity pins a line's quantity; zero or less removes the line.
func (c *Cart) SetQuantity(itemID uint, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Item.ID != itemID {
			continue
		}
		if qty <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		} else {
			c.lines[i].Quantity = qty
		}
		return
	}
}

func (c *Cart) Remove(itemID uint) {
	c.SetQuantity(itemID, 0)
}

func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Total sums the cart in the given currency ("INR" or "USD").
func (c *Cart) Total(currency string) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, l := range c.lines {
		total += l.Item.Price(currency) * float64(l.Quantity)
	}
	return total
}

// Checkout serializes the cart into an order payload. The cart is left
// untouched: callers clear it only after the server confirms the placement
// (pessimistic mutation). A retried submit of the same payload can duplicate
// the order server-side; there is no idempotency key in the contract.
func (c *Cart) Checkout(tableNumber int, branchID uint, currency, paymentMethod string) api.PlaceOrderRequest {
	c.mu.Lock()
	defer c.mu.Unlock()

	req := api.PlaceOrderRequest{
		TableNumber:   tableNumber,
		BranchID:      branchID,
		Currency:      currency,
		PaymentMethod: paymentMethod,
	}
	for _, l := range c.lines {
		req.Items = append(req.Items, api.PlaceOrderItem{
			MenuItemID: l.Item.ID,
			ItemName:   l.Item.Name,
			Quantity:   l.Quantity,
			PriceINR:   l.Item.PriceINR,
			PriceUSD:   l.Item.PriceUSD,
		})
		req.Total += l.Item.Price(currency) * float64(l.Quantity)
	}
	return req
}
