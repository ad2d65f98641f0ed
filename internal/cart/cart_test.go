package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrdine/internal/models"
)

func dish(id uint, name string, inr, usd float64) models.MenuItem {
	return models.MenuItem{ID: id, Name: name, PriceINR: inr, PriceUSD: usd, IsAvailable: true}
}

func TestAddMergesLinesByItem(t *testing.T) {
	c := New()
	c.Add(dish(1, "Naan", 60, 0.9), 1)
	c.Add(dish(1, "Naan", 60, 0.9), 2)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	c := New()
	c.Add(dish(1, "Naan", 60, 0.9), 2)
	c.Add(dish(2, "Tikka", 240, 3.2), 1)

	c.SetQuantity(1, 0)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, uint(2), lines[0].Item.ID)
	assert.False(t, c.Empty())

	c.Remove(2)
	assert.True(t, c.Empty())
}

func TestTotalPerCurrency(t *testing.T) {
	c := New()
	c.Add(dish(1, "Naan", 60, 0.9), 2)
	c.Add(dish(2, "Tikka", 240, 3.2), 1)

	assert.InDelta(t, 360, c.Total("INR"), 0.001)
	assert.InDelta(t, 5.0, c.Total("USD"), 0.001)
}

func TestCheckoutPayload(t *testing.T) {
	c := New()
	c.Add(dish(1, "Naan", 100, 1.5), 2)

	req := c.Checkout(4, 2, "INR", "cash")

	assert.Equal(t, 4, req.TableNumber)
	assert.Equal(t, uint(2), req.BranchID)
	assert.Equal(t, "INR", req.Currency)
	assert.Equal(t, "cash", req.PaymentMethod)
	assert.InDelta(t, 200, req.Total, 0.001)
	require.Len(t, req.Items, 1)
	assert.Equal(t, uint(1), req.Items[0].MenuItemID)
	assert.Equal(t, 2, req.Items[0].Quantity)

	// Checkout serializes; it does not clear. The caller clears only after
	// the server confirms.
	assert.False(t, c.Empty())
	c.Clear()
	assert.True(t, c.Empty())
}
