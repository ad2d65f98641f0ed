package orderfeed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrdine/internal/models"
)

func orderAt(id uint, branch uint, status models.OrderStatus, created time.Time) models.Order {
	return models.Order{
		ID:          id,
		BranchID:    branch,
		OrderStatus: status,
		TableNumber: int(id),
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func TestApplyNewKeepsFIFOOrder(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	feed := New(0)

	feed.ApplyNew(orderAt(2, 0, models.OrderPending, base.Add(2*time.Minute)))
	feed.ApplyNew(orderAt(1, 0, models.OrderPending, base))
	feed.ApplyNew(orderAt(3, 0, models.OrderPending, base.Add(time.Minute)))

	orders := feed.Orders()
	require.Len(t, orders, 3)
	assert.Equal(t, uint(1), orders[0].ID)
	assert.Equal(t, uint(3), orders[1].ID)
	assert.Equal(t, uint(2), orders[2].ID)
}

func TestApplyNewNeverDuplicates(t *testing.T) {
	base := time.Now().UTC()
	feed := New(0)

	first := orderAt(7, 0, models.OrderPending, base)
	feed.ApplyNew(first)

	// The same order arriving again (poll race with the socket) must replace,
	// not append.
	again := first
	again.OrderStatus = models.OrderPreparing
	feed.ApplyNew(again)

	orders := feed.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, models.OrderPreparing, orders[0].OrderStatus)
}

func TestApplyNewFiltersOtherBranches(t *testing.T) {
	feed := New(5)

	assert.False(t, feed.ApplyNew(orderAt(1, 9, models.OrderPending, time.Now())))
	assert.True(t, feed.ApplyNew(orderAt(2, 5, models.OrderPending, time.Now())))
	assert.Len(t, feed.Orders(), 1)
}

func TestApplyNewFiresNotificationOnlyForFreshOrders(t *testing.T) {
	feed := New(0)
	var rang int
	feed.OnNew = func(models.Order) { rang++ }

	o := orderAt(1, 0, models.OrderPending, time.Now())
	feed.ApplyNew(o)
	feed.ApplyNew(o)

	assert.Equal(t, 1, rang)
}

func TestApplyStatusPatchTouchesOnlyStatusAndTimestamp(t *testing.T) {
	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	feed := New(0)

	original := orderAt(4, 2, models.OrderPending, created)
	original.Items = []models.OrderItem{{ID: 10, ItemName: "Naan", Quantity: 2, PriceINR: 60, ItemStatus: models.ItemActive}}
	original.Total = 120
	original.Currency = "INR"
	feed.ApplyNew(original)

	patchedAt := created.Add(5 * time.Minute)
	applied := feed.ApplyStatusPatch(models.OrderStatusPatch{
		ID:          4,
		OrderStatus: models.OrderPreparing,
		UpdatedAt:   patchedAt,
	})
	require.True(t, applied)

	got, ok := feed.Get(4)
	require.True(t, ok)
	assert.Equal(t, models.OrderPreparing, got.OrderStatus)
	assert.Equal(t, patchedAt, got.UpdatedAt)

	// Everything else is untouched.
	assert.Equal(t, original.Items, got.Items)
	assert.Equal(t, original.Total, got.Total)
	assert.Equal(t, original.Currency, got.Currency)
	assert.Equal(t, original.CreatedAt, got.CreatedAt)
	assert.Equal(t, original.TableNumber, got.TableNumber)
}

func TestApplyStatusPatchUnknownOrder(t *testing.T) {
	feed := New(0)
	assert.False(t, feed.ApplyStatusPatch(models.OrderStatusPatch{ID: 99, OrderStatus: models.OrderReady}))
}

func TestDeliveredWithoutFeedbackPrompts(t *testing.T) {
	feed := New(0)
	var prompted []uint
	feed.OnDelivered = func(o models.Order) { prompted = append(prompted, o.ID) }

	ready := orderAt(1, 0, models.OrderReady, time.Now())
	feed.ApplyNew(ready)

	withFeedback := orderAt(2, 0, models.OrderReady, time.Now())
	withFeedback.HasFeedback = true
	feed.ApplyNew(withFeedback)

	feed.ApplyStatusPatch(models.OrderStatusPatch{ID: 1, OrderStatus: models.OrderDelivered, UpdatedAt: time.Now()})
	feed.ApplyStatusPatch(models.OrderStatusPatch{ID: 2, OrderStatus: models.OrderDelivered, UpdatedAt: time.Now()})
	// A second delivered patch for the same order must not prompt again.
	feed.ApplyStatusPatch(models.OrderStatusPatch{ID: 1, OrderStatus: models.OrderDelivered, UpdatedAt: time.Now()})

	assert.Equal(t, []uint{1}, prompted)
}

func TestApplyUpdateReplacesWholeOrder(t *testing.T) {
	created := time.Now().UTC()
	feed := New(0)

	o := orderAt(3, 0, models.OrderPending, created)
	o.Items = []models.OrderItem{
		{ID: 30, ItemName: "Tikka", Quantity: 1, ItemStatus: models.ItemActive},
		{ID: 31, ItemName: "Naan", Quantity: 2, ItemStatus: models.ItemActive},
	}
	feed.ApplyNew(o)

	// Single-item cancellation arrives as a full order-updated echo: only the
	// item flips, the aggregate status stays pending.
	updated := o
	updated.Items = []models.OrderItem{
		{ID: 30, ItemName: "Tikka", Quantity: 1, ItemStatus: models.ItemActive},
		{ID: 31, ItemName: "Naan", Quantity: 2, ItemStatus: models.ItemCancelled},
	}
	require.True(t, feed.ApplyUpdate(updated))

	got, ok := feed.Get(3)
	require.True(t, ok)
	assert.Equal(t, models.OrderPending, got.OrderStatus)
	assert.Equal(t, models.ItemCancelled, got.Items[1].ItemStatus)
	assert.Equal(t, models.ItemActive, got.Items[0].ItemStatus)
}

func TestReplaceAppliesFilterAndSort(t *testing.T) {
	base := time.Now().UTC()
	feed := New(2)

	feed.Replace([]models.Order{
		orderAt(5, 2, models.OrderPending, base.Add(time.Minute)),
		orderAt(6, 3, models.OrderPending, base),
		orderAt(7, 2, models.OrderPending, base),
	})

	orders := feed.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, uint(7), orders[0].ID)
	assert.Equal(t, uint(5), orders[1].ID)
}
