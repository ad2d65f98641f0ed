// Package orderfeed maintains the in-memory order list a kitchen or customer
// view renders. The merge/sort logic is a reducer over a plain slice so it
// stays testable without any transport attached.
package orderfeed

import (
	"sort"
	"sync"

	"qrdine/internal/models"
)

// Feed is an order list fed by socket events and polling reloads. A non-zero
// branchID drops events from other branches before they touch the list.
type Feed struct {
	mu       sync.Mutex
	orders   []models.Order
	branchID uint

	// OnNew fires after a new order lands in the list (notification sound /
	// desktop alert hook).
	OnNew func(models.Order)
	// OnDelivered fires when a status patch moves an order into delivered and
	// the order has no feedback yet (customer feedback prompt hook).
	OnDelivered func(models.Order)
}

func New(branchID uint) *Feed {
	return &Feed{branchID: branchID}
}

// Replace swaps in a freshly fetched list. This is the polling backstop path;
// it re-applies the branch filter and sort so a poll and the socket converge
// on the same ordering.
func (f *Feed) Replace(orders []models.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.orders = f.orders[:0]
	for _, o := range orders {
		if f.matchesBranch(o) {
			f.orders = append(f.orders, o)
		}
	}
	sortByCreation(f.orders)
}

// ApplyNew handles a new-order event. Orders for other branches are ignored;
// an id already present is treated as an update, never duplicated. Reports
// whether the list changed.
func (f *Feed) ApplyNew(order models.Order) bool {
	f.mu.Lock()
	if !f.matchesBranch(order) {
		f.mu.Unlock()
		return false
	}

	fresh := true
	for i := range f.orders {
		if f.orders[i].ID == order.ID {
			f.orders[i] = order
			fresh = false
			break
		}
	}
	if fresh {
		f.orders = append(f.orders, order)
	}
	sortByCreation(f.orders)
	onNew := f.OnNew
	f.mu.Unlock()

	if fresh && onNew != nil {
		onNew(order)
	}
	return true
}

// ApplyUpdate handles an order-updated event: full replacement by id.
func (f *Feed) ApplyUpdate(order models.Order) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.orders {
		if f.orders[i].ID == order.ID {
			f.orders[i] = order
			sortByCreation(f.orders)
			return true
		}
	}
	return false
}

// ApplyStatusPatch handles an order-status-updated event. Only order_status
// and updated_at change; every other field keeps its current value.
func (f *Feed) ApplyStatusPatch(patch models.OrderStatusPatch) bool {
	f.mu.Lock()
	var delivered *models.Order
	applied := false
	for i := range f.orders {
		if f.orders[i].ID != patch.ID {
			continue
		}
		prev := f.orders[i].OrderStatus
		f.orders[i].OrderStatus = patch.OrderStatus
		f.orders[i].UpdatedAt = patch.UpdatedAt
		applied = true

		if patch.OrderStatus == models.OrderDelivered && prev != models.OrderDelivered && !f.orders[i].HasFeedback {
			o := f.orders[i]
			delivered = &o
		}
		break
	}
	onDelivered := f.OnDelivered
	f.mu.Unlock()

	if delivered != nil && onDelivered != nil {
		onDelivered(*delivered)
	}
	return applied
}

// Orders returns a copy of the current list, oldest first.
func (f *Feed) Orders() []models.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Order, len(f.orders))
	copy(out, f.orders)
	return out
}

// Get returns the order with the given id, if present.
func (f *Feed) Get(id uint) (models.Order, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			return o, true
		}
	}
	return models.Order{}, false
}

func (f *Feed) matchesBranch(o models.Order) bool {
	return f.branchID == 0 || o.BranchID == f.branchID
}

// sortByCreation keeps the FIFO kitchen queue: ascending created_at, id as
// the tiebreak so equal timestamps stay deterministic.
func sortByCreation(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID < orders[j].ID
		}
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
}
