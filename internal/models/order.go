package models

import (
	"time"
)

type Order struct {
	ID            uint        `json:"id"`
	TableNumber   int         `json:"table_number"`
	BranchID      uint        `json:"branch_id"`
	Currency      string      `json:"currency"`
	PaymentMethod string      `json:"payment_method"`
	OrderStatus   OrderStatus `json:"order_status"`
	Total         float64     `json:"total"`
	Items         []OrderItem `json:"items"`
	HasFeedback   bool        `json:"has_feedback"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID         uint       `json:"id"`
	MenuItemID uint       `json:"menu_item_id"`
	ItemName   string     `json:"item_name"`
	Quantity   int        `json:"quantity"`
	PriceINR   float64    `json:"price_inr"`
	PriceUSD   float64    `json:"price_usd"`
	ItemStatus ItemStatus `json:"item_status"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

type ItemStatus string

const (
	ItemActive    ItemStatus = "active"
	ItemCancelled ItemStatus = "cancelled"
)

// Terminal reports whether no further transitions are possible.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// Next returns the forward transition for a kitchen-driven status advance.
// The server owns the state machine; this only names the transition a client
// may request.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case OrderPending:
		return OrderPreparing, true
	case OrderPreparing:
		return OrderReady, true
	case OrderReady:
		return OrderDelivered, true
	}
	return s, false
}

// Cancellable reports whether a customer cancel request is still accepted.
func (s OrderStatus) Cancellable() bool {
	return s == OrderPending || s == OrderPreparing
}

// OrderStatusPatch is the payload of an order-status-updated event: only the
// status and its timestamp, never the full order.
type OrderStatusPatch struct {
	ID          uint        `json:"id"`
	OrderStatus OrderStatus `json:"order_status"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// ItemTotal returns the line total in the given currency ("INR" or "USD").
func (i OrderItem) ItemTotal(currency string) float64 {
	price := i.PriceINR
	if currency == "USD" {
		price = i.PriceUSD
	}
	return price * float64(i.Quantity)
}
