package api

import (
	"context"
	"fmt"
	"net/url"

	"qrdine/internal/models"
)

// PlaceOrderRequest is the serialized cart. No idempotency key accompanies it:
// whether the server deduplicates a retried submit is unknown, so callers must
// guard against double submission themselves (the CLIs block while a placement
// is in flight).
type PlaceOrderRequest struct {
	TableNumber   int              `json:"table_number"`
	BranchID      uint             `json:"branch_id,omitempty"`
	Currency      string           `json:"currency"`
	PaymentMethod string           `json:"payment_method"`
	Total         float64          `json:"total"`
	Items         []PlaceOrderItem `json:"items"`
}

type PlaceOrderItem struct {
	MenuItemID uint    `json:"menu_item_id"`
	ItemName   string  `json:"item_name"`
	Quantity   int     `json:"quantity"`
	PriceINR   float64 `json:"price_inr"`
	PriceUSD   float64 `json:"price_usd"`
}

type OrderFilter struct {
	Status models.OrderStatus
	Table  int
}

func (c *Client) ListOrders(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	q := url.Values{}
	if filter.Status != "" {
		q.Set("status", string(filter.Status))
	}
	if filter.Table != 0 {
		q.Set("table", fmt.Sprintf("%d", filter.Table))
	}

	var orders []models.Order
	if err := c.get(ctx, "/api/orders", c.scoped(q), &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := c.get(ctx, fmt.Sprintf("/api/orders/%d", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// PlaceOrder posts the serialized cart once and returns the confirmed order.
func (c *Client) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.post(ctx, "/api/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus requests a status transition. The client never computes
// the next state on its own authority: it asks and waits for the server's
// confirmation (this response, or the socket echo).
func (c *Client) UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	payload := map[string]string{"order_status": string(status)}
	if err := c.put(ctx, fmt.Sprintf("/api/orders/%d/status", id), payload, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrder cancels a whole order. Accepted only while the order is still
// pending or preparing; past that the server rejects it.
func (c *Client) CancelOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := c.post(ctx, fmt.Sprintf("/api/orders/%d/cancel", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrderItem cancels a single line of an order. The parent order's
// aggregate status is the server's business; only the item flips here.
func (c *Client) CancelOrderItem(ctx context.Context, orderID, itemID uint) (*models.Order, error) {
	var order models.Order
	if err := c.post(ctx, fmt.Sprintf("/api/orders/%d/items/%d/cancel", orderID, itemID), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// SubmitFeedback records customer feedback for a delivered order.
func (c *Client) SubmitFeedback(ctx context.Context, orderID uint, rating int, comment string) error {
	payload := map[string]interface{}{"rating": rating, "comment": comment}
	return c.post(ctx, fmt.Sprintf("/api/orders/%d/feedback", orderID), payload, nil)
}
