package api

import "context"

// PaymentOrder is the provider-side order the backend creates for a
// subscription checkout. The checkout itself happens in the provider's flow;
// the client only relays the two round trips. No idempotency key here either,
// same caveat as order placement.
type PaymentOrder struct {
	OrderID  string  `json:"order_id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	Plan     string  `json:"plan"`
}

type PaymentVerification struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

type PaymentResult struct {
	Verified bool   `json:"verified"`
	Message  string `json:"message"`
}

func (c *Client) CreatePaymentOrder(ctx context.Context, plan string) (*PaymentOrder, error) {
	var order PaymentOrder
	if err := c.post(ctx, "/api/payment/create-order", map[string]string{"plan": plan}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) VerifyPayment(ctx context.Context, v PaymentVerification) (*PaymentResult, error) {
	var result PaymentResult
	if err := c.post(ctx, "/api/payment/verify", v, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
