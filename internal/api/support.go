package api

import (
	"context"
	"fmt"

	"qrdine/internal/models"
)

func (c *Client) CreateTicket(ctx context.Context, subject, message string) (*models.SupportTicket, error) {
	payload := map[string]string{"subject": subject, "message": message}
	var ticket models.SupportTicket
	if err := c.post(ctx, "/api/support/ticket", payload, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (c *Client) ListTickets(ctx context.Context) ([]models.SupportTicket, error) {
	var tickets []models.SupportTicket
	if err := c.get(ctx, "/api/support/tickets", nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (c *Client) GetTicket(ctx context.Context, id uint) (*models.SupportTicket, error) {
	var ticket models.SupportTicket
	if err := c.get(ctx, fmt.Sprintf("/api/support/ticket/%d", id), nil, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (c *Client) ReplyTicket(ctx context.Context, id uint, message string) (*models.SupportTicket, error) {
	payload := map[string]string{"message": message}
	var ticket models.SupportTicket
	if err := c.post(ctx, fmt.Sprintf("/api/support/ticket/%d/reply", id), payload, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}
