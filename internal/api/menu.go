package api

import (
	"context"
	"fmt"
	"net/url"

	"qrdine/internal/models"
)

type MenuFilter struct {
	Category      string
	AvailableOnly bool
}

// ListMenu fetches menu items, branch-scoped when a branch is selected.
func (c *Client) ListMenu(ctx context.Context, filter MenuFilter) ([]models.MenuItem, error) {
	q := url.Values{}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.AvailableOnly {
		q.Set("available", "true")
	}

	var items []models.MenuItem
	if err := c.get(ctx, "/api/menu", c.scoped(q), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CreateMenuItem(ctx context.Context, item models.MenuItem) (*models.MenuItem, error) {
	var created models.MenuItem
	if err := c.post(ctx, "/api/menu", item, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateMenuItem(ctx context.Context, item models.MenuItem) (*models.MenuItem, error) {
	var updated models.MenuItem
	if err := c.put(ctx, fmt.Sprintf("/api/menu/%d", item.ID), item, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteMenuItem(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/api/menu/%d", id))
}
