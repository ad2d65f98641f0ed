package api

import (
	"context"
	"fmt"

	"qrdine/internal/models"
)

// Branch listing is never branch-scoped itself: it is the selector's source.
func (c *Client) ListBranches(ctx context.Context) ([]models.Branch, error) {
	var branches []models.Branch
	if err := c.get(ctx, "/api/branches", nil, &branches); err != nil {
		return nil, err
	}
	return branches, nil
}

func (c *Client) CreateBranch(ctx context.Context, branch models.Branch) (*models.Branch, error) {
	var created models.Branch
	if err := c.post(ctx, "/api/branches", branch, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateBranch(ctx context.Context, branch models.Branch) (*models.Branch, error) {
	var updated models.Branch
	if err := c.put(ctx, fmt.Sprintf("/api/branches/%d", branch.ID), branch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteBranch(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/api/branches/%d", id))
}
