package api

import (
	"context"
	"fmt"

	"qrdine/internal/models"
)

func (c *Client) ListRoles(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	if err := c.get(ctx, "/api/roles", nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

func (c *Client) CreateRole(ctx context.Context, role models.Role) (*models.Role, error) {
	var created models.Role
	if err := c.post(ctx, "/api/roles", role, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateRole(ctx context.Context, role models.Role) (*models.Role, error) {
	var updated models.Role
	if err := c.put(ctx, fmt.Sprintf("/api/roles/%d", role.ID), role, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteRole(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/api/roles/%d", id))
}
