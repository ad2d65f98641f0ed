package api

import (
	"context"
	"fmt"

	"qrdine/internal/models"
)

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.get(ctx, "/api/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	var created models.User
	if err := c.post(ctx, "/api/users", user, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateUser(ctx context.Context, user models.User) (*models.User, error) {
	var updated models.User
	if err := c.put(ctx, fmt.Sprintf("/api/users/%d", user.ID), user, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteUser(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/api/users/%d", id))
}

// Staff members are users with a PIN for on-floor login; the backend keeps
// them on a separate surface.
func (c *Client) ListStaff(ctx context.Context) ([]models.User, error) {
	var staff []models.User
	if err := c.get(ctx, "/api/staff", nil, &staff); err != nil {
		return nil, err
	}
	return staff, nil
}

func (c *Client) CreateStaff(ctx context.Context, staff models.User) (*models.User, error) {
	var created models.User
	if err := c.post(ctx, "/api/staff", staff, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateStaff(ctx context.Context, staff models.User) (*models.User, error) {
	var updated models.User
	if err := c.put(ctx, fmt.Sprintf("/api/staff/%d", staff.ID), staff, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteStaff(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/api/staff/%d", id))
}
