package api

import (
	"context"
	"fmt"

	"qrdine/internal/models"
)

func (c *Client) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := c.get(ctx, "/api/ingredients", c.scoped(nil), &ingredients); err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (c *Client) CreateIngredient(ctx context.Context, ing models.Ingredient) (*models.Ingredient, error) {
	var created models.Ingredient
	if err := c.post(ctx, "/api/ingredients", ing, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateIngredient(ctx context.Context, ing models.Ingredient) (*models.Ingredient, error) {
	var updated models.Ingredient
	if err := c.put(ctx, fmt.Sprintf("/api/ingredients/%d", ing.ID), ing, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteIngredient(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/api/ingredients/%d", id))
}
