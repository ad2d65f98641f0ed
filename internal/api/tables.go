package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"qrdine/internal/models"
)

func (c *Client) ListTables(ctx context.Context) ([]models.Table, error) {
	var tables []models.Table
	if err := c.get(ctx, "/api/tables", c.scoped(nil), &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

func (c *Client) CreateTable(ctx context.Context, table models.Table) (*models.Table, error) {
	var created models.Table
	if err := c.post(ctx, "/api/tables", table, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateTable(ctx context.Context, table models.Table) (*models.Table, error) {
	var updated models.Table
	if err := c.put(ctx, fmt.Sprintf("/api/tables/%d", table.ID), table, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteTable(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/api/tables/%d", id))
}

func (c *Client) ListTableGroups(ctx context.Context) ([]models.TableGroup, error) {
	var groups []models.TableGroup
	if err := c.get(ctx, "/api/table-groups", nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (c *Client) CreateTableGroup(ctx context.Context, name string) (*models.TableGroup, error) {
	var created models.TableGroup
	if err := c.post(ctx, "/api/table-groups", map[string]string{"name": name}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) DeleteTableGroup(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/api/table-groups/%d", id))
}

// QRPayload builds the customer deep-link URL a table's QR code encodes:
// table number, branch and company, pointing at the given ordering origin.
func QRPayload(origin string, table models.Table, companyID uint) string {
	q := url.Values{}
	q.Set("table", strconv.Itoa(table.TableNumber))
	if table.BranchID != 0 {
		q.Set("branch_id", strconv.FormatUint(uint64(table.BranchID), 10))
	}
	q.Set("companyId", strconv.FormatUint(uint64(companyID), 10))
	return origin + "/order?" + q.Encode()
}
