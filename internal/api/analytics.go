package api

import (
	"context"
	"errors"
	"sync"

	"qrdine/internal/models"
)

// Dashboard aggregates every report section the analytics page renders.
type Dashboard struct {
	Summary        models.AnalyticsSummary
	Revenue        []models.RevenuePoint
	TopItems       []models.TopItem
	Categories     []models.CategoryPerformance
	PaymentMethods []models.PaymentMethodStat
	Tables         []models.TablePerformance
	Hourly         []models.HourlyBucket
	Retention      models.CustomerRetention
}

func (c *Client) AnalyticsSummary(ctx context.Context) (*models.AnalyticsSummary, error) {
	var out models.AnalyticsSummary
	if err := c.get(ctx, "/api/analytics/summary", c.scoped(nil), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RevenueOrders(ctx context.Context) ([]models.RevenuePoint, error) {
	var out []models.RevenuePoint
	if err := c.get(ctx, "/api/analytics/revenue-orders", c.scoped(nil), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) TopItems(ctx context.Context) ([]models.TopItem, error) {
	var out []models.TopItem
	if err := c.get(ctx, "/api/analytics/top-items", c.scoped(nil), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CategoryPerformance(ctx context.Context) ([]models.CategoryPerformance, error) {
	var out []models.CategoryPerformance
	if err := c.get(ctx, "/api/analytics/category-performance", c.scoped(nil), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PaymentMethods(ctx context.Context) ([]models.PaymentMethodStat, error) {
	var out []models.PaymentMethodStat
	if err := c.get(ctx, "/api/analytics/payment-methods", c.scoped(nil), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) TablePerformance(ctx context.Context) ([]models.TablePerformance, error) {
	var out []models.TablePerformance
	if err := c.get(ctx, "/api/analytics/table-performance", c.scoped(nil), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) HourlyOrders(ctx context.Context) ([]models.HourlyBucket, error) {
	var out []models.HourlyBucket
	if err := c.get(ctx, "/api/analytics/hourly-orders", c.scoped(nil), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CustomerRetention(ctx context.Context) (*models.CustomerRetention, error) {
	var out models.CustomerRetention
	if err := c.get(ctx, "/api/analytics/customer-retention", c.scoped(nil), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PreviousPeriod(ctx context.Context) (*models.PreviousPeriod, error) {
	var out models.PreviousPeriod
	if err := c.get(ctx, "/api/analytics/previous-period", c.scoped(nil), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchDashboard issues the eight report calls concurrently and waits for all
// of them. Sections fail independently: a partial dashboard plus the joined
// errors comes back rather than the first failure short-circuiting the rest.
func (c *Client) FetchDashboard(ctx context.Context) (*Dashboard, error) {
	var (
		dash Dashboard
		mu   sync.Mutex
		wg   sync.WaitGroup
		errs []error
	)

	run := func(fetch func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fetch(); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}

	run(func() error {
		s, err := c.AnalyticsSummary(ctx)
		if err == nil {
			dash.Summary = *s
		}
		return err
	})
	run(func() error {
		v, err := c.RevenueOrders(ctx)
		if err == nil {
			dash.Revenue = v
		}
		return err
	})
	run(func() error {
		v, err := c.TopItems(ctx)
		if err == nil {
			dash.TopItems = v
		}
		return err
	})
	run(func() error {
		v, err := c.CategoryPerformance(ctx)
		if err == nil {
			dash.Categories = v
		}
		return err
	})
	run(func() error {
		v, err := c.PaymentMethods(ctx)
		if err == nil {
			dash.PaymentMethods = v
		}
		return err
	})
	run(func() error {
		v, err := c.TablePerformance(ctx)
		if err == nil {
			dash.Tables = v
		}
		return err
	})
	run(func() error {
		v, err := c.HourlyOrders(ctx)
		if err == nil {
			dash.Hourly = v
		}
		return err
	})
	run(func() error {
		r, err := c.CustomerRetention(ctx)
		if err == nil {
			dash.Retention = *r
		}
		return err
	})

	wg.Wait()
	return &dash, errors.Join(errs...)
}
