package sandbox

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"qrdine/internal/models"
)

// companyOrders snapshots the non-cancelled orders in scope. Callers must not
// hold the store lock.
func (s *Server) companyOrders(c *gin.Context) []order {
	comp := companyID(c)
	branchID := branchQuery(c)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	out := make([]order, 0)
	for _, o := range s.store.orders {
		if o.CompanyID != comp || !branchMatches(branchID, o.BranchID) {
			continue
		}
		if o.OrderStatus == models.OrderCancelled {
			continue
		}
		out = append(out, *o)
	}
	return out
}

func (s *Server) handleAnalyticsSummary(c *gin.Context) {
	orders := s.companyOrders(c)

	var summary models.AnalyticsSummary
	tables := map[int]struct{}{}
	for _, o := range orders {
		summary.TotalRevenue += o.Total
		summary.TotalOrders++
		tables[o.TableNumber] = struct{}{}
	}
	if summary.TotalOrders > 0 {
		summary.AvgOrderValue = summary.TotalRevenue / float64(summary.TotalOrders)
	}
	summary.ActiveTables = len(tables)
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleRevenueOrders(c *gin.Context) {
	orders := s.companyOrders(c)

	byDate := map[string]*models.RevenuePoint{}
	for _, o := range orders {
		date := o.CreatedAt.Format("2006-01-02")
		p := byDate[date]
		if p == nil {
			p = &models.RevenuePoint{Date: date}
			byDate[date] = p
		}
		p.Revenue += o.Total
		p.Orders++
	}

	out := make([]models.RevenuePoint, 0, len(byDate))
	for _, p := range byDate {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleTopItems(c *gin.Context) {
	orders := s.companyOrders(c)

	byItem := map[string]*models.TopItem{}
	for _, o := range orders {
		for _, it := range o.Items {
			if it.ItemStatus == models.ItemCancelled {
				continue
			}
			t := byItem[it.ItemName]
			if t == nil {
				t = &models.TopItem{ItemName: it.ItemName}
				byItem[it.ItemName] = t
			}
			t.Quantity += it.Quantity
			t.Revenue += it.ItemTotal(o.Currency)
		}
	}

	out := make([]models.TopItem, 0, len(byItem))
	for _, t := range byItem {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	if len(out) > 10 {
		out = out[:10]
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleCategoryPerformance(c *gin.Context) {
	orders := s.companyOrders(c)

	// Resolve item categories through the menu; unknown items group under
	// "other".
	s.store.mu.Lock()
	categories := map[uint]string{}
	for id, m := range s.store.menu {
		categories[id] = m.Category
	}
	s.store.mu.Unlock()

	byCat := map[string]*models.CategoryPerformance{}
	for _, o := range orders {
		seen := map[string]struct{}{}
		for _, it := range o.Items {
			if it.ItemStatus == models.ItemCancelled {
				continue
			}
			cat := categories[it.MenuItemID]
			if cat == "" {
				cat = "other"
			}
			p := byCat[cat]
			if p == nil {
				p = &models.CategoryPerformance{Category: cat}
				byCat[cat] = p
			}
			p.Revenue += it.ItemTotal(o.Currency)
			if _, dup := seen[cat]; !dup {
				p.Orders++
				seen[cat] = struct{}{}
			}
		}
	}

	out := make([]models.CategoryPerformance, 0, len(byCat))
	for _, p := range byCat {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	c.JSON(http.StatusOK, out)
}

func (s *Server) handlePaymentMethods(c *gin.Context) {
	orders := s.companyOrders(c)

	byMethod := map[string]*models.PaymentMethodStat{}
	for _, o := range orders {
		m := byMethod[o.PaymentMethod]
		if m == nil {
			m = &models.PaymentMethodStat{Method: o.PaymentMethod}
			byMethod[o.PaymentMethod] = m
		}
		m.Count++
		m.Revenue += o.Total
	}

	out := make([]models.PaymentMethodStat, 0, len(byMethod))
	for _, m := range byMethod {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleTablePerformance(c *gin.Context) {
	orders := s.companyOrders(c)

	byTable := map[int]*models.TablePerformance{}
	for _, o := range orders {
		t := byTable[o.TableNumber]
		if t == nil {
			t = &models.TablePerformance{TableNumber: o.TableNumber}
			byTable[o.TableNumber] = t
		}
		t.Orders++
		t.Revenue += o.Total
	}

	out := make([]models.TablePerformance, 0, len(byTable))
	for _, t := range byTable {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TableNumber < out[j].TableNumber })
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleHourlyOrders(c *gin.Context) {
	orders := s.companyOrders(c)

	buckets := make([]models.HourlyBucket, 24)
	for h := range buckets {
		buckets[h].Hour = h
	}
	for _, o := range orders {
		buckets[o.CreatedAt.Hour()].Orders++
	}
	c.JSON(http.StatusOK, buckets)
}

func (s *Server) handleCustomerRetention(c *gin.Context) {
	orders := s.companyOrders(c)

	// Table number stands in for customer identity; the sandbox has no
	// account-level customer tracking.
	visits := map[int]int{}
	for _, o := range orders {
		visits[o.TableNumber]++
	}
	var ret models.CustomerRetention
	for _, n := range visits {
		if n > 1 {
			ret.ReturningCustomers++
		} else {
			ret.NewCustomers++
		}
	}
	if total := ret.NewCustomers + ret.ReturningCustomers; total > 0 {
		ret.RetentionRate = float64(ret.ReturningCustomers) / float64(total) * 100
	}
	c.JSON(http.StatusOK, ret)
}

func (s *Server) handlePreviousPeriod(c *gin.Context) {
	orders := s.companyOrders(c)

	cutoff := now().AddDate(0, 0, -30)
	var prev models.PreviousPeriod
	for _, o := range orders {
		if o.CreatedAt.Before(cutoff) {
			prev.TotalRevenue += o.Total
			prev.TotalOrders++
		}
	}
	c.JSON(http.StatusOK, prev)
}
