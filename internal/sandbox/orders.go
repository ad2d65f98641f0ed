package sandbox

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"qrdine/internal/models"
	"qrdine/internal/realtime"
)

func pathID(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return 0, false
	}
	return uint(n), true
}

func branchQuery(c *gin.Context) uint {
	n, err := strconv.ParseUint(c.Query("branch_id"), 10, 32)
	if err != nil {
		return 0
	}
	return uint(n)
}

func (s *Server) handleListOrders(c *gin.Context) {
	comp := companyID(c)
	branchID := branchQuery(c)
	status := c.Query("status")

	s.store.mu.Lock()
	out := make([]models.Order, 0)
	for _, o := range s.store.orders {
		if o.CompanyID != comp || !branchMatches(branchID, o.BranchID) {
			continue
		}
		if status != "" && string(o.OrderStatus) != status {
			continue
		}
		out = append(out, o.Order)
	}
	s.store.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	s.store.mu.Lock()
	o := s.store.orders[id]
	s.store.mu.Unlock()

	if o == nil || o.CompanyID != companyID(c) {
		c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
		return
	}
	c.JSON(http.StatusOK, o.Order)
}

func (s *Server) handlePlaceOrder(c *gin.Context) {
	var req struct {
		TableNumber   int     `json:"table_number" binding:"required"`
		BranchID      uint    `json:"branch_id"`
		Currency      string  `json:"currency" binding:"required"`
		PaymentMethod string  `json:"payment_method" binding:"required"`
		Total         float64 `json:"total"`
		Items         []struct {
			MenuItemID uint    `json:"menu_item_id"`
			ItemName   string  `json:"item_name"`
			Quantity   int     `json:"quantity"`
			PriceINR   float64 `json:"price_inr"`
			PriceUSD   float64 `json:"price_usd"`
		} `json:"items" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	comp := companyID(c)
	ts := now()

	s.store.mu.Lock()
	o := &order{
		Order: models.Order{
			ID:            s.store.id(),
			TableNumber:   req.TableNumber,
			BranchID:      req.BranchID,
			Currency:      req.Currency,
			PaymentMethod: req.PaymentMethod,
			OrderStatus:   models.OrderPending,
			Total:         req.Total,
			CreatedAt:     ts,
			UpdatedAt:     ts,
		},
		CompanyID: comp,
	}
	for _, it := range req.Items {
		o.Items = append(o.Items, models.OrderItem{
			ID:         s.store.id(),
			MenuItemID: it.MenuItemID,
			ItemName:   it.ItemName,
			Quantity:   it.Quantity,
			PriceINR:   it.PriceINR,
			PriceUSD:   it.PriceUSD,
			ItemStatus: models.ItemActive,
		})
	}
	s.store.orders[o.Order.ID] = o
	placed := o.Order
	s.store.mu.Unlock()

	s.hub.broadcast(comp, realtime.EventNewOrder, placed)
	c.JSON(http.StatusCreated, placed)
}

// validTransition is the server-owned order state machine: strictly forward,
// one step at a time, nothing out of a terminal state.
func validTransition(from, to models.OrderStatus) bool {
	next, ok := from.Next()
	return ok && next == to
}

func (s *Server) handleUpdateOrderStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		OrderStatus models.OrderStatus `json:"order_status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	comp := companyID(c)
	s.store.mu.Lock()
	o := s.store.orders[id]
	if o == nil || o.CompanyID != comp {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
		return
	}
	if !validTransition(o.OrderStatus, req.OrderStatus) {
		s.store.mu.Unlock()
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "invalid status transition"})
		return
	}
	o.OrderStatus = req.OrderStatus
	o.UpdatedAt = now()
	updated := o.Order
	s.store.mu.Unlock()

	s.hub.broadcast(comp, realtime.EventOrderStatusUpdated, models.OrderStatusPatch{
		ID:          updated.ID,
		OrderStatus: updated.OrderStatus,
		UpdatedAt:   updated.UpdatedAt,
	})
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleCancelOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	comp := companyID(c)
	s.store.mu.Lock()
	o := s.store.orders[id]
	if o == nil || o.CompanyID != comp {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
		return
	}
	if !o.OrderStatus.Cancellable() {
		s.store.mu.Unlock()
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "order can no longer be cancelled"})
		return
	}
	o.OrderStatus = models.OrderCancelled
	o.UpdatedAt = now()
	updated := o.Order
	s.store.mu.Unlock()

	s.hub.broadcast(comp, realtime.EventOrderStatusUpdated, models.OrderStatusPatch{
		ID:          updated.ID,
		OrderStatus: updated.OrderStatus,
		UpdatedAt:   updated.UpdatedAt,
	})
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleCancelOrderItem(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "item_id")
	if !ok {
		return
	}

	comp := companyID(c)
	s.store.mu.Lock()
	o := s.store.orders[orderID]
	if o == nil || o.CompanyID != comp {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
		return
	}
	if !o.OrderStatus.Cancellable() {
		s.store.mu.Unlock()
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "order can no longer be changed"})
		return
	}
	found := false
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			o.Items[i].ItemStatus = models.ItemCancelled
			found = true
			break
		}
	}
	if !found {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"message": "order item not found"})
		return
	}
	// The item flips; the order's aggregate status stays whatever it was.
	o.UpdatedAt = now()
	updated := o.Order
	s.store.mu.Unlock()

	s.hub.broadcast(comp, realtime.EventOrderUpdated, updated)
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleOrderFeedback(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	comp := companyID(c)
	s.store.mu.Lock()
	o := s.store.orders[id]
	if o == nil || o.CompanyID != comp {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
		return
	}
	o.HasFeedback = true
	o.UpdatedAt = now()
	updated := o.Order
	s.store.mu.Unlock()

	s.hub.broadcast(comp, realtime.EventOrderUpdated, updated)
	c.JSON(http.StatusOK, updated)
}
