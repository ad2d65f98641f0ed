package sandbox

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"qrdine/internal/models"
)

func (s *Server) handleCreateTicket(c *gin.Context) {
	var req struct {
		Subject string `json:"subject" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ts := now()
	s.store.mu.Lock()
	t := &ticket{
		SupportTicket: models.SupportTicket{
			ID:      s.store.id(),
			Subject: req.Subject,
			Status:  models.TicketOpen,
			Messages: []models.TicketMessage{
				{SenderRole: "tenant", Message: req.Message, CreatedAt: ts},
			},
			CreatedAt: ts,
			UpdatedAt: ts,
		},
		CompanyID: companyID(c),
	}
	s.store.tickets[t.SupportTicket.ID] = t
	created := t.SupportTicket
	s.store.mu.Unlock()

	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleListTickets(c *gin.Context) {
	comp := companyID(c)

	s.store.mu.Lock()
	out := make([]models.SupportTicket, 0)
	for _, t := range s.store.tickets {
		if t.CompanyID == comp {
			out = append(out, t.SupportTicket)
		}
	}
	s.store.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetTicket(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	s.store.mu.Lock()
	t := s.store.tickets[id]
	s.store.mu.Unlock()

	if t == nil || t.CompanyID != companyID(c) {
		c.JSON(http.StatusNotFound, gin.H{"message": "ticket not found"})
		return
	}
	c.JSON(http.StatusOK, t.SupportTicket)
}

func (s *Server) handleReplyTicket(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	s.store.mu.Lock()
	t := s.store.tickets[id]
	if t == nil || t.CompanyID != companyID(c) {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"message": "ticket not found"})
		return
	}
	if t.Status == models.TicketClosed {
		s.store.mu.Unlock()
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "ticket is closed"})
		return
	}
	t.Messages = append(t.Messages, models.TicketMessage{
		SenderRole: "tenant",
		Message:    req.Message,
		CreatedAt:  now(),
	})
	t.Status = models.TicketPending
	t.UpdatedAt = now()
	updated := t.SupportTicket
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, updated)
}
