package sandbox

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"qrdine/internal/models"
)

func (s *Server) handleListMenu(c *gin.Context) {
	comp := companyID(c)
	branchID := branchQuery(c)
	category := c.Query("category")
	availableOnly := c.Query("available") == "true"

	s.store.mu.Lock()
	out := make([]models.MenuItem, 0)
	for _, m := range s.store.menu {
		if m.CompanyID != comp || !branchMatches(branchID, m.BranchID) {
			continue
		}
		if category != "" && m.Category != category {
			continue
		}
		if availableOnly && !m.IsAvailable {
			continue
		}
		out = append(out, m.MenuItem)
	}
	s.store.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleCreateMenuItem(c *gin.Context) {
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if item.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name is required"})
		return
	}

	s.store.mu.Lock()
	item.ID = s.store.id()
	item.CreatedAt = now()
	item.UpdatedAt = item.CreatedAt
	s.store.menu[item.ID] = &menuItem{MenuItem: item, CompanyID: companyID(c)}
	s.store.mu.Unlock()

	c.JSON(http.StatusCreated, item)
}

func (s *Server) handleUpdateMenuItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var item models.MenuItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	s.store.mu.Lock()
	existing := s.store.menu[id]
	if existing == nil || existing.CompanyID != companyID(c) {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"message": "menu item not found"})
		return
	}
	item.ID = id
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = now()
	existing.MenuItem = item
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, item)
}

func (s *Server) handleDeleteMenuItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	s.store.mu.Lock()
	existing := s.store.menu[id]
	if existing == nil || existing.CompanyID != companyID(c) {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"message": "menu item not found"})
		return
	}
	delete(s.store.menu, id)
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
