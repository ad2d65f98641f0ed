package sandbox

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"qrdine/internal/models"
)

func (s *Server) handleListTables(c *gin.Context) {
	comp := companyID(c)
	branchID := branchQuery(c)

	s.store.mu.Lock()
	out := make([]models.Table, 0)
	for _, t := range s.store.tables {
		if t.CompanyID == comp && branchMatches(branchID, t.BranchID) {
			out = append(out, t.Table)
		}
	}
	s.store.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].TableNumber < out[j].TableNumber })
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleCreateTable(c *gin.Context) {
	var t models.Table
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if t.TableNumber <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "table_number must be positive"})
		return
	}

	s.store.mu.Lock()
	t.ID = s.store.id()
	s.store.tables[t.ID] = &table{Table: t, CompanyID: companyID(c)}
	s.store.mu.Unlock()

	c.JSON(http.StatusCreated, t)
}

func (s *Server) handleUpdateTable(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var t models.Table
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	s.store.mu.Lock()
	existing := s.store.tables[id]
	if existing == nil || existing.CompanyID != companyID(c) {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"message": "table not found"})
		return
	}
	t.ID = id
	existing.Table = t
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, t)
}

func (s *Server) handleDeleteTable(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	s.store.mu.Lock()
	existing := s.store.tables[id]
	if existing == nil || existing.CompanyID != companyID(c) {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"message": "table not found"})
		return
	}
	delete(s.store.tables, id)
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (s *Server) handleListTableGroups(c *gin.Context) {
	comp := companyID(c)

	s.store.mu.Lock()
	out := make([]models.TableGroup, 0)
	for _, g := range s.store.groups {
		if g.CompanyID == comp {
			out = append(out, g.TableGroup)
		}
	}
	s.store.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleCreateTableGroup(c *gin.Context) {
	var g models.TableGroup
	if err := c.ShouldBindJSON(&g); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if g.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name is required"})
		return
	}

	s.store.mu.Lock()
	g.ID = s.store.id()
	s.store.groups[g.ID] = &tableGroup{TableGroup: g, CompanyID: companyID(c)}
	s.store.mu.Unlock()

	c.JSON(http.StatusCreated, g)
}

func (s *Server) handleDeleteTableGroup(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	comp := companyID(c)
	s.store.mu.Lock()
	existing := s.store.groups[id]
	if existing == nil || existing.CompanyID != comp {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"message": "table group not found"})
		return
	}
	// Deleting a group in use is a business-rule failure, surfaced verbatim.
	for _, t := range s.store.tables {
		if t.CompanyID == comp && t.GroupID == id {
			s.store.mu.Unlock()
			c.JSON(http.StatusConflict, gin.H{"message": "group is still assigned to tables"})
			return
		}
	}
	delete(s.store.groups, id)
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
