package sandbox

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"qrdine/internal/models"
)

func (s *Server) handleListBranches(c *gin.Context) {
	comp := companyID(c)

	s.store.mu.Lock()
	out := make([]models.Branch, 0)
	for _, b := range s.store.branches {
		if b.CompanyID == comp {
			out = append(out, b.Branch)
		}
	}
	s.store.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleCreateBranch(c *gin.Context) {
	var b models.Branch
	if err := c.ShouldBindJSON(&b); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if b.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name is required"})
		return
	}

	s.store.mu.Lock()
	b.ID = s.store.id()
	s.store.branches[b.ID] = &branch{Branch: b, CompanyID: companyID(c)}
	s.store.mu.Unlock()

	c.JSON(http.StatusCreated, b)
}

func (s *Server) handleUpdateBranch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var b models.Branch
	if err := c.ShouldBindJSON(&b); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	s.store.mu.Lock()
	existing := s.store.branches[id]
	if existing == nil || existing.CompanyID != companyID(c) {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"message": "branch not found"})
		return
	}
	b.ID = id
	existing.Branch = b
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, b)
}

func (s *Server) handleDeleteBranch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	comp := companyID(c)
	s.store.mu.Lock()
	existing := s.store.branches[id]
	if existing == nil || existing.CompanyID != comp {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"message": "branch not found"})
		return
	}
	for _, t := range s.store.tables {
		if t.CompanyID == comp && t.BranchID == id {
			s.store.mu.Unlock()
			c.JSON(http.StatusConflict, gin.H{"message": "branch still has tables"})
			return
		}
	}
	delete(s.store.branches, id)
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (s *Server) handleListRoles(c *gin.Context) {
	comp := companyID(c)

	s.store.mu.Lock()
	out := make([]models.Role, 0)
	for _, r := range s.store.roles {
		if r.CompanyID == comp {
			out = append(out, r.Role)
		}
	}
	s.store.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleCreateRole(c *gin.Context) {
	var r models.Role
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if r.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name is required"})
		return
	}

	s.store.mu.Lock()
	r.ID = s.store.id()
	s.store.roles[r.ID] = &role{Role: r, CompanyID: companyID(c)}
	s.store.mu.Unlock()

	c.JSON(http.StatusCreated, r)
}

func (s *Server) handleUpdateRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var r models.Role
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	s.store.mu.Lock()
	existing := s.store.roles[id]
	if existing == nil || existing.CompanyID != companyID(c) {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"message": "role not found"})
		return
	}
	r.ID = id
	existing.Role = r
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, r)
}

func (s *Server) handleDeleteRole(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	comp := companyID(c)
	s.store.mu.Lock()
	existing := s.store.roles[id]
	if existing == nil || existing.CompanyID != comp {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"message": "role not found"})
		return
	}
	for _, a := range s.store.accounts {
		if a.user.CompanyID == comp && a.user.RoleID == id {
			s.store.mu.Unlock()
			c.JSON(http.StatusConflict, gin.H{"message": "role is still assigned to users"})
			return
		}
	}
	delete(s.store.roles, id)
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// Users and staff share the account table; staff carry a PIN for floor login.

func (s *Server) listAccounts(c *gin.Context, staffOnly bool) {
	comp := companyID(c)

	s.store.mu.Lock()
	out := make([]models.User, 0)
	for _, a := range s.store.accounts {
		if a.user.CompanyID != comp {
			continue
		}
		if staffOnly && a.user.PIN == "" {
			continue
		}
		u := a.user
		u.PIN = ""
		out = append(out, u)
	}
	s.store.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleListUsers(c *gin.Context) { s.listAccounts(c, false) }
func (s *Server) handleListStaff(c *gin.Context) { s.listAccounts(c, true) }

func (s *Server) createAccount(c *gin.Context, requirePIN bool) {
	var req struct {
		Name     string             `json:"name" binding:"required"`
		Email    string             `json:"email" binding:"required,email"`
		Phone    string             `json:"phone"`
		PIN      string             `json:"pin"`
		Password string             `json:"password"`
		RoleID   uint               `json:"role_id"`
		Perms    models.Permissions `json:"permissions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if requirePIN && req.PIN == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "pin is required"})
		return
	}

	s.store.mu.Lock()
	if s.store.findAccountByEmail(req.Email) != nil {
		s.store.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"message": "email already registered"})
		return
	}
	var hash []byte
	if req.Password != "" {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.store.mu.Unlock()
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to hash password"})
			return
		}
	}
	user := models.User{
		ID:          s.store.id(),
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		PIN:         req.PIN,
		CompanyID:   companyID(c),
		RoleID:      req.RoleID,
		Permissions: req.Perms,
	}
	s.store.accounts[user.ID] = &account{user: user, passwordHash: hash}
	s.store.mu.Unlock()

	user.PIN = ""
	c.JSON(http.StatusCreated, user)
}

func (s *Server) handleCreateUser(c *gin.Context)  { s.createAccount(c, false) }
func (s *Server) handleCreateStaff(c *gin.Context) { s.createAccount(c, true) }

func (s *Server) updateAccount(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Name   string             `json:"name"`
		Phone  string             `json:"phone"`
		PIN    string             `json:"pin"`
		RoleID uint               `json:"role_id"`
		Perms  models.Permissions `json:"permissions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	s.store.mu.Lock()
	existing := s.store.accounts[id]
	if existing == nil || existing.user.CompanyID != companyID(c) {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}
	if req.Name != "" {
		existing.user.Name = req.Name
	}
	if req.Phone != "" {
		existing.user.Phone = req.Phone
	}
	if req.PIN != "" {
		existing.user.PIN = req.PIN
	}
	if req.RoleID != 0 {
		existing.user.RoleID = req.RoleID
	}
	if req.Perms != nil {
		existing.user.Permissions = req.Perms
	}
	out := existing.user
	s.store.mu.Unlock()

	out.PIN = ""
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleUpdateUser(c *gin.Context)  { s.updateAccount(c) }
func (s *Server) handleUpdateStaff(c *gin.Context) { s.updateAccount(c) }

func (s *Server) deleteAccount(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	s.store.mu.Lock()
	existing := s.store.accounts[id]
	if existing == nil || existing.user.CompanyID != companyID(c) {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}
	if id == c.GetUint("user_id") {
		s.store.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"message": "cannot delete the signed-in user"})
		return
	}
	delete(s.store.accounts, id)
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (s *Server) handleDeleteUser(c *gin.Context)  { s.deleteAccount(c) }
func (s *Server) handleDeleteStaff(c *gin.Context) { s.deleteAccount(c) }

func (s *Server) handleListIngredients(c *gin.Context) {
	comp := companyID(c)
	branchID := branchQuery(c)

	s.store.mu.Lock()
	out := make([]models.Ingredient, 0)
	for _, ing := range s.store.inventory {
		if ing.CompanyID == comp && branchMatches(branchID, ing.BranchID) {
			out = append(out, ing.Ingredient)
		}
	}
	s.store.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleCreateIngredient(c *gin.Context) {
	var ing models.Ingredient
	if err := c.ShouldBindJSON(&ing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if ing.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name is required"})
		return
	}

	s.store.mu.Lock()
	ing.ID = s.store.id()
	s.store.inventory[ing.ID] = &ingredient{Ingredient: ing, CompanyID: companyID(c)}
	s.store.mu.Unlock()

	c.JSON(http.StatusCreated, ing)
}

func (s *Server) handleUpdateIngredient(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var ing models.Ingredient
	if err := c.ShouldBindJSON(&ing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	s.store.mu.Lock()
	existing := s.store.inventory[id]
	if existing == nil || existing.CompanyID != companyID(c) {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"message": "ingredient not found"})
		return
	}
	ing.ID = id
	existing.Ingredient = ing
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, ing)
}

func (s *Server) handleDeleteIngredient(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	s.store.mu.Lock()
	existing := s.store.inventory[id]
	if existing == nil || existing.CompanyID != companyID(c) {
		s.store.mu.Unlock()
		c.JSON(http.StatusNotFound, gin.H{"message": "ingredient not found"})
		return
	}
	delete(s.store.inventory, id)
	s.store.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
