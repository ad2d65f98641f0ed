package sandbox

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"qrdine/internal/models"
)

// Seed loads a demo tenant so the CLIs have something to show against a fresh
// sandbox. Returns the demo login.
func (s *Server) Seed() (email, password string, err error) {
	email, password = "demo@qrdine.dev", "demo-pass"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash seed password: %w", err)
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	compID := s.store.id()
	s.store.companies[compID] = "Demo Diner"

	owner := models.User{
		ID:          s.store.id(),
		Name:        "Demo Owner",
		Email:       email,
		CompanyID:   compID,
		Permissions: fullPermissions(),
	}
	s.store.accounts[owner.ID] = &account{user: owner, passwordHash: hash}

	main := &branch{Branch: models.Branch{ID: s.store.id(), Name: "Main", Address: "1 Demo St", IsActive: true}, CompanyID: compID}
	garden := &branch{Branch: models.Branch{ID: s.store.id(), Name: "Garden", Address: "2 Demo St", IsActive: true}, CompanyID: compID}
	s.store.branches[main.Branch.ID] = main
	s.store.branches[garden.Branch.ID] = garden

	ac := &tableGroup{TableGroup: models.TableGroup{ID: s.store.id(), Name: "AC"}, CompanyID: compID}
	s.store.groups[ac.TableGroup.ID] = ac

	for i := 1; i <= 4; i++ {
		t := &table{
			Table: models.Table{
				ID:          s.store.id(),
				TableNumber: i,
				TableName:   fmt.Sprintf("Table %d", i),
				GroupID:     ac.TableGroup.ID,
				BranchID:    main.Branch.ID,
			},
			CompanyID: compID,
		}
		s.store.tables[t.Table.ID] = t
	}

	dishes := []models.MenuItem{
		{Name: "Paneer Tikka", Category: "starters", PriceINR: 240, PriceUSD: 3.2, IsAvailable: true},
		{Name: "Butter Chicken", Category: "mains", PriceINR: 380, PriceUSD: 4.9, IsAvailable: true},
		{Name: "Garlic Naan", Category: "breads", PriceINR: 60, PriceUSD: 0.9, IsAvailable: true},
		{Name: "Gulab Jamun", Category: "desserts", PriceINR: 120, PriceUSD: 1.6, IsAvailable: false},
	}
	for _, d := range dishes {
		d.ID = s.store.id()
		d.BranchID = main.Branch.ID
		d.CreatedAt = now()
		d.UpdatedAt = d.CreatedAt
		s.store.menu[d.ID] = &menuItem{MenuItem: d, CompanyID: compID}
	}

	stock := []models.Ingredient{
		{Name: "Paneer", Quantity: 12, Unit: "kg", Threshold: 5},
		{Name: "Tomatoes", Quantity: 3, Unit: "kg", Threshold: 8},
	}
	for _, ing := range stock {
		ing.ID = s.store.id()
		ing.BranchID = main.Branch.ID
		s.store.inventory[ing.ID] = &ingredient{Ingredient: ing, CompanyID: compID}
	}

	return email, password, nil
}
