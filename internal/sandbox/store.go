// Package sandbox is an in-memory implementation of the backend contract the
// client suite talks to. It exists for integration tests and local
// development; state lives in maps guarded by one mutex and dies with the
// process.
package sandbox

import (
	"sync"
	"time"

	"qrdine/internal/models"
)

type account struct {
	user         models.User
	passwordHash []byte
}

type order struct {
	models.Order
	CompanyID uint
}

type menuItem struct {
	models.MenuItem
	CompanyID uint
}

type table struct {
	models.Table
	CompanyID uint
}

type tableGroup struct {
	models.TableGroup
	CompanyID uint
}

type branch struct {
	models.Branch
	CompanyID uint
}

type role struct {
	models.Role
	CompanyID uint
}

type ingredient struct {
	models.Ingredient
	CompanyID uint
}

type ticket struct {
	models.SupportTicket
	CompanyID uint
}

type Store struct {
	mu     sync.Mutex
	nextID uint

	companies map[uint]string
	accounts  map[uint]*account
	menu      map[uint]*menuItem
	tables    map[uint]*table
	groups    map[uint]*tableGroup
	branches  map[uint]*branch
	roles     map[uint]*role
	inventory map[uint]*ingredient
	orders    map[uint]*order
	tickets   map[uint]*ticket
}

func NewStore() *Store {
	return &Store{
		companies: make(map[uint]string),
		accounts:  make(map[uint]*account),
		menu:      make(map[uint]*menuItem),
		tables:    make(map[uint]*table),
		groups:    make(map[uint]*tableGroup),
		branches:  make(map[uint]*branch),
		roles:     make(map[uint]*role),
		inventory: make(map[uint]*ingredient),
		orders:    make(map[uint]*order),
		tickets:   make(map[uint]*ticket),
	}
}

// id allocates the next identifier. Callers must hold mu.
func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

// fullPermissions is what a company owner gets on registration.
func fullPermissions() models.Permissions {
	return models.Permissions{
		models.FeatureMenu:        true,
		models.FeatureTables:      true,
		models.FeatureOrders:      true,
		models.FeatureStaff:       true,
		models.FeatureAnalytics:   true,
		models.FeatureIngredients: true,
		models.FeatureBranches:    true,
		models.FeatureSettings:    true,
		models.FeatureUsers:       true,
		models.FeatureRoles:       true,
	}
}

func (s *Store) findAccountByEmail(email string) *account {
	for _, a := range s.accounts {
		if a.user.Email == email {
			return a
		}
	}
	return nil
}

// branchMatches applies the optional branch_id sub-scope. Zero means no
// filter ("all branches combined").
func branchMatches(want, have uint) bool {
	return want == 0 || want == have
}

func now() time.Time {
	return time.Now().UTC()
}
