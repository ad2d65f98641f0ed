package models

// Feature identifiers for the permission map. The set is closed: a permission
// check against an unknown feature is always denied.
const (
	FeatureMenu        = "menu"
	FeatureTables      = "tables"
	FeatureOrders      = "orders"
	FeatureStaff       = "staff"
	FeatureAnalytics   = "analytics"
	FeatureIngredients = "ingredients"
	FeatureBranches    = "branches"
	FeatureSettings    = "settings"
	FeatureUsers       = "users"
	FeatureRoles       = "roles"
)

type Permissions map[string]bool

type User struct {
	ID          uint        `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	PIN         string      `json:"pin,omitempty"`
	CompanyID   uint        `json:"company_id"`
	RoleID      uint        `json:"role_id"`
	Permissions Permissions `json:"permissions"`
}

type Role struct {
	ID          uint        `json:"id"`
	Name        string      `json:"name"`
	Permissions Permissions `json:"permissions"`
}

// Can is the single authorization check used for UI gating. It is UX only:
// the server independently enforces every permission.
func (u *User) Can(feature string) bool {
	if u == nil || u.Permissions == nil {
		return false
	}
	return u.Permissions[feature]
}
