package models

type Table struct {
	ID          uint   `json:"id"`
	TableNumber int    `json:"table_number"`
	TableName   string `json:"table_name"`
	GroupID     uint   `json:"group_id"`
	BranchID    uint   `json:"branch_id"`
}

// TableGroup is a label applied to tables ("AC", "Garden").
type TableGroup struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Branch struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	ManagerName string `json:"manager_name"`
	IsActive    bool   `json:"is_active"`
}
