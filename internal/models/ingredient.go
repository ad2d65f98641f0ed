package models

type Ingredient struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	Threshold float64 `json:"threshold"`
	BranchID  uint    `json:"branch_id"`
}

// LowStock reports whether the on-hand quantity has fallen to the reorder
// threshold. Computed client-side; the server stores only the raw numbers.
func (i Ingredient) LowStock() bool {
	return i.Quantity <= i.Threshold
}
