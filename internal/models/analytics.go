package models

type AnalyticsSummary struct {
	TotalRevenue  float64 `json:"total_revenue"`
	TotalOrders   int     `json:"total_orders"`
	AvgOrderValue float64 `json:"avg_order_value"`
	ActiveTables  int     `json:"active_tables"`
}

type RevenuePoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type TopItem struct {
	ItemName string  `json:"item_name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type CategoryPerformance struct {
	Category string  `json:"category"`
	Orders   int     `json:"orders"`
	Revenue  float64 `json:"revenue"`
}

type PaymentMethodStat struct {
	Method  string  `json:"method"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type TablePerformance struct {
	TableNumber int     `json:"table_number"`
	Orders      int     `json:"orders"`
	Revenue     float64 `json:"revenue"`
}

type HourlyBucket struct {
	Hour   int `json:"hour"`
	Orders int `json:"orders"`
}

type CustomerRetention struct {
	NewCustomers       int     `json:"new_customers"`
	ReturningCustomers int     `json:"returning_customers"`
	RetentionRate      float64 `json:"retention_rate"`
}

type PreviousPeriod struct {
	TotalRevenue float64 `json:"total_revenue"`
	TotalOrders  int     `json:"total_orders"`
}
