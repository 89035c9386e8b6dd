package analytics

import (
	"github.com/shopspring/decimal"
)

// PeriodStats pairs an order count with its revenue for one window.
type PeriodStats struct {
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// PopularItem is a menu item ranked by quantity sold.
type PopularItem struct {
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// DashboardResponse merges the independent dashboard aggregates.
type DashboardResponse struct {
	Today          PeriodStats   `json:"today"`
	Week           PeriodStats   `json:"week"`
	Month          PeriodStats   `json:"month"`
	LowStockItems  int64         `json:"low_stock_items"`
	OccupiedTables int64         `json:"occupied_tables"`
	PopularItems   []PopularItem `json:"popular_items"`
}

// SalesPoint is one day of the revenue series.
type SalesPoint struct {
	Date    string          `json:"date"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// SalesResponse wraps the per-day revenue series.
type SalesResponse struct {
	Series []SalesPoint `json:"series"`
}
