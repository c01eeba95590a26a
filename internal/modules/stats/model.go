package stats

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderCounts breaks the scoped order stream down by status.
type OrderCounts struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
}

// ProductCounts summarises the scoped catalog.
type ProductCounts struct {
	Total    int `json:"total"`
	LowStock int `json:"low_stock"`
}

// Summary is the GET /api/stats response. Revenue counts completed orders
// only.
type Summary struct {
	Orders   OrderCounts     `json:"orders"`
	Revenue  decimal.Decimal `json:"revenue"`
	Products ProductCounts   `json:"products"`
}

// ProductSales accumulates quantity and revenue for one product across the
// completed order stream, in total and within the current week and month.
type ProductSales struct {
	ProductID     uuid.UUID       `json:"product_id"`
	Name          string          `json:"name"`
	TotalQuantity int             `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	WeekQuantity  int             `json:"week_quantity"`
	WeekRevenue   decimal.Decimal `json:"week_revenue"`
	MonthQuantity int             `json:"month_quantity"`
	MonthRevenue  decimal.Decimal `json:"month_revenue"`
}

// Ranking is the GET /api/stats/sales response: four top-10 lists over the
// same per-product accumulation.
type Ranking struct {
	ByWeekQuantity  []*ProductSales `json:"by_week_quantity"`
	ByWeekRevenue   []*ProductSales `json:"by_week_revenue"`
	ByMonthQuantity []*ProductSales `json:"by_month_quantity"`
	ByMonthRevenue  []*ProductSales `json:"by_month_revenue"`
}
