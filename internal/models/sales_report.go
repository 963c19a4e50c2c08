package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MonthlyTopItem is the best-selling transaction of a month by quantity
type MonthlyTopItem struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// MonthlyTopRevenueItem is the single highest-revenue transaction of a month
type MonthlyTopRevenueItem struct {
	Item    string          `json:"item"`
	Revenue decimal.Decimal `json:"revenue"`
}

// ItemStats holds per-item order quantity statistics across the dataset.
// Total is a decimal so summing many large quantities cannot overflow.
type ItemStats struct {
	Min   int             `json:"min"`
	Max   int             `json:"max"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
	Avg   float64         `json:"avg"`
}

// SkippedRow describes an input line dropped under the skip policy
type SkippedRow struct {
	Line   int    `json:"line"`
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// SalesReport is the complete result of one reporting run
type SalesReport struct {
	RunID                  uuid.UUID                          `json:"run_id"`
	Source                 string                             `json:"source"`
	RecordCount            int                                `json:"record_count"`
	TotalSales             decimal.Decimal                    `json:"total_sales"`
	MonthlyTotals          *OrderedMap[decimal.Decimal]       `json:"monthly_totals"`
	MonthlyTopItems        *OrderedMap[MonthlyTopItem]        `json:"monthly_top_items"`
	MonthlyTopRevenueItems *OrderedMap[MonthlyTopRevenueItem] `json:"monthly_top_revenue_items"`
	ItemStats              *OrderedMap[ItemStats]             `json:"item_stats"`
	SkippedRows            []SkippedRow                       `json:"skipped_rows,omitempty"`
	GeneratedAt            time.Time                          `json:"generated_at"`
}
