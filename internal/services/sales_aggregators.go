package services

import (
	"sales-report/internal/models"

	"github.com/shopspring/decimal"
)

// The aggregators below are pure single-pass folds over the record slice.
// Each owns its accumulator, never mutates the input, and returns mappings
// ordered by the first occurrence of each key.

// TotalSales sums the price of every record. An empty input yields zero.
func TotalSales(records []models.SaleRecord) decimal.Decimal {
	total := decimal.Zero
	for i := range records {
		total = total.Add(records[i].Price)
	}
	return total
}

// MonthlySalesTotals sums price per month key
func MonthlySalesTotals(records []models.SaleRecord) *models.OrderedMap[decimal.Decimal] {
	totals := models.NewOrderedMap[decimal.Decimal]()
	for i := range records {
		sale := &records[i]
		month := sale.Month()
		current, _ := totals.Get(month)
		totals.Set(month, current.Add(sale.Price))
	}
	return totals
}

// MostPopularItemPerMonth keeps, per month, the record with the greatest
// quantity. A later record replaces the holder only when strictly greater, so
// ties keep the first-seen record.
func MostPopularItemPerMonth(records []models.SaleRecord) *models.OrderedMap[models.MonthlyTopItem] {
	popular := models.NewOrderedMap[models.MonthlyTopItem]()
	for i := range records {
		sale := &records[i]
		month := sale.Month()
		current, exists := popular.Get(month)
		if !exists || current.Quantity < sale.Quantity {
			popular.Set(month, models.MonthlyTopItem{
				Item:     sale.Item,
				Quantity: sale.Quantity,
			})
		}
	}
	return popular
}

// TopRevenueItemPerMonth keeps, per month, the single transaction with the
// greatest price. This is transaction-level revenue, not revenue summed per
// item. Ties keep the first-seen record.
func TopRevenueItemPerMonth(records []models.SaleRecord) *models.OrderedMap[models.MonthlyTopRevenueItem] {
	topRevenue := models.NewOrderedMap[models.MonthlyTopRevenueItem]()
	for i := range records {
		sale := &records[i]
		month := sale.Month()
		current, exists := topRevenue.Get(month)
		if !exists || current.Revenue.LessThan(sale.Price) {
			topRevenue.Set(month, models.MonthlyTopRevenueItem{
				Item:    sale.Item,
				Revenue: sale.Price,
			})
		}
	}
	return topRevenue
}

// ItemOrderStats computes min, max, total, count and average quantity per
// item across the whole dataset.
func ItemOrderStats(records []models.SaleRecord) *models.OrderedMap[models.ItemStats] {
	stats := models.NewOrderedMap[models.ItemStats]()
	for i := range records {
		sale := &records[i]
		current, exists := stats.Get(sale.Item)
		if !exists {
			stats.Set(sale.Item, models.ItemStats{
				Min:   sale.Quantity,
				Max:   sale.Quantity,
				Total: decimal.NewFromInt(int64(sale.Quantity)),
				Count: 1,
			})
			continue
		}

		current.Min = min(current.Min, sale.Quantity)
		current.Max = max(current.Max, sale.Quantity)
		current.Total = current.Total.Add(decimal.NewFromInt(int64(sale.Quantity)))
		current.Count++
		stats.Set(sale.Item, current)
	}

	for _, item := range stats.Keys() {
		s, _ := stats.Get(item)
		s.Avg = s.Total.InexactFloat64() / float64(s.Count)
		stats.Set(item, s)
	}

	return stats
}
