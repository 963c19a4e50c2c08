package report

import (
	"fmt"
	"io"
	"strings"

	"sales-report/internal/config"
	"sales-report/internal/models"

	"github.com/shopspring/decimal"
)

// TextRenderer prints the console report. Section order and labels are fixed.
type TextRenderer struct{}

func (t *TextRenderer) Format() string {
	return config.FormatText
}

func (t *TextRenderer) Render(w io.Writer, r *models.SalesReport) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Total Sales of the Store: %s\n", FormatAmount(r.TotalSales))

	b.WriteString("\nMonth-wise Sales Totals:\n")
	eachEntry(r.MonthlyTotals, func(month string, total decimal.Decimal) {
		fmt.Fprintf(&b, "Month: %s | Total Sales: %s\n", month, FormatAmount(total))
	})

	b.WriteString("\nMost Popular Item per Month:\n")
	eachEntry(r.MonthlyTopItems, func(month string, top models.MonthlyTopItem) {
		fmt.Fprintf(&b, "Month: %s | Most Popular Item: %s | Quantity Sold: %d\n", month, top.Item, top.Quantity)
	})

	b.WriteString("\nItems Generating Most Revenue per Month:\n")
	eachEntry(r.MonthlyTopRevenueItems, func(month string, top models.MonthlyTopRevenueItem) {
		fmt.Fprintf(&b, "Month: %s | Highest Revenue Item: %s | Revenue Generated: %s\n", month, top.Item, FormatAmount(top.Revenue))
	})

	b.WriteString("\nMin, Max, and Average Orders for Most Popular Item per Month:\n")
	eachEntry(r.ItemStats, func(item string, s models.ItemStats) {
		fmt.Fprintf(&b, "Item: %s | Min Orders: %d | Max Orders: %d | Average Orders: %s\n", item, s.Min, s.Max, FormatAverage(s.Avg))
	})

	if n := len(r.SkippedRows); n > 0 {
		fmt.Fprintf(&b, "\nSkipped Rows: %d\n", n)
	}

	return writeAll(w, []byte(b.String()))
}

// eachEntry tolerates sections missing from a partially built report
func eachEntry[V any](m *models.OrderedMap[V], fn func(key string, value V)) {
	if m == nil {
		return
	}
	m.Each(fn)
}
