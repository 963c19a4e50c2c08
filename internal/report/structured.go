package report

import (
	"encoding/json"
	"io"
	"time"

	"sales-report/internal/config"
	apperrors "sales-report/internal/errors"
	"sales-report/internal/models"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"
)

// JSONRenderer writes the report as a JSON document. Map sections keep
// first-seen order through models.OrderedMap.
type JSONRenderer struct {
	Indent string
}

func (j *JSONRenderer) Format() string {
	return config.FormatJSON
}

func (j *JSONRenderer) Render(w io.Writer, r *models.SalesReport) error {
	data, err := json.MarshalIndent(r, "", j.Indent)
	if err != nil {
		return apperrors.New(apperrors.ReportRenderFailed, err)
	}
	return writeAll(w, append(data, '\n'))
}

// YAMLRenderer writes the report as a YAML document built from ordered
// MapSlices, so keys come out in report order.
type YAMLRenderer struct{}

func (y *YAMLRenderer) Format() string {
	return config.FormatYAML
}

func (y *YAMLRenderer) Render(w io.Writer, r *models.SalesReport) error {
	data, err := yaml.Marshal(Document(r))
	if err != nil {
		return apperrors.New(apperrors.ReportRenderFailed, err)
	}
	return writeAll(w, data)
}

// Document converts a report into an ordered YAML document. Amounts are
// strings so they round-trip exactly.
func Document(r *models.SalesReport) yaml.MapSlice {
	monthly := yaml.MapSlice{}
	eachEntry(r.MonthlyTotals, func(month string, total decimal.Decimal) {
		monthly = append(monthly, yaml.MapItem{Key: month, Value: FormatAmount(total)})
	})

	topItems := yaml.MapSlice{}
	eachEntry(r.MonthlyTopItems, func(month string, top models.MonthlyTopItem) {
		topItems = append(topItems, yaml.MapItem{Key: month, Value: yaml.MapSlice{
			{Key: "item", Value: top.Item},
			{Key: "quantity", Value: top.Quantity},
		}})
	})

	topRevenue := yaml.MapSlice{}
	eachEntry(r.MonthlyTopRevenueItems, func(month string, top models.MonthlyTopRevenueItem) {
		topRevenue = append(topRevenue, yaml.MapItem{Key: month, Value: yaml.MapSlice{
			{Key: "item", Value: top.Item},
			{Key: "revenue", Value: FormatAmount(top.Revenue)},
		}})
	})

	itemStats := yaml.MapSlice{}
	eachEntry(r.ItemStats, func(item string, s models.ItemStats) {
		itemStats = append(itemStats, yaml.MapItem{Key: item, Value: yaml.MapSlice{
			{Key: "min", Value: s.Min},
			{Key: "max", Value: s.Max},
			{Key: "total", Value: FormatAmount(s.Total)},
			{Key: "count", Value: s.Count},
			{Key: "avg", Value: s.Avg},
		}})
	})

	doc := yaml.MapSlice{
		{Key: "run_id", Value: r.RunID.String()},
		{Key: "source", Value: r.Source},
		{Key: "record_count", Value: r.RecordCount},
		{Key: "total_sales", Value: FormatAmount(r.TotalSales)},
		{Key: "monthly_totals", Value: monthly},
		{Key: "monthly_top_items", Value: topItems},
		{Key: "monthly_top_revenue_items", Value: topRevenue},
		{Key: "item_stats", Value: itemStats},
	}

	if len(r.SkippedRows) > 0 {
		skipped := make([]yaml.MapSlice, 0, len(r.SkippedRows))
		for _, row := range r.SkippedRows {
			skipped = append(skipped, yaml.MapSlice{
				{Key: "line", Value: row.Line},
				{Key: "code", Value: row.Code},
				{Key: "reason", Value: row.Reason},
			})
		}
		doc = append(doc, yaml.MapItem{Key: "skipped_rows", Value: skipped})
	}

	return append(doc, yaml.MapItem{Key: "generated_at", Value: r.GeneratedAt.UTC().Format(time.RFC3339)})
}
