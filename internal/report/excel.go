package report

import (
	"time"

	apperrors "sales-report/internal/errors"
	"sales-report/internal/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary       = "Summary"
	SheetMonthlyTotals = "Monthly Totals"
	SheetTopItems      = "Top Items"
	SheetTopRevenue    = "Top Revenue"
	SheetItemStats     = "Item Stats"
	SheetSkippedRows   = "Skipped Rows"
)

// ExcelExporter writes the report as a workbook with one sheet per section
type ExcelExporter struct{}

func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Export saves the workbook to path
func (e *ExcelExporter) Export(path string, r *models.SalesReport) error {
	f, err := e.build(r)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return apperrors.Newf(apperrors.ReportExportFailed, err, "failed to save workbook %s", path)
	}
	return nil
}

func (e *ExcelExporter) build(r *models.SalesReport) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		f.Close()
		return nil, apperrors.New(apperrors.ReportExportFailed, err)
	}

	summary := [][]interface{}{
		{"Field", "Value"},
		{"Run ID", r.RunID.String()},
		{"Source", r.Source},
		{"Records", r.RecordCount},
		{"Total Sales", amount(r.TotalSales)},
		{"Skipped Rows", len(r.SkippedRows)},
		{"Generated At", r.GeneratedAt.UTC().Format(time.RFC3339)},
	}

	monthly := [][]interface{}{{"Month", "Total Sales"}}
	eachEntry(r.MonthlyTotals, func(month string, total decimal.Decimal) {
		monthly = append(monthly, []interface{}{month, amount(total)})
	})

	topItems := [][]interface{}{{"Month", "Most Popular Item", "Quantity Sold"}}
	eachEntry(r.MonthlyTopItems, func(month string, top models.MonthlyTopItem) {
		topItems = append(topItems, []interface{}{month, top.Item, top.Quantity})
	})

	topRevenue := [][]interface{}{{"Month", "Highest Revenue Item", "Revenue Generated"}}
	eachEntry(r.MonthlyTopRevenueItems, func(month string, top models.MonthlyTopRevenueItem) {
		topRevenue = append(topRevenue, []interface{}{month, top.Item, amount(top.Revenue)})
	})

	itemStats := [][]interface{}{{"Item", "Min Orders", "Max Orders", "Average Orders", "Total Quantity", "Transactions"}}
	eachEntry(r.ItemStats, func(item string, s models.ItemStats) {
		itemStats = append(itemStats, []interface{}{item, s.Min, s.Max, s.Avg, amount(s.Total), s.Count})
	})

	sheets := []struct {
		name string
		rows [][]interface{}
	}{
		{SheetSummary, summary},
		{SheetMonthlyTotals, monthly},
		{SheetTopItems, topItems},
		{SheetTopRevenue, topRevenue},
		{SheetItemStats, itemStats},
	}

	if len(r.SkippedRows) > 0 {
		skipped := [][]interface{}{{"Line", "Code", "Reason"}}
		for _, row := range r.SkippedRows {
			skipped = append(skipped, []interface{}{row.Line, row.Code, row.Reason})
		}
		sheets = append(sheets, struct {
			name string
			rows [][]interface{}
		}{SheetSkippedRows, skipped})
	}

	for _, sheet := range sheets {
		if sheet.name != SheetSummary {
			if _, err := f.NewSheet(sheet.name); err != nil {
				f.Close()
				return nil, apperrors.Newf(apperrors.ReportExportFailed, err, "failed to create sheet %s", sheet.name)
			}
		}
		if err := writeRows(f, sheet.name, sheet.rows); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return apperrors.New(apperrors.ReportExportFailed, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return apperrors.Newf(apperrors.ReportExportFailed, err, "failed to write %s row %d", sheet, i+1)
		}
	}
	return nil
}

// amount is the numeric cell value for a decimal; spreadsheets store floats.
func amount(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
