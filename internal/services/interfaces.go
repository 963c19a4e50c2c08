package services

import (
	"context"
	"io"
	"time"

	apperrors "sales-report/internal/errors"
	"sales-report/internal/models"

	"github.com/google/uuid"
)

// ParseResult is the outcome of parsing one sales data file
type ParseResult struct {
	Records []models.SaleRecord
	Skipped []*apperrors.RowError
	Lines   int
}

// SalesParserServiceInterface converts raw CSV text into sale records
type SalesParserServiceInterface interface {
	// Parse reads the restricted sales CSV dialect from r. Records come back in
	// file order.
	Parse(ctx context.Context, r io.Reader) (*ParseResult, error)
}

// ReportServiceInterface loads sales data and computes the sales report
type ReportServiceInterface interface {
	// GenerateReport loads, parses and aggregates the configured sales data
	GenerateReport(ctx context.Context, runID uuid.UUID) (*models.SalesReport, error)

	// Aggregate runs every aggregator over an already parsed record set
	Aggregate(ctx context.Context, runID uuid.UUID, records []models.SaleRecord) (*models.SalesReport, error)
}

// MetricsRecorderInterface records run metrics
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

// SalesGeneratorInterface generates synthetic sales data in the input dialect
type SalesGeneratorInterface interface {
	Generate(count int) []models.SaleRecord
	WriteCSV(w io.Writer, records []models.SaleRecord) error
	GetCatalogue() []string
}

// RunSummary is the outcome of a successful report run as logged
type RunSummary struct {
	Source     string
	Lines      int
	Records    int
	Skipped    int
	Months     int
	Items      int
	TotalSales string
	DurationMs int64
}

// RunLoggerInterface writes the structured lifecycle events of a report run.
// The run id is taken from the context (see WithRunID).
type RunLoggerInterface interface {
	LogRunStarted(ctx context.Context, source string)
	LogRunCompleted(ctx context.Context, summary RunSummary)
	LogRunFailed(ctx context.Context, source, code, errorMsg string, durationMs int64)
	LogRowsSkipped(ctx context.Context, byCode map[string]int)
	LogAggregationCompleted(ctx context.Context, aggregator string, duration time.Duration)
}
