package services

import (
	"context"
	"fmt"
	"time"

	apperrors "sales-report/internal/errors"
	"sales-report/internal/models"
	"sales-report/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type reportService struct {
	salesRepo  repositories.SalesDataRepositoryInterface
	parser     SalesParserServiceInterface
	metrics    MetricsRecorderInterface
	runLogger  RunLoggerInterface
	concurrent bool
	now        func() time.Time
}

// NewReportService wires the sales data source, the parser, the metrics
// recorder and the run logger. With concurrent set the aggregators run in
// parallel; they only read the record slice and each writes its own report
// field.
func NewReportService(
	salesRepo repositories.SalesDataRepositoryInterface,
	parser SalesParserServiceInterface,
	metrics MetricsRecorderInterface,
	runLogger RunLoggerInterface,
	concurrent bool,
) ReportServiceInterface {
	if runLogger == nil {
		runLogger = NewRunLogger(nil)
	}
	return &reportService{
		salesRepo:  salesRepo,
		parser:     parser,
		metrics:    metrics,
		runLogger:  runLogger,
		concurrent: concurrent,
		now:        time.Now,
	}
}

func (s *reportService) GenerateReport(ctx context.Context, runID uuid.UUID) (*models.SalesReport, error) {
	ctx = WithRunID(ctx, runID)
	start := s.now()
	source := s.salesRepo.Location()

	s.runLogger.LogRunStarted(ctx, source)

	result, err := s.load(ctx)
	if err != nil {
		s.fail(ctx, source, start, err)
		return nil, fmt.Errorf("failed to load sales data: %w", err)
	}

	report, err := s.Aggregate(ctx, runID, result.Records)
	if err != nil {
		s.fail(ctx, source, start, err)
		return nil, err
	}

	report.SkippedRows = skippedRows(result.Skipped)
	s.runLogger.LogRowsSkipped(ctx, countByCode(result.Skipped))

	s.increment("report.run", map[string]string{"status": "succeeded"})

	s.runLogger.LogRunCompleted(ctx, RunSummary{
		Source:     report.Source,
		Lines:      result.Lines,
		Records:    report.RecordCount,
		Skipped:    len(report.SkippedRows),
		Months:     report.MonthlyTotals.Len(),
		Items:      report.ItemStats.Len(),
		TotalSales: report.TotalSales.String(),
		DurationMs: s.now().Sub(start).Milliseconds(),
	})

	return report, nil
}

func (s *reportService) fail(ctx context.Context, source string, start time.Time, err error) {
	s.increment("report.run", map[string]string{"status": "failed"})
	s.runLogger.LogRunFailed(ctx, source, string(apperrors.CodeOf(err)), err.Error(), s.now().Sub(start).Milliseconds())
}

func (s *reportService) load(ctx context.Context) (*ParseResult, error) {
	start := s.now()
	defer func() {
		s.observe("report.load", start)
	}()

	rc, err := s.salesRepo.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return s.parser.Parse(ctx, rc)
}

func (s *reportService) Aggregate(ctx context.Context, runID uuid.UUID, records []models.SaleRecord) (*models.SalesReport, error) {
	ctx = WithRunID(ctx, runID)

	report := &models.SalesReport{
		RunID:       runID,
		Source:      s.salesRepo.Location(),
		RecordCount: len(records),
	}

	steps := []struct {
		name string
		run  func()
	}{
		{"total_sales", func() { report.TotalSales = TotalSales(records) }},
		{"monthly_totals", func() { report.MonthlyTotals = MonthlySalesTotals(records) }},
		{"monthly_top_items", func() { report.MonthlyTopItems = MostPopularItemPerMonth(records) }},
		{"monthly_top_revenue_items", func() { report.MonthlyTopRevenueItems = TopRevenueItemPerMonth(records) }},
		{"item_stats", func() { report.ItemStats = ItemOrderStats(records) }},
	}

	if s.concurrent {
		g, gctx := errgroup.WithContext(ctx)
		for _, step := range steps {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				s.timed(gctx, step.name, step.run)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, apperrors.New(apperrors.SystemCancelled, err)
		}
	} else {
		for _, step := range steps {
			if err := ctx.Err(); err != nil {
				return nil, apperrors.New(apperrors.SystemCancelled, err)
			}
			s.timed(ctx, step.name, step.run)
		}
	}

	report.GeneratedAt = s.now()

	s.gauge("sales.total_revenue", report.TotalSales.InexactFloat64(), nil)
	s.gauge("sales.distinct_keys", float64(report.MonthlyTotals.Len()), map[string]string{"kind": "month"})
	s.gauge("sales.distinct_keys", float64(report.ItemStats.Len()), map[string]string{"kind": "item"})

	return report, nil
}

func (s *reportService) timed(ctx context.Context, name string, fn func()) {
	start := s.now()
	fn()
	s.observe(aggregationMetricPrefix+name, start)
	s.runLogger.LogAggregationCompleted(ctx, name, s.now().Sub(start))
}

func skippedRows(rowErrs []*apperrors.RowError) []models.SkippedRow {
	if len(rowErrs) == 0 {
		return nil
	}
	rows := make([]models.SkippedRow, 0, len(rowErrs))
	for _, re := range rowErrs {
		rows = append(rows, models.SkippedRow{
			Line:   re.Line,
			Code:   string(re.Code),
			Reason: re.Reason,
		})
	}
	return rows
}

func countByCode(rowErrs []*apperrors.RowError) map[string]int {
	if len(rowErrs) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, re := range rowErrs {
		counts[string(re.Code)]++
	}
	return counts
}

func (s *reportService) observe(name string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordProcessingTime(name, s.now().Sub(start))
	}
}

func (s *reportService) increment(name string, tags map[string]string) {
	if s.metrics != nil {
		s.metrics.IncrementCounter(name, tags)
	}
}

func (s *reportService) gauge(name string, value float64, tags map[string]string) {
	if s.metrics != nil {
		s.metrics.RecordGauge(name, value, tags)
	}
}
