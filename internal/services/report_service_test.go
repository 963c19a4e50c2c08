package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"sales-report/internal/config"
	apperrors "sales-report/internal/errors"
	"sales-report/internal/models"
	"sales-report/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
)

const scenarioCSV = "date,item,quantity,price\n" +
	"2024-01-05,Widget,10,100.0\n" +
	"2024-01-20,Widget,5,50.0\n" +
	"2024-02-01,Gadget,20,300.0\n"

// MockRunLogger is an inline RunLoggerInterface to avoid import cycles
type MockRunLogger struct {
	mu          sync.Mutex
	events      []string
	runIDs      []string
	summary     RunSummary
	failCode    string
	skipped     map[string]int
	aggregators []string
}

func (m *MockRunLogger) record(ctx context.Context, event string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	m.runIDs = append(m.runIDs, getRunID(ctx))
}

func (m *MockRunLogger) LogRunStarted(ctx context.Context, _ string) {
	m.record(ctx, "started")
}

func (m *MockRunLogger) LogRunCompleted(ctx context.Context, summary RunSummary) {
	m.record(ctx, "completed")
	m.summary = summary
}

func (m *MockRunLogger) LogRunFailed(ctx context.Context, _, code, _ string, _ int64) {
	m.record(ctx, "failed")
	m.failCode = code
}

func (m *MockRunLogger) LogRowsSkipped(ctx context.Context, byCode map[string]int) {
	m.record(ctx, "skipped")
	m.skipped = byCode
}

func (m *MockRunLogger) LogAggregationCompleted(_ context.Context, aggregator string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.aggregators = append(m.aggregators, aggregator)
}

// ReportServiceTestSuite defines the test suite for ReportServiceInterface
type ReportServiceTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockSalesRepo *repository_mocks.MockSalesDataRepositoryInterface
	registry      *prometheus.Registry
	metrics       *PrometheusMetrics
	runLogger     *MockRunLogger
	service       ReportServiceInterface
}

func TestReportServiceSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}

func (s *ReportServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockSalesRepo = repository_mocks.NewMockSalesDataRepositoryInterface(s.ctrl)
	s.mockSalesRepo.EXPECT().Location().Return("sales_data.csv").AnyTimes()
	s.registry = prometheus.NewRegistry()
	s.metrics = NewPrometheusMetrics(s.registry).(*PrometheusMetrics)
	s.runLogger = &MockRunLogger{}
	s.service = s.newService(config.PolicySkip, true)
}

func (s *ReportServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ReportServiceTestSuite) newService(policy string, concurrent bool) ReportServiceInterface {
	parser, err := NewSalesParserService(policy, s.metrics)
	s.Require().NoError(err)
	return NewReportService(s.mockSalesRepo, parser, s.metrics, s.runLogger, concurrent)
}

func (s *ReportServiceTestSuite) expectContent(content string) {
	s.mockSalesRepo.EXPECT().
		Open(gomock.Any()).
		Return(io.NopCloser(strings.NewReader(content)), nil)
}

func (s *ReportServiceTestSuite) assertScenario(report *models.SalesReport) {
	s.Equal("450", report.TotalSales.String())
	s.Equal(3, report.RecordCount)
	s.Equal("sales_data.csv", report.Source)

	s.Equal([]string{"01", "02"}, report.MonthlyTotals.Keys())
	jan, _ := report.MonthlyTotals.Get("01")
	s.Equal("150", jan.String())

	janTop, _ := report.MonthlyTopItems.Get("01")
	s.Equal(models.MonthlyTopItem{Item: "Widget", Quantity: 10}, janTop)

	febRev, _ := report.MonthlyTopRevenueItems.Get("02")
	s.Equal("Gadget", febRev.Item)
	s.Equal("300", febRev.Revenue.String())

	widget, _ := report.ItemStats.Get("Widget")
	s.Equal(7.5, widget.Avg)
	s.False(report.GeneratedAt.IsZero())
}

func (s *ReportServiceTestSuite) TestGenerateReport_Success() {
	runID := uuid.New()
	s.expectContent(scenarioCSV)

	report, err := s.service.GenerateReport(context.Background(), runID)

	s.Require().NoError(err)
	s.Equal(runID, report.RunID)
	s.Empty(report.SkippedRows)
	s.assertScenario(report)

	s.Equal(3.0, testutil.ToFloat64(s.metrics.rowsTotal.WithLabelValues("parsed")))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.reportRunsTotal.WithLabelValues("succeeded")))
	s.Equal(450.0, testutil.ToFloat64(s.metrics.totalRevenue))
	s.Equal(2.0, testutil.ToFloat64(s.metrics.distinctKeys.WithLabelValues("month")))
	s.Equal(2.0, testutil.ToFloat64(s.metrics.distinctKeys.WithLabelValues("item")))
	s.Equal(5, testutil.CollectAndCount(s.metrics.aggregationDuration))
}

func (s *ReportServiceTestSuite) TestGenerateReport_Sequential() {
	s.service = s.newService(config.PolicySkip, false)
	s.expectContent(scenarioCSV)

	report, err := s.service.GenerateReport(context.Background(), uuid.New())

	s.Require().NoError(err)
	s.assertScenario(report)
}

func (s *ReportServiceTestSuite) TestGenerateReport_SkippedRows() {
	s.expectContent(scenarioCSV + "2024-02-03,Gadget,many,10\n2024-02-04,\"Gadget\",1,10\n")

	report, err := s.service.GenerateReport(context.Background(), uuid.New())

	s.Require().NoError(err)
	s.assertScenario(report)
	s.Equal([]models.SkippedRow{
		{Line: 5, Code: string(apperrors.RowInvalidQuantity), Reason: `quantity "many" is not an integer`},
		{Line: 6, Code: string(apperrors.RowQuotedField), Reason: apperrors.GetErrorMessage(apperrors.RowQuotedField)},
	}, report.SkippedRows)
	s.Equal(2.0, testutil.ToFloat64(s.metrics.rowsTotal.WithLabelValues("rejected")))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.rowErrorsTotal.WithLabelValues(string(apperrors.RowQuotedField))))
}

func (s *ReportServiceTestSuite) TestGenerateReport_FailPolicy() {
	s.service = s.newService(config.PolicyFail, true)
	s.expectContent(scenarioCSV + "2024-02-03,Gadget,many,10\n")

	report, err := s.service.GenerateReport(context.Background(), uuid.New())

	s.Nil(report)
	s.Require().Error(err)
	s.Equal(apperrors.RowInvalidQuantity, apperrors.CodeOf(err))
	s.Contains(err.Error(), "line 5")
	s.Equal(1.0, testutil.ToFloat64(s.metrics.reportRunsTotal.WithLabelValues("failed")))
}

func (s *ReportServiceTestSuite) TestGenerateReport_InputNotFound() {
	notFound := apperrors.Newf(apperrors.InputNotFound, errors.New("no such file"), "sales data not found at %s", "sales_data.csv")
	s.mockSalesRepo.EXPECT().Open(gomock.Any()).Return(nil, notFound)

	report, err := s.service.GenerateReport(context.Background(), uuid.New())

	s.Nil(report)
	s.Require().Error(err)
	s.Equal(apperrors.InputNotFound, apperrors.CodeOf(err))
	s.Contains(err.Error(), "sales_data.csv")
	s.Equal(1.0, testutil.ToFloat64(s.metrics.reportRunsTotal.WithLabelValues("failed")))
	s.Equal(0, testutil.CollectAndCount(s.metrics.aggregationDuration))
}

func (s *ReportServiceTestSuite) TestGenerateReport_EmptyDataset() {
	s.expectContent("date,item,quantity,price\n")

	report, err := s.service.GenerateReport(context.Background(), uuid.New())

	s.Require().NoError(err)
	s.True(report.TotalSales.IsZero())
	s.Equal(0, report.RecordCount)
	s.Equal(0, report.MonthlyTotals.Len())
	s.Equal(0, report.MonthlyTopItems.Len())
	s.Equal(0, report.MonthlyTopRevenueItems.Len())
	s.Equal(0, report.ItemStats.Len())
}

func (s *ReportServiceTestSuite) TestAggregate_CancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, concurrent := range []bool{true, false} {
		service := s.newService(config.PolicySkip, concurrent)

		report, err := service.Aggregate(ctx, uuid.New(), scenarioRecords())

		s.Nil(report)
		s.Equal(apperrors.SystemCancelled, apperrors.CodeOf(err))
		s.ErrorIs(err, context.Canceled)
	}
}

func (s *ReportServiceTestSuite) TestAggregate_ConcurrentMatchesSequential() {
	records := NewSalesGenerator(99, 10, 2024).Generate(1000)

	concurrent, err := s.newService(config.PolicySkip, true).Aggregate(context.Background(), uuid.New(), records)
	s.Require().NoError(err)
	sequential, err := s.newService(config.PolicySkip, false).Aggregate(context.Background(), uuid.New(), records)
	s.Require().NoError(err)

	s.True(concurrent.TotalSales.Equal(sequential.TotalSales))
	s.Equal(concurrent.MonthlyTotals.Keys(), sequential.MonthlyTotals.Keys())
	s.Equal(concurrent.MonthlyTopItems.Keys(), sequential.MonthlyTopItems.Keys())
	s.Equal(concurrent.ItemStats.Keys(), sequential.ItemStats.Keys())
	concurrent.MonthlyTopItems.Each(func(month string, top models.MonthlyTopItem) {
		other, _ := sequential.MonthlyTopItems.Get(month)
		s.Equal(top, other)
	})
}

func (s *ReportServiceTestSuite) TestAggregate_NilMetrics() {
	service := NewReportService(s.mockSalesRepo, nil, nil, nil, true)

	report, err := service.Aggregate(context.Background(), uuid.New(), scenarioRecords())

	s.Require().NoError(err)
	s.Equal("450", report.TotalSales.String())
}

func (s *ReportServiceTestSuite) TestGenerateReport_LogsRunLifecycle() {
	runID := uuid.New()
	s.expectContent(scenarioCSV + "2024-02-03,Gadget,many,10\n")

	_, err := s.service.GenerateReport(context.Background(), runID)

	s.Require().NoError(err)
	s.Equal([]string{"started", "skipped", "completed"}, s.runLogger.events)
	for _, id := range s.runLogger.runIDs {
		s.Equal(runID.String(), id)
	}
	s.Equal(map[string]int{string(apperrors.RowInvalidQuantity): 1}, s.runLogger.skipped)
	s.Equal(RunSummary{
		Source:     "sales_data.csv",
		Lines:      5,
		Records:    3,
		Skipped:    1,
		Months:     2,
		Items:      2,
		TotalSales: "450",
		DurationMs: s.runLogger.summary.DurationMs,
	}, s.runLogger.summary)
	s.ElementsMatch([]string{"total_sales", "monthly_totals", "monthly_top_items", "monthly_top_revenue_items", "item_stats"}, s.runLogger.aggregators)
}

func (s *ReportServiceTestSuite) TestGenerateReport_LogsFailure() {
	s.mockSalesRepo.EXPECT().Open(gomock.Any()).Return(nil, apperrors.New(apperrors.InputUnreadable, errors.New("permission denied")))

	_, err := s.service.GenerateReport(context.Background(), uuid.New())

	s.Require().Error(err)
	s.Equal([]string{"started", "failed"}, s.runLogger.events)
	s.Equal(string(apperrors.InputUnreadable), s.runLogger.failCode)
}
