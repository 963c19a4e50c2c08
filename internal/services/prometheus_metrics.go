package services

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const aggregationMetricPrefix = "aggregation."

type PrometheusMetrics struct {
	rowsTotal           *prometheus.CounterVec
	rowErrorsTotal      *prometheus.CounterVec
	reportRunsTotal     *prometheus.CounterVec
	loadDuration        prometheus.Histogram
	aggregationDuration *prometheus.HistogramVec
	totalRevenue        prometheus.Gauge
	distinctKeys        *prometheus.GaugeVec
}

// NewPrometheusMetrics registers the sales report metrics on reg. A batch
// run uses its own registry so the metrics can be written as a textfile.
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsRecorderInterface {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		rowsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sales_rows_total",
				Help: "Total number of sales data rows by outcome",
			},
			[]string{"outcome"},
		),
		rowErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sales_row_errors_total",
				Help: "Total number of malformed sales rows by error code",
			},
			[]string{"code"},
		),
		reportRunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sales_report_runs_total",
				Help: "Total number of report runs by status",
			},
			[]string{"status"},
		),
		loadDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sales_load_duration_seconds",
				Help:    "Time spent reading and parsing the sales data",
				Buckets: prometheus.DefBuckets,
			},
		),
		aggregationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sales_aggregation_duration_seconds",
				Help:    "Time spent in each aggregator",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"aggregator"},
		),
		totalRevenue: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "sales_total_revenue",
				Help: "Total revenue of the last report run",
			},
		),
		distinctKeys: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sales_distinct_keys",
				Help: "Number of distinct grouping keys in the last report run",
			},
			[]string{"kind"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case "sales.row.parsed":
		m.rowsTotal.WithLabelValues("parsed").Inc()
	case "sales.row.rejected":
		m.rowsTotal.WithLabelValues("rejected").Inc()
		if code := tags["code"]; code != "" {
			m.rowErrorsTotal.WithLabelValues(code).Inc()
		}
	case "report.run":
		if status := tags["status"]; status != "" {
			m.reportRunsTotal.WithLabelValues(status).Inc()
		}
	}
}

func (m *PrometheusMetrics) RecordProcessingTime(name string, duration time.Duration) {
	switch {
	case name == "report.load":
		m.loadDuration.Observe(duration.Seconds())
	case strings.HasPrefix(name, aggregationMetricPrefix):
		aggregator := strings.TrimPrefix(name, aggregationMetricPrefix)
		m.aggregationDuration.WithLabelValues(aggregator).Observe(duration.Seconds())
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case "sales.total_revenue":
		m.totalRevenue.Set(value)
	case "sales.distinct_keys":
		if kind := tags["kind"]; kind != "" {
			m.distinctKeys.WithLabelValues(kind).Set(value)
		}
	}
}
