package services

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics_RecordsSalesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheusMetrics(reg).(*PrometheusMetrics)

	m.IncrementCounter("sales.row.parsed", nil)
	m.IncrementCounter("sales.row.parsed", nil)
	m.IncrementCounter("sales.row.rejected", map[string]string{"code": "ROW_001"})
	m.IncrementCounter("report.run", map[string]string{"status": "succeeded"})
	m.RecordProcessingTime("report.load", 20*time.Millisecond)
	m.RecordProcessingTime("aggregation.item_stats", time.Millisecond)
	m.RecordGauge("sales.total_revenue", 450, nil)
	m.RecordGauge("sales.distinct_keys", 2, map[string]string{"kind": "month"})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.rowsTotal.WithLabelValues("parsed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rowsTotal.WithLabelValues("rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rowErrorsTotal.WithLabelValues("ROW_001")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reportRunsTotal.WithLabelValues("succeeded")))
	assert.Equal(t, 450.0, testutil.ToFloat64(m.totalRevenue))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.distinctKeys.WithLabelValues("month")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.aggregationDuration, "sales_aggregation_duration_seconds"))

	expected := `
# HELP sales_total_revenue Total revenue of the last report run
# TYPE sales_total_revenue gauge
sales_total_revenue 450
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "sales_total_revenue"))
}

func TestPrometheusMetrics_IgnoresUnknownNames(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheusMetrics(reg).(*PrometheusMetrics)

	m.IncrementCounter("unknown", nil)
	m.IncrementCounter("report.run", nil)
	m.RecordProcessingTime("unknown", time.Second)
	m.RecordGauge("sales.distinct_keys", 3, nil)

	assert.Equal(t, 0, testutil.CollectAndCount(m.reportRunsTotal))
	assert.Equal(t, 0, testutil.CollectAndCount(m.aggregationDuration))
	assert.Equal(t, 0, testutil.CollectAndCount(m.distinctKeys))
}

func TestNewPrometheusMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheusMetrics(reg)

	assert.Panics(t, func() { NewPrometheusMetrics(reg) })
}
