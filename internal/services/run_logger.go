package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
)

type runIDKey struct{}

// WithRunID attaches the report run id to ctx so every event of the run can
// be correlated.
func WithRunID(ctx context.Context, runID uuid.UUID) context.Context {
	return context.WithValue(ctx, runIDKey{}, runID)
}

// RunIDFromContext returns the run id attached by WithRunID
func RunIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	if ctx == nil {
		return uuid.Nil, false
	}
	runID, ok := ctx.Value(runIDKey{}).(uuid.UUID)
	return runID, ok
}

type RunLogger struct {
	logger *slog.Logger
	now    func() time.Time
}

func NewRunLogger(logger *slog.Logger) RunLoggerInterface {
	if logger == nil {
		logger = slog.Default()
	}
	return &RunLogger{
		logger: logger,
		now:    time.Now,
	}
}

func (rl *RunLogger) LogRunStarted(ctx context.Context, source string) {
	rl.logger.InfoContext(ctx, "sales report run started",
		slog.String("event_type", "report_run_started"),
		slog.String("source", source),
		slog.Time("timestamp", rl.now()),
		slog.String("run_id", getRunID(ctx)),
	)
}

func (rl *RunLogger) LogRunCompleted(ctx context.Context, summary RunSummary) {
	rl.logger.InfoContext(ctx, "sales report generated",
		slog.String("event_type", "report_run_completed"),
		slog.String("source", summary.Source),
		slog.Int("lines", summary.Lines),
		slog.Int("record_count", summary.Records),
		slog.Int("skipped_rows", summary.Skipped),
		slog.Int("months", summary.Months),
		slog.Int("items", summary.Items),
		slog.String("total_sales", summary.TotalSales),
		slog.Int64("duration_ms", summary.DurationMs),
		slog.String("run_id", getRunID(ctx)),
	)
}

func (rl *RunLogger) LogRunFailed(ctx context.Context, source, code, errorMsg string, durationMs int64) {
	rl.logger.ErrorContext(ctx, "sales report run failed",
		slog.String("event_type", "report_run_failed"),
		slog.String("source", source),
		slog.String("code", code),
		slog.String("error", errorMsg),
		slog.Int64("duration_ms", durationMs),
		slog.String("run_id", getRunID(ctx)),
	)
}

// LogRowsSkipped summarizes the malformed rows of a run by error code
func (rl *RunLogger) LogRowsSkipped(ctx context.Context, byCode map[string]int) {
	if len(byCode) == 0 {
		return
	}

	attrs := []slog.Attr{
		slog.String("event_type", "rows_skipped"),
		slog.String("run_id", getRunID(ctx)),
	}
	codes := make([]string, 0, len(byCode))
	for code := range byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	total := 0
	for _, code := range codes {
		attrs = append(attrs, slog.Int(code, byCode[code]))
		total += byCode[code]
	}
	attrs = append(attrs, slog.Int("total", total))

	rl.logger.LogAttrs(ctx, slog.LevelWarn, "malformed sales rows skipped", attrs...)
}

func (rl *RunLogger) LogAggregationCompleted(ctx context.Context, aggregator string, duration time.Duration) {
	rl.logger.DebugContext(ctx, "aggregation completed",
		slog.String("event_type", "aggregation_completed"),
		slog.String("aggregator", aggregator),
		slog.Duration("duration", duration),
		slog.String("run_id", getRunID(ctx)),
	)
}

func getRunID(ctx context.Context) string {
	runID, ok := RunIDFromContext(ctx)
	if !ok {
		return ""
	}
	return runID.String()
}
