package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"sales-report/internal/config"
	apperrors "sales-report/internal/errors"
	"sales-report/internal/models"
	"sales-report/internal/report"
	"sales-report/internal/repositories"
	"sales-report/internal/services"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

func runReport(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		return configFailure(stderr, err)
	}

	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(stderr)
	input := fs.String("input", cfg.Input.Path, "Sales CSV path or gs://bucket/object URI")
	format := fs.String("format", cfg.Report.Format, "Output format: text, json or yaml")
	xlsxPath := fs.String("xlsx", cfg.Report.XLSXPath, "Also export the report as an Excel workbook to this path")
	onMalformed := fs.String("on-malformed", cfg.Input.MalformedRows, "Malformed row policy: skip or fail")
	metricsPath := fs.String("metrics-textfile", cfg.Metrics.Textfile, "Write Prometheus metrics to this file")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return apperrors.GetExitCode(apperrors.SystemConfigurationError)
	}

	cfg.Input.Path = *input
	cfg.Report.Format = *format
	cfg.Report.XLSXPath = *xlsxPath
	cfg.Input.MalformedRows = *onMalformed
	cfg.Metrics.Textfile = *metricsPath
	if err := cfg.Validate(); err != nil {
		return configFailure(stderr, err)
	}

	slog.SetDefault(newLogger(cfg, stderr))

	runID := uuid.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if cfg.Report.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Report.Timeout)
		defer cancel()
	}

	reg := prometheus.NewRegistry()
	defer writeMetrics(reg, cfg.Metrics.Textfile)

	rep, err := generateReport(ctx, cfg, runID, services.NewPrometheusMetrics(reg))
	if err != nil {
		return reportFailure(stdout, stderr, cfg.Report.Format, runID, err)
	}

	renderer, err := report.NewRenderer(cfg.Report.Format)
	if err != nil {
		return reportFailure(stdout, stderr, cfg.Report.Format, runID, err)
	}
	if err := renderer.Render(stdout, rep); err != nil {
		return reportFailure(stdout, stderr, cfg.Report.Format, runID, err)
	}

	if cfg.Report.XLSXPath != "" {
		if err := report.NewExcelExporter().Export(cfg.Report.XLSXPath, rep); err != nil {
			return reportFailure(stdout, stderr, cfg.Report.Format, runID, err)
		}
		slog.Info("sales report exported", "run_id", runID, "path", cfg.Report.XLSXPath)
	}

	return 0
}

func generateReport(ctx context.Context, cfg *config.Config, runID uuid.UUID, metrics services.MetricsRecorderInterface) (*models.SalesReport, error) {
	repo, err := repositories.NewSalesDataRepository(cfg.Input.Path)
	if err != nil {
		return nil, err
	}

	policy := config.PolicySkip
	if cfg.FailOnMalformedRows() {
		policy = config.PolicyFail
	}
	parser, err := services.NewSalesParserService(policy, metrics)
	if err != nil {
		return nil, apperrors.New(apperrors.SystemConfigurationError, err)
	}

	slog.Debug("generating sales report",
		"run_id", runID,
		"env", cfg.Env,
		"source", repo.Location(),
		"policy", policy,
		"concurrent", cfg.Report.Concurrent)

	return services.NewReportService(repo, parser, metrics, services.NewRunLogger(slog.Default()), cfg.Report.Concurrent).GenerateReport(ctx, runID)
}

const (
	inputErrorHint = "check the -input flag or SALES_INPUT_PATH"
	rowErrorHint   = "rerun with -on-malformed skip to drop malformed rows"
)

// reportFailure writes the error document and returns the exit status for
// the error's code. Structured formats put the document on stdout.
func reportFailure(stdout, stderr io.Writer, format string, runID uuid.UUID, err error) int {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		if apperrors.CodeOf(err) == apperrors.SystemInternalError {
			err = apperrors.New(apperrors.SystemCancelled, err)
		}
	}

	resp := apperrors.FromError(err, runID.String())
	switch {
	case resp.IsInputError():
		resp.Error.Details = append(resp.Error.Details, inputErrorHint)
	case resp.IsRowError():
		resp.Error.Details = append(resp.Error.Details, rowErrorHint)
	}

	slog.Error("sales report failed",
		"run_id", runID,
		"code", resp.Error.Code,
		"error", err)

	out := stderr
	if format == config.FormatJSON || format == config.FormatYAML {
		out = stdout
	}
	if werr := report.WriteError(out, format, resp); werr != nil {
		fmt.Fprintln(stderr, err)
	}

	return resp.GetExitCode()
}

func configFailure(stderr io.Writer, err error) int {
	appErr := apperrors.New(apperrors.SystemConfigurationError, err)
	fmt.Fprintln(stderr, appErr.Error())
	return apperrors.GetExitCode(appErr.Code)
}

func writeMetrics(reg *prometheus.Registry, path string) {
	if path == "" {
		return
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		slog.Warn("failed to write metrics textfile",
			"path", path,
			"code", apperrors.SystemMetricsError,
			"error", err)
	}
}
