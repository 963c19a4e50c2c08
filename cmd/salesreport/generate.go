package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"sales-report/internal/config"
	apperrors "sales-report/internal/errors"
	"sales-report/internal/models"
	"sales-report/internal/services"
)

const defaultGeneratedRows = 500

func runGenerate(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		return configFailure(stderr, err)
	}

	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	output := fs.String("output", cfg.Input.Path, "Destination CSV path, - for stdout")
	rows := fs.Int("rows", defaultGeneratedRows, "Number of sale rows")
	items := fs.Int("items", services.DefaultCatalogueSize, "Number of distinct items")
	year := fs.Int("year", time.Now().Year(), "Year the sale dates fall in")
	seed := fs.Uint64("seed", 0, "Random seed, 0 for a random one")
	force := fs.Bool("force", false, "Overwrite the output file if it exists")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return apperrors.GetExitCode(apperrors.SystemConfigurationError)
	}

	slog.SetDefault(newLogger(cfg, stderr))

	if *rows < 0 {
		return configFailure(stderr, fmt.Errorf("rows must not be negative, got %d", *rows))
	}

	generator := services.NewSalesGenerator(*seed, *items, *year)
	records := generator.Generate(*rows)

	if *output == "-" {
		if err := generator.WriteCSV(stdout, records); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}

	if err := writeSalesFile(*output, *force, generator, records); err != nil {
		if errors.Is(err, os.ErrExist) {
			fmt.Fprintf(stderr, "%s already exists, pass -force to overwrite it\n", *output)
			return 1
		}
		slog.Error("failed to write sales data", "path", *output, "error", err)
		return 1
	}

	slog.Info("sales data generated",
		"path", *output,
		"rows", len(records),
		"items", len(generator.GetCatalogue()),
		"year", *year)

	fmt.Fprintf(stdout, "Wrote %d sales rows to %s\n", len(records), *output)
	return 0
}

// writeSalesFile creates path for the generated rows. An existing file is
// only replaced when overwrite is set.
func writeSalesFile(path string, overwrite bool, generator services.SalesGeneratorInterface, records []models.SaleRecord) (err error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	return generator.WriteCSV(f, records)
}
