package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"sales-report/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches to a subcommand and returns the process exit status. The
// report subcommand is the default.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return runReport(args, stdout, stderr)
	}

	switch args[0] {
	case "report":
		return runReport(args[1:], stdout, stderr)
	case "generate":
		return runGenerate(args[1:], stdout, stderr)
	case "help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Sales Report")
	fmt.Fprintln(w, "\nUsage:")
	fmt.Fprintln(w, "  salesreport [command] [options]")
	fmt.Fprintln(w, "\nCommands:")
	fmt.Fprintln(w, "  report    Print the sales report for a CSV file (default)")
	fmt.Fprintln(w, "  generate  Write a synthetic sales CSV file")
	fmt.Fprintln(w, "  help      Show this help message")
	fmt.Fprintln(w, "\nRun 'salesreport <command> -h' for more information on a command.")
}

// newLogger builds the process logger. Logs go to stderr so stdout only
// carries the report. Production always logs JSON; development debug logs
// carry the source position.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	level, err := cfg.Logging.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.IsDevelopment() && level == slog.LevelDebug,
	}
	if cfg.Logging.Format == "json" || cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
