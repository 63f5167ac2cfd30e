package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"tabproc/internal/config"
	"tabproc/internal/dataprocessing"
	"tabproc/internal/exporter"
	"tabproc/internal/files"
	"tabproc/internal/infrastructure"
)

func main() {
	file := flag.String("file", "", "dataset file to load (.csv or .xlsx)")
	dir := flag.String("dir", "", "load the newest dataset file from this directory instead of -file")
	sheet := flag.String("sheet", "", "sheet name for xlsx input (defaults to first sheet)")
	clean := flag.Bool("clean", false, "drop rows containing missing values")
	filterExpr := flag.String("filter", "", "keep rows where column equals value, as column=value")
	out := flag.String("out", "", "write the resulting dataset to this CSV file")
	summaryCSV := flag.String("summary-csv", "", "write the summary statistics to this CSV file")
	summaryJSON := flag.String("summary-json", "", "write the summary statistics to this JSON file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogger()

	ctx := infrastructure.ContextWithTraceID(context.Background())

	if err := run(ctx, logger, cfg, runOptions{
		file:        *file,
		dir:         *dir,
		sheet:       *sheet,
		clean:       *clean,
		filterExpr:  *filterExpr,
		out:         *out,
		summaryCSV:  *summaryCSV,
		summaryJSON: *summaryJSON,
	}); err != nil {
		logger.ErrorContext(ctx, "processing failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

type runOptions struct {
	file        string
	dir         string
	sheet       string
	clean       bool
	filterExpr  string
	out         string
	summaryCSV  string
	summaryJSON string
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.Config, opts runOptions) error {
	path := opts.file
	if path == "" && opts.dir != "" {
		newest, err := files.NewDiscovery(opts.dir).Newest(".")
		if err != nil {
			return err
		}
		path = newest.Path
		logger.InfoContext(ctx, "using newest dataset file", slog.String("path", path))
	}
	if path == "" {
		return fmt.Errorf("no input: provide -file or -dir")
	}

	proc := dataprocessing.NewDataProcessor(logger, dataprocessing.OptionsFromConfig(cfg.Processing))

	var err error
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		_, err = proc.LoadExcel(ctx, path, opts.sheet)
	} else {
		_, err = proc.Load(ctx, path)
	}
	if err != nil {
		return err
	}

	if opts.clean {
		if _, err := proc.Clean(ctx); err != nil {
			return err
		}
	}

	if opts.filterExpr != "" {
		column, value, err := parseFilterExpr(opts.filterExpr)
		if err != nil {
			return err
		}
		if _, err := proc.Filter(ctx, column, value); err != nil {
			return err
		}
	}

	writer := exporter.NewCSVWriter(logger)

	if opts.out != "" {
		if err := writer.WriteDataset(opts.out, proc.Dataset()); err != nil {
			return err
		}
	}

	summary, err := proc.Summary(ctx)
	if err != nil {
		return err
	}

	if opts.summaryCSV != "" {
		if err := writer.WriteSummaryCSV(opts.summaryCSV, summary); err != nil {
			return err
		}
	}
	if opts.summaryJSON != "" {
		if err := writer.WriteSummaryJSON(opts.summaryJSON, summary); err != nil {
			return err
		}
	}

	rows, cols := proc.Shape()
	logger.InfoContext(ctx, "processing complete",
		slog.Int("rows", rows),
		slog.Int("columns", cols),
		slog.Int("numeric_columns", len(summary.Stats)))

	for _, cs := range summary.Stats {
		fmt.Printf("%s: count=%d mean=%.4f max=%.4f min=%.4f stddev=%.4f\n",
			cs.Column, cs.Count, cs.Mean, cs.Max, cs.Min, cs.StdDev)
	}

	return nil
}

// parseFilterExpr splits a column=value expression and infers the value
// type: int, then float, then bool, falling back to text. Filtering is
// type-sensitive, so a quoted-looking numeric stays numeric only against
// numeric columns.
func parseFilterExpr(expr string) (string, interface{}, error) {
	parts := strings.SplitN(expr, "=", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", nil, fmt.Errorf("invalid filter expression %q, expected column=value", expr)
	}

	column := parts[0]
	raw := parts[1]

	if v, err := strconv.Atoi(raw); err == nil {
		return column, v, nil
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return column, v, nil
	}
	if v, err := strconv.ParseBool(raw); err == nil {
		return column, v, nil
	}
	return column, raw, nil
}
