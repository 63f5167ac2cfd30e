package exporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"tabproc/internal/dataprocessing"
	"tabproc/pkg/contracts/domain"
)

// CSVWriter provides CSV and JSON export functionality for datasets and
// summaries.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	Append    bool
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	w.logger.Info("writing CSV file",
		slog.String("file_path", filePath),
		slog.Int("record_count", len(options.Records)))

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if options.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(filePath, flags, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// BOM helps Excel recognize UTF-8
	if options.BOMPrefix && !options.Append {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if !options.Append && len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteDataset exports a dataset to a CSV file, header row included
func (w *CSVWriter) WriteDataset(filePath string, ds *dataprocessing.Dataset) error {
	records := ds.Records()
	if len(records) == 0 {
		return fmt.Errorf("dataset has no columns")
	}

	return w.WriteCSV(filePath, WriteOptions{
		Headers: records[0],
		Records: records[1:],
	})
}

// WriteSummaryCSV exports a dataset summary to a CSV file, one row per
// numeric column, preserving dataset column order.
func (w *CSVWriter) WriteSummaryCSV(filePath string, summary *domain.DatasetSummary) error {
	headers := []string{"Column", "Kind", "Count", "Mean", "Max", "Min", "StdDev"}

	records := make([][]string, 0, len(summary.Stats))
	for _, cs := range summary.Stats {
		records = append(records, []string{
			cs.Column,
			string(cs.Kind),
			strconv.Itoa(cs.Count),
			formatFloat(cs.Mean),
			formatFloat(cs.Max),
			formatFloat(cs.Min),
			formatFloat(cs.StdDev),
		})
	}

	return w.WriteCSV(filePath, WriteOptions{
		Headers: headers,
		Records: records,
	})
}

// WriteSummaryJSON exports a dataset summary as indented JSON
func (w *CSVWriter) WriteSummaryJSON(filePath string, summary *domain.DatasetSummary) error {
	w.logger.Info("writing summary JSON",
		slog.String("file_path", filePath),
		slog.Int("column_count", len(summary.Stats)))

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// formatFloat renders a statistic with stable precision for CSV output
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
