package dataprocessing

import (
	"context"
	"log/slog"
	"math"
	"time"

	"tabproc/pkg/contracts/domain"
)

// Summarizer generates per-column statistics for the numeric columns of a
// dataset. It is the single source of truth for summary generation, used
// by DataProcessor.Summary, the exporter and the CLI.
type Summarizer struct {
	logger *slog.Logger
}

// NewSummarizer creates a new summarizer
func NewSummarizer(logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{logger: logger}
}

// Generate produces statistics for every numeric column of the dataset in
// dataset column order: count of non-missing values, mean, max, min and
// sample standard deviation. Missing values are excluded from every
// computation. A numeric column with zero valid values is reported with
// count 0 and zeroed statistics.
func (s *Summarizer) Generate(ctx context.Context, ds *Dataset) (*domain.DatasetSummary, error) {
	names := ds.Columns()
	kinds := ds.Kinds()

	summary := &domain.DatasetSummary{
		Rows:        ds.Nrow(),
		Columns:     ds.Ncol(),
		GeneratedAt: time.Now(),
		Stats:       make([]domain.ColumnSummary, 0, len(names)),
	}

	for i, name := range names {
		if !kinds[i].Numeric() {
			continue
		}

		values := validFloats(ds.df.Col(name))
		if len(values) == 0 {
			s.logger.WarnContext(ctx, "numeric column has no valid values",
				slog.String("column", name))
			summary.Stats = append(summary.Stats, domain.ColumnSummary{
				Column: name,
				Kind:   kinds[i],
			})
			continue
		}

		summary.Stats = append(summary.Stats, columnStats(name, kinds[i], values))
	}

	s.logger.InfoContext(ctx, "dataset summary generated",
		slog.Int("rows", summary.Rows),
		slog.Int("numeric_columns", len(summary.Stats)))

	return summary, nil
}

// columnStats computes the statistics for one column's valid values
func columnStats(name string, kind domain.ColumnKind, values []float64) domain.ColumnSummary {
	sum := 0.0
	max := values[0]
	min := values[0]
	for _, v := range values {
		sum += v
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}
	mean := sum / float64(len(values))

	stdDev := 0.0
	if len(values) > 1 {
		variance := 0.0
		for _, v := range values {
			variance += (v - mean) * (v - mean)
		}
		stdDev = math.Sqrt(variance / float64(len(values)-1))
	}

	return domain.ColumnSummary{
		Column: name,
		Kind:   kind,
		Count:  len(values),
		Mean:   mean,
		Max:    max,
		Min:    min,
		StdDev: stdDev,
	}
}
