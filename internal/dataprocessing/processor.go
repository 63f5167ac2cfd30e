package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/google/uuid"

	apperrors "tabproc/internal/errors"
	"tabproc/pkg/contracts/domain"
)

// DataProcessor owns one current dataset and exposes load, clean, filter
// and statistic operations over it. Each mutating operation either fully
// succeeds and swaps the current dataset reference, or fails and leaves
// the prior state untouched.
//
// A DataProcessor is not safe for concurrent use.
type DataProcessor struct {
	logger     *slog.Logger
	opts       Options
	summarizer *Summarizer

	current  *Dataset
	id       string
	source   string
	loadedAt time.Time
}

// NewDataProcessor creates a processor with no dataset loaded
func NewDataProcessor(logger *slog.Logger, opts Options) *DataProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataProcessor{
		logger:     logger,
		opts:       opts,
		summarizer: NewSummarizer(logger),
	}
}

// Load reads a CSV file with a header row into a typed dataset and makes
// it the processor's current dataset.
func (p *DataProcessor) Load(ctx context.Context, path string) (*Dataset, error) {
	df, err := loadCSVFile(path, p.opts)
	if err != nil {
		return nil, err
	}
	return p.adopt(ctx, df, path), nil
}

// LoadExcel reads a sheet of an xlsx workbook into a typed dataset and
// makes it the processor's current dataset. The first sheet is used when
// sheet is empty.
func (p *DataProcessor) LoadExcel(ctx context.Context, path, sheet string) (*Dataset, error) {
	df, err := loadExcelFile(path, sheet, p.opts)
	if err != nil {
		return nil, err
	}
	return p.adopt(ctx, df, path), nil
}

// adopt installs a freshly loaded dataframe as the current dataset
func (p *DataProcessor) adopt(ctx context.Context, df dataframe.DataFrame, source string) *Dataset {
	p.current = newDataset(df)
	p.id = uuid.New().String()
	p.source = source
	p.loadedAt = time.Now()

	p.logger.InfoContext(ctx, "dataset loaded",
		slog.String("dataset_id", p.id),
		slog.String("source", source),
		slog.Int("rows", p.current.Nrow()),
		slog.Int("columns", p.current.Ncol()))

	return p.current
}

// Clean removes every row containing at least one missing value. The drop
// is computed as a boolean mask over whole columns rather than per-cell
// row iteration. Calling Clean on an already clean dataset is a no-op.
func (p *DataProcessor) Clean(ctx context.Context) (*Dataset, error) {
	if p.current == nil {
		return nil, apperrors.NewNoDatasetError()
	}

	df := p.current.df
	nrow := df.Nrow()
	if nrow == 0 {
		return p.current, nil
	}

	keep := make([]bool, nrow)
	for i := range keep {
		keep[i] = true
	}

	dropped := 0
	for _, name := range df.Names() {
		for i, isNaN := range df.Col(name).IsNaN() {
			if isNaN && keep[i] {
				keep[i] = false
				dropped++
			}
		}
	}

	if dropped == 0 {
		p.logger.DebugContext(ctx, "clean was a no-op, no missing values",
			slog.String("dataset_id", p.id))
		return p.current, nil
	}

	cleaned := df.Subset(keep)
	if cleaned.Err != nil {
		return nil, fmt.Errorf("drop rows with missing values: %w", cleaned.Err)
	}

	p.current = newDataset(cleaned)
	p.logger.InfoContext(ctx, "dataset cleaned",
		slog.String("dataset_id", p.id),
		slog.Int("rows_removed", dropped),
		slog.Int("rows_remaining", cleaned.Nrow()))

	return p.current, nil
}

// Filter keeps only the rows where the named column equals value, using
// exact type-sensitive equality: a numeric 5 never matches the text "5".
// Zero matching rows yields an empty dataset, not an error.
func (p *DataProcessor) Filter(ctx context.Context, column string, value interface{}) (*Dataset, error) {
	if p.current == nil {
		return nil, apperrors.NewNoDatasetError()
	}

	df := p.current.df
	kind, ok := p.current.Kind(column)
	if !ok {
		return nil, apperrors.NewColumnNotFoundError(column, df.Names())
	}

	var filtered dataframe.DataFrame
	if !valueMatchesKind(value, kind) {
		// The comparand can never equal a value of this column's type,
		// so the result is an empty dataset without consulting rows.
		filtered = df.Subset(make([]bool, df.Nrow()))
	} else {
		filtered = df.Filter(dataframe.F{
			Colname:    column,
			Comparator: series.Eq,
			Comparando: value,
		})
	}
	if filtered.Err != nil {
		return nil, fmt.Errorf("filter %s=%v: %w", column, value, filtered.Err)
	}

	p.current = newDataset(filtered)
	p.logger.InfoContext(ctx, "dataset filtered",
		slog.String("dataset_id", p.id),
		slog.String("column", column),
		slog.Any("value", value),
		slog.Int("rows_matched", filtered.Nrow()))

	return p.current, nil
}

// Mean returns the arithmetic mean of a numeric column, excluding missing
// values.
func (p *DataProcessor) Mean(column string) (float64, error) {
	values, err := p.numericColumn(column)
	if err != nil {
		return 0, err
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// Max returns the maximum of a numeric column, excluding missing values
func (p *DataProcessor) Max(column string) (float64, error) {
	values, err := p.numericColumn(column)
	if err != nil {
		return 0, err
	}

	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max, nil
}

// Summary produces statistics for every numeric column of the current
// dataset, in dataset column order.
func (p *DataProcessor) Summary(ctx context.Context) (*domain.DatasetSummary, error) {
	if p.current == nil {
		return nil, apperrors.NewNoDatasetError()
	}
	return p.summarizer.Generate(ctx, p.current)
}

// Shape returns the current dataset dimensions, (0, 0) before any load
func (p *DataProcessor) Shape() (rows, cols int) {
	if p.current == nil {
		return 0, 0
	}
	return p.current.Nrow(), p.current.Ncol()
}

// Columns returns the current dataset column names, nil before any load
func (p *DataProcessor) Columns() []string {
	if p.current == nil {
		return nil
	}
	return p.current.Columns()
}

// Dataset returns the current dataset, nil before any load
func (p *DataProcessor) Dataset() *Dataset {
	return p.current
}

// Info describes the current dataset instance
func (p *DataProcessor) Info() (domain.DatasetInfo, error) {
	if p.current == nil {
		return domain.DatasetInfo{}, apperrors.NewNoDatasetError()
	}
	return domain.DatasetInfo{
		ID:       p.id,
		Source:   p.source,
		Rows:     p.current.Nrow(),
		Cols:     p.current.Ncol(),
		LoadedAt: p.loadedAt,
	}, nil
}

// numericColumn validates the column reference and returns its non-missing
// values as floats.
func (p *DataProcessor) numericColumn(column string) ([]float64, error) {
	if p.current == nil {
		return nil, apperrors.NewNoDatasetError()
	}

	kind, ok := p.current.Kind(column)
	if !ok {
		return nil, apperrors.NewColumnNotFoundError(column, p.current.Columns())
	}
	if !kind.Numeric() {
		return nil, apperrors.NewColumnTypeError(column, string(kind))
	}

	values := validFloats(p.current.df.Col(column))
	if len(values) == 0 {
		return nil, apperrors.NewEmptyColumnError(column)
	}
	return values, nil
}

// validFloats returns the column values as floats with missing values removed
func validFloats(col series.Series) []float64 {
	floats := col.Float()
	values := make([]float64, 0, len(floats))
	for _, v := range floats {
		if !math.IsNaN(v) {
			values = append(values, v)
		}
	}
	return values
}

// valueMatchesKind reports whether a filter comparand can possibly equal
// a value of the column's type. Numeric kinds accept any Go numeric
// value, except that an int column stores no fractional values, so a
// non-integral float comparand can never match a cell.
func valueMatchesKind(value interface{}, kind domain.ColumnKind) bool {
	switch v := value.(type) {
	case float32:
		return floatMatchesKind(float64(v), kind)
	case float64:
		return floatMatchesKind(v, kind)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return kind.Numeric()
	case string:
		return kind == domain.ColumnKindString
	case bool:
		return kind == domain.ColumnKindBool
	default:
		return false
	}
}

func floatMatchesKind(v float64, kind domain.ColumnKind) bool {
	if kind == domain.ColumnKindInt {
		return math.Trunc(v) == v
	}
	return kind.Numeric()
}
