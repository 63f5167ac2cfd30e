package dataprocessing

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"tabproc/pkg/contracts/domain"
)

// Dataset is an immutable view over an in-memory columnar table with
// named, equal-length typed columns. Missing cells are represented by the
// dataframe's NaN sentinel.
type Dataset struct {
	df dataframe.DataFrame
}

// newDataset wraps a dataframe in a Dataset
func newDataset(df dataframe.DataFrame) *Dataset {
	return &Dataset{df: df}
}

// Nrow returns the number of rows
func (d *Dataset) Nrow() int {
	return d.df.Nrow()
}

// Ncol returns the number of columns
func (d *Dataset) Ncol() int {
	return d.df.Ncol()
}

// Columns returns the column names in dataset order
func (d *Dataset) Columns() []string {
	return d.df.Names()
}

// HasColumn reports whether the named column exists
func (d *Dataset) HasColumn(name string) bool {
	for _, col := range d.df.Names() {
		if col == name {
			return true
		}
	}
	return false
}

// Kind returns the column kind for the named column. The second return
// value is false when the column does not exist.
func (d *Dataset) Kind(name string) (domain.ColumnKind, bool) {
	names := d.df.Names()
	types := d.df.Types()
	for i, col := range names {
		if col == name {
			return columnKind(types[i]), true
		}
	}
	return "", false
}

// Kinds returns the column kinds in dataset order
func (d *Dataset) Kinds() []domain.ColumnKind {
	types := d.df.Types()
	kinds := make([]domain.ColumnKind, len(types))
	for i, t := range types {
		kinds[i] = columnKind(t)
	}
	return kinds
}

// HasMissing reports whether any cell in the dataset is missing
func (d *Dataset) HasMissing() bool {
	for _, name := range d.df.Names() {
		if d.df.Col(name).HasNaN() {
			return true
		}
	}
	return false
}

// Records returns the dataset as string records, header row first
func (d *Dataset) Records() [][]string {
	return d.df.Records()
}

// Frame returns the underlying dataframe
func (d *Dataset) Frame() dataframe.DataFrame {
	return d.df
}

// columnKind maps a series type to the shared column kind contract
func columnKind(t series.Type) domain.ColumnKind {
	switch t {
	case series.Int:
		return domain.ColumnKindInt
	case series.Float:
		return domain.ColumnKindFloat
	case series.Bool:
		return domain.ColumnKindBool
	default:
		return domain.ColumnKindString
	}
}
