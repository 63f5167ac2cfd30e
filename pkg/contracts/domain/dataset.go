package domain

import (
	"time"
)

// ColumnKind classifies a dataset column for statistics purposes
type ColumnKind string

const (
	ColumnKindInt    ColumnKind = "int"
	ColumnKindFloat  ColumnKind = "float"
	ColumnKindString ColumnKind = "string"
	ColumnKindBool   ColumnKind = "bool"
)

// Numeric reports whether the column kind participates in numeric statistics
func (k ColumnKind) Numeric() bool {
	return k == ColumnKindInt || k == ColumnKindFloat
}

// ColumnSummary holds the statistics for one numeric column
type ColumnSummary struct {
	Column string     `json:"column" csv:"Column"`
	Kind   ColumnKind `json:"kind" csv:"Kind"`
	Count  int        `json:"count" csv:"Count"`
	Mean   float64    `json:"mean" csv:"Mean"`
	Max    float64    `json:"max" csv:"Max"`
	Min    float64    `json:"min" csv:"Min"`
	StdDev float64    `json:"std_dev" csv:"StdDev"`
}

// DatasetSummary holds per-column statistics for every numeric column of a
// dataset, in dataset column order.
type DatasetSummary struct {
	Rows        int             `json:"rows"`
	Columns     int             `json:"columns"`
	GeneratedAt time.Time       `json:"generated_at"`
	Stats       []ColumnSummary `json:"stats"`
}

// Get returns the summary for the named column, if present
func (s *DatasetSummary) Get(column string) (ColumnSummary, bool) {
	for _, cs := range s.Stats {
		if cs.Column == column {
			return cs, true
		}
	}
	return ColumnSummary{}, false
}

// DatasetInfo describes a loaded dataset instance
type DatasetInfo struct {
	ID       string    `json:"id"`
	Source   string    `json:"source"`
	Rows     int       `json:"rows"`
	Cols     int       `json:"cols"`
	LoadedAt time.Time `json:"loaded_at"`
}
