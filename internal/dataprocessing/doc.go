// Package dataprocessing provides the tabular dataset processing core.
// It wraps an in-memory columnar dataframe and exposes loading, cleaning,
// filtering and statistical operations over it.
//
// # Architecture
//
// The package is organized into three main components:
//
// 1. Loader: reads CSV and Excel files into typed columnar datasets
// 2. DataProcessor: owns the current dataset and applies transformations
// 3. Summarizer: generates per-column statistics for numeric columns
//
// # Usage
//
// Basic processing example:
//
//	proc := dataprocessing.NewDataProcessor(logger, dataprocessing.DefaultOptions())
//	if _, err := proc.Load(ctx, "input.csv"); err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := proc.Clean(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	summary, err := proc.Summary(ctx)
//
// # Data Flow
//
// The typical data flow through this package:
//
//	CSV/Excel File → Loader → Dataset → DataProcessor → Summarizer → Reports
//
// # Missing Values
//
// Empty cells and configured markers (NA, NaN, null by default) become a
// NaN sentinel on load. Clean drops every row containing at least one
// missing value; Mean, Max and Summary exclude missing values from their
// computations.
//
// # Error Handling
//
// Operations fail synchronously with typed errors from internal/errors:
// unknown files, malformed input, unknown columns, non-numeric columns and
// aggregates over zero valid values each carry their own error type. A
// failed operation leaves the processor's current dataset untouched.
//
// # Concurrency
//
// A DataProcessor is not safe for concurrent use; callers serialize
// access externally.
package dataprocessing
