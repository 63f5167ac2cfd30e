package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	apperrors "tabproc/internal/errors"
)

// loadCSVFile reads a CSV file with a header row into a typed dataframe.
// Empty cells and configured markers become the missing sentinel. A file
// holding only a header row is a valid, empty dataset.
func loadCSVFile(path string, opts Options) (dataframe.DataFrame, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return dataframe.DataFrame{}, apperrors.NewNotFoundError(path, err)
		}
		return dataframe.DataFrame{}, apperrors.NewStorageError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = opts.Delimiter
	records, err := reader.ReadAll()
	if err != nil {
		return dataframe.DataFrame{}, apperrors.NewParsingError(
			fmt.Sprintf("failed to parse %s as delimited text", path), err)
	}
	if len(records) == 0 {
		return dataframe.DataFrame{}, apperrors.NewParsingError(
			fmt.Sprintf("%s is empty", path), nil)
	}

	return recordsToFrame(records, opts, path)
}

// loadExcelFile reads a sheet of an xlsx workbook into a typed dataframe.
// The first sheet is used when sheet is empty.
func loadExcelFile(path, sheet string, opts Options) (dataframe.DataFrame, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return dataframe.DataFrame{}, apperrors.NewNotFoundError(path, err)
		}
		return dataframe.DataFrame{}, apperrors.NewStorageError(fmt.Sprintf("failed to stat %s", path), err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return dataframe.DataFrame{}, apperrors.NewParsingError(
			fmt.Sprintf("failed to open %s as xlsx", path), err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return dataframe.DataFrame{}, apperrors.NewParsingError("workbook has no sheets", nil)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return dataframe.DataFrame{}, apperrors.NewParsingError(
			fmt.Sprintf("failed to read sheet %q", sheet), err)
	}
	if len(rows) == 0 {
		return dataframe.DataFrame{}, apperrors.NewParsingError(
			fmt.Sprintf("sheet %q is empty", sheet), nil)
	}

	// excelize trims trailing empty cells, pad rows to header width
	width := len(rows[0])
	records := make([][]string, len(rows))
	for i, row := range rows {
		record := make([]string, width)
		copy(record, row)
		records[i] = record
	}

	return recordsToFrame(records, opts, fmt.Sprintf("sheet %q", sheet))
}

// recordsToFrame turns header-plus-rows records into a typed dataframe.
// A lone header yields a zero-row frame with the header's columns; with
// no cells to inspect the columns stay string typed.
func recordsToFrame(records [][]string, opts Options, source string) (dataframe.DataFrame, error) {
	if len(records) == 1 {
		columns := make([]series.Series, len(records[0]))
		for i, name := range records[0] {
			columns[i] = series.New([]string{}, series.String, name)
		}
		return dataframe.New(columns...), nil
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(opts.DetectTypes),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(opts.nanValues()),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, apperrors.NewParsingError(
			fmt.Sprintf("failed to load %s", source), df.Err)
	}

	return df, nil
}
