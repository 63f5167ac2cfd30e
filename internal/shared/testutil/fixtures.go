package testutil

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// WriteCSVFixture writes records to a temp CSV file and returns its path.
// The file is removed when the test finishes.
func WriteCSVFixture(t testing.TB, records [][]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.csv")
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(records); err != nil {
		t.Fatalf("write fixture records: %v", err)
	}

	return path
}

// SampleCSV returns a small mixed-type fixture: five rows over columns
// id, value, category, score, with missing cells in value and score.
func SampleCSV(t testing.TB) string {
	t.Helper()

	return WriteCSVFixture(t, [][]string{
		{"id", "value", "category", "score"},
		{"1", "10.5", "A", "85"},
		{"2", "", "B", "90"},
		{"3", "30.1", "A", ""},
		{"4", "40.8", "C", "78"},
		{"5", "50.2", "B", "92"},
	})
}

// GenerateCSV writes a synthetic dataset with the given row count and
// missing-value frequency. The generator is seeded for reproducible
// results. Columns: user_id (int), age (int), income (float, nullable),
// score (float, nullable), department (text).
func GenerateCSV(path string, rows int, nullFrequency float64, seed int64) error {
	rng := rand.New(rand.NewSource(seed))
	departments := []string{"Engineering", "Marketing", "Sales", "HR"}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"user_id", "age", "income", "score", "department"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < rows; i++ {
		income := strconv.FormatFloat(50000+rng.NormFloat64()*20000, 'f', 2, 64)
		score := strconv.FormatFloat(rng.ExpFloat64()*2.0, 'f', 4, 64)
		if rng.Float64() < nullFrequency {
			income = ""
			score = ""
		}

		record := []string{
			strconv.Itoa(i),
			strconv.Itoa(18 + rng.Intn(62)),
			income,
			score,
			departments[rng.Intn(len(departments))],
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// GenerateCSVFixture writes a synthetic dataset under a temp directory and
// returns its path. The file is removed when the test finishes.
func GenerateCSVFixture(t testing.TB, rows int, nullFrequency float64) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "generated.csv")
	if err := GenerateCSV(path, rows, nullFrequency, 42); err != nil {
		t.Fatalf("generate dataset fixture: %v", err)
	}
	return path
}
