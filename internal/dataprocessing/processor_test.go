package dataprocessing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tabproc/internal/errors"
	"tabproc/internal/shared/testutil"
	"tabproc/pkg/contracts/domain"
)

func loadSample(t *testing.T) *DataProcessor {
	t.Helper()
	proc := NewDataProcessor(nil, DefaultOptions())
	_, err := proc.Load(context.Background(), testutil.SampleCSV(t))
	require.NoError(t, err)
	return proc
}

func TestNewDataProcessor(t *testing.T) {
	proc := NewDataProcessor(nil, DefaultOptions())

	rows, cols := proc.Shape()
	assert.Equal(t, 0, rows)
	assert.Equal(t, 0, cols)
	assert.Nil(t, proc.Columns())
	assert.Nil(t, proc.Dataset())
}

func TestDataProcessor_Load(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		proc := loadSample(t)

		rows, cols := proc.Shape()
		assert.Equal(t, 5, rows)
		assert.Equal(t, 4, cols)
		assert.Equal(t, []string{"id", "value", "category", "score"}, proc.Columns())
	})

	t.Run("file not found", func(t *testing.T) {
		proc := NewDataProcessor(nil, DefaultOptions())
		_, err := proc.Load(context.Background(), "non_existent_file.csv")

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.csv")
		require.NoError(t, writeFile(path, ""))

		proc := NewDataProcessor(nil, DefaultOptions())
		_, err := proc.Load(context.Background(), path)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
	})

	t.Run("malformed content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.csv")
		require.NoError(t, writeFile(path, "a,b\n\"unterminated,1\n"))

		proc := NewDataProcessor(nil, DefaultOptions())
		_, err := proc.Load(context.Background(), path)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
	})

	t.Run("failed load keeps prior state", func(t *testing.T) {
		proc := loadSample(t)
		_, err := proc.Load(context.Background(), "non_existent_file.csv")
		require.Error(t, err)

		rows, _ := proc.Shape()
		assert.Equal(t, 5, rows)
	})

	t.Run("type inference", func(t *testing.T) {
		proc := loadSample(t)
		ds := proc.Dataset()

		kind, ok := ds.Kind("id")
		require.True(t, ok)
		assert.True(t, kind.Numeric())

		kind, ok = ds.Kind("category")
		require.True(t, ok)
		assert.Equal(t, domain.ColumnKindString, kind)
	})
}

func TestDataProcessor_Clean(t *testing.T) {
	ctx := context.Background()

	t.Run("removes rows with missing values", func(t *testing.T) {
		proc := loadSample(t)

		ds, err := proc.Clean(ctx)
		require.NoError(t, err)

		assert.Equal(t, 3, ds.Nrow())
		assert.False(t, ds.HasMissing())
	})

	t.Run("idempotent", func(t *testing.T) {
		proc := loadSample(t)

		first, err := proc.Clean(ctx)
		require.NoError(t, err)
		second, err := proc.Clean(ctx)
		require.NoError(t, err)

		assert.Equal(t, first.Nrow(), second.Nrow())
		assert.Equal(t, first.Records(), second.Records())
	})

	t.Run("no-op without missing values", func(t *testing.T) {
		path := testutil.WriteCSVFixture(t, [][]string{
			{"a", "b"},
			{"1", "x"},
			{"2", "y"},
		})
		proc := NewDataProcessor(nil, DefaultOptions())
		_, err := proc.Load(ctx, path)
		require.NoError(t, err)

		ds, err := proc.Clean(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, ds.Nrow())
	})

	t.Run("all rows missing", func(t *testing.T) {
		path := testutil.WriteCSVFixture(t, [][]string{
			{"a", "b"},
			{"", "x"},
			{"", "y"},
		})
		proc := NewDataProcessor(nil, DefaultOptions())
		_, err := proc.Load(ctx, path)
		require.NoError(t, err)

		ds, err := proc.Clean(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, ds.Nrow())
	})

	t.Run("no dataset loaded", func(t *testing.T) {
		proc := NewDataProcessor(nil, DefaultOptions())
		_, err := proc.Clean(ctx)

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNoDataset))
	})
}

func TestDataProcessor_Filter(t *testing.T) {
	ctx := context.Background()

	t.Run("by text value", func(t *testing.T) {
		proc := loadSample(t)

		ds, err := proc.Filter(ctx, "category", "A")
		require.NoError(t, err)
		assert.Equal(t, 2, ds.Nrow())
	})

	t.Run("by numeric value", func(t *testing.T) {
		proc := loadSample(t)

		ds, err := proc.Filter(ctx, "id", 1)
		require.NoError(t, err)
		require.Equal(t, 1, ds.Nrow())
		assert.Equal(t, "1", ds.Records()[1][0])
	})

	t.Run("idempotent", func(t *testing.T) {
		proc := loadSample(t)

		first, err := proc.Filter(ctx, "category", "B")
		require.NoError(t, err)
		second, err := proc.Filter(ctx, "category", "B")
		require.NoError(t, err)

		assert.Equal(t, first.Records(), second.Records())
	})

	t.Run("no matches returns empty dataset", func(t *testing.T) {
		proc := loadSample(t)

		ds, err := proc.Filter(ctx, "category", "Z")
		require.NoError(t, err)
		assert.Equal(t, 0, ds.Nrow())
		assert.Equal(t, 4, ds.Ncol())
	})

	t.Run("type sensitive, text never matches numeric column", func(t *testing.T) {
		proc := loadSample(t)

		ds, err := proc.Filter(ctx, "id", "1")
		require.NoError(t, err)
		assert.Equal(t, 0, ds.Nrow())
	})

	t.Run("type sensitive, numeric never matches text column", func(t *testing.T) {
		proc := loadSample(t)

		ds, err := proc.Filter(ctx, "category", 5)
		require.NoError(t, err)
		assert.Equal(t, 0, ds.Nrow())
	})

	t.Run("type sensitive, fractional value never matches int column", func(t *testing.T) {
		proc := loadSample(t)

		ds, err := proc.Filter(ctx, "id", 1.5)
		require.NoError(t, err)
		assert.Equal(t, 0, ds.Nrow())
	})

	t.Run("integral float matches int column", func(t *testing.T) {
		proc := loadSample(t)

		ds, err := proc.Filter(ctx, "id", 1.0)
		require.NoError(t, err)
		assert.Equal(t, 1, ds.Nrow())
	})

	t.Run("unknown column", func(t *testing.T) {
		proc := loadSample(t)

		_, err := proc.Filter(ctx, "unknown", "A")
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeColumn))

		// failed filter leaves state untouched
		rows, _ := proc.Shape()
		assert.Equal(t, 5, rows)
	})

	t.Run("no dataset loaded", func(t *testing.T) {
		proc := NewDataProcessor(nil, DefaultOptions())
		_, err := proc.Filter(ctx, "category", "A")

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNoDataset))
	})
}

func TestDataProcessor_MeanMax(t *testing.T) {
	ctx := context.Background()

	t.Run("ignore missing values", func(t *testing.T) {
		path := testutil.WriteCSVFixture(t, [][]string{
			{"n"},
			{"1"},
			{""},
			{"3"},
		})
		proc := NewDataProcessor(nil, DefaultOptions())
		_, err := proc.Load(ctx, path)
		require.NoError(t, err)

		mean, err := proc.Mean("n")
		require.NoError(t, err)
		assert.InDelta(t, 2.0, mean, 1e-9)

		max, err := proc.Max("n")
		require.NoError(t, err)
		assert.InDelta(t, 3.0, max, 1e-9)
	})

	t.Run("mean of full column", func(t *testing.T) {
		proc := loadSample(t)

		mean, err := proc.Mean("id")
		require.NoError(t, err)
		assert.InDelta(t, 3.0, mean, 1e-9)
	})

	t.Run("unknown column", func(t *testing.T) {
		proc := loadSample(t)

		_, err := proc.Mean("unknown")
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeColumn))

		_, err = proc.Max("unknown")
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeColumn))
	})

	t.Run("non-numeric column", func(t *testing.T) {
		proc := loadSample(t)

		_, err := proc.Mean("category")
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeColumnType))
	})

	t.Run("all values missing", func(t *testing.T) {
		path := testutil.WriteCSVFixture(t, [][]string{
			{"n"},
			{""},
			{""},
		})
		proc := NewDataProcessor(nil, DefaultOptions())
		_, err := proc.Load(ctx, path)
		require.NoError(t, err)

		_, err = proc.Mean("n")
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeEmptyColumn))

		_, err = proc.Max("n")
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeEmptyColumn))
	})

	t.Run("no dataset loaded", func(t *testing.T) {
		proc := NewDataProcessor(nil, DefaultOptions())
		_, err := proc.Mean("n")

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNoDataset))
	})
}

func TestDataProcessor_EndToEnd(t *testing.T) {
	ctx := context.Background()
	path := testutil.WriteCSVFixture(t, [][]string{
		{"a", "b"},
		{"1", "x"},
		{"", "y"},
		{"3", "y"},
	})

	proc := NewDataProcessor(nil, DefaultOptions())
	_, err := proc.Load(ctx, path)
	require.NoError(t, err)

	cleaned, err := proc.Clean(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, cleaned.Nrow())

	mean, err := proc.Mean("a")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, mean, 1e-9)

	filtered, err := proc.Filter(ctx, "b", "x")
	require.NoError(t, err)
	require.Equal(t, 1, filtered.Nrow())
	assert.Equal(t, "1", filtered.Records()[1][0])
}

func TestDataProcessor_Info(t *testing.T) {
	proc := loadSample(t)

	info, err := proc.Info()
	require.NoError(t, err)
	assert.NotEmpty(t, info.ID)
	assert.Equal(t, 5, info.Rows)
	assert.Equal(t, 4, info.Cols)
	assert.False(t, info.LoadedAt.IsZero())

	empty := NewDataProcessor(nil, DefaultOptions())
	_, err = empty.Info()
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNoDataset))
}

func TestDataProcessor_Logging(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	proc := NewDataProcessor(logger, DefaultOptions())

	_, err := proc.Load(context.Background(), testutil.SampleCSV(t))
	require.NoError(t, err)

	assert.True(t, handler.ContainsMessage("dataset loaded"))
	assert.True(t, handler.ContainsAttr("dataset_id"))
}

func BenchmarkClean(b *testing.B) {
	path := testutil.GenerateCSVFixture(b, 50000, 0.1)

	ctx := context.Background()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		proc := NewDataProcessor(nil, DefaultOptions())
		_, err := proc.Load(ctx, path)
		require.NoError(b, err)
		b.StartTimer()

		if _, err := proc.Clean(ctx); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFilter(b *testing.B) {
	path := testutil.GenerateCSVFixture(b, 50000, 0.1)

	ctx := context.Background()
	proc := NewDataProcessor(nil, DefaultOptions())
	_, err := proc.Load(ctx, path)
	require.NoError(b, err)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := proc.Filter(ctx, "department", "Engineering"); err != nil {
			b.Fatal(err)
		}
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}
