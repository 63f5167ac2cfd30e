package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  NewAppError(ErrTypeNoDataset, "no dataset loaded", nil),
			want: "[NO_DATASET] no dataset loaded",
		},
		{
			name: "with cause",
			err:  NewAppError(ErrTypeParsing, "bad input", errors.New("unexpected EOF")),
			want: "[PARSING] bad input: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewParsingError("failed", cause)

	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("outer: %w", err)
	var appErr *AppError
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, ErrTypeParsing, appErr.Type)
}

func TestIsType(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		errType ErrorType
		want    bool
	}{
		{"matching type", NewEmptyColumnError("n"), ErrTypeEmptyColumn, true},
		{"mismatched type", NewEmptyColumnError("n"), ErrTypeColumn, false},
		{"wrapped", fmt.Errorf("op: %w", NewColumnNotFoundError("x", nil)), ErrTypeColumn, true},
		{"plain error", errors.New("boom"), ErrTypeParsing, false},
		{"nil", nil, ErrTypeParsing, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsType(tt.err, tt.errType))
		})
	}
}

func TestTypedConstructors(t *testing.T) {
	t.Run("not found carries path", func(t *testing.T) {
		err := NewNotFoundError("data.csv", nil)
		assert.Equal(t, ErrTypeNotFound, err.Type)
		assert.Equal(t, "data.csv", err.Context["path"])
		assert.Contains(t, err.Error(), "data.csv")
	})

	t.Run("column not found lists available columns", func(t *testing.T) {
		err := NewColumnNotFoundError("x", []string{"a", "b"})
		assert.Equal(t, ErrTypeColumn, err.Type)
		assert.Equal(t, []string{"a", "b"}, err.Context["available_columns"])
	})

	t.Run("column type carries actual type", func(t *testing.T) {
		err := NewColumnTypeError("category", "string")
		assert.Equal(t, ErrTypeColumnType, err.Type)
		assert.Equal(t, "string", err.Context["type"])
	})

	t.Run("empty column", func(t *testing.T) {
		err := NewEmptyColumnError("n")
		assert.Equal(t, ErrTypeEmptyColumn, err.Type)
	})
}

func TestWithContext(t *testing.T) {
	err := NewNoDatasetError().WithContext("operation", "clean")
	assert.Equal(t, "clean", err.Context["operation"])
}
