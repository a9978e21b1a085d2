package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewLineRange verifies construction and validation of line ranges,
// including the non-positive and reversed bounds that must be rejected.
func TestNewLineRange(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		hasError bool
	}{
		{"single line", 3, 3, false},
		{"normal range", 2, 4, false},
		{"starts at first line", 1, 10, false},
		{"reversed", 5, 2, true},
		{"zero start", 0, 3, true},
		{"negative end", 1, -1, true},
		{"both zero", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewLineRange(tt.from, tt.to)
			if tt.hasError {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidRange,
					"every validation failure should match the sentinel")

				var rangeErr *InvalidRangeError
				require.True(t, errors.As(err, &rangeErr))
				assert.Equal(t, tt.from, rangeErr.From)
				assert.Equal(t, tt.to, rangeErr.To)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, LineRange{From: tt.from, To: tt.to}, r)
		})
	}
}

// TestLineRange_Clamp checks that ranges narrow to the valid intersection
// with the document and report an empty intersection when fully outside.
func TestLineRange_Clamp(t *testing.T) {
	tests := []struct {
		name      string
		r         LineRange
		lineCount int
		expected  LineRange
		ok        bool
	}{
		{"inside", LineRange{2, 4}, 5, LineRange{2, 4}, true},
		{"end past bounds", LineRange{3, 10}, 5, LineRange{3, 5}, true},
		{"whole file", LineRange{1, 5}, 5, LineRange{1, 5}, true},
		{"start past bounds", LineRange{7, 9}, 5, LineRange{}, false},
		{"start just past end", LineRange{6, 6}, 5, LineRange{}, false},
		{"empty document", LineRange{1, 1}, 0, LineRange{}, false},
		{"last line only", LineRange{5, 5}, 5, LineRange{5, 5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.r.Clamp(tt.lineCount)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestLineRange_LenAndContains covers the small helper methods.
func TestLineRange_LenAndContains(t *testing.T) {
	r := LineRange{From: 2, To: 4}
	assert.Equal(t, 3, r.Len())
	assert.True(t, r.Contains(2))
	assert.True(t, r.Contains(4))
	assert.False(t, r.Contains(1))
	assert.False(t, r.Contains(5))
	assert.Equal(t, "2-4", r.String())

	assert.Equal(t, 1, LineRange{From: 7, To: 7}.Len())
}

// TestRemovalResult_Removed verifies the derived removed-line count.
func TestRemovalResult_Removed(t *testing.T) {
	res := &RemovalResult{LinesBefore: 5, LinesAfter: 2}
	assert.Equal(t, 3, res.Removed())
}

// TestCLIError verifies that CLIError formats messages correctly and
// supports error unwrapping via errors.Is/errors.As.
func TestCLIError(t *testing.T) {
	t.Run("without wrapped error", func(t *testing.T) {
		err := NewCLIError(ExitFileAccess, "file not found")
		assert.Equal(t, "file not found", err.Error())
		assert.Equal(t, ExitFileAccess, err.Code)
		assert.Nil(t, err.Unwrap())
	})

	t.Run("with wrapped error", func(t *testing.T) {
		inner := &InvalidRangeError{From: 4, To: 2, Reason: "start line is after end line"}
		err := WrapCLIError(ExitInvalidRange, "cannot remove lines", inner)
		assert.Equal(t,
			"cannot remove lines: invalid line range 4-2: start line is after end line",
			err.Error())
		assert.ErrorIs(t, err, ErrInvalidRange)
	})

	t.Run("errors.As through fmt wrapping", func(t *testing.T) {
		cliErr := NewCLIError(ExitUserCancelled, "operation cancelled by user")
		wrapped := fmt.Errorf("outer: %w", cliErr)

		var target *CLIError
		require.True(t, errors.As(wrapped, &target))
		assert.Equal(t, ExitUserCancelled, target.Code)
	})
}
