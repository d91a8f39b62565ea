// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the Dense implementation
// of the Matrix interface in the matrix package.
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/fuzzifier/matrix"
	"github.com/stretchr/testify/require"
)

// TestNewDenseInvalidDimensions ensures that NewDense rejects non-positive dimensions.
func TestNewDenseInvalidDimensions(t *testing.T) {
	t.Parallel()
	_, err := matrix.NewDense(0, 5)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDense(5, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestNewDenseFrom_LengthAndPolicy checks buffer length and strict NaN policy.
func TestNewDenseFrom_LengthAndPolicy(t *testing.T) {
	t.Parallel()
	_, err := matrix.NewDenseFrom(2, 2, []float64{1, 2, 3})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.NewDenseFrom(1, 2, []float64{1, math.NaN()})
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	d, err := matrix.NewDenseFrom(1, 2, []float64{1, math.NaN()}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.True(t, math.IsNaN(MustAt(t, d, 0, 1)))
}

// TestAtSetOutOfBounds ensures At() and Set() return ErrOutOfRange on invalid access.
func TestAtSetOutOfBounds(t *testing.T) {
	t.Parallel()
	m := MustDense(t, 2, 2)

	_, err := m.At(-1, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.At(0, 2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(2, 0, 1.23), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, 4.56), matrix.ErrOutOfRange)
}

// TestSetNaNPolicy ensures strict matrices reject NaN/Inf in Set.
func TestSetNaNPolicy(t *testing.T) {
	t.Parallel()
	m := MustDense(t, 1, 1)
	require.ErrorIs(t, m.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)

	relaxed, err := matrix.NewDense(1, 1, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.NoError(t, relaxed.Set(0, 0, math.Inf(-1)))
}

// TestRowColCopies verifies Row/Col return independent copies.
func TestRowColCopies(t *testing.T) {
	t.Parallel()
	m := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})

	row, err := m.Row(1)
	require.NoError(t, err)
	require.Equal(t, []float64{4, 5, 6}, row)
	row[0] = 100
	require.Equal(t, 4.0, MustAt(t, m, 1, 0))

	col, err := m.Col(2)
	require.NoError(t, err)
	require.Equal(t, []float64{3, 6}, col)

	_, err = m.Row(2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.Col(-1)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

// TestSetRow checks length validation and write-through.
func TestSetRow(t *testing.T) {
	t.Parallel()
	m := MustDense(t, 2, 2)
	require.ErrorIs(t, m.SetRow(0, []float64{1}), matrix.ErrDimensionMismatch)
	require.NoError(t, m.SetRow(1, []float64{7, 8}))
	require.Equal(t, []float64{0, 0, 7, 8}, m.Values())
}

// TestCloneIndependence ensures Clone() returns a deep copy that does not share storage.
func TestCloneIndependence(t *testing.T) {
	t.Parallel()
	m := NewFilledDense(t, 2, 2, []float64{1, 0, 0, 2})
	clone := m.Clone()
	require.NoError(t, clone.Set(0, 0, 3.0))

	require.Equal(t, 1.0, MustAt(t, m, 0, 0))
	require.Equal(t, 3.0, MustAt(t, clone, 0, 0))
}

// TestTransposeAndInduced checks shape and order of copy-based extraction.
func TestTransposeAndInduced(t *testing.T) {
	t.Parallel()
	m := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})

	tr := m.Transpose()
	require.Equal(t, 3, tr.Rows())
	require.Equal(t, 2, tr.Cols())
	require.Equal(t, []float64{1, 4, 2, 5, 3, 6}, tr.Values())

	sub, err := m.Induced([]int{1}, []int{2, 0})
	require.NoError(t, err)
	require.Equal(t, []float64{6, 4}, sub.Values())

	empty, err := m.Induced([]int{0, 1}, nil)
	require.NoError(t, err)
	require.Equal(t, 0, empty.Cols())

	_, err = m.Induced([]int{0}, []int{3})
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

// TestDo exercises the early-exit iterator.
func TestDo(t *testing.T) {
	t.Parallel()
	m := NewFilledDense(t, 2, 2, []float64{2, 4, 6, 8})

	visited := 0
	m.Do(func(_, _ int, v float64) bool {
		visited++
		return v < 4
	})
	require.Equal(t, 2, visited)
}

// TestStringLiterals pins the non-finite rendering.
func TestStringLiterals(t *testing.T) {
	t.Parallel()
	m := NewFilledDense(t, 1, 3, []float64{1.5, math.NaN(), math.Inf(-1)})
	require.Equal(t, "[1.5, NaN, -Inf]\n", m.String())
}

// TestNilReceiver ensures nil receivers report ErrNilMatrix.
func TestNilReceiver(t *testing.T) {
	t.Parallel()
	var m *matrix.Dense
	_, err := m.At(0, 0)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	require.ErrorIs(t, m.Set(0, 0, 1), matrix.ErrNilMatrix)
}
