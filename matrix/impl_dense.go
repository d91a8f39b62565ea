// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set/Row/Col return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Support copy-based extraction (Row, Col, Induced, Transpose) so callers never alias inputs.
//   - Enforce a numeric policy (optional rejection of NaN/Inf) from a single source of truth.
//
// AI-Hints:
//   - Prefer fast-paths on *Dense in kernels: operate on the flat data slice directly.
//   - Use Induced(rows, cols) to materialize a column subset (one cluster of samples).
//   - DefaultValidateNaNInf is on; tables built by NewTable disable it.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone/Transpose: O(r*c); Row: O(c); Col: O(r).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt     = "At"      // method tag used in error wrappers
	ctxSet    = "Set"     // method tag used in error wrappers
	ctxRow    = "Row"     // method tag used in error wrappers
	ctxCol    = "Col"     // method tag used in error wrappers
	ctxInduce = "Induced" // ctor/tag for Dense.Induced
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
//
// Implementation:
//   - Stage 1: format "Dense.<method>(row,col): %w".
//   - Stage 2: return wrapped error.
//
// Notes:
//   - Keep tags in constants for grep-ability and consistency.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// matrixErrorf wraps an error with an operation tag, preserving the sentinel.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - validateNaNInf enables optional NaN/Inf rejection in Set (policy default from options.go).
type Dense struct {
	r, c           int       // row and column counts (>=0; zero allowed only for internal zero-OK constructors)
	data           []float64 // contiguous row-major storage (len == r*c)
	validateNaNInf bool      // numeric guard: reject NaN/Inf in Set when true
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil) // *Dense implements our public Matrix interface
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer.
//   - Stage 3: set numeric policy from options (default strict).
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
//
// Notes:
//   - Internal zero-sized cases use newDenseZeroOK.
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	o := gatherOptions(opts...)

	return newDenseZeroOK(rows, cols, o.validateNaNInf), nil
}

// NewDenseFrom creates an r×c matrix holding a copy of data (row-major).
//
// Errors:
//   - ErrInvalidDimensions if rows<=0 || cols<=0.
//   - ErrDimensionMismatch if len(data) != rows*cols.
//   - ErrNaNInf if the policy is strict and data holds a non-finite value.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFrom(rows, cols int, data []float64, opts ...Option) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(data) != rows*cols {
		return nil, matrixErrorf("NewDenseFrom", ErrDimensionMismatch)
	}
	o := gatherOptions(opts...)
	if o.validateNaNInf {
		for k, v := range data {
			if isNonFinite(v) {
				return nil, denseErrorf(ctxSet, k/cols, k%cols, ErrNaNInf)
			}
		}
	}
	d := newDenseZeroOK(rows, cols, o.validateNaNInf)
	copy(d.data, data)

	return d, nil
}

// newDenseZeroOK allocates a zero-filled matrix, allowing zero-area shapes.
// Used by internal builders (e.g. a column subset with no samples).
func newDenseZeroOK(rows, cols int, validate bool) *Dense {
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols), validateNaNInf: validate}
}

// indexOf returns the flat offset for (i,j) or ErrOutOfRange.
func (m *Dense) indexOf(i, j int) (int, error) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return 0, ErrOutOfRange
	}

	return i*m.c + j, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

// At returns the element at (i,j).
//
// Errors:
//   - ErrNilMatrix on a nil receiver.
//   - ErrOutOfRange if indices are invalid.
func (m *Dense) At(i, j int) (float64, error) {
	if m == nil {
		return 0, denseErrorf(ctxAt, i, j, ErrNilMatrix)
	}
	k, err := m.indexOf(i, j)
	if err != nil {
		return 0, denseErrorf(ctxAt, i, j, err)
	}

	return m.data[k], nil
}

// Set assigns v at (i,j).
//
// Errors:
//   - ErrNilMatrix on a nil receiver.
//   - ErrOutOfRange if indices are invalid.
//   - ErrNaNInf if the policy is strict and v is NaN/±Inf.
func (m *Dense) Set(i, j int, v float64) error {
	if m == nil {
		return denseErrorf(ctxSet, i, j, ErrNilMatrix)
	}
	k, err := m.indexOf(i, j)
	if err != nil {
		return denseErrorf(ctxSet, i, j, err)
	}
	if m.validateNaNInf && isNonFinite(v) {
		return denseErrorf(ctxSet, i, j, ErrNaNInf)
	}
	m.data[k] = v

	return nil
}

// Row returns a copy of row i.
// Complexity: O(c).
func (m *Dense) Row(i int) ([]float64, error) {
	if m == nil {
		return nil, denseErrorf(ctxRow, i, 0, ErrNilMatrix)
	}
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	out := make([]float64, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out, nil
}

// SetRow overwrites row i with a copy of values.
//
// Errors:
//   - ErrOutOfRange, ErrDimensionMismatch (len(values) != Cols()),
//     ErrNaNInf under strict policy.
func (m *Dense) SetRow(i int, values []float64) error {
	if m == nil {
		return denseErrorf(ctxRow, i, 0, ErrNilMatrix)
	}
	if i < 0 || i >= m.r {
		return denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	if len(values) != m.c {
		return denseErrorf(ctxRow, i, 0, ErrDimensionMismatch)
	}
	if m.validateNaNInf {
		for j, v := range values {
			if isNonFinite(v) {
				return denseErrorf(ctxSet, i, j, ErrNaNInf)
			}
		}
	}
	copy(m.data[i*m.c:(i+1)*m.c], values)

	return nil
}

// Col returns a copy of column j.
// Complexity: O(r).
func (m *Dense) Col(j int) ([]float64, error) {
	if m == nil {
		return nil, denseErrorf(ctxCol, 0, j, ErrNilMatrix)
	}
	if j < 0 || j >= m.c {
		return nil, denseErrorf(ctxCol, 0, j, ErrOutOfRange)
	}
	out := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = m.data[i*m.c+j]
	}

	return out, nil
}

// Values returns a row-major copy of the whole buffer.
func (m *Dense) Values() []float64 {
	out := make([]float64, len(m.data))
	copy(out, m.data)

	return out
}

// Clone returns a deep copy (policy included).
// Complexity: O(r*c).
func (m *Dense) Clone() Matrix {
	return m.clone()
}

func (m *Dense) clone() *Dense {
	cp := newDenseZeroOK(m.r, m.c, m.validateNaNInf)
	copy(cp.data, m.data)

	return cp
}

// Transpose returns a fresh c×r copy with rows and columns swapped.
// Complexity: O(r*c).
func (m *Dense) Transpose() *Dense {
	t := newDenseZeroOK(m.c, m.r, m.validateNaNInf)
	for i := 0; i < m.r; i++ {
		base := i * m.c
		for j := 0; j < m.c; j++ {
			t.data[j*m.r+i] = m.data[base+j]
		}
	}

	return t
}

// Induced materializes the submatrix at the given row and column indices.
//
// Behavior highlights:
//   - Indices may repeat and appear in any order; output follows the given order.
//   - Empty index lists yield a zero-area matrix (no error).
//
// Errors:
//   - ErrOutOfRange if any index is invalid.
//
// Complexity:
//   - Time O(len(rows)*len(cols)), Space same.
func (m *Dense) Induced(rows, cols []int) (*Dense, error) {
	if m == nil {
		return nil, matrixErrorf("Dense."+ctxInduce, ErrNilMatrix)
	}
	for _, i := range rows {
		if i < 0 || i >= m.r {
			return nil, denseErrorf(ctxInduce, i, 0, ErrOutOfRange)
		}
	}
	for _, j := range cols {
		if j < 0 || j >= m.c {
			return nil, denseErrorf(ctxInduce, 0, j, ErrOutOfRange)
		}
	}
	out := newDenseZeroOK(len(rows), len(cols), m.validateNaNInf)
	for ii, i := range rows {
		src := i * m.c
		dst := ii * out.c
		for jj, j := range cols {
			out.data[dst+jj] = m.data[src+j]
		}
	}

	return out, nil
}

// Do iterates all elements in row-major order until fn returns false.
func (m *Dense) Do(fn func(i, j int, v float64) bool) {
	for i := 0; i < m.r; i++ {
		base := i * m.c
		for j := 0; j < m.c; j++ {
			if !fn(i, j, m.data[base+j]) {
				return
			}
		}
	}
}

// String implements fmt.Stringer (one bracketed row per line).
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			sb.WriteString(formatCell(m.data[i*m.c+j]))
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}

// formatCell renders NaN and ±Inf with stable literals.
func formatCell(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	default:
		return fmt.Sprintf("%g", v)
	}
}
