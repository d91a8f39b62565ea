// SPDX-License-Identifier: MIT

// Package matrix - labeled tables.
//
// Purpose:
//   - Pair a Dense (rows = features, cols = samples) with parallel name indexes.
//   - Every derived table (masked, transposed, melted, column subset) is a fresh
//     copy; a Table is never mutated by the kernels in this package.
//
// Notes:
//   - Tables always relax the NaN/Inf policy: missing and saturated cells are data.

package matrix

import "fmt"

const (
	tagNewTable = "NewTable"
	tagSelect   = "Table.SelectColumns"
	tagRow      = "Table.Row"

	// meltSep joins column and row names of a melted table.
	meltSep = "|"
)

// Table is a Dense with row and column names.
type Table struct {
	Data     *Dense
	RowNames []string
	ColNames []string
}

// NewTable builds a table from row-major values (copied).
//
// Errors:
//   - ErrInvalidDimensions when either name list is empty.
//   - ErrDimensionMismatch when len(values) != len(rowNames)*len(colNames).
//   - ErrDuplicateName when a name repeats on an axis.
func NewTable(rowNames, colNames []string, values []float64) (*Table, error) {
	d, err := NewDenseFrom(len(rowNames), len(colNames), values, WithNoValidateNaNInf())
	if err != nil {
		return nil, matrixErrorf(tagNewTable, err)
	}
	t := &Table{Data: d, RowNames: append([]string(nil), rowNames...), ColNames: append([]string(nil), colNames...)}
	if err = t.validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// WrapDense attaches names to d without copying values.
func WrapDense(d *Dense, rowNames, colNames []string) (*Table, error) {
	if d == nil {
		return nil, matrixErrorf(tagNewTable, ErrNilMatrix)
	}
	d.validateNaNInf = false
	t := &Table{Data: d, RowNames: append([]string(nil), rowNames...), ColNames: append([]string(nil), colNames...)}
	if err := t.validate(); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Table) validate() error {
	if err := ValidateNames(t.RowNames, t.Data.r); err != nil {
		return matrixErrorf(tagNewTable, err)
	}
	if err := ValidateNames(t.ColNames, t.Data.c); err != nil {
		return matrixErrorf(tagNewTable, err)
	}

	return nil
}

// Rows returns the number of rows.
func (t *Table) Rows() int { return t.Data.r }

// Cols returns the number of columns.
func (t *Table) Cols() int { return t.Data.c }

// RowIndex returns the position of a row name.
func (t *Table) RowIndex(name string) (int, bool) {
	return indexOfName(t.RowNames, name)
}

// ColIndex returns the position of a column name.
func (t *Table) ColIndex(name string) (int, bool) {
	return indexOfName(t.ColNames, name)
}

func indexOfName(names []string, name string) (int, bool) {
	for i, n := range names {
		if n == name {
			return i, true
		}
	}

	return -1, false
}

// Row returns a copy of the named row.
func (t *Table) Row(name string) ([]float64, error) {
	i, ok := t.RowIndex(name)
	if !ok {
		return nil, fmt.Errorf("%s(%q): %w", tagRow, name, ErrUnknownName)
	}

	return t.Data.Row(i)
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	return &Table{
		Data:     t.Data.clone(),
		RowNames: append([]string(nil), t.RowNames...),
		ColNames: append([]string(nil), t.ColNames...),
	}
}

// Transpose returns a copy with rows and columns swapped (samples become rows).
func (t *Table) Transpose() *Table {
	return &Table{
		Data:     t.Data.Transpose(),
		RowNames: append([]string(nil), t.ColNames...),
		ColNames: append([]string(nil), t.RowNames...),
	}
}

// Melt returns a single-row table named rowName holding every cell in
// column-major order; the column for cell (i,j) is "<col j>|<row i>".
func (t *Table) Melt(rowName string) *Table {
	r, c := t.Data.r, t.Data.c
	d := newDenseZeroOK(1, r*c, false)
	names := make([]string, 0, r*c)
	k := 0
	for j := 0; j < c; j++ {
		for i := 0; i < r; i++ {
			d.data[k] = t.Data.data[i*c+j]
			names = append(names, t.ColNames[j]+meltSep+t.RowNames[i])
			k++
		}
	}

	return &Table{Data: d, RowNames: []string{rowName}, ColNames: names}
}

// SelectColumns returns a copy holding only the named columns, in the given order.
//
// Errors:
//   - ErrUnknownName when a name is absent.
func (t *Table) SelectColumns(names []string) (*Table, error) {
	idx := make([]int, len(names))
	for k, name := range names {
		j, ok := t.ColIndex(name)
		if !ok {
			return nil, fmt.Errorf("%s(%q): %w", tagSelect, name, ErrUnknownName)
		}
		idx[k] = j
	}
	rows := make([]int, t.Data.r)
	for i := range rows {
		rows[i] = i
	}
	d, err := t.Data.Induced(rows, idx)
	if err != nil {
		return nil, matrixErrorf(tagSelect, err)
	}

	return &Table{Data: d, RowNames: append([]string(nil), t.RowNames...), ColNames: append([]string(nil), names...)}, nil
}

// withData returns a table sharing t's names with new values.
func (t *Table) withData(d *Dense) *Table {
	return &Table{Data: d, RowNames: append([]string(nil), t.RowNames...), ColNames: append([]string(nil), t.ColNames...)}
}

// ReplaceValues returns a copy where cells equal to one of targets become val.
func (t *Table) ReplaceValues(targets []float64, val float64) (*Table, error) {
	d, err := ewReplaceValues(t.Data, targets, val)
	if err != nil {
		return nil, err
	}

	return t.withData(d), nil
}

// MaskBeyond returns a copy where cells ≤ lo become loVal and cells ≥ hi become
// hiVal, leaving NaN and keep values untouched. A NaN bound disables its side.
func (t *Table) MaskBeyond(lo, hi, loVal, hiVal float64, keep []float64) (*Table, error) {
	d, err := ewMaskBeyond(t.Data, lo, hi, loVal, hiVal, keep)
	if err != nil {
		return nil, err
	}

	return t.withData(d), nil
}

// FiniteRange returns the min and max over all finite cells.
func (t *Table) FiniteRange() (lo, hi float64, ok bool) {
	return FiniteRange(t.Data.data)
}
