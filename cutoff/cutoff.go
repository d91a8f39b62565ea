package cutoff

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/fuzzifier/matrix"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// GridSize is the number of grid points spanning a row's value range.
const GridSize = 1001

// gridSteps is the index of the last grid point.
const gridSteps = GridSize - 1

// precision is the number of decimals cutoffs are rounded to.
const precision = 3

var (
	// ErrEmptyPercents indicates that no proportions were given.
	ErrEmptyPercents = errors.New("cutoff: at least one proportion is required")

	// ErrPercentValue indicates a proportion that is not a positive finite number.
	ErrPercentValue = errors.New("cutoff: proportions must be positive and finite")

	// ErrPercentSum indicates proportions whose sum, rounded to 3 decimals, is not 1.
	ErrPercentSum = errors.New("cutoff: proportions must sum to 1")
)

// Cumulative validates percents and returns their running sums.
//
// Errors:
//   - ErrEmptyPercents, ErrPercentValue, ErrPercentSum.
func Cumulative(percents []float64) ([]float64, error) {
	if len(percents) == 0 {
		return nil, ErrEmptyPercents
	}
	cum := make([]float64, len(percents))
	sum := 0.0
	for k, p := range percents {
		if math.IsNaN(p) || math.IsInf(p, 0) || p <= 0 {
			return nil, fmt.Errorf("percent %d (%v): %w", k, p, ErrPercentValue)
		}
		sum += p
		cum[k] = sum
	}
	if scalar.RoundEven(sum, precision) != 1 {
		return nil, fmt.Errorf("sum %v: %w", sum, ErrPercentSum)
	}

	return cum, nil
}

// gridIndices maps the interior cumulative sums to grid positions.
func gridIndices(cum []float64) []int {
	idx := make([]int, len(cum)-1)
	for k := range idx {
		i := int(gridSteps * cum[k])
		if i < 0 {
			i = 0
		} else if i > gridSteps {
			i = gridSteps
		}
		idx[k] = i
	}

	return idx
}

// EstimateRow returns the K+1 cutoffs of one row of values.
// Non-finite values are ignored; a row without finite values yields NaN cutoffs.
func EstimateRow(values []float64, percents []float64) ([]float64, error) {
	cum, err := Cumulative(percents)
	if err != nil {
		return nil, err
	}

	return estimateRow(values, gridIndices(cum), make([]float64, GridSize)), nil
}

// estimateRow does the per-row work with a reusable grid buffer.
func estimateRow(values []float64, idx []int, grid []float64) []float64 {
	out := make([]float64, len(idx)+2)
	lo, hi, ok := matrix.FiniteRange(values)
	if !ok {
		for k := range out {
			out[k] = math.NaN()
		}
		return out
	}
	floats.Span(grid, math.Floor(lo), math.Ceil(hi))

	out[0] = lo
	for k, i := range idx {
		c := scalar.RoundEven(grid[i], precision)
		// floor/ceil padding can put grid points outside the data.
		out[k+1] = math.Min(math.Max(c, lo), hi)
	}
	out[len(out)-1] = hi

	return fixOverlap(out)
}

// Estimate computes cutoffs for every row of m.
// The result has m.Rows() rows and len(percents)+1 columns.
//
// Errors:
//   - percent validation errors (see Cumulative).
//   - matrix.ErrNilMatrix for a nil m.
func Estimate(m *matrix.Dense, percents []float64) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("cutoff.Estimate: %w", err)
	}
	cum, err := Cumulative(percents)
	if err != nil {
		return nil, fmt.Errorf("cutoff.Estimate: %w", err)
	}
	idx := gridIndices(cum)
	out, err := matrix.NewDense(m.Rows(), len(percents)+1, matrix.WithNoValidateNaNInf())
	if err != nil {
		return nil, fmt.Errorf("cutoff.Estimate: %w", err)
	}
	grid := make([]float64, GridSize)
	for i := 0; i < m.Rows(); i++ {
		row, _ := m.Row(i)
		if err = out.SetRow(i, estimateRow(row, idx, grid)); err != nil {
			return nil, fmt.Errorf("cutoff.Estimate: %w", err)
		}
	}

	return out, nil
}

// FixOverlap returns a copy of cutoffs where every maximal run of equal
// consecutive values is spread linearly between the nearest values outside
// the run. A run touching either end keeps that end fixed. Repaired values
// are rounded to 3 decimals.
func FixOverlap(cutoffs []float64) []float64 {
	return fixOverlap(append([]float64(nil), cutoffs...))
}

// fixOverlap repairs c in place and returns it.
func fixOverlap(c []float64) []float64 {
	n := len(c)
	for s := 0; s < n-1; {
		e := s
		for e+1 < n && c[e+1] == c[s] {
			e++
		}
		if e == s {
			s++
			continue
		}
		lo, hi := s, e
		if lo > 0 {
			lo--
		}
		if hi < n-1 {
			hi++
		}
		span := make([]float64, hi-lo+1)
		floats.Span(span, c[lo], c[hi])
		for k := lo + 1; k < hi; k++ {
			c[k] = scalar.RoundEven(span[k-lo], precision)
		}
		s = e + 1
	}

	return c
}
