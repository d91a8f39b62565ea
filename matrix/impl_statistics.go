// SPDX-License-Identifier: MIT

// Package matrix - NaN-aware reductions.
//
// Purpose:
//   - Provide skip-missing reductions over rows and value slices: finite
//     filtering, min/max ranges, linear-interpolation quantiles.
//   - Quantiles follow the "linear" rule of the tabular tooling concepts are
//     exchanged with: position h = (n-1)*p, result x[⌊h⌋] + (h-⌊h⌋)*(x[⌊h⌋+1]-x[⌊h⌋]).
//
// Determinism:
//   - Inputs are copied and sorted; outputs depend only on the value multiset.
//
// Complexity:
//   - FiniteValues/FiniteRange: O(n); Quantiles: O(n log n + len(ps)).

package matrix

import (
	"math"
	"sort"
)

// FiniteValues returns a fresh slice with NaN and ±Inf removed, order preserved.
func FiniteValues(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, v := range xs {
		if !isNonFinite(v) {
			out = append(out, v)
		}
	}

	return out
}

// FiniteRange returns the min and max over finite values of xs.
// ok is false when xs holds no finite value (min and max are NaN).
func FiniteRange(xs []float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range xs {
		if isNonFinite(v) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
		ok = true
	}
	if !ok {
		return math.NaN(), math.NaN(), false
	}

	return lo, hi, true
}

// RowRanges returns per-row finite min and max of m (NaN for rows without data).
// Complexity: O(r*c).
func RowRanges(m *Dense) (mins, maxs []float64) {
	mins = make([]float64, m.r)
	maxs = make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		mins[i], maxs[i], _ = FiniteRange(m.data[i*m.c : (i+1)*m.c])
	}

	return mins, maxs
}

// quantileSorted evaluates the linear-interpolation quantile on sorted data.
func quantileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)

	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Quantiles returns the linear-interpolation quantiles of the finite values of
// xs at each probability in ps.
//
// Errors:
//   - ErrQuantile if any p is NaN or outside [0,1].
//   - ErrEmpty if xs holds no finite value.
func Quantiles(xs []float64, ps []float64) ([]float64, error) {
	for _, p := range ps {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return nil, matrixErrorf("Quantiles", ErrQuantile)
		}
	}
	sorted := FiniteValues(xs)
	if len(sorted) == 0 {
		return nil, matrixErrorf("Quantiles", ErrEmpty)
	}
	sort.Float64s(sorted)
	out := make([]float64, len(ps))
	for k, p := range ps {
		out[k] = quantileSorted(sorted, p)
	}

	return out, nil
}
