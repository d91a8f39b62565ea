// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide small, *private* element-wise kernels (ew*) used by the masking
//     and rounding entry points in api.go.
//   - Keep all loops deterministic and cache-friendly with Dense fast-paths.
//
// Design:
//   - All ew* are UNEXPORTED (internal micro-kernels) and never mutate X.
//   - Outputs relax the NaN/Inf policy: masking produces NaN by construction.
//
// Determinism & Performance:
//   - Fixed loop orders (i→j or flat 0..n-1).
//   - Dense fast-path operates on a single flat buffer (row-major).
//   - No hidden allocations beyond the output Dense; O(r*c) time and space.

package matrix

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// ewMap copies X applying fn to every element.
// Time: O(r*c). Space: O(r*c).
func ewMap(tag string, X Matrix, fn func(v float64) float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(tag, err)
	}
	r, c := X.Rows(), X.Cols()
	out := newDenseZeroOK(r, c, false)

	// Dense fast-path: direct flat slice iteration.
	if d, ok := X.(*Dense); ok {
		for idx, v := range d.data {
			out.data[idx] = fn(v)
		}

		return out, nil
	}

	// Generic fallback via At.
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, e := X.At(i, j)
			if e != nil {
				return nil, matrixErrorf(tag, e)
			}
			out.data[i*c+j] = fn(v)
		}
	}

	return out, nil
}

// matchesAny reports whether v equals one of targets.
// NaN targets match NaN cells; ±Inf match by sign.
func matchesAny(v float64, targets []float64) bool {
	for _, t := range targets {
		if math.IsNaN(t) {
			if math.IsNaN(v) {
				return true
			}
			continue
		}
		if v == t {
			return true
		}
	}

	return false
}

// ewReplaceValues copies X replacing every cell equal to one of targets by val.
func ewReplaceValues(X Matrix, targets []float64, val float64) (*Dense, error) {
	return ewMap("ReplaceValues", X, func(v float64) float64 {
		if matchesAny(v, targets) {
			return val
		}

		return v
	})
}

// ewMaskBeyond copies X replacing cells v ≤ lo by loVal and v ≥ hi by hiVal.
// NaN cells and cells equal to one of keep are left untouched.
// A NaN bound disables its side.
func ewMaskBeyond(X Matrix, lo, hi, loVal, hiVal float64, keep []float64) (*Dense, error) {
	return ewMap("MaskBeyond", X, func(v float64) float64 {
		if math.IsNaN(v) || matchesAny(v, keep) {
			return v
		}
		if !math.IsNaN(lo) && v <= lo {
			return loVal
		}
		if !math.IsNaN(hi) && v >= hi {
			return hiVal
		}

		return v
	})
}

// ewMaskNonFinite copies X replacing ±Inf by NaN.
func ewMaskNonFinite(X Matrix) (*Dense, error) {
	return ewMap("MaskNonFinite", X, func(v float64) float64 {
		if math.IsInf(v, 0) {
			return math.NaN()
		}

		return v
	})
}

// ewRound copies X rounding finite cells half-to-even at the given decimals.
func ewRound(X Matrix, decimals int) (*Dense, error) {
	return ewMap("Round", X, func(v float64) float64 {
		return RoundValue(v, decimals)
	})
}

// RoundValue rounds v half-to-even at the given decimals; NaN/±Inf pass through.
func RoundValue(v float64, decimals int) float64 {
	if isNonFinite(v) {
		return v
	}

	return scalar.RoundEven(v, decimals)
}

// RoundSlice rounds xs in place (see RoundValue) and returns it.
func RoundSlice(xs []float64, decimals int) []float64 {
	for i, v := range xs {
		xs[i] = RoundValue(v, decimals)
	}

	return xs
}
