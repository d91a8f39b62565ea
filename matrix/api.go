// SPDX-License-Identifier: MIT

// Package matrix: public facade over the private element-wise kernels.
// All functions return fresh matrices and never mutate their inputs.
package matrix

// ReplaceValues returns a copy of m where every cell equal to one of targets
// is replaced by val. NaN targets match NaN cells.
//
// Errors:
//   - ErrNilMatrix (wrapped) for a nil input.
//
// Complexity: O(r*c).
func ReplaceValues(m Matrix, targets []float64, val float64) (*Dense, error) {
	return ewReplaceValues(m, targets, val)
}

// MaskBeyond returns a copy of m where cells ≤ lo become loVal and cells ≥ hi
// become hiVal. NaN cells and cells equal to one of keep are left untouched;
// a NaN bound disables its side.
//
// Complexity: O(r*c).
func MaskBeyond(m Matrix, lo, hi, loVal, hiVal float64, keep []float64) (*Dense, error) {
	return ewMaskBeyond(m, lo, hi, loVal, hiVal, keep)
}

// MaskNonFinite returns a copy of m with ±Inf replaced by NaN.
func MaskNonFinite(m Matrix) (*Dense, error) {
	return ewMaskNonFinite(m)
}

// Round returns a copy of m rounded half-to-even at the configured precision
// (DefaultPrecision unless WithPrecision is given). NaN/±Inf pass through.
func Round(m Matrix, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)

	return ewRound(m, o.precision)
}
