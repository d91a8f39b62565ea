// SPDX-License-Identifier: MIT

// Package matrix: argument validators shared by kernels.
// Validators return bare sentinels wrapped with a tag; they never panic.
package matrix

import "math"

const (
	tagValidateNotNil    = "ValidateNotNil"
	tagValidateSameShape = "ValidateSameShape"
	tagValidateVecLen    = "ValidateVecLen"
	tagValidateNames     = "ValidateNames"
)

// validatorErrorf wraps a sentinel with a validator tag.
func validatorErrorf(tag string, err error) error {
	return matrixErrorf(tag, err)
}

// isNonFinite reports whether v is NaN or ±Inf.
func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// ValidateNotNil ensures m is non-nil (including typed-nil *Dense).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf(tagValidateNotNil, ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf(tagValidateNotNil, ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures a and b have identical dimensions.
func ValidateSameShape(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return validatorErrorf(tagValidateSameShape, ErrDimensionMismatch)
	}

	return nil
}

// ValidateVecLen ensures len(x) == n.
func ValidateVecLen(x []float64, n int) error {
	if len(x) != n {
		return validatorErrorf(tagValidateVecLen, ErrDimensionMismatch)
	}

	return nil
}

// ValidateNames ensures names has length n and contains no duplicates.
func ValidateNames(names []string, n int) error {
	if len(names) != n {
		return validatorErrorf(tagValidateNames, ErrDimensionMismatch)
	}
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			return validatorErrorf(tagValidateNames, ErrDuplicateName)
		}
		seen[name] = struct{}{}
	}

	return nil
}
