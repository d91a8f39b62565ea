// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All kernels MUST return these sentinels and tests MUST check them
// via errors.Is. No kernel should panic on user-triggered error conditions.
// Panics are reserved for programmer errors (nonsensical Option values).

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. DO NOT %w wrap these sentinels when returning
// directly from validators; kernels wrap with fmt.Errorf("Op: %w", ErrX) and
// callers still use errors.Is to match.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> shape/index -> dimension mismatch -> NaN/Inf policy -> names.

var (
	// ErrBadShape is returned when a requested window or shape is invalid.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrInvalidDimensions indicates that requested dimensions are non-positive
	// for the public constructor (internal builders allow zero-area results).
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set/Row/Col) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. a data buffer whose length differs from rows*cols or a name list
	// whose length differs from the corresponding axis.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf value was encountered where finite values
	// are required by the numeric policy (Set under validation, finite bounds).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrUnknownName indicates that a row or column name is not present in a Table.
	ErrUnknownName = errors.New("matrix: unknown row or column name")

	// ErrDuplicateName indicates that a Table axis would contain the same name twice.
	ErrDuplicateName = errors.New("matrix: duplicate row or column name")

	// ErrEmpty signals that a reduction was requested over zero usable values.
	ErrEmpty = errors.New("matrix: no usable values")

	// ErrQuantile signals a quantile probability outside [0,1] (or NaN).
	ErrQuantile = errors.New("matrix: quantile probability outside [0,1]")
)
