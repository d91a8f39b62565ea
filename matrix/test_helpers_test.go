// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   - Provide small, deterministic fixtures and utilities for kernels and tables.

package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/fuzzifier/matrix"
)

// hide wraps any Matrix to hide its concrete type from type assertions.
// Use hide{X} to force non-*Dense (fallback) paths in code under test.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	if err != nil {
		t.Fatalf("NewDense(%d,%d): %v", r, c, err)
	}

	return m
}

// NewFilledDense builds an r×c *Dense from row-major values with NaN/Inf allowed.
func NewFilledDense(t *testing.T, r, c int, vals []float64) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDenseFrom(r, c, vals, matrix.WithNoValidateNaNInf())
	if err != nil {
		t.Fatalf("NewDenseFrom(%d,%d): %v", r, c, err)
	}

	return d
}

// MustTable builds a labeled table or fails the test.
func MustTable(t *testing.T, rows, cols []string, vals []float64) *matrix.Table {
	t.Helper()
	tb, err := matrix.NewTable(rows, cols, vals)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	return tb
}

// MustAt reads (i,j) or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	if err != nil {
		t.Fatalf("At(%d,%d): %v", i, j, err)
	}

	return v
}

// sameFloat treats NaN as equal to NaN and otherwise compares within atol.
func sameFloat(a, b, atol float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}

	return math.Abs(a-b) <= atol
}

// sliceClose fails the test when a and b differ (NaN-aware) beyond atol.
func sliceClose(t *testing.T, want, got []float64, atol float64) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("length mismatch: want %d, got %d", len(want), len(got))
	}
	for k := range want {
		if !sameFloat(want[k], got[k], atol) {
			t.Fatalf("index %d: want %v, got %v (all: %v)", k, want[k], got[k], got)
		}
	}
}
