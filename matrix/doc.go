// Package matrix provides the numeric storage layer of the fuzzifier.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 buffer with safe accessors (At/Set return
//     errors instead of panicking) and an optional finite-only numeric policy.
//   - Table, a Dense with row (feature) and column (sample) names, which is
//     how measurement matrices travel through the estimators and the fuzzifier.
//   - NaN-aware reductions that mirror the skip-missing semantics of the
//     analysis tooling the concepts are shared with: finite filtering, min/max,
//     and linear-interpolation quantiles.
//   - Element-wise masking kernels (label replacement, noise masking,
//     non-finite masking, rounding) that always return fresh copies.
//
// Measurement tables legitimately contain NaN (missing) and ±Inf (saturated)
// cells, so tables are created with validation disabled; plain Dense keeps the
// strict default.
//
// See the examples in this package for usage patterns.
package matrix
