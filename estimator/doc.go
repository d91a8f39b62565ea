// Package estimator derives fuzzy concepts from a labelled value table.
//
// A Strategy decides how one row of values becomes a concept:
//
//   - Cutoff: 1001 ticks per row (value quantiles or an even grid), cutoffs
//     on the tick axis from the proportions, then trapezoids or Gaussians.
//   - Default: dominant density mode μ and split spread σ; trapezoids at
//     μ + w·(i ± s)·σ with a Gaussian (μ, σ) in the middle.
//   - Parameter: fixed parameters or value percentiles given per set.
//   - Modes: density maxima refined by expectation maximization.
//
// A Scope decides what a row is: a feature (table row), a sample (table
// column) or the whole matrix, whose concept is then shared.
//
// Rows are processed concurrently; results do not depend on Options.Workers.
// Rows that cannot be estimated (no finite data, zero spread, failed
// refinement) are skipped and logged at debug level.
package estimator
