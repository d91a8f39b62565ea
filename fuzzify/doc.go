// Package fuzzify turns crisp values into memberships of a fuzzy concept.
//
// Every concept set contributes one column FS1..FSN. Optional indicator
// columns FS0_<label> flag label values (NaN, ±Inf, or exact numbers); rows
// matched by an indicator have zero membership in the real sets. A row whose
// total membership is zero is assigned fully to the last real set.
//
// Usage:
//
//	opts := fuzzify.DefaultOptions()
//	opts.AddIndicator = true
//	opts.IndicateValues = []float64{math.NaN(), 0}
//	m, err := fuzzify.Fuzzify(values, c, &opts)
//
// Membership rules:
//
//   - Gaussian [μ, σ]: exp(−(x−μ)²/2σ²), with a plateau of 1 below μ for
//     the first set and above μ for the last; values under 1e-5 become 0.
//   - Trapezoid [a, b, c, d]: ramps and plateau, with equal corners disabling
//     a ramp. The first and last sets extend to ∓∞.
//
// Complexity: O(n·k) for n values and k sets.
package fuzzify
