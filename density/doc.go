// Package density estimates the dominant mode of a feature's values.
//
// A one-dimensional Gaussian kernel density estimate is built with Scott's
// rule scaled by a bandwidth factor (h = factor · n^(-1/5) · s, s the sample
// standard deviation). Modes are strict relative maxima of that density
// sampled at the distinct observed values.
//
// EstimateMode reconciles the modes with the arithmetic mean and returns the
// chosen mode with a spread built from the standard deviations of the values
// on either side of it. Features without enough data, or with a degenerate
// density, come back with σ = NaN; callers skip them.
package density
