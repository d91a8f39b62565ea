// Package concept defines fuzzy concepts and builds them from cutoffs.
//
// A Concept is the ordered list of fuzzy sets of one feature (or sample, or
// matrix). Each Set is either a trapezoid [a, b, c, d] with a ≤ b ≤ c ≤ d, or a
// Gaussian [μ, σ] with σ > 0. Sets are ordered along the value axis; the first
// set is open to the left and the last is open to the right.
//
// Concepts are persisted as JSON documents keyed by cluster and then by
// feature. NaN and ±Inf are written as the strings "NaN", "Infinity" and
// "-Infinity"; the usual alias spellings ("inf", "-Inf", "NA", ...) are
// accepted when reading.
package concept
