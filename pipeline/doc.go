// Package pipeline runs the two stages of a fuzzification project over a
// labeled value matrix (features × samples).
//
// Concept definition:
//
//	PrepareConcepts   label values and noise → NaN
//	DefineConcepts    one estimator run per cluster (or "ALL") → concept.Document
//
// Fuzzification:
//
//	PrepareFuzzify    noise → representatives floor(min)-1 / ceil(max)+1
//	Fuzzify           per feature (or sample) and cluster → one table per fuzzy set
//
// Label values and noise representatives become indicator columns named
// FS0_<value>; the noise columns are reported as MIN-NOISE and MAX-NOISE.
// Every other set name may be changed through the rename table of the
// configuration (matched case-insensitively).
package pipeline
