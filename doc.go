// Package fuzzifier turns crisp numeric matrices (features × samples) into
// fuzzy-set membership tables.
//
// The work is organized in small packages, leaves first:
//
//	matrix/     dense row-major storage, labeled tables, NaN-aware statistics
//	cutoff/     proportion cutoffs over a 1001-point quantile grid
//	concept/    fuzzy sets and concepts, trapezoid/Gaussian builders, JSON codec
//	density/    Gaussian KDE, local maxima, mode and spread estimation
//	em/         expectation-maximization refinement of Gaussian components
//	fuzzify/    membership computation with indicator columns
//	estimator/  cutoff, default, parameter and modes strategies per scope
//	pipeline/   label and noise handling, per-cluster definition, table fuzzification
//	config/     viper-backed configuration
//	tableio/    TSV matrices, metadata and JSON concept files
//	logging/, metrics/  zap logging and prometheus counters
//
// The fuzzifier command (cmd/fuzzifier) wires them together:
//
//	fuzzifier concepts --mtx values.tsv --config config.yaml --output concepts.json
//	fuzzifier fuzzify  --mtx values.tsv --config config.yaml --concept concepts.json --output out/
//
// Quick example: a two-set trapezoidal concept on [0, 9]
//
//	c := concept.Concept{{0, 0, 2, 4}, {2, 4, 9, 9}}
//	m, _ := fuzzify.Fuzzify([]float64{1, 3, 5}, c, nil)
//	// FS1: 1   0.5 0
//	// FS2: 0   0.5 1
package fuzzifier
