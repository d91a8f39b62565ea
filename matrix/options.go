// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for Dense/Table construction and
// numeric reductions. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//
// Notes:
//   - Numeric policy is explicit: validateNaNInf controls whether Set rejects
//     NaN/Inf. Measurement tables carry missing (NaN) and saturated (±Inf)
//     cells, so NewTable always disables it regardless of options.
//   - Rounding precision is used by Round-style kernels; negative precision is
//     nonsensical and panics.
package matrix

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultValidateNaNInf toggles strict finite-value validation on Set.
	DefaultValidateNaNInf = true

	// DefaultPrecision is the number of decimals kept by rounding kernels.
	DefaultPrecision = 3
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicPrecisionInvalid = "matrix: WithPrecision: decimals must be in [0,15]"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option`.
type Options struct {
	validateNaNInf bool // DefaultValidateNaNInf
	precision      int  // DefaultPrecision
}

// ---------- Constructors (WithX) ----------

// WithValidateNaNInf enables strict finite-value validation in Set.
// This is the default; use WithNoValidateNaNInf to relax.
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables finite-value validation, allowing NaN/±Inf in Set.
//
// AI-Hints:
//   - Use when ingesting measurement data with missing or saturated cells.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithPrecision sets the number of decimals kept by Round.
// Implementation:
//   - Stage 1: validate 0 ≤ decimals ≤ 15.
//   - Stage 2: return a setter that writes precision into Options.
//
// Errors:
//   - Panics with a stable message when decimals is out of range.
func WithPrecision(decimals int) Option {
	if decimals < 0 || decimals > 15 {
		panic(panicPrecisionInvalid)
	}

	return func(o *Options) { o.precision = decimals }
}

// ---------- Internal helpers ----------

// defaultOptions returns an Options value populated with documented defaults.
func defaultOptions() Options {
	return Options{
		validateNaNInf: DefaultValidateNaNInf,
		precision:      DefaultPrecision,
	}
}

// gatherOptions applies setters over defaults in order; last writer wins.
// Complexity: O(len(opts)).
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, set := range opts {
		if set != nil {
			set(&o)
		}
	}

	return o
}
