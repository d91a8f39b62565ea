package estimator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/fuzzifier/concept"
)

// Scope selects the unit a concept is estimated for.
type Scope int

const (
	// Feature estimates one concept per table row.
	Feature Scope = iota
	// Sample estimates one concept per table column.
	Sample
	// Matrix estimates one concept from all values.
	Matrix
)

// Strategy selects how a concept is derived.
type Strategy int

const (
	// Cutoff places set boundaries at value proportions or even widths.
	Cutoff Strategy = iota
	// Default centres the concept on the dominant density mode.
	Default
	// Parameter takes set parameters (or their percentiles) from the configuration.
	Parameter
	// Modes places one Gaussian per refined density mode.
	Modes
)

// CutoffMethod selects how the cutoff strategy builds its ticks.
type CutoffMethod int

const (
	// Proportion ticks are value quantiles.
	Proportion CutoffMethod = iota
	// Width ticks are evenly spaced over the value range.
	Width
)

// ParamMethod selects how Parameter values are read.
type ParamMethod int

const (
	// Percentile values are quantile levels in [0, 1].
	Percentile ParamMethod = iota
	// Fix values are used as given.
	Fix
)

// MatrixKey is the row name of the melted table in Matrix scope.
const MatrixKey = "value"

// ModeThreshold is the minimum normalized density of a mode used by Modes.
const ModeThreshold = 5e-4

var (
	// ErrUnknownScope indicates an unrecognized scope name.
	ErrUnknownScope = errors.New("estimator: unknown concept scope")

	// ErrUnknownStrategy indicates an unrecognized strategy name.
	ErrUnknownStrategy = errors.New("estimator: unknown estimation strategy")

	// ErrUnknownCutoffMethod indicates an unrecognized cutoff method name.
	ErrUnknownCutoffMethod = errors.New("estimator: unknown cutoff method")

	// ErrUnknownParamMethod indicates an unrecognized parameter method name.
	ErrUnknownParamMethod = errors.New("estimator: unknown parameter method")

	// ErrParamArity indicates parameter rows whose length does not match the function type.
	ErrParamArity = errors.New("estimator: parameter rows must have 4 (trapezoidal) or 2 (gauss) values")

	// ErrParamValue indicates a parameter that cannot be used (e.g. a percentile outside [0, 1]).
	ErrParamValue = errors.New("estimator: invalid parameter value")

	// ErrSets indicates a non-positive number of fuzzy sets.
	ErrSets = errors.New("estimator: number of fuzzy sets must be positive")

	// ErrFactor indicates a non-positive width, slope or bandwidth factor.
	ErrFactor = errors.New("estimator: factors must be positive and finite")

	// ErrNilTable indicates a missing input table.
	ErrNilTable = errors.New("estimator: nil table")
)

var (
	scopeNames    = []string{"feature", "sample", "matrix"}
	strategyNames = []string{"cutoff", "default", "parameter", "modes"}
	cutoffNames   = []string{"proportion", "width"}
	paramNames    = []string{"percentile", "fix"}
)

func name(names []string, i int, kind string) string {
	if i >= 0 && i < len(names) {
		return names[i]
	}

	return fmt.Sprintf("%s(%d)", kind, i)
}

func parse(names []string, s string, sentinel error) (int, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == key {
			return i, nil
		}
	}

	return 0, fmt.Errorf("%q: %w", s, sentinel)
}

func (s Scope) String() string        { return name(scopeNames, int(s), "Scope") }
func (s Strategy) String() string     { return name(strategyNames, int(s), "Strategy") }
func (m CutoffMethod) String() string { return name(cutoffNames, int(m), "CutoffMethod") }
func (m ParamMethod) String() string  { return name(paramNames, int(m), "ParamMethod") }

// ParseScope maps "feature", "sample" or "matrix" to a Scope.
func ParseScope(s string) (Scope, error) {
	i, err := parse(scopeNames, s, ErrUnknownScope)
	return Scope(i), err
}

// ParseStrategy maps "cutoff", "default", "parameter" or "modes" to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	i, err := parse(strategyNames, s, ErrUnknownStrategy)
	return Strategy(i), err
}

// ParseCutoffMethod maps "proportion" or "width" to a CutoffMethod.
func ParseCutoffMethod(s string) (CutoffMethod, error) {
	i, err := parse(cutoffNames, s, ErrUnknownCutoffMethod)
	return CutoffMethod(i), err
}

// ParseParamMethod maps "percentile" or "fix" to a ParamMethod.
func ParseParamMethod(s string) (ParamMethod, error) {
	i, err := parse(paramNames, s, ErrUnknownParamMethod)
	return ParamMethod(i), err
}

// Options configures an Estimator.
//
// Fields:
//   - Sets: number of fuzzy sets K (cutoff and default).
//   - Scope: feature, sample or matrix.
//   - Strategy: cutoff, default, parameter or modes.
//   - Shape: trapezoidal or gauss (cutoff and parameter).
//   - CutoffMethod: proportion or width.
//   - Percents: expected share per set; empty or mismatched means equal.
//   - Slopes: slope half width per cutoff as a share of the tick axis.
//   - WidthFactor: default strategy set width w (default 1).
//   - SlopeFactor: default strategy slope s (default 0.5).
//   - BandwidthFactor: KDE bandwidth scale (default 1).
//   - ParamMethod: percentile or fix.
//   - Params: one row per set: [a b c d] or [μ σ].
//   - MaxIterations: EM iterations of the modes strategy (default 20).
//   - Workers: concurrent rows; ≤ 0 means GOMAXPROCS.
type Options struct {
	Sets            int
	Scope           Scope
	Strategy        Strategy
	Shape           concept.Shape
	CutoffMethod    CutoffMethod
	Percents        []float64
	Slopes          []float64
	WidthFactor     float64
	SlopeFactor     float64
	BandwidthFactor float64
	ParamMethod     ParamMethod
	Params          [][]float64
	MaxIterations   int
	Workers         int
}

// DefaultOptions returns a three-set default-strategy configuration.
func DefaultOptions() Options {
	return Options{
		Sets:            3,
		Scope:           Feature,
		Strategy:        Default,
		Shape:           concept.Trapezoidal,
		CutoffMethod:    Proportion,
		WidthFactor:     1,
		SlopeFactor:     0.5,
		BandwidthFactor: 1,
		ParamMethod:     Percentile,
		MaxIterations:   20,
	}
}
