package concept

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Shape is the membership function family of a concept.
type Shape int

const (
	// Trapezoidal sets are [a, b, c, d].
	Trapezoidal Shape = iota
	// Gaussian sets are [μ, σ].
	Gaussian
)

// Set arities.
const (
	TrapezoidArity = 4
	GaussianArity  = 2
)

// AllClusters is the document key used when concepts are not defined per cluster.
const AllClusters = "ALL"

var (
	// ErrArity indicates a set with neither 2 nor 4 parameters.
	ErrArity = errors.New("concept: a set must have 2 (gauss) or 4 (trapezoidal) parameters")

	// ErrSlopeCount indicates a slope list whose length differs from the cutoff list.
	ErrSlopeCount = errors.New("concept: one slope per cutoff is required")

	// ErrOrder indicates trapezoid corners that are not non-decreasing.
	ErrOrder = errors.New("concept: trapezoid parameters must be non-decreasing")

	// ErrSigma indicates a Gaussian set whose σ is not positive.
	ErrSigma = errors.New("concept: gaussian sigma must be positive")

	// ErrEmpty indicates a concept without sets.
	ErrEmpty = errors.New("concept: concept has no fuzzy sets")

	// ErrUnknownShape indicates an unrecognized function type name.
	ErrUnknownShape = errors.New("concept: unknown function type")

	// ErrValue indicates an unparsable parameter in a concept document.
	ErrValue = errors.New("concept: invalid parameter value")
)

// String returns the configuration name of the shape.
func (s Shape) String() string {
	switch s {
	case Trapezoidal:
		return "trapezoidal"
	case Gaussian:
		return "gauss"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// ParseShape maps a function type name to a Shape.
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trapezoidal", "trap":
		return Trapezoidal, nil
	case "gauss", "gaussian":
		return Gaussian, nil
	default:
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownShape)
	}
}

// Set holds the parameters of one fuzzy set.
type Set []float64

// Shape reports the family of s.
func (s Set) Shape() (Shape, error) {
	switch len(s) {
	case TrapezoidArity:
		return Trapezoidal, nil
	case GaussianArity:
		return Gaussian, nil
	default:
		return 0, fmt.Errorf("set of length %d: %w", len(s), ErrArity)
	}
}

// Concept is the ordered list of fuzzy sets of one key.
type Concept []Set

// Len returns the number of fuzzy sets.
func (c Concept) Len() int { return len(c) }

// Clone returns a deep copy.
func (c Concept) Clone() Concept {
	out := make(Concept, len(c))
	for i, s := range c {
		out[i] = append(Set(nil), s...)
	}

	return out
}

// Validate checks arity on every set, corner order on trapezoids and σ > 0
// on Gaussians. NaN parameters are tolerated; they mark undefined sets.
func (c Concept) Validate() error {
	if len(c) == 0 {
		return ErrEmpty
	}
	for i, s := range c {
		shape, err := s.Shape()
		if err != nil {
			return fmt.Errorf("set %d: %w", i, err)
		}
		switch shape {
		case Trapezoidal:
			for k := 1; k < TrapezoidArity; k++ {
				if s[k] < s[k-1] {
					return fmt.Errorf("set %d %v: %w", i, []float64(s), ErrOrder)
				}
			}
		case Gaussian:
			if s[1] <= 0 || math.IsInf(s[1], 0) {
				return fmt.Errorf("set %d %v: %w", i, []float64(s), ErrSigma)
			}
		}
	}

	return nil
}

// Document maps cluster → key (feature or sample) → concept.
type Document map[string]map[string]Concept

// Keys returns the keys of one cluster.
func (d Document) Keys(cluster string) []string {
	keys := make([]string, 0, len(d[cluster]))
	for k := range d[cluster] {
		keys = append(keys, k)
	}

	return keys
}
