package em

import "errors"

// Component is a Gaussian with mean Mean and standard deviation Std.
type Component struct {
	Mean float64
	Std  float64
}

// Options configures Refine.
//
// Fields:
//   - MaxIterations: upper bound on EM iterations (default 20).
//   - Merge: merge indistinguishable neighbours after each M-step (default true).
//   - HistorySize: number of past states checked for cycles (default 5).
//   - MinShare: components owning this share of values or less are dropped (default 0.01).
type Options struct {
	MaxIterations int
	Merge         bool
	HistorySize   int
	MinShare      float64
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		MaxIterations: 20,
		Merge:         true,
		HistorySize:   5,
		MinShare:      0.01,
	}
}

var (
	// ErrNoComponents indicates an empty initial set or that every component was dropped.
	ErrNoComponents = errors.New("em: no components left")

	// ErrInvalidComponent indicates an initial component with non-finite mean or σ ≤ 0.
	ErrInvalidComponent = errors.New("em: component needs a finite mean and a positive std")

	// ErrNoValues indicates that no finite values were given.
	ErrNoValues = errors.New("em: no finite values")

	// ErrBadOptions indicates nonsensical options (negative iterations or history).
	ErrBadOptions = errors.New("em: invalid options")
)
