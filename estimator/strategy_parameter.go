package estimator

import (
	"fmt"
	"math"

	"github.com/katalvlaran/fuzzifier/concept"
	"github.com/katalvlaran/fuzzifier/matrix"
)

// fwhm converts a full width at half maximum into σ.
var fwhm = 2 * math.Sqrt(2*math.Ln2)

// prepareParameter checks the parameter rows against the function type.
func (e *Estimator) prepareParameter() error {
	p := e.opts.Params
	if len(p) == 0 {
		return fmt.Errorf("no parameter rows: %w", ErrParamValue)
	}
	arity := concept.TrapezoidArity
	if e.opts.Shape == concept.Gaussian {
		arity = concept.GaussianArity
	}
	for i, row := range p {
		if len(row) != arity {
			return fmt.Errorf("row %d %v for %v: %w", i, row, e.opts.Shape, ErrParamArity)
		}
	}

	if e.opts.ParamMethod == Fix {
		if err := toConcept(p).Validate(); err != nil {
			return fmt.Errorf("estimator: %w", err)
		}
		return nil
	}
	for i, row := range p {
		levels := row
		if e.opts.Shape == concept.Gaussian {
			levels = row[:1]
			if missingSigma(row[1]) && len(p) == 1 {
				return fmt.Errorf("row %d: a single gaussian needs a sigma: %w", i, ErrParamValue)
			}
		}
		for _, q := range levels {
			if !(q >= 0 && q <= 1) {
				return fmt.Errorf("row %d: percentile %v outside [0,1]: %w", i, q, ErrParamValue)
			}
		}
	}

	return nil
}

func missingSigma(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

func toConcept(p [][]float64) concept.Concept {
	out := make(concept.Concept, len(p))
	for i, row := range p {
		out[i] = append(concept.Set(nil), row...)
	}

	return out
}

// zeros is the concept of a row without data: every set degenerate.
func zeros(k, arity int) concept.Concept {
	out := make(concept.Concept, k)
	for i := range out {
		out[i] = make(concept.Set, arity)
	}

	return out
}

func (e *Estimator) parameterRow(values []float64) (concept.Concept, error) {
	p := e.opts.Params
	k := len(p)
	lo, hi, ok := matrix.FiniteRange(values)
	gauss := e.opts.Shape == concept.Gaussian

	switch {
	case e.opts.ParamMethod == Fix && gauss:
		return toConcept(p), nil

	case e.opts.ParamMethod == Fix:
		out := toConcept(p)
		left, right := p[0][2], p[k-1][1]
		if ok {
			left = math.Min(left, math.Floor(lo)-1)
			right = math.Max(right, math.Ceil(hi)+1)
		}
		out[0][0], out[0][1] = left, left
		out[k-1][2], out[k-1][3] = right, right
		return out, nil

	case !ok && gauss:
		return zeros(k, concept.GaussianArity), nil

	case !ok:
		return zeros(k, concept.TrapezoidArity), nil

	case gauss:
		levels := make([]float64, k)
		for i, row := range p {
			levels[i] = row[0]
		}
		centers, err := matrix.Quantiles(values, levels)
		if err != nil {
			return nil, err
		}
		matrix.RoundSlice(centers, 3)
		out := make(concept.Concept, k)
		for i := range out {
			sigma := p[i][1]
			if missingSigma(sigma) {
				if i == 0 {
					sigma = (centers[1] - centers[0]) / fwhm
				} else {
					sigma = (centers[i] - centers[i-1]) / fwhm
				}
			}
			out[i] = concept.Set{centers[i], matrix.RoundValue(sigma, 3)}
		}
		return out, nil

	default:
		levels := make([]float64, 0, k*concept.TrapezoidArity)
		for _, row := range p {
			levels = append(levels, row...)
		}
		q, err := matrix.Quantiles(values, levels)
		if err != nil {
			return nil, err
		}
		matrix.RoundSlice(q, 3)
		out := make(concept.Concept, k)
		for i := range out {
			out[i] = concept.Set(q[i*concept.TrapezoidArity : (i+1)*concept.TrapezoidArity])
		}
		left, right := math.Floor(lo)-1, math.Ceil(hi)+1
		out[0][0], out[0][1] = left, left
		out[k-1][2], out[k-1][3] = right, right
		return out, nil
	}
}
