package fuzzify

import (
	"fmt"
	"math"

	"github.com/katalvlaran/fuzzifier/concept"
	"github.com/katalvlaran/fuzzifier/matrix"
)

// Fuzzify computes the membership of every value in every set of c.
//
// Inputs are not modified. NaN values have zero membership in the real sets
// and end up in the last set unless a NaN indicator claims them.
//
// Errors:
//   - ErrEmptyInput, ErrEmptyConcept.
//   - concept.ErrArity for a set of neither 2 nor 4 parameters.
func Fuzzify(values []float64, c concept.Concept, opts *Options) (*Memberships, error) {
	if len(values) == 0 {
		return nil, ErrEmptyInput
	}
	if len(c) == 0 {
		return nil, ErrEmptyConcept
	}
	for i, s := range c {
		if _, err := s.Shape(); err != nil {
			return nil, fmt.Errorf("fuzzify: set %d: %w", i+1, err)
		}
	}

	o := resolve(opts)
	labels := o.indicators()
	nInd, k := len(labels), len(c)
	out, err := matrix.NewDense(len(values), nInd+k)
	if err != nil {
		return nil, fmt.Errorf("fuzzify: %w", err)
	}
	res := &Memberships{Columns: ColumnNames(k, &o), Values: out}
	data := make([]float64, nInd+k)
	for i, x := range values {
		clear(data)
		labelled := false
		for j, v := range labels {
			if matches(x, v) {
				data[j] = 1
				labelled = true
			}
		}
		if labelled {
			res.Indicated++
		} else if !math.IsNaN(x) {
			for j, s := range c {
				// undefined (NaN) parameters yield no membership
				if v := membership(c, j, s, x); v > 0 {
					data[nInd+j] = v
				}
			}
		}
		var total float64
		for _, v := range data {
			total += v
		}
		if total == 0 {
			data[nInd+k-1] = 1
			res.Fallbacks++
		}
		if err = out.SetRow(i, data); err != nil {
			return nil, fmt.Errorf("fuzzify: %w", err)
		}
	}

	return res, nil
}

// membership evaluates set idx of c at a non-NaN x.
func membership(c concept.Concept, idx int, s concept.Set, x float64) float64 {
	first, last := idx == 0, idx == len(c)-1
	if len(s) == concept.GaussianArity {
		return gaussian(s[0], s[1], x, first, last)
	}
	a, b, cc, d := s[0], s[1], s[2], s[3]
	if a == b && b == cc && cc == d {
		return 0
	}
	switch {
	case first:
		if cc == d {
			return step(x < cc)
		}
		return clip01((d - x) / (d - cc))
	case last:
		if a == b {
			if head := c[0]; len(head) == concept.TrapezoidArity && head[2] == a {
				return 0
			}
			return step(x > b)
		}
		return clip01((a - x) / (a - b))
	default:
		return trapezoid(a, b, cc, d, x)
	}
}

func gaussian(mu, sigma, x float64, first, last bool) float64 {
	// σ ≤ 0 marks an undefined set, like a trapezoid with equal corners.
	if !(sigma > 0) {
		return 0
	}
	if (first && x <= mu) || (last && x >= mu) {
		return 1
	}
	v := math.Exp(-(x - mu) * (x - mu) / (2 * sigma * sigma))
	if v < snapBelow {
		return 0
	}

	return v
}

// trapezoid is the interior set: left ramp, plateau, right ramp.
func trapezoid(a, b, c, d, x float64) float64 {
	var v float64
	if a != b && x < b {
		v += math.Max((a-x)/(a-b), 0)
	}
	if x >= b && x <= c {
		v++
	}
	if c != d && x > c {
		v += math.Max((d-x)/(d-c), 0)
	}

	return v
}

func clip01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}

func step(ok bool) float64 {
	if ok {
		return 1
	}

	return 0
}
