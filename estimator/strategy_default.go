package estimator

import (
	"math"

	"github.com/katalvlaran/fuzzifier/concept"
	"github.com/katalvlaran/fuzzifier/density"
	"github.com/katalvlaran/fuzzifier/matrix"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// defaultRow centres the concept on the dominant density mode.
func (e *Estimator) defaultRow(values []float64) (concept.Concept, error) {
	xs := matrix.FiniteValues(values)
	if len(xs) < 2 {
		return nil, errNoData
	}
	mu, sigma := density.EstimateMode(xs, e.opts.BandwidthFactor)

	return e.aroundMode(xs, mu, sigma)
}

// meanRow centres the concept on the mean; used for the whole matrix.
func (e *Estimator) meanRow(values []float64) (concept.Concept, error) {
	xs := matrix.FiniteValues(values)
	if len(xs) < 2 {
		return nil, errNoData
	}
	mu := stat.Mean(xs, nil)

	return e.aroundMode(xs, mu, density.SplitSigma(xs, mu))
}

// aroundMode lays K trapezoids at μ + w·(i ± s)·σ for i = -K, -K+2, ..., K,
// widens the outer plateaus to the data range and puts the Gaussian (μ, σ)
// at index K/2.
func (e *Estimator) aroundMode(xs []float64, mu, sigma float64) (concept.Concept, error) {
	if math.IsNaN(sigma) || sigma == 0 {
		return nil, errNoSpread
	}
	k := e.opts.Sets
	w, s := e.opts.WidthFactor, e.opts.SlopeFactor
	steps := make([]float64, k+1)
	floats.Span(steps, -float64(k), float64(k))
	coords := make([]float64, 0, 2*len(steps))
	for _, i := range steps {
		coords = append(coords, mu+w*(i-s)*sigma, mu+w*(i+s)*sigma)
	}

	out := make(concept.Concept, k)
	for j := range out {
		out[j] = concept.Set(matrix.RoundSlice(append([]float64(nil), coords[2*j:2*j+4]...), 3))
	}
	lo, hi, _ := matrix.FiniteRange(xs)
	// outer plateaus reach past both the data and the neighbouring corner
	left := math.Floor(math.Min(lo, out[0][2])) - 1
	right := math.Ceil(math.Max(hi, out[k-1][1])) + 1
	out[0][0], out[0][1] = left, left
	out[k-1][2], out[k-1][3] = right, right
	out[k/2] = concept.Set{matrix.RoundValue(mu, 3), matrix.RoundValue(sigma, 3)}

	return out, nil
}
