package density

import (
	"math"
	"sort"

	"github.com/katalvlaran/fuzzifier/matrix"
	"gonum.org/v1/gonum/stat"
)

// candidate is a mode or the mean, ordered by value.
type candidate struct {
	Mode
	mean bool
}

// EstimateMode returns the dominant mode μ of values and a spread σ.
//
// Non-finite values are dropped. With fewer than 2 values left the result is
// (mean, NaN), or (0, NaN) without values. A degenerate density gives
// (mean, NaN).
//
// The mean joins the sorted modes as a candidate. If it is the only candidate
// it wins; at either end of the list its neighbour wins. Otherwise the densest
// candidate wins, unless it sits more than one rank from the mean, in which
// case the denser of the mean's two immediate neighbours wins (the right one
// on ties).
//
// σ = sqrt(σL² + σR²), with σL and σR the sample standard deviations of the
// values strictly below and above μ (0 when fewer than 2).
func EstimateMode(values []float64, bandwidthFactor float64) (mu, sigma float64) {
	xs := matrix.FiniteValues(values)
	switch len(xs) {
	case 0:
		return 0, math.NaN()
	case 1:
		return xs[0], math.NaN()
	}
	mean := stat.Mean(xs, nil)
	kde, err := NewKDE(xs, bandwidthFactor)
	if err != nil {
		return mean, math.NaN()
	}

	modes := kde.Maxima()
	cands := make([]candidate, 0, len(modes)+1)
	for _, m := range modes {
		cands = append(cands, candidate{Mode: m})
	}
	cands = append(cands, candidate{Mode: Mode{Value: mean, Density: kde.Density(mean)}, mean: true})
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].Value < cands[j].Value })

	mu = cands[pickMode(cands)].Value

	return mu, SplitSigma(xs, mu)
}

// pickMode applies the mean reconciliation rule and returns the winning index.
func pickMode(cands []candidate) int {
	meanIdx := 0
	for i, c := range cands {
		if c.mean {
			meanIdx = i
			break
		}
	}
	last := len(cands) - 1
	switch {
	case last == 0:
		return 0
	case meanIdx == 0:
		return 1
	case meanIdx == last:
		return last - 1
	}

	best := 0
	for i, c := range cands {
		if c.Density > cands[best].Density {
			best = i
		}
	}
	if best-meanIdx > 1 || meanIdx-best > 1 {
		if cands[meanIdx+1].Density >= cands[meanIdx-1].Density {
			return meanIdx + 1
		}
		return meanIdx - 1
	}

	return best
}

// SplitSigma combines the sample standard deviations of the values strictly
// below and strictly above mu.
func SplitSigma(values []float64, mu float64) float64 {
	below := make([]float64, 0, len(values))
	above := make([]float64, 0, len(values))
	for _, v := range values {
		switch {
		case v < mu:
			below = append(below, v)
		case v > mu:
			above = append(above, v)
		}
	}

	return math.Hypot(sampleStd(below), sampleStd(above))
}

func sampleStd(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}

	return stat.StdDev(xs, nil)
}
