package em

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/fuzzifier/matrix"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Merge thresholds relative to the lower of the two peak heights.
const (
	touchHeight  = 0.99
	nestHeight   = 0.05
	nearMeanFrac = 1.0 / 3
	precision    = 3
)

// Refine runs expectation maximization on the finite values starting from
// initial and returns the refined components sorted by mean. A nil opts uses
// DefaultOptions.
//
// Errors:
//   - ErrBadOptions, ErrNoValues, ErrNoComponents, ErrInvalidComponent.
func Refine(values []float64, initial []Component, opts *Options) ([]Component, error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if o.MaxIterations < 0 || o.HistorySize < 0 || math.IsNaN(o.MinShare) || o.MinShare < 0 {
		return nil, ErrBadOptions
	}
	xs := matrix.FiniteValues(values)
	if len(xs) == 0 {
		return nil, ErrNoValues
	}
	if len(initial) == 0 {
		return nil, ErrNoComponents
	}
	for i, c := range initial {
		if math.IsNaN(c.Mean) || math.IsInf(c.Mean, 0) || !(c.Std > 0) || math.IsInf(c.Std, 0) {
			return nil, fmt.Errorf("component %d %+v: %w", i, c, ErrInvalidComponent)
		}
	}

	state := normalize(append([]Component(nil), initial...))
	past := newHistory(o.HistorySize)
	for iter := 0; iter < o.MaxIterations; iter++ {
		next := step(xs, state, o)
		if len(next) == 0 {
			return nil, ErrNoComponents
		}
		if equal(next, state) || past.seen(next) {
			return next, nil
		}
		past.push(state)
		state = next
	}

	return state, nil
}

// step performs one E-step, M-step and optional merge.
func step(xs []float64, comps []Component, o Options) []Component {
	n, k := len(xs), len(comps)
	dists := make([]distuv.Normal, k)
	for j, c := range comps {
		dists[j] = distuv.Normal{Mu: c.Mean, Sigma: c.Std}
	}

	// E-step: densities and arg-max shares.
	dens := make([][]float64, n)
	counts := make([]int, k)
	for i, x := range xs {
		row := make([]float64, k)
		for j := range dists {
			row[j] = dists[j].Prob(x)
		}
		dens[i] = row
		counts[floats.MaxIdx(row)]++
	}
	share := make([]float64, k)
	for j := range share {
		if s := float64(counts[j]) / float64(n); s > o.MinShare {
			share[j] = s
		}
	}
	rowSum := make([]float64, n)
	for i, row := range dens {
		for j := range row {
			row[j] *= share[j]
		}
		rowSum[i] = floats.Sum(row)
	}

	// M-step: responsibility-weighted mean and population std.
	out := make([]Component, 0, k)
	weights := make([]float64, n)
	for j := 0; j < k; j++ {
		if share[j] == 0 {
			continue
		}
		for i := range xs {
			weights[i] = 0
			if rowSum[i] > 0 {
				weights[i] = dens[i][j] / rowSum[i]
			}
		}
		if floats.Sum(weights) == 0 {
			continue
		}
		mean, std := stat.PopMeanStdDev(xs, weights)
		if math.IsNaN(mean) || !(std > 0) {
			continue
		}
		out = append(out, Component{Mean: mean, Std: std})
	}
	sortByMean(out)
	if o.Merge {
		out = mergeOverlapping(out)
	}
	out = normalize(out)

	// rounding can collapse a tiny spread to zero
	kept := out[:0]
	for _, c := range out {
		if c.Std > 0 {
			kept = append(kept, c)
		}
	}

	return kept
}

// mergeOverlapping averages every run of adjacent overlapping components.
func mergeOverlapping(comps []Component) []Component {
	if len(comps) < 2 {
		return comps
	}
	out := make([]Component, 0, len(comps))
	for i := 0; i < len(comps); {
		j := i
		for j+1 < len(comps) && Overlap(comps[j], comps[j+1]) {
			j++
		}
		var m, s float64
		for _, c := range comps[i : j+1] {
			m += c.Mean
			s += c.Std
		}
		cnt := float64(j - i + 1)
		out = append(out, Component{Mean: m / cnt, Std: s / cnt})
		i = j + 1
	}

	return out
}

// Overlap reports whether two neighbouring Gaussians are indistinguishable:
// their curves cross above 99% of the lower peak, a crossing lies within σ/3
// of a mean, or one curve nests inside the other.
func Overlap(a, b Component) bool {
	m1, s1, m2, s2 := a.Mean, a.Std, b.Mean, b.Std
	var lo, hi float64
	if s1 == s2 {
		if m1 == m2 {
			return true
		}
		lo = (m1 + m2) / 2
		hi = lo
	} else {
		v1, v2 := s1*s1, s2*s2
		delta := s1 * s2 * math.Sqrt((m1-m2)*(m1-m2)+2*(v1-v2)*math.Log(s1/s2))
		lo = (m2*v1 - m1*v2 - delta) / (v1 - v2)
		hi = (m2*v1 - m1*v2 + delta) / (v1 - v2)
		if lo > hi {
			lo, hi = hi, lo
		}
	}
	first := distuv.Normal{Mu: m1, Sigma: s1}
	yLo, yHi := first.Prob(lo), first.Prob(hi)
	minPeak := math.Min(first.Prob(m1), distuv.Normal{Mu: m2, Sigma: s2}.Prob(m2))

	neighbouring := math.Max(yLo, yHi) > touchHeight*minPeak ||
		math.Abs(hi-m1) < s1*nearMeanFrac ||
		math.Abs(m2-hi) < s2*nearMeanFrac
	nested := math.Min(yLo, yHi) > nestHeight*minPeak &&
		lo < m1 && m1 < hi && lo < m2 && m2 < hi

	return neighbouring || nested
}

// normalize rounds to 3 decimals and sorts by mean.
func normalize(comps []Component) []Component {
	for i := range comps {
		comps[i].Mean = scalar.RoundEven(comps[i].Mean, precision)
		comps[i].Std = scalar.RoundEven(comps[i].Std, precision)
	}
	sortByMean(comps)

	return comps
}

func sortByMean(comps []Component) {
	sort.SliceStable(comps, func(i, j int) bool {
		if comps[i].Mean != comps[j].Mean {
			return comps[i].Mean < comps[j].Mean
		}
		return comps[i].Std < comps[j].Std
	})
}

func equal(a, b []Component) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// history keeps the last size states for cycle detection.
type history struct {
	size   int
	states [][]Component
}

func newHistory(size int) *history {
	return &history{size: size, states: make([][]Component, 0, size)}
}

// push records state, evicting the oldest one when full.
func (h *history) push(state []Component) {
	if h.size == 0 {
		return
	}
	if len(h.states) == h.size {
		h.states = h.states[1:]
	}
	h.states = append(h.states, state)
}

func (h *history) seen(state []Component) bool {
	for _, s := range h.states {
		if equal(s, state) {
			return true
		}
	}

	return false
}
