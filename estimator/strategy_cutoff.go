package estimator

import (
	"fmt"
	"math"

	"github.com/katalvlaran/fuzzifier/concept"
	"github.com/katalvlaran/fuzzifier/cutoff"
	"github.com/katalvlaran/fuzzifier/logging"
	"github.com/katalvlaran/fuzzifier/matrix"
	"gonum.org/v1/gonum/floats"
)

// lastTick is the index of the last of the 1001 ticks.
const lastTick = cutoff.GridSize - 1

// tickPrecision is the number of decimals ticks are rounded to.
const tickPrecision = 3

// prepareCutoff computes the concept template on the tick axis. Set
// parameters are tick indices that every row maps onto its own ticks.
func (e *Estimator) prepareCutoff() error {
	k := e.opts.Sets
	percents := e.opts.Percents
	if len(percents) != k {
		if len(percents) > 0 {
			e.log.Warn("proportion count differs from fuzzy set count, using equal proportions",
				logging.Int("proportions", len(percents)), logging.Int("sets", k))
		}
		percents = equalPercents(k)
	}
	cuts, err := cutoff.EstimateRow(tickAxis(), percents)
	if err != nil {
		return fmt.Errorf("estimator: %w", err)
	}
	interior := matrix.RoundSlice(append([]float64(nil), cuts[1:k]...), 0)
	e.tickCuts = make([]int, len(interior))
	for i, c := range interior {
		e.tickCuts[i] = clampTick(c)
	}

	if e.opts.CutoffMethod == Proportion {
		e.levels = make([]float64, cutoff.GridSize)
		floats.Span(e.levels, 0, 1)
	}
	if e.opts.Shape == concept.Gaussian {
		return nil
	}

	slopes := e.opts.Slopes
	if len(slopes) != k-1 {
		if len(slopes) > 0 {
			e.log.Warn("slope count differs from cutoff count, using equal slopes",
				logging.Int("slopes", len(slopes)), logging.Int("cutoffs", k-1))
		}
		gap := math.Inf(1)
		for i := 1; i < len(cuts); i++ {
			gap = math.Min(gap, cuts[i]-cuts[i-1])
		}
		slopes = make([]float64, k-1)
		for i := range slopes {
			slopes[i] = math.Round(gap / 4)
		}
	} else {
		ticks := make([]float64, len(slopes))
		for i, s := range slopes {
			if !(s >= 0) || math.IsInf(s, 0) {
				return fmt.Errorf("slope %v: %w", s, ErrParamValue)
			}
			ticks[i] = math.Round(lastTick * s)
		}
		slopes = ticks
	}
	e.tickConcept, err = concept.BuildTrapezoidal(interior, slopes, [2]float64{0, lastTick})
	if err != nil {
		return fmt.Errorf("estimator: %w", err)
	}

	return nil
}

func clampTick(v float64) int {
	i := int(math.Round(v))
	if i < 0 {
		return 0
	}
	if i > lastTick {
		return lastTick
	}

	return i
}

// cutoffRow maps the template onto each row's ticks. Rows without finite
// values fall back to the global range under the width method.
func (e *Estimator) cutoffRow(globalLo, globalHi float64, hasGlobal bool) rowEstimator {
	return func(values []float64) (concept.Concept, error) {
		var ticks []float64
		if e.opts.CutoffMethod == Proportion {
			fin := matrix.FiniteValues(values)
			if len(fin) == 0 {
				return nil, errNoData
			}
			q, err := matrix.Quantiles(fin, e.levels)
			if err != nil {
				return nil, err
			}
			ticks = matrix.RoundSlice(q, tickPrecision)
			ticks[0] = math.Floor(ticks[0]) - 1
			// pad the top tick like the bottom one so the last set spans past max
			ticks[lastTick] = math.Ceil(ticks[lastTick]) + 1
		} else {
			lo, hi, ok := matrix.FiniteRange(values)
			switch {
			case ok:
				lo, hi = math.Floor(lo)-1, math.Ceil(hi)+1
			case hasGlobal:
				lo, hi = globalLo, globalHi
			default:
				return nil, errNoData
			}
			ticks = make([]float64, cutoff.GridSize)
			floats.Span(ticks, lo, hi)
			ticks = matrix.RoundSlice(ticks, tickPrecision)
		}

		if e.opts.Shape == concept.Gaussian {
			cuts := make([]float64, len(e.tickCuts))
			for i, idx := range e.tickCuts {
				cuts[i] = ticks[idx]
			}
			return concept.BuildGaussian(cuts, [2]float64{ticks[0], ticks[lastTick]}), nil
		}
		out := e.tickConcept.Clone()
		for _, s := range out {
			for j, idx := range s {
				s[j] = ticks[clampTick(idx)]
			}
		}

		return out, nil
	}
}
