package estimator

import (
	"math"

	"github.com/katalvlaran/fuzzifier/concept"
	"github.com/katalvlaran/fuzzifier/density"
	"github.com/katalvlaran/fuzzifier/em"
	"github.com/katalvlaran/fuzzifier/matrix"
	"gonum.org/v1/gonum/stat"
)

// modesRow places one Gaussian per density mode after EM refinement. The
// number of sets follows the data; Options.Sets is not used.
func (e *Estimator) modesRow(values []float64) (concept.Concept, error) {
	xs := matrix.FiniteValues(values)
	kde, err := density.NewKDE(xs, e.opts.BandwidthFactor)
	if err != nil {
		return nil, err
	}
	lo, hi, _ := matrix.FiniteRange(xs)
	valueRange := [2]float64{math.Floor(lo) - 1, math.Ceil(hi) + 1}

	modes := kde.NormalizedMaxima(ModeThreshold)
	means := make([]float64, 0, len(modes)+1)
	for _, m := range modes {
		means = append(means, m.Value)
	}
	if len(means) == 0 {
		means = append(means, stat.Mean(xs, nil))
	}
	sigma := concept.EstimateSigma(means, valueRange)
	initial := make([]em.Component, 0, len(means))
	for i, mu := range means {
		if sigma[i] > 0 {
			initial = append(initial, em.Component{Mean: mu, Std: sigma[i]})
		}
	}

	refined, err := em.Refine(xs, initial, &e.emOpts)
	if err != nil {
		return nil, err
	}
	centers := make([]float64, len(refined))
	for i, c := range refined {
		centers[i] = c.Mean
	}

	return concept.GaussianFromMeans(centers, valueRange), nil
}
