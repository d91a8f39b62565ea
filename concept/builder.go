package concept

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// precision is the number of decimals concept parameters are rounded to.
const precision = 3

var (
	// fwhmFactor converts a half width at half maximum into σ.
	fwhmFactor = math.Sqrt(2 * math.Ln2)
	// tailFactor converts a distance into the σ that leaves 0.1% membership there.
	tailFactor = math.Sqrt(6 * math.Ln10)
)

func round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}

	return scalar.RoundEven(v, precision)
}

// BuildTrapezoidal builds K = len(cutoffs)+1 trapezoids. Each interior cutoff
// is the middle of a slope of the given half width, shared by the two sets it
// separates. The outer plateaus are clamped to valueRange.
//
// Errors:
//   - ErrSlopeCount when len(slopes) != len(cutoffs).
func BuildTrapezoidal(cutoffs, slopes []float64, valueRange [2]float64) (Concept, error) {
	if len(slopes) != len(cutoffs) {
		return nil, fmt.Errorf("%d cutoffs, %d slopes: %w", len(cutoffs), len(slopes), ErrSlopeCount)
	}
	center := make([]float64, 0, len(cutoffs)+2)
	center = append(center, math.Inf(-1))
	center = append(center, cutoffs...)
	center = append(center, math.Inf(1))
	slope := make([]float64, 0, len(slopes)+2)
	slope = append(slope, 0)
	slope = append(slope, slopes...)
	slope = append(slope, 0)

	out := make(Concept, len(cutoffs)+1)
	for i := range out {
		out[i] = Set{
			round(center[i] - slope[i]),
			round(center[i] + slope[i]),
			round(center[i+1] - slope[i+1]),
			round(center[i+1] + slope[i+1]),
		}
	}
	out[0][0], out[0][1] = valueRange[0], valueRange[0]
	last := out[len(out)-1]
	last[2], last[3] = valueRange[1], valueRange[1]

	return out, nil
}

// BuildGaussian builds K = len(cutoffs)+1 Gaussian sets centred between
// consecutive cutoffs of [min] + cutoffs + [max], with σ from EstimateSigma.
func BuildGaussian(cutoffs []float64, valueRange [2]float64) Concept {
	bounds := make([]float64, 0, len(cutoffs)+2)
	bounds = append(bounds, valueRange[0])
	bounds = append(bounds, cutoffs...)
	bounds = append(bounds, valueRange[1])

	means := make([]float64, len(bounds)-1)
	for i := range means {
		means[i] = bounds[i+1] - (bounds[i+1]-bounds[i])/2
	}

	return GaussianFromMeans(means, valueRange)
}

// GaussianFromMeans builds one Gaussian set per mean with σ from EstimateSigma.
func GaussianFromMeans(means []float64, valueRange [2]float64) Concept {
	sigma := EstimateSigma(means, valueRange)
	out := make(Concept, len(means))
	for i, mu := range means {
		out[i] = Set{round(mu), sigma[i]}
	}

	return out
}

// EstimateSigma returns one σ per mean so that neighbouring Gaussians cross at
// half maximum: σ_i is the smaller distance to the adjacent centre divided by
// sqrt(2 ln 2), where the value range bounds act as outer centres. With more
// than two means σ is also capped so that the second-nearest centre sees at
// most 0.1% membership. Values are rounded to 3 decimals.
func EstimateSigma(means []float64, valueRange [2]float64) []float64 {
	center := make([]float64, 0, len(means)+2)
	center = append(center, valueRange[0])
	center = append(center, means...)
	center = append(center, valueRange[1])

	out := make([]float64, len(means))
	for i := range means {
		sigma := math.Min(center[i+2]-center[i+1], center[i+1]-center[i]) / fwhmFactor
		if len(means) > 2 {
			switch {
			case i < 2:
				sigma = math.Min(sigma, (center[i+3]-center[i+1])/tailFactor)
			case i+4 > len(center):
				sigma = math.Min(sigma, (center[i+1]-center[i-1])/tailFactor)
			default:
				sigma = math.Min(sigma, (center[i+3]-center[i+1])/tailFactor)
				sigma = math.Min(sigma, (center[i+1]-center[i-1])/tailFactor)
			}
		}
		out[i] = round(sigma)
	}

	return out
}
