package density

import (
	"errors"
	"math"
	"sort"

	"github.com/katalvlaran/fuzzifier/matrix"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// scottExponent is the exponent of n in Scott's bandwidth rule for one dimension.
const scottExponent = -0.2

var (
	// ErrSingular indicates a degenerate sample (fewer than 2 finite values or zero variance).
	ErrSingular = errors.New("density: singular sample covariance")

	// ErrBandwidth indicates a non-positive or non-finite bandwidth factor.
	ErrBandwidth = errors.New("density: bandwidth factor must be positive and finite")
)

// KDE is a Gaussian kernel density estimate over finite sample points.
type KDE struct {
	points  []float64
	kernels []distuv.Normal
	h       float64
}

// Mode is a candidate mode and the density at it.
type Mode struct {
	Value   float64
	Density float64
}

// NewKDE fits a kernel density estimate to the finite values of xs.
//
// Errors:
//   - ErrBandwidth for an invalid factor.
//   - ErrSingular for fewer than 2 finite values or zero variance.
func NewKDE(xs []float64, factor float64) (*KDE, error) {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return nil, ErrBandwidth
	}
	pts := matrix.FiniteValues(xs)
	if len(pts) < 2 {
		return nil, ErrSingular
	}
	sd := stat.StdDev(pts, nil)
	if !(sd > 0) || math.IsInf(sd, 0) {
		return nil, ErrSingular
	}
	h := factor * math.Pow(float64(len(pts)), scottExponent) * sd
	kernels := make([]distuv.Normal, len(pts))
	for i, p := range pts {
		kernels[i] = distuv.Normal{Mu: p, Sigma: h}
	}

	return &KDE{points: pts, kernels: kernels, h: h}, nil
}

// Bandwidth returns the kernel standard deviation h.
func (k *KDE) Bandwidth() float64 { return k.h }

// Density evaluates the estimate at x.
func (k *KDE) Density(x float64) float64 {
	sum := 0.0
	for _, n := range k.kernels {
		sum += n.Prob(x)
	}

	return sum / float64(len(k.kernels))
}

// Evaluate returns the density at every x.
func (k *KDE) Evaluate(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = k.Density(x)
	}

	return out
}

// Maxima returns the strict relative maxima of the density sampled at the
// distinct sample points, in ascending order of value. The first and last
// points are never maxima.
func (k *KDE) Maxima() []Mode {
	uniq := distinctSorted(k.points)
	idx := LocalMaxima(k.Evaluate(uniq))
	out := make([]Mode, len(idx))
	for n, i := range idx {
		out[n] = Mode{Value: uniq[i], Density: k.Density(uniq[i])}
	}

	return out
}

// NormalizedMaxima returns the maxima with densities min-max normalized over
// all sample points, keeping those at or above minDensity.
func (k *KDE) NormalizedMaxima(minDensity float64) []Mode {
	ys := k.Evaluate(k.points)
	lo, hi, _ := matrix.FiniteRange(ys)
	out := make([]Mode, 0)
	for _, m := range k.Maxima() {
		d := (m.Density - lo) / (hi - lo)
		if d >= minDensity {
			out = append(out, Mode{Value: m.Value, Density: d})
		}
	}

	return out
}

// LocalMaxima returns the indices i (0 < i < len(ys)-1) with ys[i] strictly
// greater than both neighbours.
func LocalMaxima(ys []float64) []int {
	out := make([]int, 0)
	for i := 1; i+1 < len(ys); i++ {
		if ys[i] > ys[i-1] && ys[i] > ys[i+1] {
			out = append(out, i)
		}
	}

	return out
}

func distinctSorted(xs []float64) []float64 {
	s := append([]float64(nil), xs...)
	sort.Float64s(s)
	out := make([]float64, 0, len(s))
	for i, v := range s {
		if i == 0 || v != s[i-1] {
			out = append(out, v)
		}
	}

	return out
}
