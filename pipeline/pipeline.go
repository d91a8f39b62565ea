package pipeline

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/fuzzifier/config"
	"github.com/katalvlaran/fuzzifier/estimator"
	"github.com/katalvlaran/fuzzifier/fuzzify"
	"github.com/katalvlaran/fuzzifier/logging"
	"github.com/katalvlaran/fuzzifier/matrix"
	"github.com/katalvlaran/fuzzifier/metrics"
)

// Output names of the noise indicator columns.
const (
	MinNoise = "MIN-NOISE"
	MaxNoise = "MAX-NOISE"
)

var (
	// ErrNilConfig indicates New was called without a configuration.
	ErrNilConfig = errors.New("pipeline: nil config")

	// ErrNilTable indicates a nil value table.
	ErrNilTable = errors.New("pipeline: nil table")

	// ErrConceptScope indicates concept keys that match neither the features
	// nor the samples of the table.
	ErrConceptScope = errors.New("pipeline: concept keys match neither features nor samples")

	// ErrClusters indicates a multi-cluster document without a sample clustering.
	ErrClusters = errors.New("pipeline: clustering required for a multi-cluster document")

	// ErrEmptyDocument indicates a concept document without clusters.
	ErrEmptyDocument = errors.New("pipeline: empty concept document")
)

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. Panics on nil.
func WithLogger(l logging.Logger) Option {
	if l == nil {
		panic("pipeline: WithLogger: nil logger")
	}

	return func(p *Pipeline) { p.log = l }
}

// WithMetrics sets the metrics recorder; nil disables recording.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// Pipeline holds the validated configuration of both stages.
type Pipeline struct {
	cfg     *config.Config
	estOpts estimator.Options
	labels  []float64
	left    float64
	right   float64
	renames map[string]string
	log     logging.Logger
	metrics *metrics.Metrics
}

// New validates cfg and resolves its derived values.
func New(cfg *config.Config, options ...Option) (*Pipeline, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Pipeline{cfg: cfg, log: logging.NewNop(), renames: cfg.Renames()}
	for _, o := range options {
		o(p)
	}
	p.log = p.log.Named("pipeline")

	var err error
	if p.estOpts, err = cfg.EstimatorOptions(); err != nil {
		return nil, err
	}
	if p.labels, err = cfg.Labels(); err != nil {
		return nil, err
	}
	if p.left, p.right, err = cfg.NoiseCutoffs(); err != nil {
		return nil, err
	}

	return p, nil
}

// Labels returns the configured label values.
func (p *Pipeline) Labels() []float64 {
	return append([]float64(nil), p.labels...)
}

// PrepareConcepts returns a copy of t with label values, infinities and noise
// (values at or beyond a noise cutoff) replaced by NaN.
func (p *Pipeline) PrepareConcepts(t *matrix.Table) (*matrix.Table, error) {
	if t == nil || t.Data == nil {
		return nil, ErrNilTable
	}
	out, err := t.ReplaceValues(p.labels, math.NaN())
	if err != nil {
		return nil, fmt.Errorf("pipeline: labels: %w", err)
	}
	if out, err = out.MaskBeyond(p.left, p.right, math.NaN(), math.NaN(), nil); err != nil {
		return nil, fmt.Errorf("pipeline: noise: %w", err)
	}
	finite, err := matrix.MaskNonFinite(out.Data)
	if err != nil {
		return nil, fmt.Errorf("pipeline: infinities: %w", err)
	}

	return matrix.WrapDense(finite, out.RowNames, out.ColNames)
}

// Noise holds the values that stand in for masked noise. A NaN side is disabled.
type Noise struct {
	Min float64
	Max float64
}

// PrepareFuzzify returns a copy of t where non-label values at or below the
// left noise cutoff become floor(min)-1 and values at or above the right
// cutoff become ceil(max)+1, min and max taken over the finite cells of t.
func (p *Pipeline) PrepareFuzzify(t *matrix.Table) (*matrix.Table, Noise, error) {
	noise := Noise{Min: math.NaN(), Max: math.NaN()}
	if t == nil || t.Data == nil {
		return nil, noise, ErrNilTable
	}
	lo, hi, ok := t.FiniteRange()
	if ok && !math.IsNaN(p.left) {
		noise.Min = math.Floor(lo) - 1
	}
	if ok && !math.IsNaN(p.right) {
		noise.Max = math.Ceil(hi) + 1
	}
	left, right := p.left, p.right
	if math.IsNaN(noise.Min) {
		left = math.NaN()
	}
	if math.IsNaN(noise.Max) {
		right = math.NaN()
	}
	out, err := t.MaskBeyond(left, right, noise.Min, noise.Max, p.labels)
	if err != nil {
		return nil, noise, fmt.Errorf("pipeline: noise: %w", err)
	}

	return out, noise, nil
}

// indicators returns the fuzzify options and the rename table for one run.
func (p *Pipeline) indicators(noise Noise) (fuzzify.Options, map[string]string) {
	labels := append([]float64(nil), p.labels...)
	renames := make(map[string]string, len(p.renames)+2)
	for k, v := range p.renames {
		renames[k] = v
	}
	if !math.IsNaN(noise.Min) {
		labels = append(labels, noise.Min)
		renames[strings.ToLower(fuzzify.IndicatorName(fuzzify.DefaultPrefix, noise.Min))] = MinNoise
	}
	if !math.IsNaN(noise.Max) {
		labels = append(labels, noise.Max)
		renames[strings.ToLower(fuzzify.IndicatorName(fuzzify.DefaultPrefix, noise.Max))] = MaxNoise
	}
	opts := fuzzify.DefaultOptions()
	opts.AddIndicator = len(labels) > 0
	opts.IndicateValues = labels

	return opts, renames
}

func rename(renames map[string]string, name string) string {
	if r, ok := renames[strings.ToLower(name)]; ok {
		return r
	}

	return name
}
