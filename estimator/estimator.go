package estimator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/katalvlaran/fuzzifier/concept"
	"github.com/katalvlaran/fuzzifier/cutoff"
	"github.com/katalvlaran/fuzzifier/em"
	"github.com/katalvlaran/fuzzifier/logging"
	"github.com/katalvlaran/fuzzifier/matrix"
	"github.com/katalvlaran/fuzzifier/metrics"
	"golang.org/x/sync/errgroup"
)

// Reasons a row is skipped.
var (
	errNoData   = errors.New("estimator: no finite values")
	errNoSpread = errors.New("estimator: zero or undefined spread")
)

// Option customizes an Estimator.
type Option func(*Estimator)

// WithLogger sets the logger. Panics on nil.
func WithLogger(l logging.Logger) Option {
	if l == nil {
		panic("estimator: WithLogger: nil logger")
	}

	return func(e *Estimator) { e.log = l }
}

// WithMetrics sets the metrics recorder; nil disables recording.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Estimator) { e.metrics = m }
}

// rowEstimator turns one row of values into a concept.
type rowEstimator func(values []float64) (concept.Concept, error)

// Estimator derives concepts according to its Options. It is safe for
// concurrent use.
type Estimator struct {
	opts    Options
	log     logging.Logger
	metrics *metrics.Metrics

	// cutoff strategy templates on the 0..1000 tick axis
	tickCuts    []int
	tickConcept concept.Concept
	levels      []float64

	emOpts em.Options
}

// New validates opts and prepares the strategy.
//
// Errors:
//   - ErrUnknown* for enum values out of range.
//   - ErrSets, ErrFactor for invalid counts and factors.
//   - cutoff.ErrPercentSum and friends for invalid proportions.
//   - ErrParamArity, ErrParamValue for unusable parameter rows.
func New(opts Options, options ...Option) (*Estimator, error) {
	e := &Estimator{opts: opts, log: logging.NewNop()}
	for _, o := range options {
		o(e)
	}
	e.log = e.log.Named("estimator")
	if err := e.validate(); err != nil {
		return nil, err
	}

	var err error
	switch opts.Strategy {
	case Cutoff:
		err = e.prepareCutoff()
	case Parameter:
		err = e.prepareParameter()
	case Modes:
		e.emOpts = em.DefaultOptions()
		e.emOpts.MaxIterations = opts.MaxIterations
	}
	if err != nil {
		return nil, err
	}

	return e, nil
}

func (e *Estimator) validate() error {
	o := e.opts
	switch {
	case o.Scope < Feature || o.Scope > Matrix:
		return fmt.Errorf("%v: %w", o.Scope, ErrUnknownScope)
	case o.Strategy < Cutoff || o.Strategy > Modes:
		return fmt.Errorf("%v: %w", o.Strategy, ErrUnknownStrategy)
	case o.CutoffMethod < Proportion || o.CutoffMethod > Width:
		return fmt.Errorf("%v: %w", o.CutoffMethod, ErrUnknownCutoffMethod)
	case o.ParamMethod < Percentile || o.ParamMethod > Fix:
		return fmt.Errorf("%v: %w", o.ParamMethod, ErrUnknownParamMethod)
	case o.Shape != concept.Trapezoidal && o.Shape != concept.Gaussian:
		return fmt.Errorf("%v: %w", o.Shape, concept.ErrUnknownShape)
	}
	if (o.Strategy == Cutoff || o.Strategy == Default) && o.Sets < 1 {
		return fmt.Errorf("%d sets: %w", o.Sets, ErrSets)
	}
	if o.Strategy == Default {
		for _, f := range []float64{o.WidthFactor, o.SlopeFactor} {
			if !positive(f) {
				return fmt.Errorf("factor %v: %w", f, ErrFactor)
			}
		}
	}
	if (o.Strategy == Default || o.Strategy == Modes) && !positive(o.BandwidthFactor) {
		return fmt.Errorf("bandwidth factor %v: %w", o.BandwidthFactor, ErrFactor)
	}
	if o.Strategy == Modes && o.MaxIterations < 0 {
		return fmt.Errorf("max iterations %d: %w", o.MaxIterations, em.ErrBadOptions)
	}

	return nil
}

func positive(f float64) bool {
	return f > 0 && !math.IsInf(f, 0)
}

// Options returns a copy of the effective options.
func (e *Estimator) Options() Options {
	return e.opts
}

func (e *Estimator) workers() int {
	if e.opts.Workers > 0 {
		return e.opts.Workers
	}

	return runtime.GOMAXPROCS(0)
}

// Estimate returns one concept per key of the scope: feature names, sample
// names, or in Matrix scope the shared concept under every feature (every
// sample for the default strategy). Rows that cannot be estimated are absent
// from the result. t is not modified.
func (e *Estimator) Estimate(ctx context.Context, t *matrix.Table) (map[string]concept.Concept, error) {
	if t == nil || t.Data == nil {
		return nil, ErrNilTable
	}
	strategy := e.opts.Strategy.String()
	defer e.metrics.ObserveEstimation(strategy, time.Now())

	var work *matrix.Table
	switch e.opts.Scope {
	case Sample:
		work = t.Transpose()
	case Matrix:
		work = t.Melt(MatrixKey)
	default:
		work = t
	}
	rows := make([][]float64, work.Rows())
	for i := range rows {
		row, err := work.Data.Row(i)
		if err != nil {
			return nil, fmt.Errorf("estimator: %w", err)
		}
		rows[i] = row
	}

	fn := e.rowEstimator(work.Data)
	results := make([]concept.Concept, len(rows))
	var skipped atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers())
	for i := range rows {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c, err := fn(rows[i])
			if err != nil {
				skipped.Add(1)
				e.log.Debug("concept skipped",
					logging.String(logging.KeyKey, work.RowNames[i]),
					logging.String(logging.KeyStrategy, strategy),
					logging.Err(err))
				e.metrics.Concept(strategy, metrics.OutcomeSkipped)
				return nil
			}
			results[i] = c
			e.metrics.Concept(strategy, metrics.OutcomeEstimated)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("estimator: %w", err)
	}

	out := make(map[string]concept.Concept, len(rows))
	for i, c := range results {
		if c != nil {
			out[work.RowNames[i]] = c
		}
	}
	if e.opts.Scope == Matrix {
		out = e.share(out[MatrixKey], t)
	}
	e.log.Info("concepts estimated",
		logging.String(logging.KeyStrategy, strategy),
		logging.String(logging.KeyScope, e.opts.Scope.String()),
		logging.Int("keys", len(out)),
		logging.Int("skipped", int(skipped.Load())))

	return out, nil
}

// share replicates the matrix-wide concept to every key of t.
func (e *Estimator) share(c concept.Concept, t *matrix.Table) map[string]concept.Concept {
	if c == nil {
		return map[string]concept.Concept{}
	}
	keys := t.RowNames
	if e.opts.Strategy == Default {
		keys = t.ColNames
	}
	out := make(map[string]concept.Concept, len(keys))
	for _, k := range keys {
		out[k] = c.Clone()
	}

	return out
}

func (e *Estimator) rowEstimator(d *matrix.Dense) rowEstimator {
	switch e.opts.Strategy {
	case Cutoff:
		lo, hi, ok := globalRange(d)
		return e.cutoffRow(lo, hi, ok)
	case Parameter:
		return e.parameterRow
	case Modes:
		return e.modesRow
	default:
		if e.opts.Scope == Matrix {
			return e.meanRow
		}
		return e.defaultRow
	}
}

// globalRange is [floor(min)-1, ceil(max)+1] over the finite values of d.
func globalRange(d *matrix.Dense) (lo, hi float64, ok bool) {
	mins, maxs := matrix.RowRanges(d)
	lo, hi, ok = matrix.FiniteRange(mins)
	if !ok {
		return 0, 0, false
	}
	_, hi, _ = matrix.FiniteRange(maxs)

	return math.Floor(lo) - 1, math.Ceil(hi) + 1, true
}

// equalPercents returns K equal shares.
func equalPercents(k int) []float64 {
	p := make([]float64, k)
	for i := range p {
		p[i] = 1 / float64(k)
	}

	return p
}

// tickAxis is 0, 1, ..., 1000.
func tickAxis() []float64 {
	axis := make([]float64, cutoff.GridSize)
	for i := range axis {
		axis[i] = float64(i)
	}

	return axis
}
