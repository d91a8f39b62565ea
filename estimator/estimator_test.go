package estimator_test

import (
	"context"
	"math"
	"testing"

	"github.com/katalvlaran/fuzzifier/concept"
	"github.com/katalvlaran/fuzzifier/cutoff"
	"github.com/katalvlaran/fuzzifier/em"
	"github.com/katalvlaran/fuzzifier/estimator"
	"github.com/katalvlaran/fuzzifier/logging"
	"github.com/katalvlaran/fuzzifier/matrix"
	"github.com/katalvlaran/fuzzifier/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var nan = math.NaN()

// mustTable builds a table with rows f0..f{r-1} and columns s0..s{c-1}.
func mustTable(t *testing.T, rows [][]float64) *matrix.Table {
	t.Helper()
	var rowNames, colNames []string
	var values []float64
	for i, r := range rows {
		rowNames = append(rowNames, "f"+string(rune('0'+i)))
		values = append(values, r...)
	}
	for j := range rows[0] {
		colNames = append(colNames, "s"+string(rune('0'+j)))
	}
	tbl, err := matrix.NewTable(rowNames, colNames, values)
	require.NoError(t, err)

	return tbl
}

func seq(lo, hi int) []float64 {
	out := make([]float64, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		out = append(out, float64(v))
	}

	return out
}

func conceptClose(t *testing.T, want, got concept.Concept) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.Len(t, got[i], len(want[i]), "set %d", i)
		for j := range want[i] {
			assert.InDelta(t, want[i][j], got[i][j], 1e-9, "set %d param %d: %v", i, j, got)
		}
	}
}

func estimate(t *testing.T, opts estimator.Options, rows [][]float64) map[string]concept.Concept {
	t.Helper()
	e, err := estimator.New(opts)
	require.NoError(t, err)
	out, err := e.Estimate(context.Background(), mustTable(t, rows))
	require.NoError(t, err)

	return out
}

func TestEstimate_CutoffProportionTrapezoidal(t *testing.T) {
	t.Parallel()
	opts := estimator.DefaultOptions()
	opts.Strategy = estimator.Cutoff
	got := estimate(t, opts, [][]float64{seq(0, 10)})
	conceptClose(t, concept.Concept{
		{-1, -1, 2.5, 4.16},
		{2.5, 4.16, 5.83, 7.49},
		{5.83, 7.49, 11, 11},
	}, got["f0"])
}

func TestEstimate_CutoffProportionGaussian(t *testing.T) {
	t.Parallel()
	opts := estimator.DefaultOptions()
	opts.Strategy = estimator.Cutoff
	opts.Shape = concept.Gaussian
	got := estimate(t, opts, [][]float64{seq(0, 10)})
	conceptClose(t, concept.Concept{
		{1.165, 1.839},
		{4.995, 1.616},
		{8.83, 1.843},
	}, got["f0"])
}

func TestEstimate_CutoffWidth(t *testing.T) {
	t.Parallel()
	opts := estimator.DefaultOptions()
	opts.Strategy = estimator.Cutoff
	opts.CutoffMethod = estimator.Width
	opts.Sets = 2
	opts.Slopes = []float64{0.1}
	// row f1 has no data and borrows the global range [-1, 11]
	got := estimate(t, opts, [][]float64{
		{1, 9, nan},
		{nan, nan, nan},
		{0, 10, math.Inf(1)},
	})
	conceptClose(t, concept.Concept{{0, 0, 4, 6}, {4, 6, 10, 10}}, got["f0"])
	conceptClose(t, concept.Concept{{-1, -1, 3.8, 6.2}, {3.8, 6.2, 11, 11}}, got["f1"])
	conceptClose(t, got["f1"], got["f2"])
}

func TestEstimate_CutoffBadPercents(t *testing.T) {
	t.Parallel()
	opts := estimator.DefaultOptions()
	opts.Strategy = estimator.Cutoff
	opts.Percents = []float64{0.5, 0.2, 0.2}
	_, err := estimator.New(opts)
	assert.ErrorIs(t, err, cutoff.ErrPercentSum)
}

func TestEstimate_CutoffCountMismatchWarns(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.WarnLevel)
	opts := estimator.DefaultOptions()
	opts.Strategy = estimator.Cutoff
	opts.Percents = []float64{0.5, 0.5}
	opts.Slopes = []float64{0.1, 0.1, 0.1}
	e, err := estimator.New(opts, estimator.WithLogger(logging.NewFromCore(core)))
	require.NoError(t, err)
	assert.Equal(t, 2, logs.Len())

	out, err := e.Estimate(context.Background(), mustTable(t, [][]float64{seq(0, 10)}))
	require.NoError(t, err)
	assert.Len(t, out["f0"], 3)
}

func TestEstimate_Default(t *testing.T) {
	t.Parallel()
	got := estimate(t, estimator.DefaultOptions(), [][]float64{
		{0, 1, 1, 2, 2, 2, 3, 3, 4},
		{1, 1, 1, 1, 1, 1, 1, 1, 1},
		{5, nan, nan, nan, nan, nan, nan, nan, nan},
	})
	conceptClose(t, concept.Concept{
		{-1, -1, 0.775, 1.592},
		{2, 0.816},
		{2.408, 3.225, 5, 5},
	}, got["f0"])
	assert.NotContains(t, got, "f1", "zero spread")
	assert.NotContains(t, got, "f2", "single value")
}

func TestEstimate_DefaultModeAtEdgeKeepsOrder(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		values    []float64
		wantLeft  float64
		wantRight float64
	}{
		{"mode at minimum", []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 10, 20, 30}, -16, 31},
		{"narrow cluster then tail", []float64{5, 5.1, 5.2, 5.3, 5.4, 5.5, 15, 25, 35, 45}, -15, 46},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := estimate(t, estimator.DefaultOptions(), [][]float64{tc.values})
			c, ok := got["f0"]
			require.True(t, ok)
			require.NoError(t, c.Validate())
			assert.Equal(t, tc.wantLeft, c[0][0])
			assert.Equal(t, tc.wantLeft, c[0][1])
			assert.LessOrEqual(t, c[0][1], c[0][2])
			assert.Equal(t, tc.wantRight, c[2][3])
		})
	}

	got := estimate(t, estimator.DefaultOptions(), [][]float64{{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 10, 20, 30}})
	conceptClose(t, concept.Concept{
		{-16, -16, -14.403, -4.401},
		{0.6, 10.002},
		{5.601, 15.603, 31, 31},
	}, got["f0"])
}

func TestEstimate_DefaultMatrixScopeSharesOverSamples(t *testing.T) {
	t.Parallel()
	opts := estimator.DefaultOptions()
	opts.Scope = estimator.Matrix
	got := estimate(t, opts, [][]float64{{0, 1, 1}, {2, 2, 2}, {3, 3, 4}})
	require.Len(t, got, 3)
	for _, key := range []string{"s0", "s1", "s2"} {
		conceptClose(t, concept.Concept{
			{-1, -1, 0.775, 1.592},
			{2, 0.816},
			{2.408, 3.225, 5, 5},
		}, got[key])
	}
}

func TestEstimate_SampleScope(t *testing.T) {
	t.Parallel()
	opts := estimator.DefaultOptions()
	opts.Strategy = estimator.Cutoff
	opts.Scope = estimator.Sample
	got := estimate(t, opts, [][]float64{{0, 5}, {10, 5}})
	assert.Len(t, got, 2)
	assert.Contains(t, got, "s0")
	assert.Contains(t, got, "s1")
	// the second sample has no spread: every tick is 5 except the padded ends
	conceptClose(t, concept.Concept{{4, 4, 5, 5}, {5, 5, 5, 5}, {5, 5, 6, 6}}, got["s1"])
}

func TestEstimate_MatrixScopeSharesOverFeatures(t *testing.T) {
	t.Parallel()
	opts := estimator.DefaultOptions()
	opts.Strategy = estimator.Cutoff
	opts.Scope = estimator.Matrix
	got := estimate(t, opts, [][]float64{{0, 1, 2, 3, 4, 5}, {6, 7, 8, 9, 10, nan}})
	require.Len(t, got, 2)
	assert.Equal(t, got["f0"], got["f1"])
	conceptClose(t, concept.Concept{
		{-1, -1, 2.5, 4.16},
		{2.5, 4.16, 5.83, 7.49},
		{5.83, 7.49, 11, 11},
	}, got["f0"])
}

func TestEstimate_ParameterFix(t *testing.T) {
	t.Parallel()
	opts := estimator.DefaultOptions()
	opts.Strategy = estimator.Parameter
	opts.ParamMethod = estimator.Fix
	opts.Params = [][]float64{{0, 0, 1, 2}, {1, 2, 3, 4}, {3, 4, 5, 5}}
	got := estimate(t, opts, [][]float64{{-3, 7}, {nan, nan}})
	assert.Equal(t, concept.Concept{{-4, -4, 1, 2}, {1, 2, 3, 4}, {3, 4, 8, 8}}, got["f0"])
	assert.Equal(t, concept.Concept{{1, 1, 1, 2}, {1, 2, 3, 4}, {3, 4, 4, 4}}, got["f1"])
	assert.Equal(t, [][]float64{{0, 0, 1, 2}, {1, 2, 3, 4}, {3, 4, 5, 5}}, opts.Params)
}

func TestEstimate_ParameterPercentileTrapezoidal(t *testing.T) {
	t.Parallel()
	opts := estimator.DefaultOptions()
	opts.Strategy = estimator.Parameter
	opts.Params = [][]float64{{0, 0, 0.25, 0.5}, {0.25, 0.5, 0.75, 1}, {0.5, 0.75, 1, 1}}
	got := estimate(t, opts, [][]float64{seq(0, 8), {nan, nan, nan, nan, nan, nan, nan, nan, nan}})
	assert.Equal(t, concept.Concept{{-1, -1, 2, 4}, {2, 4, 6, 8}, {4, 6, 9, 9}}, got["f0"])
	assert.Equal(t, concept.Concept{{0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}}, got["f1"])
}

func TestEstimate_ParameterPercentileGaussian(t *testing.T) {
	t.Parallel()
	opts := estimator.DefaultOptions()
	opts.Strategy = estimator.Parameter
	opts.Shape = concept.Gaussian
	opts.Params = [][]float64{{0.25, nan}, {0.75, 1}}
	got := estimate(t, opts, [][]float64{seq(0, 8)})
	assert.Equal(t, concept.Concept{{2, 1.699}, {6, 1}}, got["f0"])
}

func TestEstimate_Modes(t *testing.T) {
	t.Parallel()
	opts := estimator.DefaultOptions()
	opts.Strategy = estimator.Modes
	opts.BandwidthFactor = 0.5
	got := estimate(t, opts, [][]float64{{0, 0.5, 1, 10, 10.5, 11}, {2, 2, 2, nan, nan, nan}})
	assert.Equal(t, concept.Concept{{0.5, 1.274}, {10.5, 1.274}}, got["f0"])
	assert.NotContains(t, got, "f1")
}

func TestEstimate_WorkersDoNotChangeResult(t *testing.T) {
	t.Parallel()
	rows := make([][]float64, 8)
	for i := range rows {
		rows[i] = []float64{0, float64(i), float64(2 * i), 1, 3, 5, 7, float64(i * i)}
	}
	opts := estimator.DefaultOptions()
	opts.Workers = 1
	serial := estimate(t, opts, rows)
	opts.Workers = 8
	parallel := estimate(t, opts, rows)
	assert.Equal(t, serial, parallel)
}

func TestEstimate_CancelledContext(t *testing.T) {
	t.Parallel()
	e, err := estimator.New(estimator.DefaultOptions())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Estimate(ctx, mustTable(t, [][]float64{seq(0, 5)}))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = e.Estimate(context.Background(), nil)
	assert.ErrorIs(t, err, estimator.ErrNilTable)
}

func TestEstimate_Metrics(t *testing.T) {
	t.Parallel()
	m := metrics.New()
	e, err := estimator.New(estimator.DefaultOptions(), estimator.WithMetrics(m))
	require.NoError(t, err)
	_, err = e.Estimate(context.Background(), mustTable(t, [][]float64{seq(0, 5), {1, 1, 1, 1, 1, 1}}))
	require.NoError(t, err)

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	counts := map[string]float64{}
	for _, f := range families {
		if f.GetName() != "fuzzifier_concepts_total" {
			continue
		}
		for _, s := range f.GetMetric() {
			for _, l := range s.GetLabel() {
				if l.GetName() == "outcome" {
					counts[l.GetValue()] = s.GetCounter().GetValue()
				}
			}
		}
	}
	assert.Equal(t, map[string]float64{metrics.OutcomeEstimated: 1, metrics.OutcomeSkipped: 1}, counts)
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		mutate func(o *estimator.Options)
		want   error
	}{
		{"no sets", func(o *estimator.Options) { o.Sets = 0 }, estimator.ErrSets},
		{"bad width", func(o *estimator.Options) { o.WidthFactor = 0 }, estimator.ErrFactor},
		{"bad bandwidth", func(o *estimator.Options) { o.BandwidthFactor = math.Inf(1) }, estimator.ErrFactor},
		{"scope", func(o *estimator.Options) { o.Scope = 7 }, estimator.ErrUnknownScope},
		{"strategy", func(o *estimator.Options) { o.Strategy = -1 }, estimator.ErrUnknownStrategy},
		{"shape", func(o *estimator.Options) { o.Shape = 9 }, concept.ErrUnknownShape},
		{"iterations", func(o *estimator.Options) {
			o.Strategy = estimator.Modes
			o.MaxIterations = -1
		}, em.ErrBadOptions},
		{"param arity", func(o *estimator.Options) {
			o.Strategy = estimator.Parameter
			o.Shape = concept.Gaussian
			o.Params = [][]float64{{0, 0, 1, 1}}
		}, estimator.ErrParamArity},
		{"no params", func(o *estimator.Options) { o.Strategy = estimator.Parameter }, estimator.ErrParamValue},
		{"percentile range", func(o *estimator.Options) {
			o.Strategy = estimator.Parameter
			o.Params = [][]float64{{0, 0, 0.5, 1.5}}
		}, estimator.ErrParamValue},
		{"single gaussian without sigma", func(o *estimator.Options) {
			o.Strategy = estimator.Parameter
			o.Shape = concept.Gaussian
			o.Params = [][]float64{{0.5, nan}}
		}, estimator.ErrParamValue},
		{"fixed trapezoid order", func(o *estimator.Options) {
			o.Strategy = estimator.Parameter
			o.ParamMethod = estimator.Fix
			o.Params = [][]float64{{0, 2, 1, 3}}
		}, concept.ErrOrder},
		{"negative slope", func(o *estimator.Options) {
			o.Strategy = estimator.Cutoff
			o.Sets = 2
			o.Slopes = []float64{-0.1}
		}, estimator.ErrParamValue},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			opts := estimator.DefaultOptions()
			tc.mutate(&opts)
			_, err := estimator.New(opts)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestWithLogger_NilPanics(t *testing.T) {
	t.Parallel()
	assert.PanicsWithValue(t, "estimator: WithLogger: nil logger", func() { estimator.WithLogger(nil) })
}

func TestParse(t *testing.T) {
	t.Parallel()
	s, err := estimator.ParseScope(" Sample ")
	require.NoError(t, err)
	assert.Equal(t, estimator.Sample, s)
	st, err := estimator.ParseStrategy("modes")
	require.NoError(t, err)
	assert.Equal(t, "modes", st.String())
	cm, err := estimator.ParseCutoffMethod("width")
	require.NoError(t, err)
	assert.Equal(t, estimator.Width, cm)
	pm, err := estimator.ParseParamMethod("fix")
	require.NoError(t, err)
	assert.Equal(t, estimator.Fix, pm)

	_, err = estimator.ParseScope("cluster")
	assert.ErrorIs(t, err, estimator.ErrUnknownScope)
	_, err = estimator.ParseStrategy("auto")
	assert.ErrorIs(t, err, estimator.ErrUnknownStrategy)
	_, err = estimator.ParseCutoffMethod("size")
	assert.ErrorIs(t, err, estimator.ErrUnknownCutoffMethod)
	_, err = estimator.ParseParamMethod("guess")
	assert.ErrorIs(t, err, estimator.ErrUnknownParamMethod)
	assert.Equal(t, "Scope(7)", estimator.Scope(7).String())
}
