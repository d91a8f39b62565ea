package config_test

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/fuzzifier/concept"
	"github.com/katalvlaran/fuzzifier/config"
	"github.com/katalvlaran/fuzzifier/estimator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
number_fuzzy_sets: 5
define_concept_per: sample
define_concept_by: parameter
function_type: gauss
parameter__method: fix
parameter__values:
  - [1, 0.5]
  - [3, "NaN"]
label_values: [0, "NaN", "-Infinity"]
left_noise_cutoff: 0.1
right_noise_cutoff: "+Infinity"
rename_fuzzy_sets:
  FS1: Low
  FS2: High
save_fuzzy_values_per: feature
log:
  level: debug
  format: json
`

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.NumberFuzzySets)
	assert.Equal(t, config.SavePerFuzzySet, cfg.SaveFuzzyValuesPer)

	o, err := cfg.EstimatorOptions()
	require.NoError(t, err)
	assert.Equal(t, estimator.Feature, o.Scope)
	assert.Equal(t, estimator.Default, o.Strategy)
	assert.Equal(t, concept.Trapezoidal, o.Shape)
	assert.Equal(t, 20, o.MaxIterations)

	l, r, err := cfg.NoiseCutoffs()
	require.NoError(t, err)
	assert.True(t, math.IsNaN(l))
	assert.True(t, math.IsNaN(r))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	o, err := cfg.EstimatorOptions()
	require.NoError(t, err)
	assert.Equal(t, 5, o.Sets)
	assert.Equal(t, estimator.Sample, o.Scope)
	assert.Equal(t, estimator.Parameter, o.Strategy)
	assert.Equal(t, concept.Gaussian, o.Shape)
	assert.Equal(t, estimator.Fix, o.ParamMethod)
	require.Len(t, o.Params, 2)
	assert.Equal(t, []float64{1, 0.5}, o.Params[0])
	assert.Equal(t, 3.0, o.Params[1][0])
	assert.True(t, math.IsNaN(o.Params[1][1]))

	labels, err := cfg.Labels()
	require.NoError(t, err)
	require.Len(t, labels, 3)
	assert.Equal(t, 0.0, labels[0])
	assert.True(t, math.IsNaN(labels[1]))
	assert.True(t, math.IsInf(labels[2], -1))

	l, r, err := cfg.NoiseCutoffs()
	require.NoError(t, err)
	assert.Equal(t, 0.1, l)
	assert.True(t, math.IsNaN(r))

	assert.Equal(t, map[string]string{"fs1": "Low", "fs2": "High"}, cfg.Renames())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadJSON(t *testing.T) {
	cfg, err := config.Read(strings.NewReader(`{"define_concept_by": "modes", "modes__max_iterations": 3}`), "json")
	require.NoError(t, err)

	o, err := cfg.EstimatorOptions()
	require.NoError(t, err)
	assert.Equal(t, estimator.Modes, o.Strategy)
	assert.Equal(t, 3, o.MaxIterations)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("FUZZIFIER_NUMBER_FUZZY_SETS", "7")
	t.Setenv("FUZZIFIER_LOG_LEVEL", "warn")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.NumberFuzzySets)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"scope", func(c *config.Config) { c.DefineConceptPer = "cell" }},
		{"strategy", func(c *config.Config) { c.DefineConceptBy = "magic" }},
		{"shape", func(c *config.Config) { c.FunctionType = "triangle" }},
		{"cutoff method", func(c *config.Config) { c.CutoffMethod = "median" }},
		{"parameter method", func(c *config.Config) { c.ParameterMethod = "guess" }},
		{"sets", func(c *config.Config) { c.NumberFuzzySets = 0 }},
		{"label", func(c *config.Config) { c.LabelValues = []interface{}{"abc"} }},
		{"noise", func(c *config.Config) { c.LeftNoiseCutoff = "low" }},
		{"parameter value", func(c *config.Config) { c.ParameterValues = [][]interface{}{{"x"}} }},
		{"save per", func(c *config.Config) { c.SaveFuzzyValuesPer = "cell" }},
		{"metadata", func(c *config.Config) { c.MetadataClusterColumn = "" }},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.Default()
			tc.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalid)
		})
	}

	assert.NoError(t, config.Default().Validate())
}

func TestToFloat(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		in   interface{}
		want float64
	}{
		{1, 1},
		{2.5, 2.5},
		{" 3.25 ", 3.25},
		{"-Inf", math.Inf(-1)},
	} {
		got, err := config.ToFloat(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	v, err := config.ToFloat(nil)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v))

	_, err = config.ToFloat([]int{1})
	assert.Error(t, err)
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, config.WriteDefault(&buf))
	assert.Contains(t, buf.String(), "number_fuzzy_sets: 3")

	cfg, err := config.Read(&buf, "yaml")
	require.NoError(t, err)
	assert.Equal(t, config.Default().SaveFuzzyValuesPer, cfg.SaveFuzzyValuesPer)
	assert.Equal(t, config.Default().DefaultSlopeFactor, cfg.DefaultSlopeFactor)
}
