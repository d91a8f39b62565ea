// Package config holds the fuzzifier configuration: concept definition,
// label and noise handling, output naming and logging.
//
// Files are YAML or JSON (chosen by extension). Every key can be overridden
// by an environment variable FUZZIFIER_<KEY>, e.g. FUZZIFIER_NUMBER_FUZZY_SETS
// or FUZZIFIER_LOG_LEVEL.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/fuzzifier/concept"
	"github.com/katalvlaran/fuzzifier/estimator"
	"github.com/katalvlaran/fuzzifier/logging"
	"github.com/spf13/cast"
)

// Output layouts of membership tables.
const (
	SavePerFuzzySet = "fuzzy set"
	SavePerFeature  = "feature"
	SavePerSample   = "sample"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config mirrors the configuration file.
type Config struct {
	NumberFuzzySets  int    `mapstructure:"number_fuzzy_sets" yaml:"number_fuzzy_sets"`
	DefineConceptPer string `mapstructure:"define_concept_per" yaml:"define_concept_per"`
	DefineConceptBy  string `mapstructure:"define_concept_by" yaml:"define_concept_by"`
	FunctionType     string `mapstructure:"function_type" yaml:"function_type"`

	CutoffMethod   string    `mapstructure:"cutoff__method" yaml:"cutoff__method"`
	CutoffPercents []float64 `mapstructure:"cutoff__percent_per_fuzzy_set" yaml:"cutoff__percent_per_fuzzy_set"`
	CutoffSlopes   []float64 `mapstructure:"cutoff__slope_per_cutoff" yaml:"cutoff__slope_per_cutoff"`

	DefaultWidthFactor     float64 `mapstructure:"default__width_factor" yaml:"default__width_factor"`
	DefaultSlopeFactor     float64 `mapstructure:"default__slope_factor" yaml:"default__slope_factor"`
	DefaultBandwidthFactor float64 `mapstructure:"default__band_width_factor" yaml:"default__band_width_factor"`

	ParameterMethod string          `mapstructure:"parameter__method" yaml:"parameter__method"`
	ParameterValues [][]interface{} `mapstructure:"parameter__values" yaml:"parameter__values"`

	ModesMaxIterations int `mapstructure:"modes__max_iterations" yaml:"modes__max_iterations"`

	// LabelValues are numbers or sentinel strings ("NaN", "-Infinity", ...).
	LabelValues      []interface{} `mapstructure:"label_values" yaml:"label_values"`
	LeftNoiseCutoff  interface{}   `mapstructure:"left_noise_cutoff" yaml:"left_noise_cutoff"`
	RightNoiseCutoff interface{}   `mapstructure:"right_noise_cutoff" yaml:"right_noise_cutoff"`

	MetadataIndexColumn   string            `mapstructure:"metadata_index_column" yaml:"metadata_index_column"`
	MetadataClusterColumn string            `mapstructure:"metadata_cluster_column" yaml:"metadata_cluster_column"`
	RenameFuzzySets       map[string]string `mapstructure:"rename_fuzzy_sets" yaml:"rename_fuzzy_sets"`
	SaveFuzzyValuesPer    string            `mapstructure:"save_fuzzy_values_per" yaml:"save_fuzzy_values_per"`

	Workers int            `mapstructure:"workers" yaml:"workers"`
	Log     logging.Config `mapstructure:"log" yaml:"log"`
}

// Default returns the configuration used when a key is absent.
func Default() *Config {
	return &Config{
		NumberFuzzySets:        3,
		DefineConceptPer:       "feature",
		DefineConceptBy:        "default",
		FunctionType:           "trapezoidal",
		CutoffMethod:           "proportion",
		CutoffPercents:         []float64{},
		CutoffSlopes:           []float64{},
		DefaultWidthFactor:     1,
		DefaultSlopeFactor:     0.5,
		DefaultBandwidthFactor: 1,
		ParameterMethod:        "percentile",
		ParameterValues:        [][]interface{}{},
		ModesMaxIterations:     20,
		LabelValues:            []interface{}{},
		LeftNoiseCutoff:        "-Infinity",
		RightNoiseCutoff:       "+Infinity",
		MetadataIndexColumn:    "index",
		MetadataClusterColumn:  "cluster",
		RenameFuzzySets:        map[string]string{},
		SaveFuzzyValuesPer:     SavePerFuzzySet,
		Log:                    logging.Config{Level: "info", Format: "console"},
	}
}

// Validate checks every field that has a closed set of values.
func (c *Config) Validate() error {
	if _, err := c.EstimatorOptions(); err != nil {
		return err
	}
	if _, err := c.Labels(); err != nil {
		return err
	}
	if _, _, err := c.NoiseCutoffs(); err != nil {
		return err
	}
	switch c.SaveFuzzyValuesPer {
	case SavePerFuzzySet, SavePerFeature, SavePerSample:
	default:
		return fmt.Errorf("%w: save_fuzzy_values_per %q", ErrInvalid, c.SaveFuzzyValuesPer)
	}
	if c.MetadataIndexColumn == "" || c.MetadataClusterColumn == "" {
		return fmt.Errorf("%w: metadata columns must be named", ErrInvalid)
	}

	return nil
}

// EstimatorOptions translates the concept definition keys.
func (c *Config) EstimatorOptions() (estimator.Options, error) {
	o := estimator.DefaultOptions()
	var err error
	if o.Scope, err = estimator.ParseScope(c.DefineConceptPer); err != nil {
		return o, fmt.Errorf("%w: define_concept_per: %w", ErrInvalid, err)
	}
	if o.Strategy, err = estimator.ParseStrategy(c.DefineConceptBy); err != nil {
		return o, fmt.Errorf("%w: define_concept_by: %w", ErrInvalid, err)
	}
	if o.Shape, err = concept.ParseShape(c.FunctionType); err != nil {
		return o, fmt.Errorf("%w: function_type: %w", ErrInvalid, err)
	}
	if o.CutoffMethod, err = estimator.ParseCutoffMethod(c.CutoffMethod); err != nil {
		return o, fmt.Errorf("%w: cutoff__method: %w", ErrInvalid, err)
	}
	if o.ParamMethod, err = estimator.ParseParamMethod(c.ParameterMethod); err != nil {
		return o, fmt.Errorf("%w: parameter__method: %w", ErrInvalid, err)
	}
	if o.Params, err = c.parameterValues(); err != nil {
		return o, err
	}
	if c.NumberFuzzySets < 1 && (o.Strategy == estimator.Cutoff || o.Strategy == estimator.Default) {
		return o, fmt.Errorf("%w: number_fuzzy_sets must be positive, got %d", ErrInvalid, c.NumberFuzzySets)
	}
	o.Sets = c.NumberFuzzySets
	o.Percents = append([]float64(nil), c.CutoffPercents...)
	o.Slopes = append([]float64(nil), c.CutoffSlopes...)
	o.WidthFactor = c.DefaultWidthFactor
	o.SlopeFactor = c.DefaultSlopeFactor
	o.BandwidthFactor = c.DefaultBandwidthFactor
	o.MaxIterations = c.ModesMaxIterations
	o.Workers = c.Workers

	return o, nil
}

func (c *Config) parameterValues() ([][]float64, error) {
	out := make([][]float64, len(c.ParameterValues))
	for i, row := range c.ParameterValues {
		out[i] = make([]float64, len(row))
		for j, raw := range row {
			v, err := ToFloat(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: parameter__values[%d][%d]: %w", ErrInvalid, i, j, err)
			}
			out[i][j] = v
		}
	}

	return out, nil
}

// Labels returns label_values as numbers; NaN and ±Inf come from sentinel strings.
func (c *Config) Labels() ([]float64, error) {
	out := make([]float64, len(c.LabelValues))
	for i, raw := range c.LabelValues {
		v, err := ToFloat(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: label_values[%d]: %w", ErrInvalid, i, err)
		}
		out[i] = v
	}

	return out, nil
}

// NoiseCutoffs returns the left and right noise cutoffs. A side that is not
// a finite number is disabled and reported as NaN.
func (c *Config) NoiseCutoffs() (left, right float64, err error) {
	if left, err = noiseCutoff(c.LeftNoiseCutoff); err != nil {
		return 0, 0, fmt.Errorf("%w: left_noise_cutoff: %w", ErrInvalid, err)
	}
	if right, err = noiseCutoff(c.RightNoiseCutoff); err != nil {
		return 0, 0, fmt.Errorf("%w: right_noise_cutoff: %w", ErrInvalid, err)
	}

	return left, right, nil
}

func noiseCutoff(raw interface{}) (float64, error) {
	v, err := ToFloat(raw)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) {
		return math.NaN(), nil
	}

	return v, nil
}

// ToFloat converts a configuration scalar: numbers as is, sentinel strings
// through concept.ParseValue, other strings as decimal numbers. A null
// value reads as NaN.
func ToFloat(raw interface{}) (float64, error) {
	if raw == nil {
		return math.NaN(), nil
	}
	if s, ok := raw.(string); ok {
		return concept.ParseValue(strings.TrimSpace(s))
	}

	return cast.ToFloat64E(raw)
}

// Renames returns rename_fuzzy_sets keyed by lower-cased set name. Keys are
// matched case-insensitively since the loader folds key case.
func (c *Config) Renames() map[string]string {
	out := make(map[string]string, len(c.RenameFuzzySets))
	for k, v := range c.RenameFuzzySets {
		out[strings.ToLower(k)] = v
	}

	return out
}
