package config

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// envPrefix is the environment variable prefix of every key.
const envPrefix = "FUZZIFIER"

// newViper returns a viper instance with env overrides and defaults set.
// Nested keys map "." to "_": log.level → FUZZIFIER_LOG_LEVEL.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, Default())

	return v
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("number_fuzzy_sets", d.NumberFuzzySets)
	v.SetDefault("define_concept_per", d.DefineConceptPer)
	v.SetDefault("define_concept_by", d.DefineConceptBy)
	v.SetDefault("function_type", d.FunctionType)
	v.SetDefault("cutoff__method", d.CutoffMethod)
	v.SetDefault("cutoff__percent_per_fuzzy_set", d.CutoffPercents)
	v.SetDefault("cutoff__slope_per_cutoff", d.CutoffSlopes)
	v.SetDefault("default__width_factor", d.DefaultWidthFactor)
	v.SetDefault("default__slope_factor", d.DefaultSlopeFactor)
	v.SetDefault("default__band_width_factor", d.DefaultBandwidthFactor)
	v.SetDefault("parameter__method", d.ParameterMethod)
	v.SetDefault("parameter__values", d.ParameterValues)
	v.SetDefault("modes__max_iterations", d.ModesMaxIterations)
	v.SetDefault("label_values", d.LabelValues)
	v.SetDefault("left_noise_cutoff", d.LeftNoiseCutoff)
	v.SetDefault("right_noise_cutoff", d.RightNoiseCutoff)
	v.SetDefault("metadata_index_column", d.MetadataIndexColumn)
	v.SetDefault("metadata_cluster_column", d.MetadataClusterColumn)
	v.SetDefault("rename_fuzzy_sets", d.RenameFuzzySets)
	v.SetDefault("save_fuzzy_values_per", d.SaveFuzzyValuesPer)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Load reads path (YAML or JSON by extension; YAML without one), applies
// FUZZIFIER_* overrides and defaults, and validates. An empty path loads
// defaults and environment only.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if filepath.Ext(path) == "" {
			v.SetConfigType("yaml")
		}
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
	}

	return finalize(v)
}

// Read parses a configuration of the given type ("yaml" or "json") from r.
func Read(r io.Reader, configType string) (*Config, error) {
	v := newViper()
	v.SetConfigType(configType)
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", configType, err)
	}

	return finalize(v)
}

func finalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WriteDefault writes the default configuration as a YAML template.
func WriteDefault(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Default()); err != nil {
		return fmt.Errorf("config: encode defaults: %w", err)
	}

	return enc.Close()
}
