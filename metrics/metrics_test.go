package metrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/katalvlaran/fuzzifier/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	t.Parallel()
	m := metrics.New()
	m.Concept("cutoff", metrics.OutcomeEstimated)
	m.Concept("cutoff", metrics.OutcomeEstimated)
	m.Concept("default", metrics.OutcomeSkipped)
	m.Memberships(metrics.KindRegular, 10)
	m.Memberships(metrics.KindFallback, 0)
	m.ObserveEstimation("cutoff", time.Now())

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	series := map[string]int{}
	for _, f := range families {
		series[f.GetName()] = len(f.GetMetric())
	}
	assert.Equal(t, map[string]int{
		"fuzzifier_concepts_total":              2,
		"fuzzifier_memberships_total":           1,
		"fuzzifier_estimation_duration_seconds": 1,
	}, series)
}

func TestMetrics_WriteFile(t *testing.T) {
	t.Parallel()
	m := metrics.New()
	m.Concept("modes", metrics.OutcomeFailed)
	path := filepath.Join(t.TempDir(), "fuzzifier.prom")
	require.NoError(t, m.WriteFile(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `fuzzifier_concepts_total{outcome="failed",strategy="modes"} 1`)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()
	var m *metrics.Metrics
	m.Concept("cutoff", metrics.OutcomeEstimated)
	m.Memberships(metrics.KindRegular, 1)
	m.ObserveEstimation("cutoff", time.Now())
	assert.Nil(t, m.Registry())
	assert.NoError(t, m.WriteFile(filepath.Join(t.TempDir(), "x.prom")))
}
