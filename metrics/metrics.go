// Package metrics counts concept estimations and memberships with
// prometheus collectors on a private registry. A nil *Metrics is a valid
// no-op recorder.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "fuzzifier"

// Concept outcomes.
const (
	OutcomeEstimated = "estimated"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
)

// Membership row kinds.
const (
	KindRegular   = "regular"
	KindIndicator = "indicator"
	KindFallback  = "fallback"
	KindMissing   = "missing"
)

// DurationBuckets covers per-run estimation times.
var DurationBuckets = []float64{.001, .005, .01, .05, .1, .5, 1, 5, 30, 120}

// Metrics holds the fuzzifier collectors.
type Metrics struct {
	registry    *prometheus.Registry
	concepts    *prometheus.CounterVec
	memberships *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		concepts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "concepts_total",
			Help:      "Fuzzy concepts by estimation strategy and outcome.",
		}, []string{"strategy", "outcome"}),
		memberships: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "memberships_total",
			Help:      "Fuzzified values by row kind.",
		}, []string{"kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "estimation_duration_seconds",
			Help:      "Wall time of one concept estimation run.",
			Buckets:   DurationBuckets,
		}, []string{"strategy"}),
	}
	m.registry.MustRegister(m.concepts, m.memberships, m.duration)

	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}

	return m.registry
}

// Concept counts one concept of strategy with outcome.
func (m *Metrics) Concept(strategy, outcome string) {
	if m == nil {
		return
	}
	m.concepts.WithLabelValues(strategy, outcome).Inc()
}

// Memberships adds n rows of kind.
func (m *Metrics) Memberships(kind string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.memberships.WithLabelValues(kind).Add(float64(n))
}

// ObserveEstimation records the duration of a run started at start.
func (m *Metrics) ObserveEstimation(strategy string, start time.Time) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(strategy).Observe(time.Since(start).Seconds())
}

// WriteFile dumps the registry in the text exposition format.
func (m *Metrics) WriteFile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}

	return nil
}
