package pipeline

import (
	"context"
	"fmt"
	"sort"

	"github.com/katalvlaran/fuzzifier/concept"
	"github.com/katalvlaran/fuzzifier/estimator"
	"github.com/katalvlaran/fuzzifier/logging"
	"github.com/katalvlaran/fuzzifier/matrix"
)

// DefineConcepts estimates concepts for t, which should come from
// PrepareConcepts. With a clustering (sample → cluster) and a scope other
// than Sample, concepts are estimated per cluster over its samples;
// otherwise the document holds the single cluster concept.AllClusters.
// Samples without a cluster are left out of every cluster.
func (p *Pipeline) DefineConcepts(ctx context.Context, t *matrix.Table, clusters map[string]string) (concept.Document, error) {
	if t == nil || t.Data == nil {
		return nil, ErrNilTable
	}
	est, err := estimator.New(p.estOpts,
		estimator.WithLogger(p.log),
		estimator.WithMetrics(p.metrics))
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	doc := concept.Document{}
	if len(clusters) == 0 || p.estOpts.Scope == estimator.Sample {
		if len(clusters) > 0 {
			p.log.Warn("clustering ignored for sample concepts")
		}
		c, err := est.Estimate(ctx, t)
		if err != nil {
			return nil, fmt.Errorf("pipeline: %w", err)
		}
		doc[concept.AllClusters] = c

		return doc, nil
	}

	groups, unassigned := groupSamples(t.ColNames, clusters)
	if len(unassigned) > 0 {
		p.log.Warn("samples without cluster", logging.Strings("samples", unassigned))
	}
	for _, name := range sortedKeys(groups) {
		sub, err := t.SelectColumns(groups[name])
		if err != nil {
			return nil, fmt.Errorf("pipeline: cluster %q: %w", name, err)
		}
		c, err := est.Estimate(ctx, sub)
		if err != nil {
			return nil, fmt.Errorf("pipeline: cluster %q: %w", name, err)
		}
		p.log.Debug("cluster estimated",
			logging.String(logging.KeyCluster, name),
			logging.Int("samples", len(groups[name])),
			logging.Int("keys", len(c)))
		doc[name] = c
	}

	return doc, nil
}

// groupSamples collects the samples of every cluster in table order.
func groupSamples(samples []string, clusters map[string]string) (groups map[string][]string, unassigned []string) {
	groups = make(map[string][]string)
	for _, s := range samples {
		c, ok := clusters[s]
		if !ok {
			unassigned = append(unassigned, s)
			continue
		}
		groups[c] = append(groups[c], s)
	}

	return groups, unassigned
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
