package pipeline

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync/atomic"

	"github.com/katalvlaran/fuzzifier/concept"
	"github.com/katalvlaran/fuzzifier/estimator"
	"github.com/katalvlaran/fuzzifier/fuzzify"
	"github.com/katalvlaran/fuzzifier/logging"
	"github.com/katalvlaran/fuzzifier/matrix"
	"github.com/katalvlaran/fuzzifier/metrics"
	"golang.org/x/sync/errgroup"
)

// precision of reported memberships.
const precision = 3

// unit is one Fuzzify call: the cells of one key within one cluster.
type unit struct {
	cluster string
	key     string
	cells   []int // row-major indexes into the table
}

// Fuzzify masks noise in t (see PrepareFuzzify) and fuzzifies every cell
// with the concept of its feature (or sample) and cluster.
//
// The key scope of doc is resolved against t: keys that are all features
// give per-feature fuzzification, keys that are all samples give per-sample
// fuzzification, and a single key per cluster is shared by every feature.
// With more than one cluster in doc, clusters maps each sample to its
// cluster. Cells without a concept are NaN in every set.
func (p *Pipeline) Fuzzify(ctx context.Context, t *matrix.Table, doc concept.Document, clusters map[string]string) (*Result, error) {
	if t == nil || t.Data == nil {
		return nil, ErrNilTable
	}
	if len(doc) == 0 {
		return nil, ErrEmptyDocument
	}
	prepared, noise, err := p.PrepareFuzzify(t)
	if err != nil {
		return nil, err
	}
	scope, doc, err := resolveScope(doc, t)
	if err != nil {
		return nil, err
	}
	colCluster, err := p.assignClusters(t, doc, clusters)
	if err != nil {
		return nil, err
	}
	units, missing := plan(prepared, doc, scope, colCluster)
	if len(missing) > 0 {
		p.log.Warn("no concept for keys", logging.Strings("keys", missing))
	}

	opts, renames := p.indicators(noise)
	k := maxSets(doc)
	names := fuzzify.ColumnNames(k, &opts)
	size := prepared.Rows() * prepared.Cols()
	buf := make([][]float64, len(names))
	for s := range buf {
		buf[s] = make([]float64, size)
		for i := range buf[s] {
			buf[s][i] = math.NaN()
		}
	}

	cells := prepared.Data.Values()
	var regular, indicated, fallbacks, covered atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers())
	for _, u := range units {
		u := u
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			values := make([]float64, len(u.cells))
			for i, c := range u.cells {
				values[i] = cells[c]
			}
			m, err := fuzzify.Fuzzify(values, doc[u.cluster][u.key], &opts)
			if err != nil {
				return fmt.Errorf("pipeline: %s/%s: %w", u.cluster, u.key, err)
			}
			for i, c := range u.cells {
				row, err := m.Values.Row(i)
				if err != nil {
					return fmt.Errorf("pipeline: %s/%s: %w", u.cluster, u.key, err)
				}
				for s := range buf {
					v := 0.0
					if s < len(row) {
						v = row[s]
					}
					buf[s][c] = v
				}
			}
			covered.Add(int64(len(u.cells)))
			indicated.Add(int64(m.Indicated))
			fallbacks.Add(int64(m.Fallbacks))
			regular.Add(int64(len(u.cells) - m.Indicated - m.Fallbacks))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res, err := newResult(prepared, names, renames, buf, precision)
	if err != nil {
		return nil, err
	}
	p.metrics.Memberships(metrics.KindRegular, int(regular.Load()))
	p.metrics.Memberships(metrics.KindIndicator, int(indicated.Load()))
	p.metrics.Memberships(metrics.KindFallback, int(fallbacks.Load()))
	p.metrics.Memberships(metrics.KindMissing, size-int(covered.Load()))

	lo, hi, _ := res.SumRange()
	p.log.Info("values fuzzified",
		logging.String(logging.KeyScope, scope.String()),
		logging.Strings("sets", res.Sets),
		logging.Int("indicated", int(indicated.Load())),
		logging.Int("fallbacks", int(fallbacks.Load())),
		logging.Float64("sum_min", lo),
		logging.Float64("sum_max", hi))

	return res, nil
}

func (p *Pipeline) workers() int {
	if p.cfg.Workers > 0 {
		return p.cfg.Workers
	}

	return runtime.GOMAXPROCS(0)
}

// resolveScope decides whether doc is keyed by feature or by sample and
// expands single-key clusters to every feature.
func resolveScope(doc concept.Document, t *matrix.Table) (estimator.Scope, concept.Document, error) {
	features, samples, single, nonEmpty := true, true, true, false
	for _, concepts := range doc {
		if len(concepts) == 0 {
			continue
		}
		nonEmpty = true
		if len(concepts) != 1 {
			single = false
		}
		for key := range concepts {
			if _, ok := t.RowIndex(key); !ok {
				features = false
			}
			if _, ok := t.ColIndex(key); !ok {
				samples = false
			}
		}
	}

	switch {
	case !nonEmpty || features:
		return estimator.Feature, doc, nil
	case samples:
		return estimator.Sample, doc, nil
	case single:
		out := make(concept.Document, len(doc))
		for cluster, concepts := range doc {
			out[cluster] = make(map[string]concept.Concept, t.Rows())
			for _, c := range concepts {
				for _, f := range t.RowNames {
					out[cluster][f] = c
				}
			}
		}
		return estimator.Feature, out, nil
	default:
		return 0, nil, ErrConceptScope
	}
}

// assignClusters maps every column to its cluster in doc ("" when none).
func (p *Pipeline) assignClusters(t *matrix.Table, doc concept.Document, clusters map[string]string) ([]string, error) {
	out := make([]string, t.Cols())
	if len(doc) == 1 {
		for name := range doc {
			for j := range out {
				out[j] = name
			}
		}
		return out, nil
	}
	if len(clusters) == 0 {
		return nil, ErrClusters
	}
	var unassigned []string
	for j, s := range t.ColNames {
		c, ok := clusters[s]
		if _, known := doc[c]; !ok || !known {
			unassigned = append(unassigned, s)
			continue
		}
		out[j] = c
	}
	if len(unassigned) > 0 {
		p.log.Warn("samples without concept cluster", logging.Strings("samples", unassigned))
	}

	return out, nil
}

// plan splits the table into fuzzification units and lists keys without a concept.
func plan(t *matrix.Table, doc concept.Document, scope estimator.Scope, colCluster []string) ([]unit, []string) {
	var units []unit
	var missing []string
	rows, cols := t.Rows(), t.Cols()
	if scope == estimator.Sample {
		for j, s := range t.ColNames {
			cl := colCluster[j]
			if _, ok := doc[cl][s]; !ok {
				missing = append(missing, s)
				continue
			}
			u := unit{cluster: cl, key: s, cells: make([]int, rows)}
			for i := range u.cells {
				u.cells[i] = i*cols + j
			}
			units = append(units, u)
		}
		return units, missing
	}

	for i, f := range t.RowNames {
		found := false
		for _, cl := range sortedKeys(doc) {
			if _, ok := doc[cl][f]; !ok {
				continue
			}
			found = true
			u := unit{cluster: cl, key: f}
			for j := 0; j < cols; j++ {
				if colCluster[j] == cl {
					u.cells = append(u.cells, i*cols+j)
				}
			}
			if len(u.cells) > 0 {
				units = append(units, u)
			}
		}
		if !found {
			missing = append(missing, f)
		}
	}

	return units, missing
}

func maxSets(doc concept.Document) int {
	k := 0
	for _, concepts := range doc {
		for _, c := range concepts {
			if c.Len() > k {
				k = c.Len()
			}
		}
	}

	return k
}
