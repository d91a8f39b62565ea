package pipeline

import (
	"fmt"
	"math"

	"github.com/katalvlaran/fuzzifier/config"
	"github.com/katalvlaran/fuzzifier/matrix"
)

// Result holds one features × samples membership table per fuzzy set.
type Result struct {
	// Sets lists the output set names in column order.
	Sets []string

	// Tables maps set name to its membership table.
	Tables map[string]*matrix.Table

	Features []string
	Samples  []string
}

// Output is a named table ready to be written.
type Output struct {
	Name  string
	Table *matrix.Table
}

func newResult(t *matrix.Table, names []string, renames map[string]string, buf [][]float64, decimals int) (*Result, error) {
	r := &Result{
		Sets:     make([]string, len(names)),
		Tables:   make(map[string]*matrix.Table, len(names)),
		Features: append([]string(nil), t.RowNames...),
		Samples:  append([]string(nil), t.ColNames...),
	}
	for s, name := range names {
		out := rename(renames, name)
		if _, dup := r.Tables[out]; dup {
			return nil, fmt.Errorf("pipeline: set %q: %w", out, matrix.ErrDuplicateName)
		}
		if err := matrix.ValidateVecLen(buf[s], t.Rows()*t.Cols()); err != nil {
			return nil, fmt.Errorf("pipeline: set %q: %w", out, err)
		}
		raw, err := matrix.NewDenseFrom(t.Rows(), t.Cols(), buf[s], matrix.WithNoValidateNaNInf())
		if err != nil {
			return nil, fmt.Errorf("pipeline: set %q: %w", out, err)
		}
		rounded, err := matrix.Round(raw, matrix.WithPrecision(decimals))
		if err != nil {
			return nil, fmt.Errorf("pipeline: set %q: %w", out, err)
		}
		tbl, err := matrix.WrapDense(rounded, t.RowNames, t.ColNames)
		if err != nil {
			return nil, fmt.Errorf("pipeline: set %q: %w", out, err)
		}
		r.Sets[s] = out
		r.Tables[out] = tbl
	}

	return r, nil
}

// SumRange returns the smallest and largest total membership of a cell,
// ignoring cells without a concept. ok is false when no cell was fuzzified.
func (r *Result) SumRange() (lo, hi float64, ok bool) {
	if len(r.Sets) == 0 {
		return math.NaN(), math.NaN(), false
	}
	first := r.Tables[r.Sets[0]].Data
	sums := first.Values()
	for _, name := range r.Sets[1:] {
		if matrix.ValidateSameShape(first, r.Tables[name].Data) != nil {
			return math.NaN(), math.NaN(), false
		}
		for i, v := range r.Tables[name].Data.Values() {
			sums[i] += v
		}
	}

	return matrix.FiniteRange(sums)
}

// ForFeature returns the samples × sets table of one feature.
func (r *Result) ForFeature(name string) (*matrix.Table, error) {
	i, ok := indexOf(r.Features, name)
	if !ok {
		return nil, fmt.Errorf("pipeline: feature %q: %w", name, matrix.ErrUnknownName)
	}
	values := make([]float64, 0, len(r.Samples)*len(r.Sets))
	for j := range r.Samples {
		for _, s := range r.Sets {
			v, err := r.Tables[s].Data.At(i, j)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
	}

	return matrix.NewTable(r.Samples, r.Sets, values)
}

// ForSample returns the features × sets table of one sample.
func (r *Result) ForSample(name string) (*matrix.Table, error) {
	j, ok := indexOf(r.Samples, name)
	if !ok {
		return nil, fmt.Errorf("pipeline: sample %q: %w", name, matrix.ErrUnknownName)
	}
	values := make([]float64, 0, len(r.Features)*len(r.Sets))
	for i := range r.Features {
		for _, s := range r.Sets {
			v, err := r.Tables[s].Data.At(i, j)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
	}

	return matrix.NewTable(r.Features, r.Sets, values)
}

// Outputs splits the result by fuzzy set, feature or sample
// (config.SavePerFuzzySet, SavePerFeature, SavePerSample).
func (r *Result) Outputs(per string) ([]Output, error) {
	var out []Output
	switch per {
	case config.SavePerFuzzySet:
		for _, s := range r.Sets {
			out = append(out, Output{Name: s, Table: r.Tables[s]})
		}
	case config.SavePerFeature:
		for _, f := range r.Features {
			t, err := r.ForFeature(f)
			if err != nil {
				return nil, err
			}
			out = append(out, Output{Name: f, Table: t})
		}
	case config.SavePerSample:
		for _, s := range r.Samples {
			t, err := r.ForSample(s)
			if err != nil {
				return nil, err
			}
			out = append(out, Output{Name: s, Table: t})
		}
	default:
		return nil, fmt.Errorf("pipeline: save per %q: %w", per, config.ErrInvalid)
	}

	return out, nil
}

func indexOf(names []string, name string) (int, bool) {
	for i, n := range names {
		if n == name {
			return i, true
		}
	}

	return -1, false
}
