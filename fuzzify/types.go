package fuzzify

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/katalvlaran/fuzzifier/matrix"
)

// DefaultPrefix names membership columns FS1..FSN and indicators FS0_<label>.
const DefaultPrefix = "FS"

// snapBelow is the Gaussian membership under which values are reported as 0.
const snapBelow = 1e-5

var (
	// ErrEmptyInput indicates no values to fuzzify.
	ErrEmptyInput = errors.New("fuzzify: no input values")

	// ErrEmptyConcept indicates a concept without sets.
	ErrEmptyConcept = errors.New("fuzzify: concept has no fuzzy sets")
)

// Options configures indicator columns and naming.
type Options struct {
	// AddIndicator enables one FS0_<label> column per IndicateValues entry.
	AddIndicator bool

	// IndicateValues lists the label values in output order. NaN matches NaN.
	IndicateValues []float64

	// Prefix of every column name. Empty means DefaultPrefix.
	Prefix string
}

// DefaultOptions returns options without indicator columns.
func DefaultOptions() Options {
	return Options{Prefix: DefaultPrefix}
}

// Memberships is the result of Fuzzify: one row per input value.
type Memberships struct {
	// Columns names every column: indicators first, then FS1..FSN.
	Columns []string

	// Values is len(values) × len(Columns).
	Values *matrix.Dense

	// Indicated counts rows claimed by an indicator column.
	Indicated int

	// Fallbacks counts rows assigned to the last set by the zero-sum rule.
	Fallbacks int
}

// Column returns a copy of the named column.
func (m *Memberships) Column(name string) ([]float64, error) {
	for j, c := range m.Columns {
		if c == name {
			return m.Values.Col(j)
		}
	}

	return nil, fmt.Errorf("fuzzify: column %q: %w", name, matrix.ErrUnknownName)
}

// RowSums returns the total membership of every row.
func (m *Memberships) RowSums() []float64 {
	out := make([]float64, m.Values.Rows())
	m.Values.Do(func(i, _ int, v float64) bool {
		out[i] += v
		return true
	})

	return out
}

// FormatLabel renders a label value the way indicator columns are named.
func FormatLabel(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}

// IndicatorName returns the column name of label v.
func IndicatorName(prefix string, v float64) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}

	return prefix + "0_" + FormatLabel(v)
}

// ColumnNames lists the columns Fuzzify produces for a k-set concept.
func ColumnNames(k int, opts *Options) []string {
	o := resolve(opts)
	labels := o.indicators()
	names := make([]string, 0, len(labels)+k)
	for _, v := range labels {
		names = append(names, IndicatorName(o.Prefix, v))
	}
	for i := 1; i <= k; i++ {
		names = append(names, o.Prefix+strconv.Itoa(i))
	}

	return names
}

func resolve(opts *Options) Options {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if o.Prefix == "" {
		o.Prefix = DefaultPrefix
	}

	return o
}

// indicators returns the label values with duplicate names removed.
func (o Options) indicators() []float64 {
	if !o.AddIndicator {
		return nil
	}
	seen := make(map[string]struct{}, len(o.IndicateValues))
	out := make([]float64, 0, len(o.IndicateValues))
	for _, v := range o.IndicateValues {
		key := FormatLabel(v)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}

	return out
}

// matches reports whether x is the label v.
func matches(x, v float64) bool {
	if math.IsNaN(v) {
		return math.IsNaN(x)
	}

	return x == v
}
