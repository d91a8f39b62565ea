package tableio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/katalvlaran/fuzzifier/concept"
	"github.com/katalvlaran/fuzzifier/matrix"
)

// FilePrefix starts the name of every membership file.
const FilePrefix = "fuzzyValues_"

var (
	// ErrEmptyFile indicates a file without header or data rows.
	ErrEmptyFile = errors.New("tableio: empty file")

	// ErrColumn indicates a metadata column that is not present.
	ErrColumn = errors.New("tableio: missing column")
)

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	return cr
}

// ReadMatrix parses a TSV matrix: the header names the samples (its first
// cell names the index and is ignored), every further line is a feature
// name followed by its values.
func ReadMatrix(r io.Reader) (*matrix.Table, error) {
	records, err := newReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("tableio: read matrix: %w", err)
	}
	if len(records) < 2 || len(records[0]) < 2 {
		return nil, ErrEmptyFile
	}
	cols := records[0][1:]
	rows := make([]string, 0, len(records)-1)
	values := make([]float64, 0, (len(records)-1)*len(cols))
	for n, rec := range records[1:] {
		if len(rec) != len(cols)+1 {
			return nil, fmt.Errorf("tableio: line %d: %d fields, want %d: %w",
				n+2, len(rec), len(cols)+1, matrix.ErrDimensionMismatch)
		}
		rows = append(rows, rec[0])
		for j, cell := range rec[1:] {
			v, err := parseCell(cell)
			if err != nil {
				return nil, fmt.Errorf("tableio: line %d column %q: %w", n+2, cols[j], err)
			}
			values = append(values, v)
		}
	}

	t, err := matrix.NewTable(rows, cols, values)
	if err != nil {
		return nil, fmt.Errorf("tableio: %w", err)
	}

	return t, nil
}

// ReadMatrixFile reads a TSV matrix from path.
func ReadMatrixFile(path string) (*matrix.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tableio: %w", err)
	}
	defer f.Close()

	return ReadMatrix(f)
}

func parseCell(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return math.NaN(), nil
	}

	return concept.ParseValue(cell)
}

// WriteMatrix writes t as TSV with an empty index header cell.
func WriteMatrix(w io.Writer, t *matrix.Table) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.Write(append([]string{""}, t.ColNames...)); err != nil {
		return fmt.Errorf("tableio: write header: %w", err)
	}
	rec := make([]string, t.Cols()+1)
	for i, name := range t.RowNames {
		row, err := t.Data.Row(i)
		if err != nil {
			return fmt.Errorf("tableio: %w", err)
		}
		rec[0] = name
		for j, v := range row {
			rec[j+1] = formatCell(v)
		}
		if err = cw.Write(rec); err != nil {
			return fmt.Errorf("tableio: write %q: %w", name, err)
		}
	}
	cw.Flush()

	return cw.Error()
}

// formatCell writes NaN as an empty cell.
func formatCell(v float64) string {
	switch {
	case math.IsNaN(v):
		return ""
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}

// FileName returns the membership file name of a set, feature or sample.
// Path separators in name are replaced by '_'.
func FileName(name string) string {
	safe := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, name)

	return FilePrefix + safe + ".tsv"
}

// WriteMatrixFile writes t to path, creating parent directories.
func WriteMatrixFile(path string, t *matrix.Table) (err error) {
	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("tableio: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("tableio: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("tableio: %w", cerr)
		}
	}()

	return WriteMatrix(f, t)
}
