package tableio_test

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/katalvlaran/fuzzifier/concept"
	"github.com/katalvlaran/fuzzifier/matrix"
	"github.com/katalvlaran/fuzzifier/tableio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMatrix(t *testing.T) {
	t.Parallel()
	in := "gene\ts0\ts1\ts2\n" +
		"g1\t1.5\t\tNA\n" +
		"g2\t-Inf\t2\t3e2\n"

	tbl, err := tableio.ReadMatrix(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"g1", "g2"}, tbl.RowNames)
	assert.Equal(t, []string{"s0", "s1", "s2"}, tbl.ColNames)

	g1, err := tbl.Row("g1")
	require.NoError(t, err)
	assert.Equal(t, 1.5, g1[0])
	assert.True(t, math.IsNaN(g1[1]))
	assert.True(t, math.IsNaN(g1[2]))

	g2, err := tbl.Row("g2")
	require.NoError(t, err)
	assert.True(t, math.IsInf(g2[0], -1))
	assert.Equal(t, []float64{2, 300}, g2[1:])
}

func TestReadMatrix_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", tableio.ErrEmptyFile},
		{"header only", "\ts0\n", tableio.ErrEmptyFile},
		{"short row", "\ts0\ts1\ng1\t1\n", matrix.ErrDimensionMismatch},
		{"bad value", "\ts0\ng1\tabc\n", concept.ErrValue},
		{"duplicate feature", "\ts0\ng1\t1\ng1\t2\n", matrix.ErrDuplicateName},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := tableio.ReadMatrix(strings.NewReader(tc.in))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestWriteMatrix(t *testing.T) {
	t.Parallel()
	tbl, err := matrix.NewTable([]string{"g1", "g2"}, []string{"FS1", "FS2"},
		[]float64{0.5, 0.5, math.NaN(), math.Inf(1)})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tableio.WriteMatrix(&buf, tbl))
	assert.Equal(t, "\tFS1\tFS2\ng1\t0.5\t0.5\ng2\t\tinf\n", buf.String())

	back, err := tableio.ReadMatrix(&buf)
	require.NoError(t, err)
	assert.Equal(t, tbl.RowNames, back.RowNames)
	g2, err := back.Row("g2")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(g2[0]))
	assert.True(t, math.IsInf(g2[1], 1))
}

func TestMatrixFile(t *testing.T) {
	t.Parallel()
	tbl, err := matrix.NewTable([]string{"g1"}, []string{"s0"}, []float64{1})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "out", tableio.FileName("FS1"))

	require.NoError(t, tableio.WriteMatrixFile(path, tbl))
	back, err := tableio.ReadMatrixFile(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, back.Data.Values())

	_, err = tableio.ReadMatrixFile(filepath.Join(t.TempDir(), "absent.tsv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "fuzzyValues_MIN-NOISE.tsv", tableio.FileName("MIN-NOISE"))
	assert.Equal(t, "fuzzyValues_a_b.tsv", tableio.FileName("a/b"))
}

func TestReadClusters(t *testing.T) {
	t.Parallel()
	in := "\tcluster\tbatch\n" +
		"s0\tA\t1\n" +
		"s1\tB\t1\n"

	got, err := tableio.ReadClusters(strings.NewReader(in), "index", "cluster")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"s0": "A", "s1": "B"}, got)

	got, err = tableio.ReadClusters(strings.NewReader("sample\tgroup\ns0\tX\n"), "sample", "group")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"s0": "X"}, got)

	_, err = tableio.ReadClusters(strings.NewReader(in), "index", "celltype")
	assert.ErrorIs(t, err, tableio.ErrColumn)

	_, err = tableio.ReadClusters(strings.NewReader(""), "index", "cluster")
	assert.ErrorIs(t, err, tableio.ErrEmptyFile)
}

func TestConceptsFile(t *testing.T) {
	t.Parallel()
	doc := concept.Document{"ALL": {
		"g1": {{math.Inf(-1), math.Inf(-1), 1, 2}, {1, 2, 3, 4}, {3, 4, math.Inf(1), math.Inf(1)}},
		"g2": {{0.5, 1}, {2, 1}},
	}}
	path := filepath.Join(t.TempDir(), "concepts", "concepts.json")

	require.NoError(t, tableio.WriteConceptsFile(path, doc))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"-Infinity"`)

	back, err := tableio.ReadConceptsFile(path)
	require.NoError(t, err)
	if diff := cmp.Diff(doc, back); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}
