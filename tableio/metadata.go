package tableio

import (
	"fmt"
	"io"
	"os"
)

// unnamedIndex is the header a pandas index column gets when written without a name.
const unnamedIndex = "Unnamed: 0"

// ReadClusters maps sample → cluster from a TSV metadata file with a header.
// An empty or unnamed first header cell is treated as "index".
func ReadClusters(r io.Reader, indexColumn, clusterColumn string) (map[string]string, error) {
	records, err := newReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("tableio: read metadata: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}
	header := records[0]
	if len(header) > 0 && (header[0] == "" || header[0] == unnamedIndex) {
		header[0] = "index"
	}
	idx, cl := -1, -1
	for j, h := range header {
		switch h {
		case indexColumn:
			idx = j
		case clusterColumn:
			cl = j
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("tableio: %q: %w", indexColumn, ErrColumn)
	}
	if cl < 0 {
		return nil, fmt.Errorf("tableio: %q: %w", clusterColumn, ErrColumn)
	}

	out := make(map[string]string, len(records)-1)
	for n, rec := range records[1:] {
		if idx >= len(rec) || cl >= len(rec) {
			return nil, fmt.Errorf("tableio: metadata line %d: short record", n+2)
		}
		out[rec[idx]] = rec[cl]
	}

	return out, nil
}

// ReadClustersFile reads sample clusters from path.
func ReadClustersFile(path, indexColumn, clusterColumn string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tableio: %w", err)
	}
	defer f.Close()

	return ReadClusters(f, indexColumn, clusterColumn)
}
