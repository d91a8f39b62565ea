package tableio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/katalvlaran/fuzzifier/concept"
)

// ReadConceptsFile decodes a JSON concept document.
func ReadConceptsFile(path string) (concept.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tableio: %w", err)
	}
	defer f.Close()

	return concept.ReadDocument(f)
}

// WriteConceptsFile writes doc as JSON to path, creating parent directories.
func WriteConceptsFile(path string, doc concept.Document) (err error) {
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

	return concept.WriteDocument(f, doc)
}
