package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wbrown/janus-triples/datalog"
	"github.com/wbrown/janus-triples/datalog/parser"
	"gopkg.in/yaml.v3"
)

// Supplier provides the finite, ordered triple collection a Database is
// built from
type Supplier interface {
	Triples() ([]datalog.Triple, error)
}

// Load builds a Database from everything a supplier provides
func Load(s Supplier) (*Database, error) {
	triples, err := s.Triples()
	if err != nil {
		return nil, fmt.Errorf("failed to load triples: %w", err)
	}
	return NewDatabase(triples), nil
}

// SliceSupplier supplies triples held in memory
type SliceSupplier []datalog.Triple

// Triples implements Supplier
func (s SliceSupplier) Triples() ([]datalog.Triple, error) {
	return s, nil
}

// FileSupplier reads triples from a dataset file.
// The format is chosen by extension: .edn files hold a vector of [e a v]
// vectors, .yaml and .yml files a sequence of three-element sequences.
type FileSupplier struct {
	Path string
}

// Triples implements Supplier
func (s FileSupplier) Triples() ([]datalog.Triple, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".edn":
		triples, err := parser.ParseTriples(string(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Path, err)
		}
		return triples, nil
	case ".yaml", ".yml":
		triples, err := ParseYAMLTriples(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Path, err)
		}
		return triples, nil
	default:
		return nil, fmt.Errorf("unsupported dataset format %q (use .edn, .yaml or .yml)", filepath.Ext(s.Path))
	}
}

// ParseYAMLTriples decodes a YAML sequence of [e, a, v] sequences
func ParseYAMLTriples(data []byte) ([]datalog.Triple, error) {
	var rows [][]interface{}
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}

	triples := make([]datalog.Triple, 0, len(rows))
	for i, row := range rows {
		if len(row) != 3 {
			return nil, fmt.Errorf("triple %d: %w, got %d", i, datalog.ErrTripleArity, len(row))
		}
		triples = append(triples, datalog.NewTriple(row[0], row[1], row[2]))
	}
	return triples, nil
}
