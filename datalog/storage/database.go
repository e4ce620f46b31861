package storage

import (
	"github.com/wbrown/janus-triples/datalog"
)

// IndexType identifies one of the single-field indexes of a Database
type IndexType int

const (
	EntityIndex    IndexType = iota // E → triples
	AttributeIndex                  // A → triples
	ValueIndex                      // V → triples
)

// String returns the index name used in annotations
func (i IndexType) String() string {
	switch i {
	case EntityIndex:
		return "E-index"
	case AttributeIndex:
		return "A-index"
	case ValueIndex:
		return "V-index"
	default:
		return "unknown-index"
	}
}

// Database is an immutable in-memory fact store.
// It owns the triple set plus three single-field indexes (by entity, by
// attribute and by value) that are built once by NewDatabase. Nothing mutates
// a Database after construction, so it can be shared freely between
// goroutines running queries.
type Database struct {
	triples []datalog.Triple

	// indexes[pos] maps datalog.IndexKey(field) → triples, in input order
	indexes [3]map[interface{}][]datalog.Triple
}

// NewDatabase builds a fact store from triples.
// The triple sequence is kept verbatim: order is preserved and duplicates are
// retained. The input slice is copied, so later changes to it are not seen.
func NewDatabase(triples []datalog.Triple) *Database {
	d := &Database{
		triples: make([]datalog.Triple, len(triples)),
	}
	copy(d.triples, triples)

	// Pre-size maps to avoid reallocation
	estimatedSize := len(triples) / 4
	if estimatedSize < 16 {
		estimatedSize = 16
	}
	for i := range d.indexes {
		d.indexes[i] = make(map[interface{}][]datalog.Triple, estimatedSize)
	}

	for _, t := range d.triples {
		for pos := range d.indexes {
			key := datalog.IndexKey(t.Field(pos))
			d.indexes[pos][key] = append(d.indexes[pos][key], t)
		}
	}

	return d
}

// Triples returns the full triple set in input order.
// The returned slice is shared and must not be modified.
func (d *Database) Triples() []datalog.Triple {
	return d.triples
}

// Size returns the number of stored triples, duplicates included
func (d *Database) Size() int {
	return len(d.triples)
}

// Lookup returns the bucket of triples whose field for the given index
// equals v, or nil when there is none.
// The returned slice is shared and must not be modified.
func (d *Database) Lookup(index IndexType, v datalog.Value) []datalog.Triple {
	if index < EntityIndex || index > ValueIndex {
		return nil
	}
	return d.indexes[index][datalog.IndexKey(v)]
}

// ByEntity returns the triples whose entity equals e
func (d *Database) ByEntity(e datalog.Value) []datalog.Triple {
	return d.Lookup(EntityIndex, e)
}

// ByAttribute returns the triples whose attribute equals a
func (d *Database) ByAttribute(a datalog.Value) []datalog.Triple {
	return d.Lookup(AttributeIndex, a)
}

// ByValue returns the triples whose value equals v
func (d *Database) ByValue(v datalog.Value) []datalog.Triple {
	return d.Lookup(ValueIndex, v)
}

// Stats summarizes the size of a Database
type Stats struct {
	Triples    int
	Entities   int
	Attributes int
	Values     int
}

// Stats returns the triple count and the number of distinct keys per index
func (d *Database) Stats() Stats {
	return Stats{
		Triples:    len(d.triples),
		Entities:   len(d.indexes[EntityIndex]),
		Attributes: len(d.indexes[AttributeIndex]),
		Values:     len(d.indexes[ValueIndex]),
	}
}
