package executor

import (
	"github.com/wbrown/janus-triples/datalog"
	"github.com/wbrown/janus-triples/datalog/query"
	"github.com/wbrown/janus-triples/datalog/storage"
)

// matchStrategy represents different index lookup strategies
type matchStrategy interface {
	isMatchStrategy()
	String() string
}

// useEntityIndex uses the entity index when E is a literal
type useEntityIndex struct {
	e datalog.Value
}

func (useEntityIndex) isMatchStrategy() {}
func (s useEntityIndex) String() string { return storage.EntityIndex.String() }

// useAttributeIndex uses the attribute index when A is a literal
type useAttributeIndex struct {
	a datalog.Value
}

func (useAttributeIndex) isMatchStrategy() {}
func (s useAttributeIndex) String() string { return storage.AttributeIndex.String() }

// useValueIndex uses the value index when V is a literal
type useValueIndex struct {
	v datalog.Value
}

func (useValueIndex) isMatchStrategy() {}
func (s useValueIndex) String() string { return storage.ValueIndex.String() }

// useLinearScan scans every triple
type useLinearScan struct{}

func (useLinearScan) isMatchStrategy() {}
func (s useLinearScan) String() string { return "linear-scan" }

// chooseStrategy picks the index of the first literal position, checking
// E, then A, then V. Buckets are never intersected, so a pattern with several
// literals still reads only one bucket.
func chooseStrategy(p query.Pattern) matchStrategy {
	if c, ok := p.GetE().(query.Constant); ok {
		return useEntityIndex{e: c.Value}
	}
	if c, ok := p.GetA().(query.Constant); ok {
		return useAttributeIndex{a: c.Value}
	}
	if c, ok := p.GetV().(query.Constant); ok {
		return useValueIndex{v: c.Value}
	}
	return useLinearScan{}
}

// getCandidates returns the triples the strategy reads
func getCandidates(db *storage.Database, strategy matchStrategy) []datalog.Triple {
	switch s := strategy.(type) {
	case useEntityIndex:
		return db.ByEntity(s.e)
	case useAttributeIndex:
		return db.ByAttribute(s.a)
	case useValueIndex:
		return db.ByValue(s.v)
	default:
		return db.Triples()
	}
}

// RelevantTriples returns the triples that could match p, in store order.
// Every triple that matches p is included; the result may also hold triples
// that disagree with p on other positions.
func RelevantTriples(p query.Pattern, db *storage.Database) []datalog.Triple {
	return getCandidates(db, chooseStrategy(p))
}
