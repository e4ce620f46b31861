package executor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wbrown/janus-triples/datalog"
	"github.com/wbrown/janus-triples/datalog/query"
	"github.com/wbrown/janus-triples/datalog/storage"
)

// ErrUnboundVariable is returned when a find variable is never bound by the
// where patterns
var ErrUnboundVariable = query.ErrUnboundVariable

// Tuple represents a single projected result row
type Tuple []datalog.Value

// Actualize projects a context onto the find elements: variables yield their
// bound value and literals yield themselves, in find order.
// An unbound variable fails with ErrUnboundVariable.
func Actualize(b Bindings, find []query.PatternElement) (Tuple, error) {
	return actualize(b, find, false)
}

func actualize(b Bindings, find []query.PatternElement, allowUnbound bool) (Tuple, error) {
	tuple := make(Tuple, len(find))
	for i, elem := range find {
		switch e := elem.(type) {
		case query.Variable:
			v, ok := b.Lookup(e.Name)
			if !ok && !allowUnbound {
				return nil, fmt.Errorf("%w: %s", ErrUnboundVariable, e.Name)
			}
			tuple[i] = v
		case query.Constant:
			tuple[i] = e.Value
		case query.Blank:
			tuple[i] = nil
		default:
			return nil, fmt.Errorf("%w: find element %d is %T", query.ErrInvalidPattern, i, elem)
		}
	}
	return tuple, nil
}

// Query runs q against db with default options and returns one tuple per
// successful join, in join order
func Query(q *query.Query, db *storage.Database) ([]Tuple, error) {
	return NewExecutor(db, Options{}).Execute(q)
}

// SortTuples orders tuples lexicographically by datalog.CompareValues.
// The sort is stable, so equal rows keep their join order.
func SortTuples(tuples []Tuple) {
	sort.SliceStable(tuples, func(i, j int) bool {
		return compareTuples(tuples[i], tuples[j]) < 0
	})
}

func compareTuples(a, b Tuple) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := datalog.CompareValues(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// String renders the tuple as [1979 "Alien"]
func (t Tuple) String() string {
	parts := make([]string, len(t))
	for i, v := range t {
		parts[i] = datalog.FormatValue(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
