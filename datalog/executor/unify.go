package executor

import (
	"github.com/wbrown/janus-triples/datalog"
	"github.com/wbrown/janus-triples/datalog/query"
)

// MatchPart unifies one pattern element with one triple field.
// It returns the (possibly extended) context and true on success, or false
// when the element cannot match the value. A failed match is an ordinary
// outcome, not an error.
func MatchPart(part query.PatternElement, value datalog.Value, b Bindings) (Bindings, bool) {
	switch p := part.(type) {
	case query.Variable:
		bound, ok := b.Lookup(p.Name)
		if !ok {
			return b.Bind(p.Name, value), true
		}
		// Bound values are ground, so this is a literal comparison
		return MatchPart(query.Constant{Value: bound}, value, b)

	case query.Constant:
		if datalog.ValuesEqual(p.Value, value) {
			return b, true
		}
		return b, false

	case query.Blank:
		return b, true

	default:
		return b, false
	}
}

// MatchPattern unifies a pattern with a triple, position by position in
// E, A, V order. The first failing position fails the whole pattern.
func MatchPattern(p query.Pattern, t datalog.Triple, b Bindings) (Bindings, bool) {
	for pos, part := range p.Elements {
		var ok bool
		b, ok = MatchPart(part, t.Field(pos), b)
		if !ok {
			return b, false
		}
	}
	return b, true
}
