package query

import (
	"errors"
	"fmt"
)

var (
	// ErrPatternArity is returned when a pattern does not have exactly three elements
	ErrPatternArity = errors.New("pattern must have exactly 3 elements")

	// ErrInvalidPattern is returned for patterns with missing elements
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrUnboundVariable is returned when a find variable is not bound by any where pattern
	ErrUnboundVariable = errors.New("unbound variable")
)

// Part converts a shorthand value into a pattern element.
// Strings starting with ? become variables; every other value, including
// strings without the prefix, becomes a constant. Values that already are
// pattern elements are returned unchanged.
func Part(v interface{}) PatternElement {
	switch val := v.(type) {
	case PatternElement:
		return val
	case Symbol:
		if val.IsVariable() {
			return Variable{Name: val}
		}
		return Constant{Value: string(val)}
	case string:
		if Symbol(val).IsVariable() {
			return Variable{Name: Symbol(val)}
		}
	}
	return Constant{Value: v}
}

// NewPattern builds a pattern from three shorthand parts
func NewPattern(parts ...interface{}) (Pattern, error) {
	if len(parts) != 3 {
		return Pattern{}, fmt.Errorf("%w, got %d", ErrPatternArity, len(parts))
	}
	var p Pattern
	for i, part := range parts {
		p.Elements[i] = Part(part)
	}
	return p, nil
}

// MustPattern is like NewPattern but panics on error
func MustPattern(parts ...interface{}) Pattern {
	p, err := NewPattern(parts...)
	if err != nil {
		panic(err)
	}
	return p
}

// NewQuery builds a query from the {find, where} shorthand:
//
//	NewQuery(
//		[]interface{}{"?year"},
//		[][]interface{}{
//			{"?id", "movie/title", "Alien"},
//			{"?id", "movie/year", "?year"},
//		})
//
// Arity errors are reported here, never during matching.
// Find variables that no pattern binds are not an error at this point;
// see Query.UnboundFindVariables.
func NewQuery(find []interface{}, where [][]interface{}) (*Query, error) {
	q := &Query{
		Find:  make([]PatternElement, len(find)),
		Where: make([]Pattern, len(where)),
	}
	for i, f := range find {
		q.Find[i] = Part(f)
	}
	for i, parts := range where {
		p, err := NewPattern(parts...)
		if err != nil {
			return nil, fmt.Errorf("where pattern %d: %w", i, err)
		}
		q.Where[i] = p
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// Validate checks the structure of a query: every find element and every
// pattern element must be present
func (q *Query) Validate() error {
	for i, elem := range q.Find {
		if elem == nil {
			return fmt.Errorf("%w: find element %d is nil", ErrInvalidPattern, i)
		}
	}
	for i, p := range q.Where {
		for pos, elem := range p.Elements {
			if elem == nil {
				return fmt.Errorf("%w: where pattern %d element %d is nil", ErrInvalidPattern, i, pos)
			}
		}
	}
	return nil
}

// UnboundFindVariables returns the find variables that no where pattern binds
func (q *Query) UnboundFindVariables() []Symbol {
	bound := ExtractVariables(q.Where)
	var unbound []Symbol
	for _, elem := range q.Find {
		v, ok := elem.(Variable)
		if !ok {
			continue
		}
		if !containsSymbol(bound, v.Name) && !containsSymbol(unbound, v.Name) {
			unbound = append(unbound, v.Name)
		}
	}
	return unbound
}
