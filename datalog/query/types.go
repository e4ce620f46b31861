package query

import (
	"strings"

	"github.com/wbrown/janus-triples/datalog"
)

// Symbol represents a variable in a query (e.g., ?x, ?name)
type Symbol string

// IsVariable returns true if this is a variable symbol (starts with ?)
func (s Symbol) IsVariable() bool {
	return len(s) > 0 && s[0] == '?'
}

// String returns the string representation
func (s Symbol) String() string {
	return string(s)
}

// PatternElement represents an element in a pattern.
// It is a concrete value, a variable, or a blank.
type PatternElement interface {
	IsVariable() bool
	IsBlank() bool
	String() string
}

// Variable represents a query variable (e.g., ?x)
type Variable struct {
	Name Symbol
}

func (v Variable) IsVariable() bool { return true }
func (v Variable) IsBlank() bool    { return false }
func (v Variable) String() string   { return v.Name.String() }

// Blank represents a blank/wildcard (_). It matches any value and binds nothing.
type Blank struct{}

func (b Blank) IsVariable() bool { return false }
func (b Blank) IsBlank() bool    { return true }
func (b Blank) String() string   { return "_" }

// Constant represents a concrete value in a pattern
type Constant struct {
	Value interface{}
}

func (c Constant) IsVariable() bool { return false }
func (c Constant) IsBlank() bool    { return false }
func (c Constant) String() string   { return datalog.FormatValue(c.Value) }

// Pattern represents a single [e a v] pattern in a where clause
type Pattern struct {
	Elements [3]PatternElement
}

// GetE returns the entity element
func (p Pattern) GetE() PatternElement { return p.Elements[0] }

// GetA returns the attribute element
func (p Pattern) GetA() PatternElement { return p.Elements[1] }

// GetV returns the value element
func (p Pattern) GetV() PatternElement { return p.Elements[2] }

// String returns a string representation of the pattern
func (p Pattern) String() string {
	parts := make([]string, len(p.Elements))
	for i, elem := range p.Elements {
		if elem == nil {
			parts[i] = "<nil>"
			continue
		}
		parts[i] = elem.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Symbols returns the variables bound by this pattern, in position order
// and without duplicates
func (p Pattern) Symbols() []Symbol {
	var symbols []Symbol
	for _, elem := range p.Elements {
		v, ok := elem.(Variable)
		if !ok {
			continue
		}
		if !containsSymbol(symbols, v.Name) {
			symbols = append(symbols, v.Name)
		}
	}
	return symbols
}

// Query represents a conjunctive Datalog query
type Query struct {
	Find  []PatternElement // Elements to return (variables or literals)
	Where []Pattern        // Patterns joined left to right
}

// Columns returns the display name of every find element
func (q Query) Columns() []string {
	columns := make([]string, len(q.Find))
	for i, elem := range q.Find {
		columns[i] = elem.String()
	}
	return columns
}

// String returns a string representation of the query
func (q Query) String() string {
	var sb strings.Builder
	sb.WriteString("[:find")
	for _, elem := range q.Find {
		sb.WriteString(" ")
		sb.WriteString(elem.String())
	}
	sb.WriteString(" :where")
	for _, pattern := range q.Where {
		sb.WriteString(" ")
		sb.WriteString(pattern.String())
	}
	sb.WriteString("]")
	return sb.String()
}
