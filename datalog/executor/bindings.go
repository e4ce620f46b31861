package executor

import (
	"strings"

	"github.com/wbrown/janus-triples/datalog"
	"github.com/wbrown/janus-triples/datalog/query"
)

// Bindings is an immutable binding context mapping variables to the ground
// values they were matched against.
//
// It is an append-only log of bindings with structural sharing: Bind returns
// a new context that points at the receiver, so contexts forked from a
// common parent share its bindings and never see each other's additions.
// The zero value is the empty context.
type Bindings struct {
	head *binding
}

type binding struct {
	name  query.Symbol
	value datalog.Value
	next  *binding
	size  int // distinct names from this node to the end of the log
}

// Empty is the context with no bindings
var Empty = Bindings{}

// Lookup returns the value bound to name
func (b Bindings) Lookup(name query.Symbol) (datalog.Value, bool) {
	for n := b.head; n != nil; n = n.next {
		if n.name == name {
			return n.value, true
		}
	}
	return nil, false
}

// Bind returns a new context that also binds name to value.
// The receiver is not modified. Binding a name that is already bound
// shadows the earlier value.
func (b Bindings) Bind(name query.Symbol, value datalog.Value) Bindings {
	size := b.Len()
	if _, bound := b.Lookup(name); !bound {
		size++
	}
	return Bindings{head: &binding{name: name, value: value, next: b.head, size: size}}
}

// Len returns the number of bound variables
func (b Bindings) Len() int {
	if b.head == nil {
		return 0
	}
	return b.head.size
}

// Symbols returns the bound variables in the order they were bound
func (b Bindings) Symbols() []query.Symbol {
	symbols := make([]query.Symbol, 0, b.Len())
	seen := make(map[query.Symbol]bool, b.Len())
	for n := b.head; n != nil; n = n.next {
		if !seen[n.name] {
			seen[n.name] = true
			symbols = append(symbols, n.name)
		}
	}
	// The log is newest first
	for i, j := 0, len(symbols)-1; i < j; i, j = i+1, j-1 {
		symbols[i], symbols[j] = symbols[j], symbols[i]
	}
	return symbols
}

// Map returns the bindings as a map
func (b Bindings) Map() map[query.Symbol]datalog.Value {
	m := make(map[query.Symbol]datalog.Value, b.Len())
	for n := b.head; n != nil; n = n.next {
		if _, ok := m[n.name]; !ok {
			m[n.name] = n.value
		}
	}
	return m
}

// String renders the context as {?id 1, ?year 1979}
func (b Bindings) String() string {
	symbols := b.Symbols()
	parts := make([]string, len(symbols))
	for i, sym := range symbols {
		v, _ := b.Lookup(sym)
		parts[i] = string(sym) + " " + datalog.FormatValue(v)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
