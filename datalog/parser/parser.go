package parser

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/wbrown/janus-triples/datalog"
	"github.com/wbrown/janus-triples/datalog/edn"
	"github.com/wbrown/janus-triples/datalog/query"
)

// ParseQuery parses a Datalog query from EDN format.
// Both the vector form and the map form are accepted:
//
//	[:find ?year :where [?id :movie/title "Alien"] [?id :movie/year ?year]]
//	{:find [?year] :where [[?id :movie/title "Alien"] [?id :movie/year ?year]]}
func ParseQuery(input string) (*query.Query, error) {
	node, err := edn.Parse(input)
	if err != nil {
		return nil, fmt.Errorf("EDN parse error: %w", err)
	}
	return parseQueryNode(node)
}

// ParseMultipleQueries parses every query in input
func ParseMultipleQueries(input string) ([]*query.Query, error) {
	nodes, err := edn.ParseAll(input)
	if err != nil {
		return nil, fmt.Errorf("EDN parse error: %w", err)
	}

	queries := make([]*query.Query, 0, len(nodes))
	for i := range nodes {
		q, err := parseQueryNode(&nodes[i])
		if err != nil {
			return nil, fmt.Errorf("error parsing query %d: %w", i, err)
		}
		queries = append(queries, q)
	}
	return queries, nil
}

func parseQueryNode(node *edn.Node) (*query.Query, error) {
	var q *query.Query
	var err error

	switch node.Type {
	case edn.NodeVector:
		q, err = parseQueryVector(node)
	case edn.NodeMap:
		q, err = parseQueryMap(node)
	default:
		return nil, fmt.Errorf("query must be a vector or map, got %v", node.Type)
	}
	if err != nil {
		return nil, err
	}

	if len(q.Find) == 0 {
		return nil, fmt.Errorf("query must have at least one find element")
	}
	return q, nil
}

// parseQueryVector parses [:find ... :where ...]
func parseQueryVector(node *edn.Node) (*query.Query, error) {
	q := &query.Query{}
	seen := make(map[string]bool)

	i := 0
	for i < len(node.Nodes) {
		kw := node.Nodes[i]
		if kw.Type != edn.NodeKeyword {
			return nil, fmt.Errorf("expected keyword at %s, got %v", kw.Pos, kw.Type)
		}
		i++

		// A clause runs until the next keyword
		start := i
		for i < len(node.Nodes) && node.Nodes[i].Type != edn.NodeKeyword {
			i++
		}
		if err := parseClause(q, kw, node.Nodes[start:i], seen); err != nil {
			return nil, err
		}
	}

	return q, nil
}

// parseQueryMap parses {:find [...] :where [...]}
func parseQueryMap(node *edn.Node) (*query.Query, error) {
	entries, err := node.MapEntries()
	if err != nil {
		return nil, err
	}

	q := &query.Query{}
	seen := make(map[string]bool)
	for _, entry := range entries {
		kw, val := entry[0], entry[1]
		if kw.Type != edn.NodeKeyword {
			return nil, fmt.Errorf("expected keyword key at %s, got %v", kw.Pos, kw.Type)
		}
		if val.Type != edn.NodeVector {
			return nil, fmt.Errorf("%s value must be a vector, got %v", kw.Value, val.Type)
		}
		if err := parseClause(q, kw, val.Nodes, seen); err != nil {
			return nil, err
		}
	}

	return q, nil
}

func parseClause(q *query.Query, kw edn.Node, items []edn.Node, seen map[string]bool) error {
	if seen[kw.Value] {
		return fmt.Errorf("duplicate %s clause at %s", kw.Value, kw.Pos)
	}
	seen[kw.Value] = true

	switch kw.Value {
	case ":find":
		for i := range items {
			elem, err := parsePatternElement(&items[i])
			if err != nil {
				return fmt.Errorf("error parsing find element: %w", err)
			}
			q.Find = append(q.Find, elem)
		}

	case ":where":
		for i := range items {
			pattern, err := parsePattern(&items[i])
			if err != nil {
				return fmt.Errorf("error parsing pattern %d: %w", i, err)
			}
			q.Where = append(q.Where, pattern)
		}

	default:
		return fmt.Errorf("unknown query clause: %s", kw.Value)
	}
	return nil
}

// parsePattern parses an [e a v] vector
func parsePattern(node *edn.Node) (query.Pattern, error) {
	if node.Type != edn.NodeVector {
		return query.Pattern{}, fmt.Errorf("expected vector in :where clause at %s, got %v", node.Pos, node.Type)
	}
	if len(node.Nodes) != 3 {
		return query.Pattern{}, fmt.Errorf("%s at %s: %w, got %d", node, node.Pos, query.ErrPatternArity, len(node.Nodes))
	}

	var p query.Pattern
	for i := range node.Nodes {
		elem, err := parsePatternElement(&node.Nodes[i])
		if err != nil {
			return query.Pattern{}, err
		}
		p.Elements[i] = elem
	}
	return p, nil
}

// parsePatternElement parses a single pattern element.
// Symbols starting with ? are variables and _ is a blank. Every other form
// is a literal; bare symbols are string constants, so movie/title and
// "movie/title" mean the same thing.
func parsePatternElement(node *edn.Node) (query.PatternElement, error) {
	if node.Type == edn.NodeSymbol {
		sym := query.Symbol(node.Value)
		switch {
		case sym.IsVariable():
			return query.Variable{Name: sym}, nil
		case node.Value == "_":
			return query.Blank{}, nil
		}
	}

	v, err := nodeValue(node)
	if err != nil {
		return nil, err
	}
	return query.Constant{Value: v}, nil
}

// nodeValue converts a scalar EDN node to a value
func nodeValue(node *edn.Node) (datalog.Value, error) {
	switch node.Type {
	case edn.NodeNil:
		return nil, nil
	case edn.NodeBool:
		return node.Bool()
	case edn.NodeInt:
		v, err := node.Int()
		if errors.Is(err, strconv.ErrRange) {
			if u, uerr := node.Uint(); uerr == nil {
				return u, nil
			}
		}
		if err != nil {
			return nil, fmt.Errorf("invalid integer at %s: %w", node.Pos, err)
		}
		return v, nil
	case edn.NodeFloat:
		v, err := node.Float()
		if err != nil {
			return nil, fmt.Errorf("invalid float at %s: %w", node.Pos, err)
		}
		return v, nil
	case edn.NodeString, edn.NodeSymbol:
		return node.Value, nil
	case edn.NodeKeyword:
		return datalog.NewKeyword(node.Value), nil
	case edn.NodeTagged:
		return taggedValue(node)
	default:
		return nil, fmt.Errorf("unsupported value %v at %s", node.Type, node.Pos)
	}
}

// taggedValue handles #inst "RFC3339" and #bytes "hex"
func taggedValue(node *edn.Node) (datalog.Value, error) {
	inner := node.Nodes[0]
	if inner.Type != edn.NodeString {
		return nil, fmt.Errorf("#%s at %s expects a string, got %v", node.Value, node.Pos, inner.Type)
	}

	switch node.Value {
	case "inst":
		t, err := time.Parse(time.RFC3339Nano, inner.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid #inst at %s: %w", node.Pos, err)
		}
		return t, nil
	case "bytes":
		b, err := hex.DecodeString(inner.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid #bytes at %s: %w", node.Pos, err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown tag #%s at %s", node.Value, node.Pos)
	}
}

// ParseTriples parses a dataset: a vector (or list) of [e a v] vectors.
// Symbols are read as strings here; ?x in a dataset is just a string.
func ParseTriples(input string) ([]datalog.Triple, error) {
	node, err := edn.Parse(input)
	if err != nil {
		return nil, fmt.Errorf("EDN parse error: %w", err)
	}
	if node.Type != edn.NodeVector && node.Type != edn.NodeList {
		return nil, fmt.Errorf("dataset must be a vector of triples, got %v", node.Type)
	}

	triples := make([]datalog.Triple, 0, len(node.Nodes))
	for i := range node.Nodes {
		row := &node.Nodes[i]
		if row.Type != edn.NodeVector {
			return nil, fmt.Errorf("triple %d at %s must be a vector, got %v", i, row.Pos, row.Type)
		}
		if len(row.Nodes) != 3 {
			return nil, fmt.Errorf("triple %d at %s: %w, got %d", i, row.Pos, datalog.ErrTripleArity, len(row.Nodes))
		}

		var fields [3]datalog.Value
		for pos := range row.Nodes {
			v, err := nodeValue(&row.Nodes[pos])
			if err != nil {
				return nil, fmt.Errorf("triple %d: %w", i, err)
			}
			fields[pos] = v
		}
		triples = append(triples, datalog.NewTriple(fields[0], fields[1], fields[2]))
	}
	return triples, nil
}
