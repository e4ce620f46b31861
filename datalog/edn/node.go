package edn

import (
	"fmt"
	"strconv"
	"strings"
)

// NodeType represents the type of EDN node
type NodeType int

const (
	NodeNil NodeType = iota
	NodeBool
	NodeInt
	NodeFloat
	NodeString
	NodeSymbol
	NodeKeyword
	NodeList
	NodeVector
	NodeMap
	NodeTagged
)

var nodeNames = [...]string{
	NodeNil:     "nil",
	NodeBool:    "bool",
	NodeInt:     "int",
	NodeFloat:   "float",
	NodeString:  "string",
	NodeSymbol:  "symbol",
	NodeKeyword: "keyword",
	NodeList:    "list",
	NodeVector:  "vector",
	NodeMap:     "map",
	NodeTagged:  "tagged",
}

func (t NodeType) String() string {
	if int(t) < len(nodeNames) {
		return nodeNames[t]
	}
	return fmt.Sprintf("NodeType(%d)", int(t))
}

// Node represents an EDN value
type Node struct {
	Type  NodeType
	Pos   Pos
	Value string // atom text; tag name for NodeTagged
	Nodes []Node // collection items; map nodes alternate key, value; tagged nodes hold one item
}

// String renders the node back to EDN
func (n Node) String() string {
	switch n.Type {
	case NodeNil:
		return "nil"
	case NodeString:
		return Quote(n.Value)
	case NodeList:
		return "(" + joinNodes(n.Nodes) + ")"
	case NodeVector:
		return "[" + joinNodes(n.Nodes) + "]"
	case NodeMap:
		return "{" + joinNodes(n.Nodes) + "}"
	case NodeTagged:
		return "#" + n.Value + " " + joinNodes(n.Nodes)
	default:
		return n.Value
	}
}

func joinNodes(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, node := range nodes {
		parts[i] = node.String()
	}
	return strings.Join(parts, " ")
}

// Int returns the value of an int node
func (n Node) Int() (int64, error) {
	if n.Type != NodeInt {
		return 0, fmt.Errorf("%s at %s is not an int", n.Type, n.Pos)
	}
	return strconv.ParseInt(strings.TrimSuffix(n.Value, "N"), 10, 64)
}

// Uint returns the value of an int node that is too large for Int
func (n Node) Uint() (uint64, error) {
	if n.Type != NodeInt {
		return 0, fmt.Errorf("%s at %s is not an int", n.Type, n.Pos)
	}
	return strconv.ParseUint(strings.TrimPrefix(strings.TrimSuffix(n.Value, "N"), "+"), 10, 64)
}

// Float returns the value of a float node
func (n Node) Float() (float64, error) {
	if n.Type != NodeFloat {
		return 0, fmt.Errorf("%s at %s is not a float", n.Type, n.Pos)
	}
	return strconv.ParseFloat(strings.TrimSuffix(n.Value, "M"), 64)
}

// Bool returns the value of a bool node
func (n Node) Bool() (bool, error) {
	if n.Type != NodeBool {
		return false, fmt.Errorf("%s at %s is not a bool", n.Type, n.Pos)
	}
	return n.Value == "true", nil
}

// MapEntries returns the key/value pairs of a map node in source order
func (n Node) MapEntries() ([][2]Node, error) {
	if n.Type != NodeMap {
		return nil, fmt.Errorf("%s at %s is not a map", n.Type, n.Pos)
	}
	entries := make([][2]Node, 0, len(n.Nodes)/2)
	for i := 0; i+1 < len(n.Nodes); i += 2 {
		entries = append(entries, [2]Node{n.Nodes[i], n.Nodes[i+1]})
	}
	return entries, nil
}

// IsCollection returns true for lists, vectors and maps
func (n Node) IsCollection() bool {
	return n.Type == NodeList || n.Type == NodeVector || n.Type == NodeMap
}

// Quote renders s as an EDN string literal. Only the escapes the lexer
// reads back are written; other characters are copied as they are.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case '\n':
			sb.WriteString(`\n`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
