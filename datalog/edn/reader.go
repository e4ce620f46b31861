package edn

import (
	"fmt"
	"regexp"
	"unicode"
)

var (
	intPattern   = regexp.MustCompile(`^[+-]?\d+N?$`)
	floatPattern = regexp.MustCompile(`^[+-]?\d+(\.\d+)?([eE][+-]?\d+)?M?$`)
)

// Reader builds nodes from a token stream
type Reader struct {
	lexer  *Lexer
	peeked *Token
}

// NewReader creates a reader over input
func NewReader(input string) *Reader {
	return &Reader{lexer: NewLexer(input)}
}

// Parse reads exactly one value from input
func Parse(input string) (*Node, error) {
	r := NewReader(input)
	node, err := r.Read()
	if err != nil {
		return nil, err
	}
	if node == nil {
		return nil, fmt.Errorf("empty input")
	}

	tok, err := r.peek()
	if err != nil {
		return nil, err
	}
	if tok.Type != TokenEOF {
		return nil, fmt.Errorf("unexpected %s after value at %s", tok.Type, tok.Pos)
	}
	return node, nil
}

// ParseAll reads every top-level value in input
func ParseAll(input string) ([]Node, error) {
	r := NewReader(input)
	var nodes []Node
	for {
		node, err := r.Read()
		if err != nil {
			return nil, err
		}
		if node == nil {
			return nodes, nil
		}
		nodes = append(nodes, *node)
	}
}

// Read returns the next top-level value, or nil at end of input
func (r *Reader) Read() (*Node, error) {
	for {
		tok, err := r.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type == TokenEOF {
			return nil, nil
		}
		node, discarded, err := r.readForm()
		if err != nil {
			return nil, err
		}
		if !discarded {
			return node, nil
		}
	}
}

func (r *Reader) peek() (Token, error) {
	if r.peeked == nil {
		tok, err := r.lexer.Next()
		if err != nil {
			return Token{}, err
		}
		r.peeked = &tok
	}
	return *r.peeked, nil
}

func (r *Reader) next() (Token, error) {
	tok, err := r.peek()
	r.peeked = nil
	return tok, err
}

// readForm reads one form. discarded is true when the form was a #_ form.
func (r *Reader) readForm() (node *Node, discarded bool, err error) {
	tok, err := r.next()
	if err != nil {
		return nil, false, err
	}

	switch tok.Type {
	case TokenEOF:
		return nil, false, fmt.Errorf("unexpected EOF at %s", tok.Pos)
	case TokenString:
		return &Node{Type: NodeString, Value: tok.Value, Pos: tok.Pos}, false, nil
	case TokenAtom:
		node, err := classifyAtom(tok)
		return node, false, err
	case TokenLeftParen:
		node, err := r.readSeq(NodeList, TokenRightParen, tok.Pos)
		return node, false, err
	case TokenLeftBracket:
		node, err := r.readSeq(NodeVector, TokenRightBracket, tok.Pos)
		return node, false, err
	case TokenLeftBrace:
		node, err := r.readSeq(NodeMap, TokenRightBrace, tok.Pos)
		if err == nil && len(node.Nodes)%2 != 0 {
			err = fmt.Errorf("map starting at %s has a key without a value", tok.Pos)
		}
		return node, false, err
	case TokenDiscard:
		if _, err := r.readValue(tok.Pos); err != nil {
			return nil, false, err
		}
		return nil, true, nil
	case TokenTag:
		inner, err := r.readValue(tok.Pos)
		if err != nil {
			return nil, false, err
		}
		return &Node{Type: NodeTagged, Value: tok.Value, Pos: tok.Pos, Nodes: []Node{*inner}}, false, nil
	default:
		return nil, false, fmt.Errorf("unexpected %s at %s", tok.Type, tok.Pos)
	}
}

// readValue reads the next non-discarded form following a tag or #_
func (r *Reader) readValue(after Pos) (*Node, error) {
	for {
		tok, err := r.peek()
		if err != nil {
			return nil, err
		}
		if tok.Type == TokenEOF || isCloser(tok.Type) {
			return nil, fmt.Errorf("missing form after dispatch at %s", after)
		}
		node, discarded, err := r.readForm()
		if err != nil {
			return nil, err
		}
		if !discarded {
			return node, nil
		}
	}
}

func (r *Reader) readSeq(nt NodeType, closer TokenType, start Pos) (*Node, error) {
	node := &Node{Type: nt, Pos: start}
	for {
		tok, err := r.peek()
		if err != nil {
			return nil, err
		}
		switch {
		case tok.Type == closer:
			r.peeked = nil
			return node, nil
		case tok.Type == TokenEOF:
			return nil, fmt.Errorf("unterminated %s starting at %s", nt, start)
		case isCloser(tok.Type):
			return nil, fmt.Errorf("mismatched %s at %s in %s starting at %s", tok.Type, tok.Pos, nt, start)
		}

		item, discarded, err := r.readForm()
		if err != nil {
			return nil, err
		}
		if !discarded {
			node.Nodes = append(node.Nodes, *item)
		}
	}
}

func isCloser(t TokenType) bool {
	return t == TokenRightParen || t == TokenRightBracket || t == TokenRightBrace
}

// classifyAtom turns atom text into a typed node
func classifyAtom(tok Token) (*Node, error) {
	text := tok.Value
	node := &Node{Value: text, Pos: tok.Pos}

	switch {
	case text == "nil":
		node.Type = NodeNil
	case text == "true" || text == "false":
		node.Type = NodeBool
	case text[0] == ':':
		if len(text) == 1 {
			return nil, fmt.Errorf("empty keyword at %s", tok.Pos)
		}
		if err := validateSymbol(text[1:]); err != nil {
			return nil, fmt.Errorf("invalid keyword at %s: %w", tok.Pos, err)
		}
		node.Type = NodeKeyword
	case intPattern.MatchString(text):
		node.Type = NodeInt
	case floatPattern.MatchString(text):
		node.Type = NodeFloat
	default:
		if err := validateSymbol(text); err != nil {
			return nil, fmt.Errorf("invalid symbol at %s: %w", tok.Pos, err)
		}
		node.Type = NodeSymbol
	}
	return node, nil
}

func validateSymbol(s string) error {
	first := rune(s[0])
	if unicode.IsDigit(first) {
		return fmt.Errorf("%q starts with a digit", s)
	}
	if (first == '+' || first == '-' || first == '.') && len(s) > 1 && unicode.IsDigit(rune(s[1])) {
		return fmt.Errorf("%q is not a valid number", s)
	}
	for _, ch := range s {
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) {
			continue
		}
		switch ch {
		case '.', '*', '+', '!', '-', '_', '?', '$', '%', '&', '=', '<', '>', '/', ':', '#', '\'':
			continue
		}
		return fmt.Errorf("invalid character %q in %q", ch, s)
	}
	return nil
}
