package edn

import "fmt"

// TokenType represents the type of EDN token
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenString
	TokenAtom         // symbols, keywords, numbers, nil, true, false
	TokenTag          // #inst, #bytes, ...
	TokenDiscard      // #_
	TokenLeftParen    // (
	TokenRightParen   // )
	TokenLeftBracket  // [
	TokenRightBracket // ]
	TokenLeftBrace    // {
	TokenRightBrace   // }
)

var tokenNames = [...]string{
	TokenEOF:          "EOF",
	TokenString:       "string",
	TokenAtom:         "atom",
	TokenTag:          "tag",
	TokenDiscard:      "#_",
	TokenLeftParen:    "(",
	TokenRightParen:   ")",
	TokenLeftBracket:  "[",
	TokenRightBracket: "]",
	TokenLeftBrace:    "{",
	TokenRightBrace:   "}",
}

func (t TokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Pos is a 1-based line and column in the input
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Token represents a lexical token in EDN
type Token struct {
	Type  TokenType
	Value string // unescaped text for strings, raw text for atoms, name for tags
	Pos   Pos
}

// String returns a string representation of the token
func (t Token) String() string {
	switch t.Type {
	case TokenString:
		return fmt.Sprintf("%s[%s]:%q", t.Type, t.Pos, t.Value)
	case TokenAtom, TokenTag:
		return fmt.Sprintf("%s[%s]:%s", t.Type, t.Pos, t.Value)
	default:
		return fmt.Sprintf("%s[%s]", t.Type, t.Pos)
	}
}
