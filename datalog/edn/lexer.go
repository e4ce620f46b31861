package edn

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer produces EDN tokens on demand
type Lexer struct {
	input string
	pos   int
	line  int
	col   int
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string) *Lexer {
	return &Lexer{input: input, line: 1, col: 1}
}

// Next returns the next token, or a TokenEOF token at end of input
func (l *Lexer) Next() (Token, error) {
	l.skipWhitespaceAndComments()

	start := Pos{Line: l.line, Col: l.col}
	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: start}, nil
	}

	ch := l.input[l.pos]
	if tt, ok := delimiters[ch]; ok {
		l.advance()
		return Token{Type: tt, Pos: start}, nil
	}

	switch ch {
	case '"':
		s, err := l.readString(start)
		if err != nil {
			return Token{}, err
		}
		return Token{Type: TokenString, Value: s, Pos: start}, nil
	case '#':
		l.advance()
		if l.pos < len(l.input) && l.input[l.pos] == '_' {
			l.advance()
			return Token{Type: TokenDiscard, Pos: start}, nil
		}
		name := l.readAtom()
		if name == "" {
			return Token{}, fmt.Errorf("dispatch '#' without tag at %s", start)
		}
		return Token{Type: TokenTag, Value: name, Pos: start}, nil
	}

	atom := l.readAtom()
	if atom == "" {
		r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
		return Token{}, fmt.Errorf("unexpected character %q at %s", r, start)
	}
	return Token{Type: TokenAtom, Value: atom, Pos: start}, nil
}

// Tokens lexes the whole input
func (l *Lexer) Tokens() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

var delimiters = map[byte]TokenType{
	'(': TokenLeftParen,
	')': TokenRightParen,
	'[': TokenLeftBracket,
	']': TokenRightBracket,
	'{': TokenLeftBrace,
	'}': TokenRightBrace,
}

// advance moves past one character, which may span several bytes
func (l *Lexer) advance() {
	if l.pos >= len(l.input) {
		return
	}
	if l.input[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	_, width := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += width
}

// peekRune decodes the character at the current position
func (l *Lexer) peekRune() rune {
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

// skipWhitespaceAndComments skips whitespace, commas and ; comments
func (l *Lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.input) {
		r := l.peekRune()
		switch {
		case r == ',' || unicode.IsSpace(r):
			l.advance()
		case r == ';':
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) readString(start Pos) (string, error) {
	var sb strings.Builder
	l.advance() // opening quote

	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch ch {
		case '"':
			l.advance()
			return sb.String(), nil
		case '\\':
			l.advance()
			if l.pos >= len(l.input) {
				return "", fmt.Errorf("unterminated string starting at %s", start)
			}
			esc := l.input[l.pos]
			switch esc {
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case 'n':
				sb.WriteByte('\n')
			case '\\', '"':
				sb.WriteByte(esc)
			case 'u':
				r, err := l.readUnicodeEscape()
				if err != nil {
					return "", err
				}
				sb.WriteRune(r)
				continue
			default:
				return "", fmt.Errorf("invalid escape sequence '\\%c' at %d:%d", esc, l.line, l.col)
			}
			l.advance()
		default:
			from := l.pos
			l.advance()
			sb.WriteString(l.input[from:l.pos])
		}
	}

	return "", fmt.Errorf("unterminated string starting at %s", start)
}

// readUnicodeEscape reads the XXXX of a \uXXXX escape, positioned on the u
func (l *Lexer) readUnicodeEscape() (rune, error) {
	at := Pos{Line: l.line, Col: l.col}
	l.advance()
	if l.pos+4 > len(l.input) {
		return 0, fmt.Errorf("incomplete unicode escape at %s", at)
	}
	n, err := strconv.ParseUint(l.input[l.pos:l.pos+4], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid unicode escape at %s: %w", at, err)
	}
	for i := 0; i < 4; i++ {
		l.advance()
	}
	return rune(n), nil
}

// readAtom consumes bytes up to the next delimiter, quote, comment or space
func (l *Lexer) readAtom() string {
	start := l.pos
	for l.pos < len(l.input) {
		r := l.peekRune()
		if r < utf8.RuneSelf {
			if _, ok := delimiters[byte(r)]; ok {
				break
			}
		}
		if r == '"' || r == ';' || r == ',' || unicode.IsSpace(r) {
			break
		}
		l.advance()
	}
	return l.input[start:l.pos]
}
