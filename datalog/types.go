package datalog

import (
	"errors"
	"fmt"
)

// Triple is the fundamental unit of data in the fact store.
// It represents a single fact: Entity-Attribute-Value.
type Triple struct {
	E Value // Entity identifier
	A Value // Attribute
	V Value // Any value (see value.go for valid types)
}

// NewTriple creates a triple from its three fields
func NewTriple(e, a, v Value) Triple {
	return Triple{E: e, A: a, V: v}
}

// Field returns the field at the given position (0=E, 1=A, 2=V)
func (t Triple) Field(pos int) Value {
	switch pos {
	case 0:
		return t.E
	case 1:
		return t.A
	case 2:
		return t.V
	}
	panic(fmt.Sprintf("triple position out of range: %d", pos))
}

// Equal reports whether two triples carry equal values in every position
func (t Triple) Equal(other Triple) bool {
	return ValuesEqual(t.E, other.E) &&
		ValuesEqual(t.A, other.A) &&
		ValuesEqual(t.V, other.V)
}

// String returns a string representation of the Triple
func (t Triple) String() string {
	return fmt.Sprintf("[%s %s %s]", FormatValue(t.E), FormatValue(t.A), FormatValue(t.V))
}

// Keyword represents a keyword value such as :movie/title.
// Keywords only equal other keywords; they never equal the plain string
// with the same text.
type Keyword struct {
	value string // The keyword string (e.g., ":movie/title")
}

// NewKeyword creates a keyword
func NewKeyword(s string) Keyword {
	return Keyword{value: s}
}

// String returns the keyword string
func (k Keyword) String() string {
	return k.value
}

// Compare compares two keywords
func (k Keyword) Compare(other Keyword) int {
	if k.value < other.value {
		return -1
	} else if k.value > other.value {
		return 1
	}
	return 0
}

// ErrTripleArity is returned by triple suppliers when a record does not
// have exactly three fields
var ErrTripleArity = errors.New("triple must have exactly 3 fields")
