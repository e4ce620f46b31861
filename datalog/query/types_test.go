package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/janus-triples/datalog"
)

func TestSymbolIsVariable(t *testing.T) {
	tests := []struct {
		symbol   Symbol
		expected bool
	}{
		{"?x", true},
		{"?", true},
		{"?movie-id", true},
		{"x", false},
		{"", false},
		{"x?", false},
		{"movie/title", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.symbol), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.symbol.IsVariable())
		})
	}
}

func TestPart(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected PatternElement
	}{
		{"variable string", "?x", Variable{Name: "?x"}},
		{"literal string", "movie/title", Constant{Value: "movie/title"}},
		{"underscore is a literal", "_", Constant{Value: "_"}},
		{"int literal", 1979, Constant{Value: 1979}},
		{"float literal", 2.5, Constant{Value: 2.5}},
		{"keyword literal", datalog.NewKeyword(":a"), Constant{Value: datalog.NewKeyword(":a")}},
		{"variable symbol", Symbol("?y"), Variable{Name: "?y"}},
		{"literal symbol", Symbol("y"), Constant{Value: "y"}},
		{"explicit blank", Blank{}, Blank{}},
		{"explicit constant keeps sentinel", Constant{Value: "?not-a-var"}, Constant{Value: "?not-a-var"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Part(tt.input))
		})
	}
}

func TestNewPatternArity(t *testing.T) {
	_, err := NewPattern("?e", "a")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPatternArity))

	_, err = NewPattern("?e", "a", "?v", "?t")
	assert.True(t, errors.Is(err, ErrPatternArity))

	p, err := NewPattern("?e", "a", "?v")
	require.NoError(t, err)
	assert.Equal(t, Variable{Name: "?e"}, p.GetE())
	assert.Equal(t, Constant{Value: "a"}, p.GetA())
	assert.Equal(t, Variable{Name: "?v"}, p.GetV())
}

func TestPatternSymbols(t *testing.T) {
	p := MustPattern("?x", "a", "?x")
	assert.Equal(t, []Symbol{"?x"}, p.Symbols(), "repeated variables are listed once")

	p = MustPattern("?e", "?a", "?v")
	assert.Equal(t, []Symbol{"?e", "?a", "?v"}, p.Symbols())

	p = MustPattern(1, "a", Blank{})
	assert.Empty(t, p.Symbols())
}

func TestNewQuery(t *testing.T) {
	q, err := NewQuery(
		[]interface{}{"?year"},
		[][]interface{}{
			{"?id", "movie/title", "Alien"},
			{"?id", "movie/year", "?year"},
		})
	require.NoError(t, err)

	assert.Len(t, q.Where, 2)
	assert.Equal(t, []string{"?year"}, q.Columns())
	assert.Equal(t, `[:find ?year :where [?id "movie/title" "Alien"] [?id "movie/year" ?year]]`, q.String())
	assert.Empty(t, q.UnboundFindVariables())
}

func TestNewQueryRejectsBadArity(t *testing.T) {
	_, err := NewQuery(
		[]interface{}{"?x"},
		[][]interface{}{
			{"?x", "a", "b"},
			{"?x", "a"},
		})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPatternArity))
	assert.Contains(t, err.Error(), "where pattern 1")
}

func TestQueryValidate(t *testing.T) {
	q := &Query{
		Find:  []PatternElement{Variable{Name: "?x"}},
		Where: []Pattern{{Elements: [3]PatternElement{Variable{Name: "?x"}, nil, Blank{}}}},
	}
	err := q.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPattern))

	q = &Query{Find: []PatternElement{nil}}
	assert.True(t, errors.Is(q.Validate(), ErrInvalidPattern))
}

func TestUnboundFindVariables(t *testing.T) {
	q, err := NewQuery(
		[]interface{}{"?name", "?missing", "literal", "?missing"},
		[][]interface{}{{"?e", "name", "?name"}})
	require.NoError(t, err)

	assert.Equal(t, []Symbol{"?missing"}, q.UnboundFindVariables())
}

func TestExtractVariables(t *testing.T) {
	patterns := []Pattern{
		MustPattern("?id", "movie/title", "?title"),
		MustPattern("?id", "movie/year", "?year"),
		MustPattern("?p", "person/name", "?title"),
	}
	assert.Equal(t, []Symbol{"?id", "?title", "?year", "?p"}, ExtractVariables(patterns))
}
