package executor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/janus-triples/datalog"
	"github.com/wbrown/janus-triples/datalog/query"
)

func TestMatchPart(t *testing.T) {
	bound := Empty.Bind("?x", 1)

	tests := []struct {
		name    string
		part    query.PatternElement
		value   datalog.Value
		ctx     Bindings
		ok      bool
		wantLen int
	}{
		{"unbound variable binds", query.Variable{Name: "?y"}, "anything", bound, true, 2},
		{"bound variable equal", query.Variable{Name: "?x"}, 1, bound, true, 1},
		{"bound variable numeric kinds", query.Variable{Name: "?x"}, int64(1), bound, true, 1},
		{"bound variable differs", query.Variable{Name: "?x"}, 2, bound, false, 1},
		{"constant equal", query.Constant{Value: "movie/title"}, "movie/title", Empty, true, 0},
		{"constant differs", query.Constant{Value: "movie/title"}, "movie/year", Empty, false, 0},
		{"constant string vs keyword", query.Constant{Value: "movie/title"}, datalog.NewKeyword("movie/title"), Empty, false, 0},
		{"constant int vs float", query.Constant{Value: 1979}, 1979.0, Empty, true, 0},
		{"constant nil", query.Constant{Value: nil}, nil, Empty, true, 0},
		{"blank", query.Blank{}, 42, bound, true, 1},
		{"nil element", nil, 42, Empty, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MatchPart(tt.part, tt.value, tt.ctx)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.wantLen, got.Len())
		})
	}
}

func TestMatchPartBindsTripleValue(t *testing.T) {
	b, ok := MatchPart(query.Variable{Name: "?title"}, "Alien", Empty)
	require.True(t, ok)
	v, found := b.Lookup("?title")
	require.True(t, found)
	assert.Equal(t, "Alien", v)
}

func TestMatchPatternRepeatedVariable(t *testing.T) {
	p := query.MustPattern("?x", "a", "?x")

	b, ok := MatchPattern(p, datalog.NewTriple(1, "a", 1), Empty)
	require.True(t, ok)
	v, _ := b.Lookup("?x")
	assert.Equal(t, 1, v)
	assert.Equal(t, 1, b.Len())

	_, ok = MatchPattern(p, datalog.NewTriple(1, "a", 2), Empty)
	assert.False(t, ok)
}

func TestMatchPatternAnyPositionFails(t *testing.T) {
	triple := datalog.NewTriple(1, "movie/year", 1979)

	for _, p := range []query.Pattern{
		query.MustPattern(2, "?a", "?v"),
		query.MustPattern("?e", "movie/title", "?v"),
		query.MustPattern("?e", "?a", 1980),
	} {
		_, ok := MatchPattern(p, triple, Empty)
		assert.False(t, ok, "pattern %s", p)
	}
}

func TestMatchPatternUsesExistingContext(t *testing.T) {
	p := query.MustPattern("?id", "movie/year", "?year")
	triple := datalog.NewTriple(1, "movie/year", 1979)

	b, ok := MatchPattern(p, triple, Empty.Bind("?id", 1))
	require.True(t, ok)
	assert.Equal(t, []query.Symbol{"?id", "?year"}, b.Symbols())

	_, ok = MatchPattern(p, triple, Empty.Bind("?id", 2))
	assert.False(t, ok)

	// The input context is left untouched
	ctx := Empty.Bind("?id", 1)
	_, _ = MatchPattern(p, triple, ctx)
	assert.Equal(t, 1, ctx.Len())
}

func TestMatchPatternBlanks(t *testing.T) {
	b, ok := MatchPattern(query.MustPattern(query.Blank{}, query.Blank{}, query.Blank{}), datalog.NewTriple(1, 2, 3), Empty)
	require.True(t, ok)
	assert.Equal(t, 0, b.Len())
}
