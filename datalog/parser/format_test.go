package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wbrown/janus-triples/datalog"
	"github.com/wbrown/janus-triples/datalog/query"
)

func TestFormatQueryEDN(t *testing.T) {
	tests := []struct {
		name     string
		query    *query.Query
		expected string
	}{
		{
			name: "join on entity",
			query: &query.Query{
				Find: []query.PatternElement{query.Variable{Name: "?year"}},
				Where: []query.Pattern{
					query.MustPattern("?id", datalog.NewKeyword(":movie/title"), "Alien"),
					query.MustPattern("?id", datalog.NewKeyword(":movie/year"), "?year"),
				},
			},
			expected: `[:find ?year
 :where [?id :movie/title "Alien"]
        [?id :movie/year ?year]]`,
		},
		{
			name: "literals and blanks",
			query: &query.Query{
				Find: []query.PatternElement{
					query.Variable{Name: "?e"},
					query.Constant{Value: "tag"},
				},
				Where: []query.Pattern{
					query.MustPattern("?e", "score", query.Blank{}),
					query.MustPattern("?e", "ratio", 0.25),
					query.MustPattern("?e", "flag", false),
				},
			},
			expected: `[:find ?e "tag"
 :where [?e "score" _]
        [?e "ratio" 0.25]
        [?e "flag" false]]`,
		},
		{
			name: "empty where",
			query: &query.Query{
				Find: []query.PatternElement{query.Constant{Value: 1}},
			},
			expected: `[:find 1
 :where]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatQuery(tt.query))
		})
	}
}

func TestFormatQueryRoundTrip(t *testing.T) {
	inputs := []string{
		`[:find ?year :where [?id :movie/title "Alien"] [?id :movie/year ?year]]`,
		`[:find ?e "x" :where [?e _ 1.5] [?e "quote\"d" nil] [?e :b true]]`,
		`[:find ?e :where [?e :released #inst "1979-05-25T00:00:00Z"] [?e :blob #bytes "cafe"]]`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			q, err := ParseQuery(input)
			require.NoError(t, err)

			again, err := ParseQuery(FormatQuery(q))
			require.NoError(t, err)
			assert.Equal(t, q.String(), again.String())
		})
	}
}

func TestFormatQueryControlCharacters(t *testing.T) {
	for _, s := range []string{"bell\x07", "nul\x00 esc\x1b", "città…", "tab\tnl\n"} {
		q := &query.Query{
			Find:  []query.PatternElement{query.Variable{Name: "?e"}},
			Where: []query.Pattern{query.MustPattern("?e", "title", s)},
		}

		again, err := ParseQuery(FormatQuery(q))
		require.NoError(t, err, FormatQuery(q))
		assert.Equal(t, query.Constant{Value: s}, again.Where[0].GetV())
	}
}
