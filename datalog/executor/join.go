package executor

import (
	"github.com/wbrown/janus-triples/datalog"
	"github.com/wbrown/janus-triples/datalog/query"
	"github.com/wbrown/janus-triples/datalog/storage"
)

// QuerySingle matches p against every relevant triple under context b and
// returns the successful contexts in candidate order
func QuerySingle(p query.Pattern, db *storage.Database, b Bindings) []Bindings {
	return matchCandidates(p, RelevantTriples(p, db), b, nil)
}

// QueryWhere joins patterns left to right, starting from the empty context.
// Each pattern replaces the current contexts by the concatenation of their
// successors, so the result is ordered by context, then by triple. An empty
// pattern list yields the single empty context.
func QueryWhere(patterns []query.Pattern, db *storage.Database) []Bindings {
	return queryWhere(&BaseContext{}, patterns, db)
}

func queryWhere(ctx Context, patterns []query.Pattern, db *storage.Database) []Bindings {
	contexts := []Bindings{Empty}

	for _, p := range patterns {
		// Candidates depend only on the pattern's literals, not on bindings
		strategy := chooseStrategy(p)
		candidates := getCandidates(db, strategy)
		ctx.SelectIndex(p, strategy.String(), len(candidates))

		in := contexts
		contexts = ctx.MatchPattern(p, len(in), len(candidates), func() []Bindings {
			var out []Bindings
			for _, b := range in {
				out = matchCandidates(p, candidates, b, out)
			}
			return out
		})

		if len(contexts) == 0 {
			// Every later pattern would start from nothing
			return nil
		}
	}

	return contexts
}

// matchCandidates appends to out every context produced by matching p
// against candidates under b
func matchCandidates(p query.Pattern, candidates []datalog.Triple, b Bindings, out []Bindings) []Bindings {
	for _, t := range candidates {
		if next, ok := MatchPattern(p, t, b); ok {
			out = append(out, next)
		}
	}
	return out
}
