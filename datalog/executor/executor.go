package executor

import (
	"fmt"
	"strings"

	"github.com/wbrown/janus-triples/datalog/annotations"
	"github.com/wbrown/janus-triples/datalog/query"
	"github.com/wbrown/janus-triples/datalog/storage"
)

// Executor runs conjunctive queries against a fact store.
// It holds no per-query state and may be shared between goroutines.
type Executor struct {
	db      *storage.Database
	options Options
}

// NewExecutor creates a query executor over db. A nil db is treated as an
// empty store.
func NewExecutor(db *storage.Database, opts Options) *Executor {
	if db == nil {
		db = storage.NewDatabase(nil)
	}
	return &Executor{db: db, options: opts}
}

// Database returns the store queries run against
func (e *Executor) Database() *storage.Database {
	return e.db
}

// Execute runs a query and returns its rows in join order.
// Annotation events go to Options.Handler when it is set.
func (e *Executor) Execute(q *query.Query) ([]Tuple, error) {
	return e.ExecuteWithContext(NewContext(e.options.Handler), q)
}

// ExecuteWithContext runs a query with annotation support
func (e *Executor) ExecuteWithContext(ctx Context, q *query.Query) ([]Tuple, error) {
	if q == nil {
		return nil, fmt.Errorf("%w: nil query", query.ErrInvalidPattern)
	}
	ctx.QueryBegin(q.String())

	// Structure and unbound variables are checked before any matching
	if err := q.Validate(); err != nil {
		ctx.QueryRejected(annotations.ErrorQueryValidation, err)
		ctx.QueryComplete(0, 0, err)
		return nil, err
	}
	if !e.options.AllowUnboundFind {
		if unbound := q.UnboundFindVariables(); len(unbound) > 0 {
			err := unboundError(unbound)
			ctx.QueryRejected(annotations.ErrorQueryBinding, err)
			ctx.QueryComplete(0, 0, err)
			return nil, err
		}
	}

	contexts := queryWhere(ctx, q.Where, e.db)

	rows, err := ctx.Project(len(contexts), func() ([]Tuple, error) {
		rows := make([]Tuple, 0, len(contexts))
		for _, b := range contexts {
			row, err := actualize(b, q.Find, e.options.AllowUnboundFind)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
		return rows, nil
	})

	ctx.QueryComplete(len(contexts), len(rows), err)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func unboundError(unbound []query.Symbol) error {
	names := make([]string, len(unbound))
	for i, sym := range unbound {
		names[i] = string(sym)
	}
	return fmt.Errorf("%w: %s not bound in where clause", ErrUnboundVariable, strings.Join(names, ", "))
}
