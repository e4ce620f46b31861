package executor

import "github.com/wbrown/janus-triples/datalog/annotations"

// Options configures an Executor
type Options struct {
	// AllowUnboundFind projects nil for find variables that no where pattern
	// binds, instead of failing the query with ErrUnboundVariable
	AllowUnboundFind bool

	// Handler receives annotation events for every query when non-nil
	Handler annotations.Handler
}
