package executor

import (
	"time"

	"github.com/wbrown/janus-triples/datalog/annotations"
	"github.com/wbrown/janus-triples/datalog/query"
)

// Context provides clean annotation points for query execution tracking.
type Context interface {
	// Query lifecycle
	QueryBegin(query string)
	QueryRejected(event string, err error)
	QueryComplete(contextCount, rowCount int, err error)

	// Pattern matching
	SelectIndex(pattern query.Pattern, index string, candidates int)
	MatchPattern(pattern query.Pattern, contextsIn, candidates int, fn func() []Bindings) []Bindings

	// Projection
	Project(contextCount int, fn func() ([]Tuple, error)) ([]Tuple, error)

	// Get underlying collector
	Collector() *annotations.Collector
}

// BaseContext provides a no-op implementation with zero overhead.
type BaseContext struct{}

// NewContext creates an appropriate context based on whether annotations are needed.
func NewContext(handler annotations.Handler) Context {
	if handler == nil {
		return &BaseContext{}
	}
	return &AnnotatedContext{
		collector: annotations.NewCollector(handler),
	}
}

// BaseContext implementations - all are simple pass-throughs

func (c *BaseContext) QueryBegin(query string) {}

func (c *BaseContext) QueryRejected(event string, err error) {}

func (c *BaseContext) QueryComplete(contextCount, rowCount int, err error) {}

func (c *BaseContext) SelectIndex(pattern query.Pattern, index string, candidates int) {}

func (c *BaseContext) MatchPattern(pattern query.Pattern, contextsIn, candidates int, fn func() []Bindings) []Bindings {
	return fn()
}

func (c *BaseContext) Project(contextCount int, fn func() ([]Tuple, error)) ([]Tuple, error) {
	return fn()
}

func (c *BaseContext) Collector() *annotations.Collector {
	return nil
}

// AnnotatedContext provides full annotation tracking
type AnnotatedContext struct {
	BaseContext
	collector  *annotations.Collector
	queryStart time.Time

	// Variables bound so far, in binding order
	bound []string
}

func (c *AnnotatedContext) QueryBegin(query string) {
	c.queryStart = time.Now()
	c.bound = c.bound[:0]
	c.collector.Add(annotations.Event{
		Name:  annotations.QueryInvoked,
		Start: c.queryStart,
		Data: map[string]interface{}{
			"query":    query,
			"query.id": c.collector.QueryID(),
		},
	})
}

func (c *AnnotatedContext) QueryRejected(event string, err error) {
	c.collector.Add(annotations.Event{
		Name:  event,
		Start: time.Now(),
		Data: map[string]interface{}{
			"error": err.Error(),
		},
	})
}

func (c *AnnotatedContext) QueryComplete(contextCount, rowCount int, err error) {
	data := map[string]interface{}{
		"contexts": contextCount,
		"rows":     rowCount,
		"success":  err == nil,
	}

	if err != nil {
		data["error"] = err.Error()
	}

	c.collector.AddTiming(annotations.QueryComplete, c.queryStart, data)
}

func (c *AnnotatedContext) SelectIndex(pattern query.Pattern, index string, candidates int) {
	c.collector.Add(annotations.Event{
		Name:  annotations.PatternIndexSelection,
		Start: time.Now(),
		Data: map[string]interface{}{
			"pattern":    pattern.String(),
			"index":      index,
			"candidates": candidates,
		},
	})
}

func (c *AnnotatedContext) MatchPattern(pattern query.Pattern, contextsIn, candidates int, fn func() []Bindings) []Bindings {
	start := time.Now()
	before := append([]string(nil), c.bound...)

	result := fn()

	for _, sym := range pattern.Symbols() {
		if !containsString(c.bound, string(sym)) {
			c.bound = append(c.bound, string(sym))
		}
	}

	c.collector.AddTiming(annotations.PatternMatch, start, map[string]interface{}{
		"pattern":         pattern.String(),
		"symbols.before":  before,
		"symbols.after":   append([]string(nil), c.bound...),
		"contexts.in":     contextsIn,
		"contexts.out":    len(result),
		"triples.scanned": contextsIn * candidates,
	})

	return result
}

func (c *AnnotatedContext) Project(contextCount int, fn func() ([]Tuple, error)) ([]Tuple, error) {
	start := time.Now()
	rows, err := fn()

	data := map[string]interface{}{
		"contexts": contextCount,
		"rows":     len(rows),
		"success":  err == nil,
	}
	if err != nil {
		data["error"] = err.Error()
	}

	c.collector.AddTiming(annotations.QueryProjected, start, data)
	return rows, err
}

func (c *AnnotatedContext) Collector() *annotations.Collector {
	return c.collector
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
