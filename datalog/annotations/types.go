// Package annotations provides a clean, low-overhead annotation system for
// tracking query execution metrics and debugging information.
package annotations

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event name constants following hierarchical naming pattern
const (
	// Query lifecycle
	QueryInvoked   = "query/invoked"
	QueryProjected = "query/projected"
	QueryComplete  = "query/completed"

	// Pattern matching
	PatternIndexSelection = "pattern/index-selection"
	PatternMatch          = "pattern/match"

	// Errors
	ErrorQueryValidation = "error/query.validation"
	ErrorQueryBinding    = "error/query.binding"
)

// Event represents a single annotation event during query execution.
type Event struct {
	Name    string                 // Event name using hierarchical constants above
	QueryID string                 // Stamped by the Collector
	Start   time.Time              // Start timestamp
	End     time.Time              // End timestamp
	Latency time.Duration          // Duration (End - Start)
	Data    map[string]interface{} // Additional event-specific data
}

// Handler processes annotation events as they occur.
type Handler func(event Event)

// Collector accumulates events for one query execution.
// Every collector gets a fresh query id that is stamped on each event it
// records, so events from concurrent queries sharing a handler can be told
// apart.
type Collector struct {
	enabled bool
	handler Handler
	queryID string

	mu     sync.Mutex // Protects events
	events []Event
}

// NewCollector creates a new annotation collector.
func NewCollector(handler Handler) *Collector {
	return &Collector{
		enabled: handler != nil,
		handler: handler,
		queryID: uuid.NewString(),
		events:  make([]Event, 0, 16),
	}
}

// QueryID returns the id stamped on this collector's events
func (c *Collector) QueryID() string {
	return c.queryID
}

// Handler returns the underlying event handler.
func (c *Collector) Handler() Handler {
	return c.handler
}

// Add records a new event.
// Thread-safe for concurrent access.
func (c *Collector) Add(event Event) {
	if !c.enabled {
		return
	}
	event.QueryID = c.queryID

	c.mu.Lock()
	c.events = append(c.events, event)
	c.mu.Unlock()

	// Call handler outside the lock to avoid deadlocks
	c.handler(event)
}

// AddTiming records an event that started at start and ends now.
func (c *Collector) AddTiming(name string, start time.Time, data map[string]interface{}) {
	if !c.enabled {
		return
	}

	end := time.Now()
	c.Add(Event{
		Name:    name,
		Start:   start,
		End:     end,
		Latency: end.Sub(start),
		Data:    data,
	})
}

// Events returns all collected events.
func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	eventsCopy := make([]Event, len(c.events))
	copy(eventsCopy, c.events)
	return eventsCopy
}

// Reset clears the collector for reuse under a new query id.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = c.events[:0]
	c.queryID = uuid.NewString()
}
