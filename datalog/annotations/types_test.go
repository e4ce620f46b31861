package annotations

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorStampsQueryID(t *testing.T) {
	var seen []Event
	c := NewCollector(func(e Event) { seen = append(seen, e) })

	_, err := uuid.Parse(c.QueryID())
	require.NoError(t, err)

	c.Add(Event{Name: QueryInvoked, Data: map[string]interface{}{"query": "[:find ?x :where]"}})
	c.AddTiming(QueryComplete, time.Now().Add(-time.Millisecond), map[string]interface{}{"success": true})

	require.Len(t, seen, 2)
	for _, e := range seen {
		assert.Equal(t, c.QueryID(), e.QueryID)
	}
	assert.Equal(t, seen, c.Events())
	assert.True(t, seen[1].Latency >= time.Millisecond)
	assert.False(t, seen[1].End.Before(seen[1].Start))
}

func TestCollectorDisabledWithoutHandler(t *testing.T) {
	c := NewCollector(nil)
	c.Add(Event{Name: QueryInvoked})
	c.AddTiming(QueryComplete, time.Now(), nil)
	assert.Empty(t, c.Events())
	assert.Nil(t, c.Handler())
}

func TestCollectorReset(t *testing.T) {
	c := NewCollector(func(Event) {})
	id := c.QueryID()
	c.Add(Event{Name: QueryInvoked})

	c.Reset()
	assert.Empty(t, c.Events())
	assert.NotEqual(t, id, c.QueryID())
}

func TestCollectorsHaveDistinctIDs(t *testing.T) {
	a := NewCollector(func(Event) {})
	b := NewCollector(func(Event) {})
	assert.NotEqual(t, a.QueryID(), b.QueryID())
}

func TestCollectorConcurrentAdd(t *testing.T) {
	var mu sync.Mutex
	count := 0
	c := NewCollector(func(Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				c.Add(Event{Name: PatternMatch})
			}
		}()
	}
	wg.Wait()

	assert.Len(t, c.Events(), 400)
	assert.Equal(t, 400, count)
}
