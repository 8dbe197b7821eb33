package holiday

import (
	"sync"

	"github.com/okian/agenda/pkg/metrics"
)

// Cache keeps the most recently built map and rebuilds it only when a
// different year is requested.
type Cache struct {
	mu      sync.Mutex
	gen     *Generator
	current *Map
}

// NewCache wraps gen.
func NewCache(gen *Generator) *Cache {
	return &Cache{gen: gen}
}

// For returns the holiday map of year.
func (c *Cache) For(year int) *Map {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil && c.current.Year() == year {
		metrics.RecordHolidayCacheHit()
		return c.current
	}
	c.current = c.gen.Build(year)
	metrics.RecordHolidayBuild()
	return c.current
}
