package cache

import (
	"sync"

	"github.com/gfranzini/expense-rate-service/internal/domain/entity"
)

// RateTableCache is a thread-safe in-process memo of rate tables keyed by
// date. Stored tables are immutable, so entries never expire and never need
// invalidation; the cache only avoids repeated disk reads for hot dates.
type RateTableCache struct {
	mu     sync.RWMutex
	tables map[string]*entity.RateTable
}

// NewRateTableCache creates an empty cache.
func NewRateTableCache() *RateTableCache {
	return &RateTableCache{
		tables: make(map[string]*entity.RateTable),
	}
}

// Get returns the cached table for a date key, or nil.
func (c *RateTableCache) Get(dateKey string) *entity.RateTable {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.tables[dateKey]
}

// Put stores a table under its date key.
func (c *RateTableCache) Put(table *entity.RateTable) {
	if table == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.tables[table.DateKey()] = table
}

// Size returns the number of cached tables.
func (c *RateTableCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.tables)
}

// Clear drops every entry.
func (c *RateTableCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tables = make(map[string]*entity.RateTable)
}
