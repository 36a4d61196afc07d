package forecast

import (
	"errors"
	"sync"
	"time"

	"app/models"
)

// ErrNotCached is returned when no warm result is available for a shop.
var ErrNotCached = errors.New("no cached forecast for shop")

type cachedResult struct {
	result  *models.ForecastResult
	savedAt time.Time
}

// Cache is a concurrency-safe in-memory store of the latest forecast
// result per shop, refreshed by the scheduler and by ad-hoc runs.
type Cache struct {
	mu     sync.RWMutex
	data   map[string]cachedResult
	maxAge time.Duration // 0 = unlimited
}

// NewCache creates a Cache. Entries older than maxAge are treated as
// absent; maxAge <= 0 disables expiry.
func NewCache(maxAge time.Duration) *Cache {
	return &Cache{
		data:   make(map[string]cachedResult),
		maxAge: maxAge,
	}
}

// Save stores the latest result for a shop.
func (c *Cache) Save(shopID string, result *models.ForecastResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[shopID] = cachedResult{result: result, savedAt: time.Now()}
}

// Latest returns the most recent unexpired result for a shop.
func (c *Cache) Latest(shopID string) (*models.ForecastResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.data[shopID]
	if !ok {
		return nil, ErrNotCached
	}
	if c.maxAge > 0 && time.Since(entry.savedAt) > c.maxAge {
		return nil, ErrNotCached
	}
	return entry.result, nil
}
