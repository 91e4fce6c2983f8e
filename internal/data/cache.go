package data

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"pv-battery-estimator/internal/forecast"
	"pv-battery-estimator/internal/model"
)

// CacheEntry holds a memoised forecast.
type CacheEntry struct {
	Series    *model.HourlySeries
	ExpiresAt time.Time
}

// Cache memoises another Provider's forecasts for a TTL. Errors are never
// cached.
type Cache struct {
	next forecast.Provider

	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
	now   func() time.Time
}

// NewCache wraps next. A zero ttl defaults to one hour.
func NewCache(next forecast.Provider, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cache{
		next:  next,
		store: make(map[string]*CacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (c *Cache) Name() string { return c.next.Name() + "+cache" }

// Forecast returns a cached forecast when available, otherwise calls the
// wrapped provider and stores the result.
func (c *Cache) Forecast(ctx context.Context, req forecast.Request) (*model.HourlySeries, error) {
	key := GenerateCacheKey(req)
	if s, ok := c.Get(key); ok {
		return s, nil
	}
	s, err := c.next.Forecast(ctx, req)
	if err != nil {
		return nil, err
	}
	c.Set(key, s)
	return copySeries(s), nil
}

// Get retrieves a cached forecast if available and not expired.
func (c *Cache) Get(key string) (*model.HourlySeries, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists || c.now().After(entry.ExpiresAt) {
		return nil, false
	}
	return copySeries(entry.Series), true
}

// Set stores a forecast in the cache.
func (c *Cache) Set(key string, s *model.HourlySeries) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &CacheEntry{
		Series:    copySeries(s),
		ExpiresAt: c.now().Add(c.ttl),
	}
}

// Len returns the number of entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Purge removes expired entries.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.store {
		if now.After(entry.ExpiresAt) {
			delete(c.store, key)
		}
	}
}

// Run purges expired entries periodically until ctx is done.
func (c *Cache) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Purge()
		}
	}
}

// GenerateCacheKey creates a cache key from the request parameters.
func GenerateCacheKey(req forecast.Request) string {
	hash := sha256.Sum256([]byte(req.Key()))
	return hex.EncodeToString(hash[:])
}

// copySeries keeps cached slices isolated from callers.
func copySeries(s *model.HourlySeries) *model.HourlySeries {
	if s == nil {
		return nil
	}
	return &model.HourlySeries{
		Date:        s.Date,
		Irradiance:  append([]float64(nil), s.Irradiance...),
		SpotPrice:   append([]float64(nil), s.SpotPrice...),
		TariffPrice: append([]float64(nil), s.TariffPrice...),
		Profile:     append([]float64(nil), s.Profile...),
	}
}
