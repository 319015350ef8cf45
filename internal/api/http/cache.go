package apihttp

import (
	"sync"
	"time"
)

// Clock provides cache time.
type Clock interface {
	Now() time.Time
}

// SummaryCache holds the last computed dashboard summary for a TTL. It is
// an explicit object with an injected clock rather than package state, so
// expiry is testable and lifecycle is owned by the wiring code.
type SummaryCache struct {
	mu        sync.Mutex
	ttl       time.Duration
	clock     Clock
	value     Summary
	valid     bool
	expiresAt time.Time
}

// NewSummaryCache constructs a cache. A zero or negative TTL disables
// caching entirely.
func NewSummaryCache(ttl time.Duration, clock Clock) *SummaryCache {
	return &SummaryCache{ttl: ttl, clock: clock}
}

// Get returns the cached summary when present and unexpired.
func (c *SummaryCache) Get() (Summary, bool) {
	if c == nil || c.clock == nil || c.ttl <= 0 {
		return Summary{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid || c.clock.Now().After(c.expiresAt) {
		return Summary{}, false
	}
	return c.value, true
}

// Put stores a freshly computed summary.
func (c *SummaryCache) Put(value Summary) {
	if c == nil || c.clock == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.value = value
	c.valid = true
	c.expiresAt = c.clock.Now().Add(c.ttl)
	c.mu.Unlock()
}

// Invalidate drops the cached value.
func (c *SummaryCache) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.valid = false
	c.mu.Unlock()
}
