// Package cache provides a single-value cache that expires after a fixed TTL.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL is how long a backend probe result stays valid
const DefaultTTL = 60 * time.Second

// Clock returns the current time. Tests swap it for a fake.
type Clock func() time.Time

// TTL holds at most one value of type T together with the time it was stored
type TTL[T any] struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      Clock
	value    T
	storedAt time.Time
	valid    bool
}

// NewTTL creates an empty cache. A nil clock uses time.Now.
func NewTTL[T any](ttl time.Duration, now Clock) *TTL[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &TTL[T]{ttl: ttl, now: now}
}

// Get returns the cached value if it was stored less than ttl ago
func (c *TTL[T]) Get() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if !c.valid {
		return zero, false
	}
	if c.now().Sub(c.storedAt) >= c.ttl {
		c.valid = false
		c.value = zero
		return zero, false
	}
	return c.value, true
}

// Put stores v and returns the timestamp it was stored with
func (c *TTL[T]) Put(v T) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = v
	c.storedAt = c.now()
	c.valid = true
	return c.storedAt
}

// Clear drops the cached value
func (c *TTL[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	c.value = zero
	c.valid = false
}

// GetOrLoad returns the cached value, or calls load and caches its result.
// Errors from load are not cached. force skips the cached value.
func (c *TTL[T]) GetOrLoad(force bool, load func() (T, error)) (T, error) {
	if !force {
		if v, ok := c.Get(); ok {
			return v, nil
		}
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	c.Put(v)
	return v, nil
}
