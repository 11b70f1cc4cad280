// Package cache provides the short-TTL memoization used by the assignment
// engine. Entries are pure functions of their inputs, so a racing recompute
// overwriting a key is harmless; last write wins.
package cache

import (
	"strings"
	"sync"
	"time"
)

// Cache is the memoization contract consumed by the services. It is injected
// explicitly rather than held as package state.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	InvalidateByPrefix(prefix string)
	InvalidateAll()
}

type entry struct {
	value     any
	expiresAt time.Time
}

// Memory is a mutex-guarded in-memory Cache with lazy TTL expiry.
type Memory struct {
	mu      sync.RWMutex
	now     func() time.Time
	ttl     time.Duration
	entries map[string]entry
}

// NewMemory creates a Memory cache. now may be nil outside of tests.
func NewMemory(ttl time.Duration, now func() time.Time) *Memory {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if now == nil {
		now = time.Now
	}
	return &Memory{
		now:     now,
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

func (c *Memory) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (c *Memory) Set(key string, value any) {
	expiry := c.now().Add(c.ttl)
	c.mu.Lock()
	c.cleanupLocked()
	c.entries[key] = entry{value: value, expiresAt: expiry}
	c.mu.Unlock()
}

// InvalidateByPrefix drops every entry whose key starts with prefix.
func (c *Memory) InvalidateByPrefix(prefix string) {
	c.mu.Lock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

func (c *Memory) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

func (c *Memory) cleanupLocked() {
	now := c.now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}
