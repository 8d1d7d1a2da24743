// Pulseboard - Community Activity Leaderboard and Analytics
// Copyright 2026 Kvas Dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kvas-dev/pulseboard

// Package cache provides a thread-safe in-memory TTL cache for computed
// analytics results. Entries expire on read and via a periodic sweep; a
// refresh clears the whole cache so clients never see stale aggregates.
package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

// sweepInterval is how often the background cleanup removes expired entries.
const sweepInterval = 5 * time.Minute

// Entry is one cached item with its expiration.
type Entry struct {
	Data      interface{}
	ExpiresAt time.Time
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits      int64     `json:"hits"`
	Misses    int64     `json:"misses"`
	Evictions int64     `json:"evictions"`
	TotalKeys int64     `json:"total_keys"`
	LastSweep time.Time `json:"last_sweep"`
}

// Cache is a thread-safe TTL cache.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	ttl     time.Duration
	done    chan struct{}

	statsMu sync.Mutex
	stats   Stats
}

// New returns a cache with the given default TTL and starts the background
// sweep. Call Stop to release the sweep goroutine.
func New(ttl time.Duration) *Cache {
	c := &Cache{
		entries: make(map[string]Entry),
		ttl:     ttl,
		done:    make(chan struct{}),
		stats:   Stats{LastSweep: time.Now()},
	}
	go c.sweepLoop()
	return c
}

// Stop terminates the background sweep goroutine.
func (c *Cache) Stop() {
	close(c.done)
}

// Get returns the value for key if present and unexpired. An expired entry
// is removed and counted as a miss.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.bump(func(s *Stats) { s.Misses++ })
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		c.bump(func(s *Stats) { s.Misses++; s.Evictions++ })
		return nil, false
	}

	c.bump(func(s *Stats) { s.Hits++ })
	return entry.Data, true
}

// Set stores a value under the default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with an explicit TTL, overwriting any existing
// entry.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = Entry{Data: value, ExpiresAt: time.Now().Add(ttl)}
	total := int64(len(c.entries))
	c.mu.Unlock()

	c.bump(func(s *Stats) { s.TotalKeys = total })
}

// Clear drops every entry. Called after each successful refresh so derived
// views are recomputed from the new snapshot.
func (c *Cache) Clear() {
	c.mu.Lock()
	evicted := int64(len(c.entries))
	c.entries = make(map[string]Entry)
	c.mu.Unlock()

	c.bump(func(s *Stats) {
		s.Evictions += evicted
		s.TotalKeys = 0
	})
}

// GetStats returns a copy of the current counters.
func (c *Cache) GetStats() Stats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats
}

// HitRate returns the hit percentage over all lookups, 0 when none.
func (c *Cache) HitRate() float64 {
	stats := c.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

func (c *Cache) bump(fn func(*Stats)) {
	c.statsMu.Lock()
	fn(&c.stats)
	c.statsMu.Unlock()
}

func (c *Cache) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.done:
			return
		}
	}
}

func (c *Cache) sweep() {
	now := time.Now()

	c.mu.Lock()
	evicted := int64(0)
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}
	total := int64(len(c.entries))
	c.mu.Unlock()

	c.bump(func(s *Stats) {
		s.Evictions += evicted
		s.TotalKeys = total
		s.LastSweep = now
	})
}

// GenerateKey builds a compact cache key from a method name and its
// parameters, hashing the JSON form of the parameters.
func GenerateKey(method string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", method, params)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", method, hash[:16])
}
