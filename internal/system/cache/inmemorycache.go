/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package cache

import (
	"sync"
	"time"
)

// inMemoryCache is a thread-safe in-memory cache with TTL and LRU eviction.
type inMemoryCache[T any] struct {
	name       string
	enabled    bool
	maxSize    int
	ttl        time.Duration
	entries    map[CacheKey]*CacheEntry[T]
	hitCount   int64
	missCount  int64
	evictCount int64
	mu         sync.RWMutex
}

// newInMemoryCache creates a new in-memory cache instance.
func newInMemoryCache[T any](name string, enabled bool, maxSize int, ttl time.Duration) internalCacheInterface[T] {
	return &inMemoryCache[T]{
		name:    name,
		enabled: enabled,
		maxSize: maxSize,
		ttl:     ttl,
		entries: make(map[CacheKey]*CacheEntry[T]),
	}
}

// GetName returns the name of the cache.
func (c *inMemoryCache[T]) GetName() string {
	return c.name
}

// IsEnabled returns whether the cache is enabled.
func (c *inMemoryCache[T]) IsEnabled() bool {
	return c.enabled
}

// Set stores a value in the cache, evicting the least recently used entry when full.
func (c *inMemoryCache[T]) Set(key CacheKey, value T) error {
	if !c.enabled {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	now := time.Now()
	c.entries[key] = &CacheEntry[T]{
		Value:      value,
		ExpiryTime: now.Add(c.ttl),
		lastAccess: now,
	}
	return nil
}

// Get retrieves a value from the cache.
func (c *inMemoryCache[T]) Get(key CacheKey) (T, bool) {
	var zero T
	if !c.enabled {
		return zero, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		c.missCount++
		return zero, false
	}

	if time.Now().After(entry.ExpiryTime) {
		delete(c.entries, key)
		c.missCount++
		return zero, false
	}

	entry.lastAccess = time.Now()
	c.hitCount++
	return entry.Value, true
}

// Delete removes a value from the cache.
func (c *inMemoryCache[T]) Delete(key CacheKey) error {
	if !c.enabled {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// Clear removes all entries in the cache.
func (c *inMemoryCache[T]) Clear() error {
	if !c.enabled {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[CacheKey]*CacheEntry[T])
	return nil
}

// GetStats returns cache statistics.
func (c *inMemoryCache[T]) GetStats() CacheStat {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.hitCount + c.missCount
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(c.hitCount) / float64(total)
	}

	return CacheStat{
		Enabled:    c.enabled,
		Size:       len(c.entries),
		MaxSize:    c.maxSize,
		HitCount:   c.hitCount,
		MissCount:  c.missCount,
		HitRate:    hitRate,
		EvictCount: c.evictCount,
	}
}

// CleanupExpired removes all expired entries from the cache.
func (c *inMemoryCache[T]) CleanupExpired() {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, entry := range c.entries {
		if now.After(entry.ExpiryTime) {
			delete(c.entries, key)
		}
	}
}

// evictOldest removes the least recently accessed entry. Caller must hold the lock.
func (c *inMemoryCache[T]) evictOldest() {
	var oldestKey CacheKey
	var oldestAccess time.Time
	first := true

	for key, entry := range c.entries {
		if first || entry.lastAccess.Before(oldestAccess) {
			oldestKey = key
			oldestAccess = entry.lastAccess
			first = false
		}
	}

	if !first {
		delete(c.entries, oldestKey)
		c.evictCount++
	}
}
