// Package cache provides the in-process memory cache used during script
// generation. It is a pure performance optimization: removing it must never
// change the emitted script, only how fast it is produced.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"sync"
	"time"
)

// EntryType selects the TTL class of a cache entry.
type EntryType string

const (
	// TypeFragment caches per-feature shell fragments. Fragments are pure
	// functions of config, so they stay valid for a long time.
	TypeFragment EntryType = "fragment"
	// TypeScript caches whole assembled-and-optimized scripts keyed by the
	// full configuration hash.
	TypeScript EntryType = "script"
)

// TTLs per entry type.
const (
	fragmentTTL = time.Hour
	scriptTTL   = 10 * time.Minute
)

// DefaultCapacity bounds the number of live entries before eviction.
const DefaultCapacity = 100

// evictFraction is the share of entries purged when the cache is full and
// no expired entries could be removed.
const evictFraction = 0.2

// Entry is one cached value with its expiry and profitability counter.
type Entry struct {
	Key       string
	Value     string
	Type      EntryType
	CreatedAt time.Time
	Expiry    time.Time
	HitCount  int
}

// Stats reports cache effectiveness for the status command and tests.
type Stats struct {
	Entries int
	Hits    int
	Misses  int
}

// Cache is a capacity-bounded TTL cache of generated text.
type Cache struct {
	mu       sync.RWMutex
	entries  map[string]*Entry
	capacity int
	hits     int
	misses   int
	now      func() time.Time
}

// New creates a cache with the given capacity. A capacity <= 0 falls back
// to DefaultCapacity.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		entries:  make(map[string]*Entry),
		capacity: capacity,
		now:      time.Now,
	}
}

// Key builds a deterministic cache key from an entry type and a context
// string joined from the relevant config fields. Same (type, context)
// always yields the same key.
func Key(entryType EntryType, context string) string {
	sum := sha256.Sum256([]byte(context))
	return string(entryType) + ":" + hex.EncodeToString(sum[:])[:16]
}

// Get returns the cached value for key. Expired entries are deleted on
// access and reported as a miss. A hit increments the entry's hit counter.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, found := c.entries[key]
	if !found {
		c.misses++
		return "", false
	}

	if c.now().After(entry.Expiry) {
		delete(c.entries, key)
		c.misses++
		return "", false
	}

	entry.HitCount++
	c.hits++
	return entry.Value, true
}

// Set stores value under key with the TTL of its entry type, evicting if
// the cache is at capacity.
func (c *Cache) Set(key, value string, entryType EntryType) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		c.evict()
	}

	now := c.now()
	c.entries[key] = &Entry{
		Key:       key,
		Value:     value,
		Type:      entryType,
		CreatedAt: now,
		Expiry:    now.Add(ttlFor(entryType)),
	}
}

// Len returns the number of live entries, counting expired ones that have
// not been touched yet.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns a snapshot of cache counters.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{
		Entries: len(c.entries),
		Hits:    c.hits,
		Misses:  c.misses,
	}
}

// Clear removes all entries and resets counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Entry)
	c.hits = 0
	c.misses = 0
}

// evict frees room for one new entry: expired entries go first, then the
// lowest-hit-count ~20% of what remains. Caller must hold the lock.
func (c *Cache) evict() {
	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.Expiry) {
			delete(c.entries, key)
		}
	}

	if len(c.entries) < c.capacity {
		return
	}

	victims := make([]*Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		victims = append(victims, entry)
	}
	sort.Slice(victims, func(i, j int) bool {
		if victims[i].HitCount != victims[j].HitCount {
			return victims[i].HitCount < victims[j].HitCount
		}
		return victims[i].CreatedAt.Before(victims[j].CreatedAt)
	})

	n := int(float64(len(victims)) * evictFraction)
	if n < 1 {
		n = 1
	}
	for _, entry := range victims[:n] {
		delete(c.entries, entry.Key)
	}
}

func ttlFor(entryType EntryType) time.Duration {
	switch entryType {
	case TypeScript:
		return scriptTTL
	default:
		return fragmentTTL
	}
}
