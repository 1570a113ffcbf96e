// Package cache holds rendered chart images in memory with a TTL and weak
// ETags. Datasets are never cached: a key embeds the ETag of the dataset a
// chart was drawn from, so a changed dataset always misses.
package cache

import (
	"context"
	"crypto/md5"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/albapepper/ipl-dashboard/internal/iplapi"
)

// DefaultTTL applies when New is given a non-positive TTL.
const DefaultTTL = 10 * time.Minute

const evictInterval = 5 * time.Minute

// Key identifies one rendered chart.
type Key struct {
	Chart   string
	Season  iplapi.Period
	Format  string
	Dataset string // ETag of the view model the chart was drawn from
}

func (k Key) String() string {
	return k.Chart + "|" + string(k.Season) + "|" + k.Format + "|" + k.Dataset
}

type entry struct {
	data      []byte
	etag      string
	expiresAt time.Time
}

// Cache is a thread-safe in-memory TTL cache of chart bytes.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]entry
	enabled bool
	ttl     time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a chart cache. Pass enabled=false for a no-op cache.
func New(enabled bool, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries: make(map[Key]entry),
		enabled: enabled,
		ttl:     ttl,
	}
}

// TTL returns the lifetime of an entry.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get retrieves a rendered chart. Returns data, etag, and whether the entry
// was found and unexpired.
func (c *Cache) Get(key Key) (data []byte, etag string, ok bool) {
	if !c.enabled {
		return nil, "", false
	}
	c.mu.RLock()
	e, exists := c.entries[key]
	c.mu.RUnlock()
	if !exists || time.Now().After(e.expiresAt) {
		c.misses.Add(1)
		return nil, "", false
	}
	c.hits.Add(1)
	return e.data, e.etag, true
}

// Set stores a rendered chart and returns its ETag.
func (c *Cache) Set(key Key, data []byte) string {
	etag := ComputeETag(data)
	if !c.enabled {
		return etag
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{
		data:      data,
		etag:      etag,
		expiresAt: time.Now().Add(c.ttl),
	}
	return etag
}

// Stats is a point-in-time view of cache usage.
type Stats struct {
	Enabled     bool    `json:"enabled"`
	TTLSeconds  int     `json:"ttl_seconds"`
	TotalKeys   int     `json:"total_keys"`
	ActiveKeys  int     `json:"active_keys"`
	ExpiredKeys int     `json:"expired_keys"`
	Hits        int64   `json:"hits"`
	Misses      int64   `json:"misses"`
	HitRatio    float64 `json:"hit_ratio"`
}

// Stats returns cache statistics.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	active := 0
	now := time.Now()
	for _, e := range c.entries {
		if now.Before(e.expiresAt) {
			active++
		}
	}
	s := Stats{
		Enabled:     c.enabled,
		TTLSeconds:  int(c.ttl.Seconds()),
		TotalKeys:   len(c.entries),
		ActiveKeys:  active,
		ExpiredKeys: len(c.entries) - active,
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
	}
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRatio = float64(s.Hits) / float64(total)
	}
	return s
}

// Run removes expired entries periodically until ctx is cancelled.
func (c *Cache) Run(ctx context.Context) {
	if !c.enabled {
		return
	}
	ticker := time.NewTicker(evictInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.evict()
		}
	}
}

func (c *Cache) evict() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	removed := 0
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// ComputeETag generates a weak ETag from data using MD5.
func ComputeETag(data []byte) string {
	hash := md5.Sum(data)
	return fmt.Sprintf(`W/"%x"`, hash[:8])
}

// CheckETagMatch reports whether an If-None-Match header matches etag.
// The header may list several tags separated by commas.
func CheckETagMatch(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}
