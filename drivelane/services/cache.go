package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/drivelane/drivelane/drivelane/comparison"
	"github.com/drivelane/drivelane/drivelane/config"
	lru "github.com/hashicorp/golang-lru"
	"github.com/redis/go-redis/v9"
)

// ComparisonCache keeps computed comparison summaries in an in-process
// LRU, with an optional Redis layer shared across instances.
type ComparisonCache struct {
	local *lru.Cache
	rdb   *redis.Client
	ttl   time.Duration
}

type comparisonCacheEntry struct {
	summary   *comparison.Summary
	expiresAt time.Time
}

// NewComparisonCache builds the cache. redisAddr may be empty, in which
// case only the in-process layer is used.
func NewComparisonCache(redisAddr, redisPassword string) *ComparisonCache {
	local, _ := lru.New(config.CacheSize)

	cache := &ComparisonCache{
		local: local,
		ttl:   config.ComparisonCacheExpiration,
	}

	if redisAddr != "" {
		cache.rdb = redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: redisPassword,
		})
	}

	return cache
}

// Ping verifies the Redis layer when one is configured.
func (c *ComparisonCache) Ping(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Ping(ctx).Err()
}

func (c *ComparisonCache) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func comparisonKey(firstRef, secondRef string) string {
	return "cmp:" + firstRef + "|" + secondRef
}

// Get returns the cached summary for the ordered pair of refs.
func (c *ComparisonCache) Get(ctx context.Context, firstRef, secondRef string) (*comparison.Summary, bool) {
	key := comparisonKey(firstRef, secondRef)

	if value, ok := c.local.Get(key); ok {
		entry := value.(comparisonCacheEntry)
		if time.Now().Before(entry.expiresAt) {
			return entry.summary, true
		}
		c.local.Remove(key)
	}

	if c.rdb == nil {
		return nil, false
	}

	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var summary comparison.Summary
	if err := json.Unmarshal(payload, &summary); err != nil {
		slog.Warn("Dropping undecodable cached comparison",
			slog.String("type", "sys"),
			slog.String("key", key),
			slog.Any("error", err),
		)
		c.rdb.Del(ctx, key)
		return nil, false
	}

	c.local.Add(key, comparisonCacheEntry{summary: &summary, expiresAt: time.Now().Add(c.ttl)})
	return &summary, true
}

// Set stores the summary in both layers. Redis failures are logged,
// not surfaced, the cache is best effort.
func (c *ComparisonCache) Set(ctx context.Context, firstRef, secondRef string, summary *comparison.Summary) {
	key := comparisonKey(firstRef, secondRef)

	c.local.Add(key, comparisonCacheEntry{summary: summary, expiresAt: time.Now().Add(c.ttl)})

	if c.rdb == nil {
		return
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		slog.Warn("Failed to write comparison to redis",
			slog.String("type", "sys"),
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}

// Invalidate drops every cached pair involving the given listing ref.
// Only the local layer supports scanning cheaply; Redis entries expire
// on their TTL.
func (c *ComparisonCache) Invalidate(ref string) {
	for _, key := range c.local.Keys() {
		k, ok := key.(string)
		if !ok {
			continue
		}
		if containsRef(k, ref) {
			c.local.Remove(key)
		}
	}
}

func containsRef(key, ref string) bool {
	// Keys look like "cmp:<first>|<second>".
	if len(key) < 5 {
		return false
	}
	body := key[4:]
	for i := 0; i < len(body); i++ {
		if body[i] == '|' {
			return body[:i] == ref || body[i+1:] == ref
		}
	}
	return false
}
