package esgdata

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/greencred/lending-service/internal/models"
)

// Cache stores serialized lookup results for a bounded TTL.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) error
}

// RedisCache backs the lookup cache with redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to the given redis address.
func NewRedisCache(addr string, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *RedisCache) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, r.ttl).Err()
}

// MemoryCache is a process-local Cache for tests and cache-less deployments.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryCache initializes an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]string)}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	return v, ok
}

func (m *MemoryCache) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

// CachedSource decorates a DataSource with a Cache. Randomized estimates are
// cached too, so repeated lookups for the same unknown company stay stable
// within the TTL.
type CachedSource struct {
	source DataSource
	cache  Cache
	log    *logrus.Logger
}

// NewCachedSource wraps source with cache.
func NewCachedSource(source DataSource, cache Cache, log *logrus.Logger) *CachedSource {
	return &CachedSource{source: source, cache: cache, log: log}
}

func cacheKey(companyName string) string {
	return "esg:lookup:" + strings.ToLower(strings.TrimSpace(companyName))
}

// Lookup serves from cache when possible; cache failures only log.
func (c *CachedSource) Lookup(ctx context.Context, companyName string) (models.CompanyESG, error) {
	key := cacheKey(companyName)
	if raw, ok := c.cache.Get(ctx, key); ok {
		var data models.CompanyESG
		if err := json.Unmarshal([]byte(raw), &data); err == nil {
			return data, nil
		}
		c.log.Warnf("Discarding corrupt ESG cache entry for %s", companyName)
	}

	data, err := c.source.Lookup(ctx, companyName)
	if err != nil {
		return models.CompanyESG{}, err
	}

	if raw, err := json.Marshal(data); err == nil {
		if err := c.cache.Set(ctx, key, string(raw)); err != nil {
			c.log.Warnf("Failed to cache ESG lookup for %s: %v", companyName, err)
		}
	}
	return data, nil
}
