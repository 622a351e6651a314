// Package schedule caches the schedule configuration in Redis for a short
// TTL. The singleton is read on every availability request but changes
// rarely; the TTL stays short so a tightened limit is picked up quickly,
// and admission decisions bypass the cache entirely.
package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/salabelleza/SPA-BookingService/internal/domain"
)

const cacheKey = "spa:schedule_config"

// Logger is the logging surface this package needs
type Logger interface {
	Warn(format string, v ...interface{})
}

// Cache is a best-effort read cache: every miss or Redis failure falls
// back to the repository, never to an error.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger Logger
}

// NewCache creates a schedule cache with the given TTL
func NewCache(client *redis.Client, ttl time.Duration, logger Logger) *Cache {
	return &Cache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached configuration, or ok=false on miss or failure
func (c *Cache) Get(ctx context.Context) (*domain.ScheduleConfig, bool) {
	raw, err := c.client.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("schedule cache: get failed: %v", err)
		}
		return nil, false
	}

	var cfg domain.ScheduleConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		c.logger.Warn("schedule cache: corrupt entry dropped: %v", err)
		_ = c.client.Del(ctx, cacheKey).Err()
		return nil, false
	}

	return &cfg, true
}

// Set stores the configuration snapshot for the cache TTL
func (c *Cache) Set(ctx context.Context, cfg *domain.ScheduleConfig) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		c.logger.Warn("schedule cache: encode failed: %v", err)
		return
	}

	if err := c.client.Set(ctx, cacheKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("schedule cache: set failed: %v", err)
	}
}

// Invalidate drops the cached configuration after an update
func (c *Cache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, cacheKey).Err(); err != nil {
		c.logger.Warn("schedule cache: invalidate failed: %v", err)
	}
}
