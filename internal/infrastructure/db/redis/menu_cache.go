package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/res-landing/restaurant-system/internal/api/metrics"
	"github.com/res-landing/restaurant-system/internal/core/domain"
)

const (
	menuListKey = "menu:list"
	menuListTTL = 5 * time.Minute
)

// MenuCache caches the public menu listing in Redis. The cache is a pure
// optimisation: any Redis failure is logged and the caller falls through to
// the repository.
type MenuCache struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewMenuCache creates a MenuCache wrapping the given Redis client.
func NewMenuCache(client *redis.Client, log zerolog.Logger) *MenuCache {
	return &MenuCache{client: client, log: log}
}

// GetList returns the cached menu listing, if present and decodable.
func (c *MenuCache) GetList(ctx context.Context) ([]*domain.MenuItem, bool) {
	raw, err := c.client.Get(ctx, menuListKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("menu cache read failed")
		}
		metrics.MenuCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	var items []*domain.MenuItem
	if err := json.Unmarshal(raw, &items); err != nil {
		c.log.Warn().Err(err).Msg("menu cache entry corrupt, dropping")
		_ = c.client.Del(ctx, menuListKey).Err()
		metrics.MenuCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	metrics.MenuCacheTotal.WithLabelValues("hit").Inc()
	return items, true
}

// SetList stores the menu listing with a TTL.
func (c *MenuCache) SetList(ctx context.Context, items []*domain.MenuItem) {
	raw, err := json.Marshal(items)
	if err != nil {
		c.log.Warn().Err(err).Msg("menu cache encode failed")
		return
	}
	if err := c.client.Set(ctx, menuListKey, raw, menuListTTL).Err(); err != nil {
		c.log.Warn().Err(err).Msg("menu cache write failed")
	}
}

// Invalidate drops the cached listing. Called after every admin mutation.
func (c *MenuCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, menuListKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("menu cache invalidation failed")
	}
}
