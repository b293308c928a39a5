// Package redis provides the Redis connection and the menu listing cache.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/res-landing/restaurant-system/internal/infrastructure/config"
)

// clientName identifies this service in Redis CLIENT LIST output.
const clientName = "restaurant-api"

// Connect initialises the Redis client used for menu caching and validates
// connectivity with a ping before the server starts accepting requests. The
// ping timeout comes from REDIS_PING_TIMEOUT.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:       cfg.Addr,
		Password:   cfg.Password,
		DB:         cfg.DB,
		ClientName: clientName,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
