// FilePath: internal/cache/cache.go

// Package cache holds the optional Redis-backed device-token resolution
// cache. Token auth otherwise walks the whole document tree; the cache keeps
// the hot token→project mapping out of that scan. All methods are nil-safe so
// callers never need to branch on whether the cache is configured.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"

	"github.com/Nakib00/IoT-project-Server/internal/config"
)

const tokenKeyPrefix = "device_token:"

type TokenCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenCache connects to Redis and verifies the connection.
func NewTokenCache(cfg config.RedisConfig) (*TokenCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}

	nuts.L.Infof("[TokenCache] Connected to %s:%d/%d", cfg.Host, cfg.Port, cfg.DB)
	return &TokenCache{client: client, ttl: cfg.TokenTTL}, nil
}

// Resolve returns the cached project id for a device token.
func (c *TokenCache) Resolve(ctx context.Context, token string) (string, bool) {
	if c == nil {
		return "", false
	}
	projectID, err := c.client.Get(ctx, tokenKeyPrefix+token).Result()
	if err != nil {
		if err != redis.Nil {
			nuts.L.Warnf("[TokenCache] Lookup failed: %v", err)
		}
		return "", false
	}
	return projectID, true
}

// Store caches a token→project mapping for the configured TTL.
func (c *TokenCache) Store(ctx context.Context, token, projectID string) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, tokenKeyPrefix+token, projectID, c.ttl).Err(); err != nil {
		nuts.L.Warnf("[TokenCache] Store failed: %v", err)
	}
}

// Invalidate drops a cached token, e.g. when its project is deleted.
func (c *TokenCache) Invalidate(ctx context.Context, token string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, tokenKeyPrefix+token).Err(); err != nil {
		nuts.L.Warnf("[TokenCache] Invalidate failed: %v", err)
	}
}

// Close releases the Redis connection.
func (c *TokenCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
