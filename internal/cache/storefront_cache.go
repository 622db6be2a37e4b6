// Package cache holds the optional redis cache in front of the public
// storefront queries. Any cache failure degrades to the database; the
// storefront never errors because redis is down.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const storefrontKey = "storefront:payload"

type StorefrontCache struct {
	Client *redis.Client
	TTL    time.Duration
	Logger *slog.Logger
}

// Get unmarshals the cached payload into out. The second return value
// reports a usable hit.
func (c *StorefrontCache) Get(ctx context.Context, out any) bool {
	if c == nil || c.Client == nil {
		return false
	}
	data, err := c.Client.Get(ctx, storefrontKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.Logger.Warn("storefront cache read failed", "err", err)
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.Logger.Warn("storefront cache payload unreadable", "err", err)
		return false
	}
	return true
}

func (c *StorefrontCache) Set(ctx context.Context, payload any) {
	if c == nil || c.Client == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, storefrontKey, data, c.TTL).Err(); err != nil {
		c.Logger.Warn("storefront cache write failed", "err", err)
	}
}

// Invalidate drops the cached payload after a catalog or banner
// mutation.
func (c *StorefrontCache) Invalidate(ctx context.Context) {
	if c == nil || c.Client == nil {
		return
	}
	if err := c.Client.Del(ctx, storefrontKey).Err(); err != nil {
		c.Logger.Warn("storefront cache invalidation failed", "err", err)
	}
}
