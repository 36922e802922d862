package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skillswap/realtime-service/internal/models"
)

// DisplaySource is the lookup the cache falls back to on a miss, typically
// the Mongo users collection.
type DisplaySource interface {
	UserDisplay(ctx context.Context, id string) (models.UserDisplay, error)
}

// DisplayCache is a read-through Redis cache for user display documents.
// Cache failures are invisible to callers; the source remains authoritative.
type DisplayCache struct {
	cli    *redis.Client
	source DisplaySource
	ttl    time.Duration
}

func NewDisplayCache(cli *redis.Client, source DisplaySource, ttl time.Duration) *DisplayCache {
	return &DisplayCache{cli: cli, source: source, ttl: ttl}
}

func displayKey(id string) string { return "user:display:" + id }

func (c *DisplayCache) UserDisplay(ctx context.Context, id string) (models.UserDisplay, error) {
	if b, err := c.cli.Get(ctx, displayKey(id)).Bytes(); err == nil {
		var u models.UserDisplay
		if err := json.Unmarshal(b, &u); err == nil {
			return u, nil
		}
	}

	u, err := c.source.UserDisplay(ctx, id)
	if err != nil {
		return models.UserDisplay{}, err
	}
	if b, err := json.Marshal(u); err == nil {
		_ = c.cli.Set(ctx, displayKey(id), b, c.ttl).Err()
	}
	return u, nil
}
