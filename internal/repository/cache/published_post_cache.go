package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"smart-blog-be/internal/dto"
	"smart-blog-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const publishedKeyPrefix = "post:published:"

// PublishedPostCache holds rendered published posts for the read-only view.
// Cache failures are logged and reported as misses.
type PublishedPostCache interface {
	Get(ctx context.Context, id uuid.UUID) (*dto.PostResponse, bool)
	Set(ctx context.Context, post *dto.PostResponse)
	Invalidate(ctx context.Context, id uuid.UUID)
}

type RedisPublishedPostCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.ILogger
}

func NewRedisPublishedPostCache(rdb *redis.Client, ttl time.Duration, log logger.ILogger) *RedisPublishedPostCache {
	return &RedisPublishedPostCache{rdb: rdb, ttl: ttl, logger: log}
}

func publishedKey(id uuid.UUID) string {
	return publishedKeyPrefix + id.String()
}

func (c *RedisPublishedPostCache) Get(ctx context.Context, id uuid.UUID) (*dto.PostResponse, bool) {
	raw, err := c.rdb.Get(ctx, publishedKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("CACHE", "Failed to read published post", map[string]interface{}{
				"post_id": id.String(),
				"error":   err.Error(),
			})
		}
		return nil, false
	}

	var post dto.PostResponse
	if err := json.Unmarshal(raw, &post); err != nil {
		c.logger.Warn("CACHE", "Dropping undecodable cache entry", map[string]interface{}{
			"post_id": id.String(),
			"error":   err.Error(),
		})
		c.Invalidate(ctx, id)
		return nil, false
	}
	return &post, true
}

func (c *RedisPublishedPostCache) Set(ctx context.Context, post *dto.PostResponse) {
	raw, err := json.Marshal(post)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, publishedKey(post.Id), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("CACHE", "Failed to cache published post", map[string]interface{}{
			"post_id": post.Id.String(),
			"error":   err.Error(),
		})
	}
}

func (c *RedisPublishedPostCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.rdb.Del(ctx, publishedKey(id)).Err(); err != nil {
		c.logger.Warn("CACHE", "Failed to invalidate published post", map[string]interface{}{
			"post_id": id.String(),
			"error":   err.Error(),
		})
	}
}
