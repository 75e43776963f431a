package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/eduhire/eduhire-api/internal/domain/user"
	"github.com/eduhire/eduhire-api/pkg/logger"
)

// userCacheTTL bounds staleness between an external write and the next
// read. Writers invalidate explicitly; the TTL is the backstop.
const userCacheTTL = 5 * time.Minute

type redisUserCache struct {
	client *redis.Client
	logger logger.Logger
}

func NewRedisUserCache(client *redis.Client, logger logger.Logger) user.Cache {
	return &redisUserCache{client: client, logger: logger}
}

func userCacheKey(id uuid.UUID) string {
	return "user:doc:" + id.String()
}

func (c *redisUserCache) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	raw, err := c.client.Get(ctx, userCacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	u := &user.User{}
	if err := json.Unmarshal(raw, u); err != nil {
		// A corrupt entry is treated as a miss.
		return nil, fmt.Errorf("cannot unmarshal cached user: %w", err)
	}
	return u, nil
}

// Set stores the document via its JSON form, so the password hash
// (excluded from serialization) never enters Redis.
func (c *redisUserCache) Set(ctx context.Context, u *user.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("cannot marshal user for cache: %w", err)
	}
	if err := c.client.Set(ctx, userCacheKey(u.ID), raw, userCacheTTL).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisUserCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Del(ctx, userCacheKey(id)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}
