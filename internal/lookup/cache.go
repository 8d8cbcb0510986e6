package lookup

import (
	"context"
	"fmt"
	"time"

	"addressbook/internal/common/database"
	"addressbook/internal/common/logger"
)

// Cache stores raw lookup response bodies in Redis keyed by search terms.
// Failures degrade to a cache miss; they never fail a search.
type Cache struct {
	redis  *database.RedisClient
	ttl    time.Duration
	logger logger.Logger
}

func NewCache(client *database.RedisClient, ttl time.Duration, log logger.Logger) *Cache {
	return &Cache{
		redis:  client,
		ttl:    ttl,
		logger: log,
	}
}

func cacheKey(postcode, houseNumber string) string {
	return fmt.Sprintf("lookup:%s:%s", postcode, houseNumber)
}

func (c *Cache) Get(ctx context.Context, postcode, houseNumber string) ([]byte, bool) {
	value, err := c.redis.Get(ctx, cacheKey(postcode, houseNumber))
	if err != nil {
		return nil, false
	}
	return []byte(value), true
}

func (c *Cache) Set(ctx context.Context, postcode, houseNumber string, body []byte) {
	if err := c.redis.Set(ctx, cacheKey(postcode, houseNumber), body, c.ttl); err != nil {
		c.logger.Warn("failed to cache lookup response", map[string]interface{}{
			"postcode": postcode,
			"error":    err.Error(),
		})
	}
}
