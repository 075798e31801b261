package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"trip-distance-service/internal/domain"

	"github.com/redis/go-redis/v9"
)

// RedisGeocodeCache shares resolved coordinates across runs. Geocodes
// rarely change, but a TTL still bounds growth.
type RedisGeocodeCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{client: client, ttl: ttl}
}

func (c *RedisGeocodeCache) Get(ctx context.Context, location string) (domain.Coordinates, bool, error) {
	raw, err := c.client.Get(ctx, "geo:"+location).Result()
	if err == redis.Nil {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("redis get geocode: %w", err)
	}

	var coords domain.Coordinates
	if err := json.Unmarshal([]byte(raw), &coords); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("redis decode geocode: %w", err)
	}

	return coords, true, nil
}

func (c *RedisGeocodeCache) Put(ctx context.Context, location string, coords domain.Coordinates) error {
	payload, err := json.Marshal(coords)
	if err != nil {
		return fmt.Errorf("redis encode geocode: %w", err)
	}

	if err := c.client.Set(ctx, "geo:"+location, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis put geocode: %w", err)
	}

	return nil
}
