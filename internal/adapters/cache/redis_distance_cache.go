package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"trip-distance-service/internal/domain"
	"trip-distance-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

// RedisDistanceCache shares distance results across runs through a Redis
// instance. Entries expire after the configured TTL so stale traffic
// estimates age out.
type RedisDistanceCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDistanceCache(client *redis.Client, ttl time.Duration) *RedisDistanceCache {
	return &RedisDistanceCache{client: client, ttl: ttl}
}

func (c *RedisDistanceCache) Get(ctx context.Context, origin, destination string, mode domain.TravelMode) (ports.DistanceResult, bool, error) {
	raw, err := c.client.Get(ctx, redisDistanceKey(origin, destination, mode)).Result()
	if err == redis.Nil {
		return ports.DistanceResult{}, false, nil
	}
	if err != nil {
		return ports.DistanceResult{}, false, fmt.Errorf("redis get distance: %w", err)
	}

	var r ports.DistanceResult
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return ports.DistanceResult{}, false, fmt.Errorf("redis decode distance: %w", err)
	}

	return r, true, nil
}

func (c *RedisDistanceCache) Put(ctx context.Context, origin, destination string, mode domain.TravelMode, result ports.DistanceResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("redis encode distance: %w", err)
	}

	if err := c.client.Set(ctx, redisDistanceKey(origin, destination, mode), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis put distance: %w", err)
	}

	return nil
}

func redisDistanceKey(origin, destination string, mode domain.TravelMode) string {
	return fmt.Sprintf("dist:%s:%s|%s", mode, origin, destination)
}
