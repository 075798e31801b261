package cache

import (
	"context"
	"sync"
	"trip-distance-service/internal/domain"
	"trip-distance-service/internal/ports"
)

// MemoryDistanceCache deduplicates repeated city pairs within a single
// run. It is the default backend when no shared cache is configured.
type MemoryDistanceCache struct {
	mu sync.RWMutex
	m  map[string]ports.DistanceResult
}

func NewMemoryDistanceCache() *MemoryDistanceCache {
	return &MemoryDistanceCache{m: make(map[string]ports.DistanceResult)}
}

func (c *MemoryDistanceCache) Get(ctx context.Context, origin, destination string, mode domain.TravelMode) (ports.DistanceResult, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.m[string(mode)+":"+origin+"|"+destination]
	return r, ok, nil
}

func (c *MemoryDistanceCache) Put(ctx context.Context, origin, destination string, mode domain.TravelMode, result ports.DistanceResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.m[string(mode)+":"+origin+"|"+destination] = result
	return nil
}

// MemoryGeocodeCache keeps resolved coordinates for the lifetime of a run.
type MemoryGeocodeCache struct {
	mu sync.RWMutex
	m  map[string]domain.Coordinates
}

func NewMemoryGeocodeCache() *MemoryGeocodeCache {
	return &MemoryGeocodeCache{m: make(map[string]domain.Coordinates)}
}

func (c *MemoryGeocodeCache) Get(ctx context.Context, location string) (domain.Coordinates, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.m[location]
	return v, ok, nil
}

func (c *MemoryGeocodeCache) Put(ctx context.Context, location string, coords domain.Coordinates) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.m[location] = coords
	return nil
}
