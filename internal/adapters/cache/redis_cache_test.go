package cache

import (
	"context"
	"testing"
	"time"
	"trip-distance-service/internal/domain"
	"trip-distance-service/internal/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	return client
}

func TestRedisDistanceCacheRoundTrip(t *testing.T) {
	c := NewRedisDistanceCache(newTestRedis(t), time.Hour)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "A", "B", domain.ModeTransit); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	want := ports.DistanceResult{DistanceMeters: 2500, DurationSeconds: 900}
	if err := c.Put(ctx, "A", "B", domain.ModeTransit, want); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.Get(ctx, "A", "B", domain.ModeTransit)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestRedisDistanceCacheKeysByMode(t *testing.T) {
	c := NewRedisDistanceCache(newTestRedis(t), time.Hour)
	ctx := context.Background()

	if err := c.Put(ctx, "A", "B", domain.ModeDriving, ports.DistanceResult{DistanceMeters: 100}); err != nil {
		t.Fatalf("put: %v", err)
	}

	if _, ok, _ := c.Get(ctx, "A", "B", domain.ModeBicycling); ok {
		t.Fatal("bicycling lookup should miss")
	}
}

func TestRedisGeocodeCacheRoundTrip(t *testing.T) {
	c := NewRedisGeocodeCache(newTestRedis(t), time.Hour)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "Lisbon, Portugal"); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	want := domain.Coordinates{Lat: 38.7223, Lng: -9.1393}
	if err := c.Put(ctx, "Lisbon, Portugal", want); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.Get(ctx, "Lisbon, Portugal")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
