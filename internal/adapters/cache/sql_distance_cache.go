package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"trip-distance-service/internal/domain"
	"trip-distance-service/internal/platform/obs"
	"trip-distance-service/internal/ports"
)

// SQLDistanceCache is a postgres-backed cache for mode-specific distance
// results, shared between runs and between machines.
type SQLDistanceCache struct {
	DB *sql.DB
}

func NewSQLDistanceCache(db *sql.DB) *SQLDistanceCache {
	return &SQLDistanceCache{DB: db}
}

// Fetch the cached result for one origin, destination and mode.
func (s *SQLDistanceCache) Get(
	ctx context.Context,
	origin string,
	destination string,
	mode domain.TravelMode,
) (_ ports.DistanceResult, _ bool, err error) {
	defer obs.Time(ctx, "distance.cache.Get")(&err)

	if s.DB == nil {
		return ports.DistanceResult{}, false, errors.New("distance cache: db is nil")
	}

	if origin == "" || destination == "" {
		return ports.DistanceResult{}, false, errors.New("get distance cache: origin and destination must not be empty")
	}

	q := `
	SELECT distance_meters, duration_seconds
    FROM distance_cache
    WHERE origin = $1
        AND destination = $2
        AND mode = $3;
	`

	var meters, seconds int
	scanErr := s.DB.QueryRowContext(ctx, q, origin, destination, string(mode)).Scan(&meters, &seconds)
	if errors.Is(scanErr, sql.ErrNoRows) {
		return ports.DistanceResult{}, false, nil
	}
	if scanErr != nil {
		return ports.DistanceResult{}, false, fmt.Errorf("get distance cache: query distance_cache table: %w", scanErr)
	}

	return ports.DistanceResult{
		DistanceMeters:  meters,
		DurationSeconds: seconds,
	}, true, nil
}

// Store one distance result, replacing any previous value for the key.
func (s *SQLDistanceCache) Put(
	ctx context.Context,
	origin string,
	destination string,
	mode domain.TravelMode,
	result ports.DistanceResult,
) error {
	if s.DB == nil {
		return errors.New("distance cache: db is nil")
	}

	if origin == "" || destination == "" {
		return errors.New("insert distance cache: origin and destination must not be empty")
	}

	q := `
	INSERT INTO distance_cache (origin, destination, mode, distance_meters, duration_seconds)
    VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (origin, destination, mode) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds;
	`

	if _, err := s.DB.ExecContext(ctx, q, origin, destination, string(mode), result.DistanceMeters, result.DurationSeconds); err != nil {
		return fmt.Errorf("insert distance cache %q -> %q mode=%s: %w", origin, destination, mode, err)
	}

	return nil
}
