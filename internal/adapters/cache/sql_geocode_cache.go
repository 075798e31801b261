package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"trip-distance-service/internal/domain"
	"trip-distance-service/internal/platform/obs"
)

// SQLGeocodeCache is a postgres-backed cache mapping location names to
// coordinates.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Fetch cached coordinates for one location name.
func (s *SQLGeocodeCache) Get(
	ctx context.Context,
	location string,
) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: db is nil")
	}

	if location == "" {
		return domain.Coordinates{}, false, errors.New("get geocode cache: location must not be empty")
	}

	q := `
	SELECT lat, lng
    FROM geocode_cache
    WHERE address = $1;
	`

	var coords domain.Coordinates
	scanErr := s.DB.QueryRowContext(ctx, q, location).Scan(&coords.Lat, &coords.Lng)
	if errors.Is(scanErr, sql.ErrNoRows) {
		return domain.Coordinates{}, false, nil
	}
	if scanErr != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", scanErr)
	}

	return coords, true, nil
}

// Store coordinates for one location name.
func (s *SQLGeocodeCache) Put(
	ctx context.Context,
	location string,
	coords domain.Coordinates,
) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if location == "" {
		return errors.New("insert geocode cache: location must not be empty")
	}

	q := `
	INSERT INTO geocode_cache (address, lat, lng)
    VALUES ($1, $2, $3)
	ON CONFLICT (address) DO UPDATE
	SET lat = EXCLUDED.lat,
		lng = EXCLUDED.lng;
	`

	if _, err := s.DB.ExecContext(ctx, q, location, coords.Lat, coords.Lng); err != nil {
		return fmt.Errorf("insert geocode cache %q: %w", location, err)
	}

	return nil
}
