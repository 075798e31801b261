package services

import (
	"context"
	"fmt"
	"trip-distance-service/internal/domain"
	"trip-distance-service/internal/ports"
)

// EstimateFlightDistanceKm approximates flight distance as the
// great-circle distance between the geocoded endpoints. It never calls
// the routing API and produces no duration.
func EstimateFlightDistanceKm(
	ctx context.Context,
	geocoder ports.Geocoder,
	origin string,
	destination string,
) (float64, error) {
	from, err := geocoder.Geocode(ctx, origin)
	if err != nil {
		return 0, fmt.Errorf("flight distance: geocode origin %q: %w", origin, err)
	}

	to, err := geocoder.Geocode(ctx, destination)
	if err != nil {
		return 0, fmt.Errorf("flight distance: geocode destination %q: %w", destination, err)
	}

	return domain.HaversineKm(from, to), nil
}
