package ports

import (
	"context"
	"trip-distance-service/internal/domain"
)

// Port: a boundary for resolving a location name to coordinates.
type Geocoder interface {
	// Resolve a place name to geographic coordinates.
	Geocode(ctx context.Context, location string) (domain.Coordinates, error)
}
