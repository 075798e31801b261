package ports

import (
	"context"
	"trip-distance-service/internal/domain"
)

// Port: a best-effort cache mapping location names to coordinates.
type GeocodeCache interface {
	Get(ctx context.Context, location string) (domain.Coordinates, bool, error)
	Put(ctx context.Context, location string, coords domain.Coordinates) error
}
