package ports

import (
	"context"
	"trip-distance-service/internal/domain"
)

// Distance and travel duration between two locations.
type DistanceResult struct {
	DistanceMeters  int
	DurationSeconds int
}

// Contract for retrieving travel distance and duration between two
// locations for a single transport mode.
type DistanceProvider interface {
	// Return travel distance and estimated duration for one mode.
	GetModeDistance(ctx context.Context, origin string, destination string, mode domain.TravelMode) (DistanceResult, error)
}
