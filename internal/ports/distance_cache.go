package ports

import (
	"context"
	"trip-distance-service/internal/domain"
)

// Port: a best-effort cache of distance lookups keyed by origin,
// destination and mode. Implementations report misses via the bool,
// not via an error.
type DistanceCache interface {
	Get(ctx context.Context, origin string, destination string, mode domain.TravelMode) (DistanceResult, bool, error)
	Put(ctx context.Context, origin string, destination string, mode domain.TravelMode, result DistanceResult) error
}
