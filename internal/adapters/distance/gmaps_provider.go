package distance

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
	"trip-distance-service/internal/domain"
	"trip-distance-service/internal/platform/obs"
	"trip-distance-service/internal/ports"
)

// GoogleMapsProvider implements DistanceProvider and Geocoder using the
// Google Maps Distance Matrix and Geocoding web services.
//
// It coordinates:
//   - Location text normalization
//   - Optional distance result caching
//   - Optional geocode caching
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use when its caches are.
type GoogleMapsProvider struct {
	session       *http.Client
	apiKey        string
	baseURL       string
	retry         Policy
	distanceCache ports.DistanceCache
	geocodeCache  ports.GeocodeCache
}

// Options tunes optional provider behavior. The zero value selects the
// public Maps endpoint, a 10 second HTTP timeout, the default retry
// policy and no caches.
type Options struct {
	BaseURL       string
	Client        *http.Client
	Retry         Policy
	DistanceCache ports.DistanceCache
	GeocodeCache  ports.GeocodeCache
}

func NewGoogleMapsProvider(apiKey string, opts Options) (*GoogleMapsProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("maps api key is empty")
	}

	provider := &GoogleMapsProvider{
		session:       &http.Client{Timeout: 10 * time.Second},
		apiKey:        apiKey,
		baseURL:       "https://maps.googleapis.com",
		retry:         DefaultPolicy(),
		distanceCache: opts.DistanceCache,
		geocodeCache:  opts.GeocodeCache,
	}

	if opts.BaseURL != "" {
		provider.baseURL = strings.TrimSuffix(opts.BaseURL, "/")
	}
	if opts.Client != nil {
		provider.session = opts.Client
	}
	if opts.Retry.MaxAttempts > 0 {
		provider.retry = opts.Retry
	}

	return provider, nil
}

// normalize ensures consistent queries and cache keys by collapsing
// whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// GetModeDistance returns travel distance and duration for one transport
// mode. Cache misses cost one API call per attempt; results are written
// back best-effort.
func (g *GoogleMapsProvider) GetModeDistance(
	ctx context.Context,
	origin string,
	destination string,
	mode domain.TravelMode,
) (_ ports.DistanceResult, err error) {
	defer obs.Time(ctx, "maps.GetModeDistance")(&err)

	normOrigin := normalize(origin)
	if normOrigin == "" {
		return ports.DistanceResult{}, errors.New("origin must be non-empty")
	}

	normDestination := normalize(destination)
	if normDestination == "" {
		return ports.DistanceResult{}, errors.New("destination must be non-empty")
	}

	switch mode {
	case domain.ModeDriving, domain.ModeTransit, domain.ModeWalking, domain.ModeBicycling:
	default:
		return ports.DistanceResult{}, fmt.Errorf("mode %q is not routable by the distance matrix", mode)
	}

	if g.distanceCache != nil {
		r, ok, cerr := g.distanceCache.Get(ctx, normOrigin, normDestination, mode)
		if cerr != nil {
			log.Printf("distance cache read failed: %v", cerr)
		} else if ok {
			return r, nil
		}
	}

	result, err := g.fetchModeDistance(ctx, normOrigin, normDestination, mode)
	if err != nil {
		return ports.DistanceResult{}, fmt.Errorf("distance %q -> %q mode=%s: %w", normOrigin, normDestination, mode, err)
	}

	if g.distanceCache != nil {
		if cerr := g.distanceCache.Put(ctx, normOrigin, normDestination, mode, result); cerr != nil {
			log.Printf("distance cache write failed: %v", cerr)
		}
	}

	return result, nil
}

// Geocode resolves a location name to coordinates.
func (g *GoogleMapsProvider) Geocode(
	ctx context.Context,
	location string,
) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "maps.Geocode")(&err)

	norm := normalize(location)
	if norm == "" {
		return domain.Coordinates{}, errors.New("location must be non-empty")
	}

	if g.geocodeCache != nil {
		c, ok, cerr := g.geocodeCache.Get(ctx, norm)
		if cerr != nil {
			log.Printf("geocode cache read failed: %v", cerr)
		} else if ok {
			return c, nil
		}
	}

	coords, err := g.fetchGeocode(ctx, norm)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", norm, err)
	}

	if g.geocodeCache != nil {
		if cerr := g.geocodeCache.Put(ctx, norm, coords); cerr != nil {
			log.Printf("geocode cache write failed: %v", cerr)
		}
	}

	return coords, nil
}
