package distance

import (
	"context"
	"fmt"
	"trip-distance-service/internal/domain"
	"trip-distance-service/internal/ports"
)

// MockPair configures one origin/destination/mode lookup. A mode-less
// pair answers every routable mode. Err, when set, is returned instead
// of the result.
type MockPair struct {
	From, To string
	Mode     domain.TravelMode
	Meters   int
	Seconds  int
	Err      error
}

type mockEntry struct {
	result ports.DistanceResult
	err    error
}

type MockDistanceProvider struct {
	m map[string]mockEntry

	// Calls counts lookups, including failed ones.
	Calls int
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[string]mockEntry, len(pairs))
	for _, p := range pairs {
		entry := mockEntry{
			result: ports.DistanceResult{DistanceMeters: p.Meters, DurationSeconds: p.Seconds},
			err:    p.Err,
		}
		if p.Mode == "" {
			for _, mode := range domain.AllModes() {
				if mode == domain.ModeFlight {
					continue
				}
				m[mockKey(p.From, p.To, mode)] = entry
			}
			continue
		}
		m[mockKey(p.From, p.To, p.Mode)] = entry
	}
	return &MockDistanceProvider{m: m}
}

func (p *MockDistanceProvider) GetModeDistance(ctx context.Context, origin, destination string, mode domain.TravelMode) (ports.DistanceResult, error) {
	p.Calls++

	e, ok := p.m[mockKey(origin, destination, mode)]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("missing pair %q -> %q mode=%s", origin, destination, mode)
	}
	if e.err != nil {
		return ports.DistanceResult{}, e.err
	}

	return e.result, nil
}

func mockKey(from, to string, mode domain.TravelMode) string {
	return from + "|" + to + "|" + string(mode)
}

// MockGeocoder answers geocode lookups from fixed maps. Errs entries win
// over Coords entries.
type MockGeocoder struct {
	Coords map[string]domain.Coordinates
	Errs   map[string]error

	Calls int
}

func (g *MockGeocoder) Geocode(ctx context.Context, location string) (domain.Coordinates, error) {
	g.Calls++

	if err, ok := g.Errs[location]; ok {
		return domain.Coordinates{}, err
	}

	c, ok := g.Coords[location]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("missing geocode for %q", location)
	}

	return c, nil
}
