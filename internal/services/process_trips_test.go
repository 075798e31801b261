package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"
	"trip-distance-service/internal/adapters/distance"
	"trip-distance-service/internal/domain"
	"trip-distance-service/internal/ports"
)

const testDefaultOrigin = "New York, NY, USA"

func testGeocoder() *distance.MockGeocoder {
	return &distance.MockGeocoder{
		Coords: map[string]domain.Coordinates{
			"New York, NY, USA":    {Lat: 40.7128, Lng: -74.0060},
			"Los Angeles, CA, USA": {Lat: 34.0522, Lng: -118.2437},
		},
		Errs: map[string]error{},
	}
}

func newTestProcessor(t *testing.T, provider ports.DistanceProvider, geocoder ports.Geocoder) *TripProcessor {
	t.Helper()

	p, err := NewTripProcessor(provider, geocoder, testDefaultOrigin, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p
}

func TestProcessAllComputesEveryMode(t *testing.T) {
	provider := distance.NewMockDistanceProvider([]distance.MockPair{
		{From: "New York, NY, USA", To: "Los Angeles, CA, USA", Meters: 4489000, Seconds: 151200},
	})

	p := newTestProcessor(t, provider, testGeocoder())

	trips := []domain.TripRequest{{
		Row:         2,
		Origin:      domain.Location{City: "New York", State: "NY", Country: "USA"},
		Destination: domain.Location{City: "Los Angeles", State: "CA", Country: "USA"},
	}}

	rows, summary, err := p.ProcessAll(context.Background(), trips)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}

	row := rows[0]
	if len(row.Results) != 5 {
		t.Fatalf("results = %d, want 5", len(row.Results))
	}

	// Results follow the canonical mode order.
	for i, mode := range domain.AllModes() {
		if row.Results[i].Mode != mode {
			t.Fatalf("result %d mode = %s, want %s", i, row.Results[i].Mode, mode)
		}
		if row.Results[i].Status != domain.StatusOK {
			t.Fatalf("result %d status = %s", i, row.Results[i].Status)
		}
	}

	if got := row.Results[0].DistanceKm; got != 4489.0 {
		t.Fatalf("driving distance = %v, want 4489.0", got)
	}
	if got := row.Results[0].DurationHours; got != 42.0 {
		t.Fatalf("driving duration = %v, want 42.0", got)
	}

	flight := row.Results[4]
	if math.Abs(flight.DistanceKm-3940) > 39.4 {
		t.Fatalf("flight distance = %v, want 3940 +/- 39.4", flight.DistanceKm)
	}
	if flight.DurationHours != 0 {
		t.Fatalf("flight duration = %v, want 0", flight.DurationHours)
	}

	if summary.Full != 1 || summary.Partial != 0 || len(summary.Fallbacks) != 0 {
		t.Fatalf("summary = %+v", summary)
	}
}

func TestProcessAllKeepsRowOnFailure(t *testing.T) {
	provider := distance.NewMockDistanceProvider([]distance.MockPair{
		{From: "New York, NY, USA", To: "Los Angeles, CA, USA", Meters: 4489000, Seconds: 151200},
	})

	geocoder := testGeocoder()
	geocoder.Errs["Atlantis"] = fmt.Errorf("no geocode results for %q: %w", "Atlantis", ports.ErrUnavailable)

	p := newTestProcessor(t, provider, geocoder)

	trips := []domain.TripRequest{
		{
			Row:         2,
			Origin:      domain.Location{City: "New York, NY, USA"},
			Destination: domain.Location{City: "Los Angeles, CA, USA"},
		},
		{
			Row:         3,
			Origin:      domain.Location{City: "New York, NY, USA"},
			Destination: domain.Location{City: "Atlantis"},
		},
	}

	rows, summary, err := p.ProcessAll(context.Background(), trips)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A failing row never disappears and never stops the run.
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Row != 2 || rows[1].Row != 3 {
		t.Fatalf("row order = %d, %d", rows[0].Row, rows[1].Row)
	}

	for _, r := range rows[0].Results {
		if r.Status != domain.StatusOK {
			t.Fatalf("first row %s status = %s", r.Mode, r.Status)
		}
	}

	for _, r := range rows[1].Results {
		if r.Status == domain.StatusOK {
			t.Fatalf("second row %s should have failed", r.Mode)
		}
	}

	// Routable modes fail with a plain provider error; the flight leg
	// surfaces the unavailable sentinel from geocoding.
	if got := rows[1].Results[0].Status; got != domain.StatusError {
		t.Fatalf("driving status = %s, want error", got)
	}
	if got := rows[1].Results[4].Status; got != domain.StatusUnavailable {
		t.Fatalf("flight status = %s, want unavailable", got)
	}

	if summary.Full != 1 || summary.Partial != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if len(summary.Fallbacks) != 5 {
		t.Fatalf("fallbacks = %d, want 5", len(summary.Fallbacks))
	}
	for _, f := range summary.Fallbacks {
		if f.Row != 3 {
			t.Fatalf("fallback row = %d, want 3", f.Row)
		}
	}
}

func TestProcessAllUsesDefaultOriginForBlankOrigin(t *testing.T) {
	provider := distance.NewMockDistanceProvider([]distance.MockPair{
		{From: testDefaultOrigin, To: "Boston, MA", Mode: domain.ModeDriving, Meters: 346000, Seconds: 14400},
	})

	p := newTestProcessor(t, provider, testGeocoder())

	trips := []domain.TripRequest{{
		Row:         2,
		Destination: domain.Location{City: "Boston, MA"},
		Modes:       []domain.TravelMode{domain.ModeDriving},
	}}

	rows, _, err := p.ProcessAll(context.Background(), trips)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rows[0].Origin != testDefaultOrigin {
		t.Fatalf("origin = %q, want %q", rows[0].Origin, testDefaultOrigin)
	}
	if rows[0].Results[0].Status != domain.StatusOK {
		t.Fatalf("status = %s, want ok", rows[0].Results[0].Status)
	}
	if provider.Calls != 1 {
		t.Fatalf("provider calls = %d, want 1", provider.Calls)
	}
}

func TestProcessAllPausesBetweenLookups(t *testing.T) {
	provider := distance.NewMockDistanceProvider([]distance.MockPair{
		{From: "A", To: "B", Meters: 1000, Seconds: 60},
	})

	p, err := NewTripProcessor(provider, testGeocoder(), testDefaultOrigin, 5*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var pauses []time.Duration
	p.sleep = func(d time.Duration) { pauses = append(pauses, d) }

	trips := []domain.TripRequest{{
		Row:         2,
		Origin:      domain.Location{City: "A"},
		Destination: domain.Location{City: "B"},
		Modes:       []domain.TravelMode{domain.ModeDriving, domain.ModeTransit},
	}}

	if _, _, err := p.ProcessAll(context.Background(), trips); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(pauses) != 2 {
		t.Fatalf("pauses = %d, want 2", len(pauses))
	}
	for _, d := range pauses {
		if d != 5*time.Millisecond {
			t.Fatalf("pause = %v, want 5ms", d)
		}
	}
}

func TestProcessAllStopsWhenCancelled(t *testing.T) {
	provider := distance.NewMockDistanceProvider(nil)
	p := newTestProcessor(t, provider, testGeocoder())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	trips := []domain.TripRequest{{
		Row:         2,
		Origin:      domain.Location{City: "A"},
		Destination: domain.Location{City: "B"},
	}}

	rows, _, err := p.ProcessAll(ctx, trips)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rows = %d, want 0", len(rows))
	}
	if provider.Calls != 0 {
		t.Fatalf("provider calls = %d, want 0", provider.Calls)
	}
}

func TestSummaryCounts(t *testing.T) {
	s := NewSummary()

	s.Record(domain.OutputRow{Results: []domain.ModeResult{
		domain.NewModeResult(domain.ModeDriving, 1000, 60),
	}})
	s.Record(domain.OutputRow{Results: []domain.ModeResult{
		domain.NewModeResult(domain.ModeDriving, 1000, 60),
		domain.NewFailedResult(domain.ModeTransit, domain.StatusUnavailable),
	}})
	s.RecordFallback(3, domain.ModeTransit, errors.New("no transit route"))
	s.RecordSkipped(2)

	if s.Total != 2 || s.Full != 1 || s.Partial != 1 || s.Skipped != 2 {
		t.Fatalf("summary = %+v", s)
	}
	if len(s.Fallbacks) != 1 || s.Fallbacks[0].Mode != domain.ModeTransit {
		t.Fatalf("fallbacks = %+v", s.Fallbacks)
	}
}
