package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
	"trip-distance-service/internal/domain"
	"trip-distance-service/internal/platform/obs"
	"trip-distance-service/internal/ports"
)

// TripProcessor runs the per-row lookup loop: one distance matrix call
// per routable mode plus a geocode-based flight estimate, with a pause
// between external calls to stay under the API's rate limits.
//
// Failures degrade per cell. A mode that cannot be computed yields a
// failed result, the row keeps its place, and processing continues.
type TripProcessor struct {
	provider      ports.DistanceProvider
	geocoder      ports.Geocoder
	defaultOrigin string
	pause         time.Duration
	sleep         func(d time.Duration)
}

// NewTripProcessor wires the processor. defaultOrigin substitutes for
// blank origins and must name a real place.
func NewTripProcessor(
	provider ports.DistanceProvider,
	geocoder ports.Geocoder,
	defaultOrigin string,
	pause time.Duration,
) (*TripProcessor, error) {
	if provider == nil {
		return nil, errors.New("trip processor: distance provider is nil")
	}
	if geocoder == nil {
		return nil, errors.New("trip processor: geocoder is nil")
	}
	if defaultOrigin == "" {
		return nil, errors.New("trip processor: default origin must be non-empty")
	}

	return &TripProcessor{
		provider:      provider,
		geocoder:      geocoder,
		defaultOrigin: defaultOrigin,
		pause:         pause,
		sleep:         time.Sleep,
	}, nil
}

// ProcessAll computes results for every trip, preserving input order:
// one output row per trip, always. It returns early only when ctx is
// cancelled, handing back the rows produced so far.
func (p *TripProcessor) ProcessAll(
	ctx context.Context,
	trips []domain.TripRequest,
) ([]domain.OutputRow, *Summary, error) {
	summary := NewSummary()

	out := make([]domain.OutputRow, 0, len(trips))
	for i, trip := range trips {
		if err := ctx.Err(); err != nil {
			return out, summary, fmt.Errorf("process trips: %w", err)
		}

		origin := trip.Origin.String()
		if origin == "" {
			origin = p.defaultOrigin
		}
		destination := trip.Destination.String()

		log.Printf("processing row %d/%d: %q -> %q", i+1, len(trips), origin, destination)

		rowCtx := context.WithValue(ctx, obs.RowKey, trip.Row)
		row, err := p.processOne(rowCtx, summary, trip, origin, destination)
		if err != nil {
			return out, summary, fmt.Errorf("process trips: %w", err)
		}

		out = append(out, row)
		summary.Record(row)
	}

	return out, summary, nil
}

// processOne resolves every requested mode for a single trip. The error
// return is reserved for context cancellation; lookup failures are folded
// into the row.
func (p *TripProcessor) processOne(
	ctx context.Context,
	summary *Summary,
	trip domain.TripRequest,
	origin string,
	destination string,
) (domain.OutputRow, error) {
	modes := trip.Modes
	if len(modes) == 0 {
		modes = domain.AllModes()
	}

	results := make([]domain.ModeResult, 0, len(modes))
	for _, mode := range modes {
		if err := ctx.Err(); err != nil {
			return domain.OutputRow{}, err
		}

		results = append(results, p.lookupMode(ctx, summary, trip.Row, origin, destination, mode))
		p.sleep(p.pause)
	}

	return domain.OutputRow{
		Row:         trip.Row,
		Origin:      origin,
		Destination: destination,
		Results:     results,
	}, nil
}

func (p *TripProcessor) lookupMode(
	ctx context.Context,
	summary *Summary,
	rowNum int,
	origin string,
	destination string,
	mode domain.TravelMode,
) domain.ModeResult {
	if mode == domain.ModeFlight {
		km, err := EstimateFlightDistanceKm(ctx, p.geocoder, origin, destination)
		if err != nil {
			return p.fallback(summary, rowNum, mode, err)
		}
		return domain.NewFlightResult(km)
	}

	r, err := p.provider.GetModeDistance(ctx, origin, destination, mode)
	if err != nil {
		return p.fallback(summary, rowNum, mode, err)
	}

	return domain.NewModeResult(mode, r.DistanceMeters, r.DurationSeconds)
}

// fallback converts a lookup failure into a failed result and records it.
func (p *TripProcessor) fallback(summary *Summary, rowNum int, mode domain.TravelMode, err error) domain.ModeResult {
	status := domain.StatusError
	if errors.Is(err, ports.ErrUnavailable) {
		status = domain.StatusUnavailable
	}

	log.Printf("row=%d mode=%s fallback: %v", rowNum, mode, err)
	summary.RecordFallback(rowNum, mode, err)

	return domain.NewFailedResult(mode, status)
}
