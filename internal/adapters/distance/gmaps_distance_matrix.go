package distance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"trip-distance-service/internal/domain"
	"trip-distance-service/internal/ports"
)

// googleMetric is the value/text pair the API returns for distances
// (meters) and durations (seconds).
type googleMetric struct {
	Value int    `json:"value"`
	Text  string `json:"text"`
}

type matrixElement struct {
	Status   string       `json:"status"`
	Distance googleMetric `json:"distance"`
	Duration googleMetric `json:"duration"`
}

type distanceMatrixResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Rows         []struct {
		Elements []matrixElement `json:"elements"`
	} `json:"rows"`
}

// fetchModeDistance retrieves distance and duration for one city pair and
// mode from the distance matrix endpoint. Transient failures, including
// rate-limit statuses reported inside a 200 body, are retried per the
// provider's policy.
func (g *GoogleMapsProvider) fetchModeDistance(
	ctx context.Context,
	origin string,
	destination string,
	mode domain.TravelMode,
) (ports.DistanceResult, error) {
	var decoded distanceMatrixResponse

	err := g.retry.Do(ctx, func() error {
		params := url.Values{}
		params.Set("origins", origin)
		params.Set("destinations", destination)
		params.Set("mode", string(mode))
		params.Set("units", "metric")
		params.Set("departure_time", "now")

		req, err := g.newRequest(ctx, "/maps/api/distancematrix/json", params)
		if err != nil {
			return fmt.Errorf("distance matrix request: %w", err)
		}

		resp, err := g.do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		decoded = distanceMatrixResponse{}
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return fmt.Errorf("decode distance matrix response: %w", err)
		}

		return checkAPIStatus(decoded.Status, decoded.ErrorMessage)
	})
	if err != nil {
		return ports.DistanceResult{}, err
	}

	if len(decoded.Rows) == 0 || len(decoded.Rows[0].Elements) == 0 {
		return ports.DistanceResult{}, fmt.Errorf("matrix returned no elements for %q -> %q", origin, destination)
	}

	element := decoded.Rows[0].Elements[0]
	switch element.Status {
	case "OK":
	case "ZERO_RESULTS", "NOT_FOUND", "MAX_ROUTE_LENGTH_EXCEEDED":
		return ports.DistanceResult{}, fmt.Errorf("no %s route (%s): %w", mode, element.Status, ports.ErrUnavailable)
	default:
		return ports.DistanceResult{}, fmt.Errorf("matrix element status %s for %q -> %q", element.Status, origin, destination)
	}

	if element.Distance.Value < 0 || element.Duration.Value < 0 {
		return ports.DistanceResult{}, fmt.Errorf(
			"matrix returned negative metrics for %q -> %q: distance=%d duration=%d",
			origin, destination, element.Distance.Value, element.Duration.Value,
		)
	}

	return ports.DistanceResult{
		DistanceMeters:  element.Distance.Value,
		DurationSeconds: element.Duration.Value,
	}, nil
}
