package distance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"trip-distance-service/internal/domain"
	"trip-distance-service/internal/ports"
)

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// fetchGeocode resolves one location name via the geocoding endpoint,
// taking the first (best) match.
func (g *GoogleMapsProvider) fetchGeocode(
	ctx context.Context,
	location string,
) (domain.Coordinates, error) {
	var decoded geocodeResponse

	err := g.retry.Do(ctx, func() error {
		params := url.Values{}
		params.Set("address", location)

		req, err := g.newRequest(ctx, "/maps/api/geocode/json", params)
		if err != nil {
			return fmt.Errorf("geocode request: %w", err)
		}

		resp, err := g.do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		decoded = geocodeResponse{}
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return fmt.Errorf("decode geocode response: %w", err)
		}

		return checkAPIStatus(decoded.Status, decoded.ErrorMessage)
	})
	if err != nil {
		// The geocoder reports unknown places as a top-level status.
		var ae *apiStatusError
		if errors.As(err, &ae) && ae.Status == "ZERO_RESULTS" {
			return domain.Coordinates{}, fmt.Errorf("no geocode results for %q: %w", location, ports.ErrUnavailable)
		}
		return domain.Coordinates{}, err
	}

	if len(decoded.Results) == 0 {
		return domain.Coordinates{}, fmt.Errorf("no geocode results for %q: %w", location, ports.ErrUnavailable)
	}

	loc := decoded.Results[0].Geometry.Location

	return domain.Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil
}
