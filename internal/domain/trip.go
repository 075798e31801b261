package domain

import (
	"fmt"
	"math"
	"strings"
)

// TravelMode identifies how a trip between two cities is made.
type TravelMode string

const (
	ModeDriving   TravelMode = "driving"
	ModeTransit   TravelMode = "transit"
	ModeWalking   TravelMode = "walking"
	ModeBicycling TravelMode = "bicycling"
	ModeFlight    TravelMode = "flight"
)

// NotAvailable is written to any result cell whose value could not be computed.
const NotAvailable = "N/A"

// AllModes returns every supported mode in output column order.
func AllModes() []TravelMode {
	return []TravelMode{ModeDriving, ModeTransit, ModeWalking, ModeBicycling, ModeFlight}
}

// ParseTravelMode maps the spellings found in input sheets to a TravelMode.
func ParseTravelMode(s string) (TravelMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "driving", "car", "drive":
		return ModeDriving, nil
	case "transit", "public transport", "public_transport", "bus":
		return ModeTransit, nil
	case "walking", "walk", "foot":
		return ModeWalking, nil
	case "bicycling", "bicycle", "bike", "cycling":
		return ModeBicycling, nil
	case "flight", "fly", "plane", "air":
		return ModeFlight, nil
	}

	return "", fmt.Errorf("unknown travel mode %q", s)
}

// ColumnPrefix returns the spreadsheet column prefix for this mode.
func (m TravelMode) ColumnPrefix() string {
	switch m {
	case ModeDriving:
		return "Car"
	case ModeTransit:
		return "Public_Transport"
	case ModeWalking:
		return "Walking"
	case ModeBicycling:
		return "Bicycle"
	case ModeFlight:
		return "Flight"
	}

	return string(m)
}

// Location is a place reference as it appears in the input sheet.
// Free-text values like "London, UK" ride in City with the other
// fields empty.
type Location struct {
	City    string
	State   string
	Country string
}

// String joins the non-empty parts for display and API queries.
func (l Location) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.City, l.State, l.Country} {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}

	return strings.Join(parts, ", ")
}

// IsBlank reports whether the location carries no usable text.
func (l Location) IsBlank() bool { return l.String() == "" }

// TripRequest is one input row: a city pair plus the modes to compute.
// Row is the 1-based spreadsheet row it came from. An empty Modes slice
// means every supported mode.
type TripRequest struct {
	Row         int
	Origin      Location
	Destination Location
	Modes       []TravelMode
}

// ModeStatus describes the outcome of a single mode lookup.
type ModeStatus string

const (
	StatusOK          ModeStatus = "ok"
	StatusUnavailable ModeStatus = "unavailable"
	StatusError       ModeStatus = "error"
)

// ModeResult is the computed distance and duration for one mode of one
// trip. Values are meaningful only when Status is StatusOK. Results are
// never mutated after construction.
type ModeResult struct {
	Mode          TravelMode
	DistanceKm    float64
	DurationHours float64
	Status        ModeStatus
}

// NewModeResult converts raw metrics (meters, seconds) to the rounded
// kilometer and hour values that land in the spreadsheet.
func NewModeResult(mode TravelMode, meters int, seconds int) ModeResult {
	return ModeResult{
		Mode:          mode,
		DistanceKm:    Round2(float64(meters) / 1000),
		DurationHours: Round2(float64(seconds) / 3600),
		Status:        StatusOK,
	}
}

// NewFlightResult carries an estimated flight distance. Flights have no
// duration estimate.
func NewFlightResult(distanceKm float64) ModeResult {
	return ModeResult{
		Mode:       ModeFlight,
		DistanceKm: Round2(distanceKm),
		Status:     StatusOK,
	}
}

// NewFailedResult marks a mode whose lookup could not produce a value.
func NewFailedResult(mode TravelMode, status ModeStatus) ModeResult {
	return ModeResult{Mode: mode, Status: status}
}

// Round2 rounds to two decimal places for presentation.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// OutputRow is the computed result for one input row. Origin holds the
// effective origin after default substitution.
type OutputRow struct {
	Row         int
	Origin      string
	Destination string
	Results     []ModeResult
}
