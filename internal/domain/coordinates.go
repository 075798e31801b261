package domain

import "fmt"

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lng float64
}

// Return coordinates as "lat,lng" for external API compatibility.
func (c Coordinates) LatLng() string { return fmt.Sprintf("%f,%f", c.Lat, c.Lng) }
