package domain

import (
	"math"
	"testing"
)

var (
	newYork    = Coordinates{Lat: 40.7128, Lng: -74.0060}
	losAngeles = Coordinates{Lat: 34.0522, Lng: -118.2437}
	london     = Coordinates{Lat: 51.5074, Lng: -0.1278}
	paris      = Coordinates{Lat: 48.8566, Lng: 2.3522}
)

func TestHaversineKmNewYorkLosAngeles(t *testing.T) {
	got := HaversineKm(newYork, losAngeles)

	// Known great-circle distance is roughly 3940 km; allow 1%.
	if math.Abs(got-3940) > 39.4 {
		t.Fatalf("HaversineKm = %v, want 3940 +/- 39.4", got)
	}
}

func TestHaversineKmLondonParis(t *testing.T) {
	got := HaversineKm(london, paris)

	if math.Abs(got-343.5) > 3.5 {
		t.Fatalf("HaversineKm = %v, want 343.5 +/- 3.5", got)
	}
}

func TestHaversineKmSamePointIsZero(t *testing.T) {
	if got := HaversineKm(london, london); got != 0 {
		t.Fatalf("HaversineKm = %v, want 0", got)
	}
}

func TestHaversineKmIsSymmetric(t *testing.T) {
	ab := HaversineKm(newYork, losAngeles)
	ba := HaversineKm(losAngeles, newYork)

	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("asymmetric: %v vs %v", ab, ba)
	}
}
