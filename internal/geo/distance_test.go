package geo

import (
	"math"
	"testing"

	"github.com/shivam18213/distance-calculator/internal/domain"
)

const (
	nycLat = 40.7128
	nycLon = -74.0060
	laLat  = 34.0522
	laLon  = -118.2437
)

func TestHaversineKmIdenticalPoints(t *testing.T) {
	points := []domain.Coordinates{
		{Lat: 0, Lon: 0},
		{Lat: nycLat, Lon: nycLon},
		{Lat: -89.9, Lon: 179.9},
	}

	for _, p := range points {
		d := HaversineKm(p.Lat, p.Lon, p.Lat, p.Lon)
		if d >= 0.1 {
			t.Errorf("HaversineKm(%v, %v, same) = %v, want < 0.1", p.Lat, p.Lon, d)
		}
	}
}

func TestHaversineKmSymmetric(t *testing.T) {
	ab := HaversineKm(nycLat, nycLon, laLat, laLon)
	ba := HaversineKm(laLat, laLon, nycLat, nycLon)

	if ab != ba {
		t.Fatalf("HaversineKm not symmetric: %v vs %v", ab, ba)
	}
}

func TestHaversineKmNewYorkToLosAngeles(t *testing.T) {
	km := HaversineKm(nycLat, nycLon, laLat, laLon)
	if km <= 3900 || km >= 4000 {
		t.Fatalf("NYC -> LA = %v km, want strictly between 3900 and 4000", km)
	}

	miles := KmToMiles(km)
	if miles <= 2400 || miles >= 2500 {
		t.Fatalf("NYC -> LA = %v miles, want strictly between 2400 and 2500", miles)
	}
}

func TestConversionRoundTrip(t *testing.T) {
	for _, x := range []float64{0.01, 1, 42.195, 6371, 12345.678} {
		if got := KmToMiles(MilesToKm(x)); math.Abs(got-x) > 1e-9 {
			t.Errorf("KmToMiles(MilesToKm(%v)) = %v", x, got)
		}
		if got := MilesToKm(KmToMiles(x)); math.Abs(got-x) > 1e-9 {
			t.Errorf("MilesToKm(KmToMiles(%v)) = %v", x, got)
		}
	}
}

func TestDistanceBetweenRounding(t *testing.T) {
	src := domain.Coordinates{Lat: nycLat, Lon: nycLon}
	dst := domain.Coordinates{Lat: laLat, Lon: laLon}

	got := DistanceBetween(src, dst)

	rawKm := HaversineKm(nycLat, nycLon, laLat, laLon)
	wantKm := math.Round(rawKm*100) / 100
	// Miles come from the raw km value, not the rounded one.
	wantMiles := math.Round(KmToMiles(rawKm)*100) / 100

	if got.Km != wantKm {
		t.Errorf("Km = %v, want %v", got.Km, wantKm)
	}
	if got.Miles != wantMiles {
		t.Errorf("Miles = %v, want %v", got.Miles, wantMiles)
	}
}
