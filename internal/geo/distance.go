// Package geo holds the pure distance math: Haversine great-circle distance
// and the kilometre/mile conversions.
package geo

import (
	"math"

	"github.com/shivam18213/distance-calculator/internal/domain"
)

const (
	EarthRadiusKm = 6371.0

	kmToMilesFactor = 0.621371
)

// HaversineKm returns the great-circle distance in kilometres between two
// points given in decimal degrees.
//
// The formula is symmetric in its two points; the order of operations below
// is kept as written so that HaversineKm(a, b) == HaversineKm(b, a) exactly
// under floating point.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1 = lat1 * math.Pi / 180
	lon1 = lon1 * math.Pi / 180
	lat2 = lat2 * math.Pi / 180
	lon2 = lon2 * math.Pi / 180

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return c * EarthRadiusKm
}

// KmToMiles converts kilometres to miles.
func KmToMiles(km float64) float64 { return km * kmToMilesFactor }

// MilesToKm converts miles to kilometres using the exact reciprocal of the
// factor used by KmToMiles.
func MilesToKm(miles float64) float64 { return miles / kmToMilesFactor }

// DistanceBetween computes the rounded distance between two coordinate pairs.
// Both units are rounded independently from the raw kilometre value; the
// miles figure is NOT derived from the rounded kilometres.
func DistanceBetween(source, destination domain.Coordinates) domain.DistanceResult {
	km := HaversineKm(source.Lat, source.Lon, destination.Lat, destination.Lon)

	return domain.DistanceResult{
		Km:    round2(km),
		Miles: round2(KmToMiles(km)),
	}
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }
