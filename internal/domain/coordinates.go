package domain

// Immutable geographic coordinates (latitude, longitude) in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// DistanceResult holds a computed distance in both units, rounded to two
// decimal places. Miles are derived from the raw kilometre value, not the
// rounded one.
type DistanceResult struct {
	Km    float64
	Miles float64
}
