package ports

import (
	"context"

	"github.com/shivam18213/distance-calculator/internal/domain"
)

// GeocodingError reports that an address could not be resolved: the external
// service found nothing, timed out, was unreachable, or answered with an
// unusable payload. Handlers map it to HTTP 404.
type GeocodingError struct {
	Message string
}

func (e *GeocodingError) Error() string { return e.Message }

// Port: a boundary for resolving addresses against an external geocoding
// service.
type Geocoder interface {
	// Geocode resolves an address to coordinates. Failures are reported as
	// *GeocodingError; a single attempt is made per call.
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)

	// ReverseGeocode looks up a display name for a coordinate pair. It is a
	// convenience lookup: any failure yields ("", false), never an error.
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, bool)

	// BatchGeocode resolves each address independently. Addresses that fail
	// map to nil instead of aborting the batch.
	BatchGeocode(ctx context.Context, addresses []string) map[string]*domain.Coordinates
}
