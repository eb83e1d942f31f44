package services

import (
	"context"
	"fmt"
	"log"

	"github.com/shivam18213/distance-calculator/internal/domain"
	"github.com/shivam18213/distance-calculator/internal/geo"
	"github.com/shivam18213/distance-calculator/internal/ports"
	"github.com/shivam18213/distance-calculator/internal/validate"
)

type CalculateDistanceRequest struct {
	Source      string
	Destination string
}

type CalculateDistanceResult struct {
	Source            string
	Destination       string
	SourceCoords      domain.Coordinates
	DestinationCoords domain.Coordinates
	DistanceKm        float64
	DistanceMiles     float64

	// QueryID is 0 when the result could not be persisted.
	QueryID int64
}

// CalculateDistance runs the full pipeline: validate both addresses, geocode
// each one, compute the great-circle distance, and append the result to the
// query log.
//
// Validation failures stop the pipeline before any network call; a geocoding
// failure for either address stops it before any persistence attempt. Both
// geocoding calls complete before the store is touched, so no database
// transaction ever spans a network round-trip. A persistence failure is
// logged and swallowed: the caller still gets the computed distance.
func CalculateDistance(
	ctx context.Context,
	req CalculateDistanceRequest,
	geocoder ports.Geocoder,
	store ports.QueryStore,
) (*CalculateDistanceResult, error) {
	source, destination, err := validate.Addresses(req.Source, req.Destination)
	if err != nil {
		return nil, err
	}

	sourceCoords, err := geocoder.Geocode(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("geocode source %q: %w", source, err)
	}

	destCoords, err := geocoder.Geocode(ctx, destination)
	if err != nil {
		return nil, fmt.Errorf("geocode destination %q: %w", destination, err)
	}

	distance := geo.DistanceBetween(sourceCoords, destCoords)

	result := &CalculateDistanceResult{
		Source:            source,
		Destination:       destination,
		SourceCoords:      sourceCoords,
		DestinationCoords: destCoords,
		DistanceKm:        distance.Km,
		DistanceMiles:     distance.Miles,
	}

	query := &domain.Query{
		Source:            source,
		Destination:       destination,
		SourceCoords:      sourceCoords,
		DestinationCoords: destCoords,
		DistanceKm:        distance.Km,
		DistanceMiles:     distance.Miles,
	}

	id, err := store.SaveQuery(ctx, query)
	if err != nil {
		// Persistence is best-effort from the caller's perspective.
		log.Printf("save query failed (continuing): %v", err)
		return result, nil
	}

	result.QueryID = id

	return result, nil
}
