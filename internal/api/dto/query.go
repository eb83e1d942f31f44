// Package dto defines the external JSON shapes and the pure formatting
// functions that map domain values onto them. No business logic lives here.
package dto

import (
	"github.com/shivam18213/distance-calculator/internal/domain"
)

const timestampLayout = "2006-01-02 15:04:05"

type DistanceRequest struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

type CoordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type DistanceResponse struct {
	Source            string              `json:"source"`
	Destination       string              `json:"destination"`
	DistanceKm        float64             `json:"distance_km"`
	DistanceMiles     float64             `json:"distance_miles"`
	SourceCoords      CoordinatesResponse `json:"source_coords"`
	DestinationCoords CoordinatesResponse `json:"destination_coords"`
}

type QueryResponse struct {
	ID                int64               `json:"id"`
	Source            string              `json:"source"`
	Destination       string              `json:"destination"`
	SourceCoords      CoordinatesResponse `json:"source_coords"`
	DestinationCoords CoordinatesResponse `json:"destination_coords"`
	DistanceKm        float64             `json:"distance_km"`
	DistanceMiles     float64             `json:"distance_miles"`
	Timestamp         string              `json:"timestamp"`
}

type HistoryResponse struct {
	Queries []QueryResponse `json:"queries"`
	Count   int             `json:"count"`
}

func NewCoordinatesResponse(c domain.Coordinates) CoordinatesResponse {
	return CoordinatesResponse{Lat: c.Lat, Lon: c.Lon}
}

// NewDistanceResponse assembles the calculate-distance payload.
func NewDistanceResponse(
	source, destination string,
	sourceCoords, destCoords domain.Coordinates,
	distanceKm, distanceMiles float64,
) DistanceResponse {
	return DistanceResponse{
		Source:            source,
		Destination:       destination,
		DistanceKm:        distanceKm,
		DistanceMiles:     distanceMiles,
		SourceCoords:      NewCoordinatesResponse(sourceCoords),
		DestinationCoords: NewCoordinatesResponse(destCoords),
	}
}

func NewQueryResponse(q *domain.Query) QueryResponse {
	return QueryResponse{
		ID:                q.ID,
		Source:            q.Source,
		Destination:       q.Destination,
		SourceCoords:      NewCoordinatesResponse(q.SourceCoords),
		DestinationCoords: NewCoordinatesResponse(q.DestinationCoords),
		DistanceKm:        q.DistanceKm,
		DistanceMiles:     q.DistanceMiles,
		Timestamp:         q.Timestamp.UTC().Format(timestampLayout),
	}
}

// NewHistoryResponse wraps a list of queries with its count.
func NewHistoryResponse(queries []*domain.Query) HistoryResponse {
	out := make([]QueryResponse, 0, len(queries))
	for _, q := range queries {
		out = append(out, NewQueryResponse(q))
	}

	return HistoryResponse{Queries: out, Count: len(out)}
}
