package domain

import "time"

// Query is one persisted record of a computed distance between two addresses.
// Records are append-only: ID and Timestamp are assigned at insert time and
// never change afterwards.
type Query struct {
	ID                int64
	Source            string
	Destination       string
	SourceCoords      Coordinates
	DestinationCoords Coordinates
	DistanceKm        float64
	DistanceMiles     float64
	Timestamp         time.Time
}
