package ports

import (
	"context"

	"github.com/shivam18213/distance-calculator/internal/domain"
)

// Port: a best-effort cache of resolved addresses. A nil cache or a failing
// cache must never fail a geocoding request.
type GeocodeCache interface {
	// GetMany returns cached coordinates for the given addresses. Addresses
	// without a cached entry are simply absent from the result.
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)

	// PutMany stores address -> coordinate mappings.
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}
