package geocode

import (
	"context"
	"fmt"

	"github.com/shivam18213/distance-calculator/internal/domain"
	"github.com/shivam18213/distance-calculator/internal/ports"
)

// MockGeocoder resolves addresses from a fixed table. Tests use it to drive
// the request pipeline without touching the network.
type MockGeocoder struct {
	Coords map[string]domain.Coordinates
	Names  map[string]string

	// Addresses passed to Geocode, in call order.
	Calls []string
}

func NewMockGeocoder(coords map[string]domain.Coordinates) *MockGeocoder {
	return &MockGeocoder{Coords: coords}
}

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	m.Calls = append(m.Calls, address)

	coords, ok := m.Coords[address]
	if !ok {
		return domain.Coordinates{}, &ports.GeocodingError{
			Message: fmt.Sprintf("could not find address: %s", address),
		}
	}

	return coords, nil
}

func (m *MockGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (string, bool) {
	name, ok := m.Names[fmt.Sprintf("%v,%v", lat, lon)]
	return name, ok
}

func (m *MockGeocoder) BatchGeocode(ctx context.Context, addresses []string) map[string]*domain.Coordinates {
	results := make(map[string]*domain.Coordinates, len(addresses))
	for _, address := range addresses {
		coords, err := m.Geocode(ctx, address)
		if err != nil {
			results[address] = nil
			continue
		}
		c := coords
		results[address] = &c
	}
	return results
}
