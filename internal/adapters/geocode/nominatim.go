package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shivam18213/distance-calculator/internal/domain"
	"github.com/shivam18213/distance-calculator/internal/platform/obs"
	"github.com/shivam18213/distance-calculator/internal/ports"
	"github.com/shivam18213/distance-calculator/internal/validate"
)

const (
	DefaultBaseURL = "https://nominatim.openstreetmap.org"

	// Nominatim's usage policy requires an identifying User-Agent.
	userAgent = "DistanceCalculatorApp/1.0"

	requestTimeout = 10 * time.Second
)

// Nominatim implements the Geocoder port against the Nominatim
// (OpenStreetMap) HTTP API.
//
// Each lookup is a single attempt: no retries, bounded by a fixed timeout.
// An optional GeocodeCache is consulted first and refreshed best-effort;
// cache failures are logged and never surface to the caller.
type Nominatim struct {
	session *http.Client
	baseURL string
	cache   ports.GeocodeCache
}

func NewNominatim(baseURL string, cache ports.GeocodeCache) *Nominatim {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Nominatim{
		session: &http.Client{Timeout: requestTimeout},
		baseURL: baseURL,
		cache:   cache,
	}
}

// Nominatim returns lat/lon as stringified numbers.
type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

type reverseResult struct {
	DisplayName string `json:"display_name"`
}

func (n *Nominatim) newRequest(ctx context.Context, endpoint string, params url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.URL.RawQuery = params.Encode()

	return req, nil
}

// Geocode resolves an address to coordinates via /search. All failure modes
// come back as *ports.GeocodingError.
func (n *Nominatim) Geocode(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "nominatim.Geocode")(&err)

	if n.cache != nil {
		hits, cacheErr := n.cache.GetMany(ctx, []string{address})
		if cacheErr != nil {
			log.Printf("geocode cache read failed: %v", cacheErr)
		} else if coords, ok := hits[address]; ok {
			return coords, nil
		}
	}

	params := url.Values{}
	params.Set("q", address)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := n.newRequest(ctx, n.baseURL+"/search", params)
	if err != nil {
		return domain.Coordinates{}, &ports.GeocodingError{Message: "failed to connect to geocoding service"}
	}

	resp, err := n.session.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return domain.Coordinates{}, &ports.GeocodingError{Message: "geocoding service timed out"}
		}
		return domain.Coordinates{}, &ports.GeocodingError{Message: "failed to connect to geocoding service"}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinates{}, &ports.GeocodingError{Message: "failed to connect to geocoding service"}
	}

	var decoded []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, &ports.GeocodingError{Message: "invalid geocoding response"}
	}

	if len(decoded) == 0 {
		return domain.Coordinates{}, &ports.GeocodingError{
			Message: fmt.Sprintf("could not find address: %s", address),
		}
	}

	lat, latErr := strconv.ParseFloat(decoded[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(decoded[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return domain.Coordinates{}, &ports.GeocodingError{Message: "invalid geocoding response"}
	}

	if _, _, err := validate.Coordinates(lat, lon, "Geocoded"); err != nil {
		return domain.Coordinates{}, &ports.GeocodingError{Message: "invalid geocoding response"}
	}

	coords := domain.Coordinates{Lat: lat, Lon: lon}

	if n.cache != nil {
		if err := n.cache.PutMany(ctx, map[string]domain.Coordinates{address: coords}); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return coords, nil
}

// ReverseGeocode looks up a display name for a coordinate pair via /reverse.
// It is deliberately lenient: every failure yields ("", false).
func (n *Nominatim) ReverseGeocode(ctx context.Context, lat, lon float64) (string, bool) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("format", "json")

	req, err := n.newRequest(ctx, n.baseURL+"/reverse", params)
	if err != nil {
		return "", false
	}

	resp, err := n.session.Do(req)
	if err != nil {
		log.Printf("reverse geocode (%v, %v) failed: %v", lat, lon, err)
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false
	}

	var decoded reverseResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", false
	}

	if decoded.DisplayName == "" {
		return "", false
	}

	return decoded.DisplayName, true
}

// BatchGeocode resolves each address independently; addresses that fail map
// to nil rather than aborting the batch.
func (n *Nominatim) BatchGeocode(ctx context.Context, addresses []string) map[string]*domain.Coordinates {
	results := make(map[string]*domain.Coordinates, len(addresses))

	for _, address := range addresses {
		coords, err := n.Geocode(ctx, address)
		if err != nil {
			log.Printf("batch geocode %q failed: %v", address, err)
			results[address] = nil
			continue
		}

		c := coords
		results[address] = &c
	}

	return results
}
