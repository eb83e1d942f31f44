package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shivam18213/distance-calculator/internal/adapters/geocode"
	"github.com/shivam18213/distance-calculator/internal/adapters/repositories"
	"github.com/shivam18213/distance-calculator/internal/api/dto"
	"github.com/shivam18213/distance-calculator/internal/domain"
)

func testDistanceHandler() (*DistanceHandler, *repositories.MockQueryStore) {
	geocoder := geocode.NewMockGeocoder(map[string]domain.Coordinates{
		"New York, NY":    {Lat: 40.7128, Lon: -74.0060},
		"Los Angeles, CA": {Lat: 34.0522, Lon: -118.2437},
	})
	store := repositories.NewMockQueryStore()

	return &DistanceHandler{Geocoder: geocoder, Store: store}, store
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["error"] == "" {
		t.Fatalf("error body missing 'error' field: %v", body)
	}
	return body["error"]
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "healthy" {
		t.Fatalf("status field = %q, want healthy", body["status"])
	}
}

func TestCalculateDistanceEndpoint(t *testing.T) {
	h, store := testDistanceHandler()

	body := `{"source":"New York, NY","destination":"Los Angeles, CA"}`
	rec := httptest.NewRecorder()
	h.Calculate(rec, httptest.NewRequest(http.MethodPost, "/api/calculate-distance", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var res dto.DistanceResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if res.Source != "New York, NY" || res.Destination != "Los Angeles, CA" {
		t.Errorf("addresses = (%q, %q)", res.Source, res.Destination)
	}
	if res.DistanceKm <= 3900 || res.DistanceKm >= 4000 {
		t.Errorf("distance_km = %v", res.DistanceKm)
	}
	if res.SourceCoords.Lat != 40.7128 || res.DestinationCoords.Lon != -118.2437 {
		t.Errorf("coords = %+v / %+v", res.SourceCoords, res.DestinationCoords)
	}

	history, err := store.GetHistory(context.Background(), 10)
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("persisted %d queries, want 1", len(history))
	}
}

func TestCalculateDistanceIgnoresUnknownFields(t *testing.T) {
	h, store := testDistanceHandler()

	body := `{"source":"New York, NY","destination":"Los Angeles, CA","unit":"km","client":"cli"}`
	rec := httptest.NewRecorder()
	h.Calculate(rec, httptest.NewRequest(http.MethodPost, "/api/calculate-distance", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	history, err := store.GetHistory(context.Background(), 10)
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("persisted %d queries, want 1", len(history))
	}
}

func TestCalculateDistanceBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "malformed json", body: `{broken`},
		{name: "two objects", body: `{"source":"New York, NY","destination":"Los Angeles, CA"}{}`},
		{name: "source too short", body: `{"source":"NY","destination":"Los Angeles, CA"}`},
		{name: "sql pattern", body: `{"source":"SELECT * FROM users","destination":"Los Angeles, CA"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := testDistanceHandler()

			rec := httptest.NewRecorder()
			h.Calculate(rec, httptest.NewRequest(http.MethodPost, "/api/calculate-distance", strings.NewReader(tt.body)))

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			decodeError(t, rec)
		})
	}
}

func TestCalculateDistanceUnresolvableAddress(t *testing.T) {
	h, store := testDistanceHandler()

	body := `{"source":"New York, NY","destination":"Nowhere At All"}`
	rec := httptest.NewRecorder()
	h.Calculate(rec, httptest.NewRequest(http.MethodPost, "/api/calculate-distance", strings.NewReader(body)))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if msg := decodeError(t, rec); !strings.Contains(msg, "could not find address") {
		t.Fatalf("error = %q", msg)
	}

	history, _ := store.GetHistory(context.Background(), 10)
	if len(history) != 0 {
		t.Fatalf("persisted %d queries despite geocode failure", len(history))
	}
}

func TestCalculateDistanceWrongMethod(t *testing.T) {
	h, _ := testDistanceHandler()

	rec := httptest.NewRecorder()
	h.Calculate(rec, httptest.NewRequest(http.MethodGet, "/api/calculate-distance", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
		t.Fatalf("Allow = %q, want POST", allow)
	}
}

func seedHistory(t *testing.T, store *repositories.MockQueryStore, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		q := &domain.Query{
			Source:            "New York, NY",
			Destination:       "Los Angeles, CA",
			SourceCoords:      domain.Coordinates{Lat: 40.7128, Lon: -74.0060},
			DestinationCoords: domain.Coordinates{Lat: 34.0522, Lon: -118.2437},
			DistanceKm:        3935.75,
			DistanceMiles:     2445.56,
		}
		if _, err := store.SaveQuery(context.Background(), q); err != nil {
			t.Fatalf("seed store: %v", err)
		}
	}
}

func TestHistoryEndpoint(t *testing.T) {
	store := repositories.NewMockQueryStore()
	seedHistory(t, store, 3)
	h := &HistoryHandler{Store: store}

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/history?limit=2", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var res dto.HistoryResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if res.Count != 2 || len(res.Queries) != 2 {
		t.Fatalf("count = %d, len = %d, want 2", res.Count, len(res.Queries))
	}
	// Most recent first.
	if res.Queries[0].ID != 3 || res.Queries[1].ID != 2 {
		t.Fatalf("ids = %d, %d, want 3, 2", res.Queries[0].ID, res.Queries[1].ID)
	}
	if res.Queries[0].Timestamp == "" {
		t.Error("timestamp missing from history entry")
	}
}

func TestHistoryEndpointInvalidLimit(t *testing.T) {
	store := repositories.NewMockQueryStore()
	seedHistory(t, store, 3)
	h := &HistoryHandler{Store: store}

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/history?limit=abc", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var res dto.HistoryResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if res.Count != 3 {
		t.Fatalf("count = %d, want all 3 under default limit", res.Count)
	}
}

func TestHistoryEndpointStorageFailure(t *testing.T) {
	store := repositories.NewMockQueryStore()
	store.HistoryErr = context.DeadlineExceeded
	h := &HistoryHandler{Store: store}

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/history", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	decodeError(t, rec)
}

func TestGetQueryByIDEndpoint(t *testing.T) {
	store := repositories.NewMockQueryStore()
	seedHistory(t, store, 2)
	h := &HistoryHandler{Store: store}

	rec := httptest.NewRecorder()
	h.GetByID(rec, httptest.NewRequest(http.MethodGet, "/api/query/2", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var res dto.QueryResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if res.ID != 2 {
		t.Fatalf("id = %d, want 2", res.ID)
	}
}

func TestGetQueryByIDNotFound(t *testing.T) {
	store := repositories.NewMockQueryStore()
	h := &HistoryHandler{Store: store}

	for _, path := range []string{"/api/query/999", "/api/query/abc"} {
		rec := httptest.NewRecorder()
		h.GetByID(rec, httptest.NewRequest(http.MethodGet, path, nil))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s: status = %d, want 404", path, rec.Code)
		}
		decodeError(t, rec)
	}
}

func TestGetQueryByIDStorageFailure(t *testing.T) {
	store := repositories.NewMockQueryStore()
	store.GetErr = context.DeadlineExceeded
	h := &HistoryHandler{Store: store}

	rec := httptest.NewRecorder()
	h.GetByID(rec, httptest.NewRequest(http.MethodGet, "/api/query/1", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	decodeError(t, rec)
}
