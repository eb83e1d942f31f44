package api

import (
	"net/http"

	"github.com/shivam18213/distance-calculator/internal/api/handlers"
	"github.com/shivam18213/distance-calculator/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(store ports.QueryStore, geocoder ports.Geocoder) http.Handler {
	mux := http.NewServeMux()

	distanceHandler := &handlers.DistanceHandler{
		Geocoder: geocoder,
		Store:    store,
	}
	historyHandler := &handlers.HistoryHandler{Store: store}

	mux.HandleFunc("/api/health", handlers.Health)
	mux.HandleFunc("/api/calculate-distance", distanceHandler.Calculate)
	mux.HandleFunc("/api/history", historyHandler.List)
	mux.HandleFunc("/api/query/", historyHandler.GetByID)

	return requestIDMiddleware(loggingMiddleware(mux))
}
