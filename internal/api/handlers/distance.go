package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/shivam18213/distance-calculator/internal/api/dto"
	"github.com/shivam18213/distance-calculator/internal/ports"
	"github.com/shivam18213/distance-calculator/internal/services"
	"github.com/shivam18213/distance-calculator/internal/validate"
)

type DistanceHandler struct {
	Geocoder ports.Geocoder
	Store    ports.QueryStore
}

// Calculate resolves both addresses, computes the great-circle distance and
// records the query. Validation problems map to 400, unresolvable addresses
// to 404, anything else to a generic 500.
func (h *DistanceHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req dto.DistanceRequest

	// Unknown keys are ignored; clients may send extra fields.
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	svcReq := services.CalculateDistanceRequest{
		Source:      req.Source,
		Destination: req.Destination,
	}

	result, err := services.CalculateDistance(r.Context(), svcReq, h.Geocoder, h.Store)
	if err != nil {
		var validationErr *validate.Error
		if errors.As(err, &validationErr) {
			writeError(w, r, http.StatusBadRequest, validationErr.Message)
			return
		}

		var geocodingErr *ports.GeocodingError
		if errors.As(err, &geocodingErr) {
			log.Printf("geocoding failed: %v", err)
			writeError(w, r, http.StatusNotFound, geocodingErr.Message)
			return
		}

		log.Printf("calculate distance failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}

	res := dto.NewDistanceResponse(
		result.Source,
		result.Destination,
		result.SourceCoords,
		result.DestinationCoords,
		result.DistanceKm,
		result.DistanceMiles,
	)

	writeJSON(w, r, http.StatusOK, res)
}
