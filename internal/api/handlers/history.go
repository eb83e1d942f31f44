package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/shivam18213/distance-calculator/internal/api/dto"
	"github.com/shivam18213/distance-calculator/internal/ports"
	"github.com/shivam18213/distance-calculator/internal/validate"
)

// HistoryHandler exposes read-only access to the persisted query log.
type HistoryHandler struct {
	Store ports.QueryStore
}

// List returns past queries, most recent first. The limit query parameter
// defaults to 50 and is clamped to 100.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	limit := validate.Limit(r.URL.Query().Get("limit"), validate.DefaultHistoryLimit)

	queries, err := h.Store.GetHistory(r.Context(), limit)
	if err != nil {
		log.Printf("get history failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "failed to retrieve history")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewHistoryResponse(queries))
}

// GetByID returns a single query. A non-numeric or unknown identifier is a
// 404, never a 500.
func (h *HistoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}

	raw := strings.TrimPrefix(r.URL.Path, "/api/query/")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, r, http.StatusNotFound, "query not found")
		return
	}

	query, err := h.Store.GetQueryByID(r.Context(), id)
	if err != nil {
		log.Printf("get query id=%d failed: %v", id, err)
		writeError(w, r, http.StatusInternalServerError, "failed to retrieve query")
		return
	}

	if query == nil {
		writeError(w, r, http.StatusNotFound, fmt.Sprintf("Query with ID %d not found", id))
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewQueryResponse(query))
}
