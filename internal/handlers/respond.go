package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MinesMe/ainotea/internal/index"
	"github.com/MinesMe/ainotea/internal/storage"
)

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{Error: message})
}

// writeServiceError maps service-layer errors to HTTP responses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, storage.ErrDuplicateFolder):
		writeError(w, http.StatusConflict, "folder name already exists")
	case errors.Is(err, index.ErrIndexUnavailable):
		writeError(w, http.StatusServiceUnavailable, "search index unavailable")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
