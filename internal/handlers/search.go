package handlers

import (
	"net/http"

	"github.com/MinesMe/ainotea/internal/auth"
	"github.com/MinesMe/ainotea/internal/contextutil"
	"github.com/MinesMe/ainotea/internal/notes"
)

// SearchHandler serves semantic note search.
type SearchHandler struct {
	service *notes.Service
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(service *notes.Service) *SearchHandler {
	return &SearchHandler{service: service}
}

// ServeHTTP handles GET /api/search?q=...
// An empty or whitespace-only query returns an empty list, not an error.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	query := r.URL.Query().Get("q")

	results, err := h.service.Search(ctx, userID, query)
	if err != nil {
		logger.ErrorContext(ctx, "search failed", "error", err)
		writeServiceError(w, err)
		return
	}
	if results == nil {
		results = []notes.SearchResult{}
	}

	writeJSON(w, http.StatusOK, results)
}
