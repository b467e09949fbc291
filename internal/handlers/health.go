package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"
)

// CollectionChecker reports whether the vector index collection is reachable.
// Implemented by vectorstore.QdrantStore.
type CollectionChecker interface {
	CollectionExists(ctx context.Context, collection string) (bool, error)
}

// HealthHandler reports the health of the service and its dependencies.
type HealthHandler struct {
	db                 *sql.DB
	vectorStore        CollectionChecker
	collectionName     string
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sql.DB, vectorStore CollectionChecker, collectionName string) *HealthHandler {
	return &HealthHandler{
		db:                 db,
		vectorStore:        vectorStore,
		collectionName:     collectionName,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy" or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles GET /api/health.
// Returns 200 OK if healthy, 503 Service Unavailable otherwise.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string

	if err := h.db.PingContext(ctx); err != nil {
		checks["database"] = "unhealthy"
		issues = append(issues, "database: "+err.Error())
	} else {
		checks["database"] = "healthy"
	}

	exists, err := h.vectorStore.CollectionExists(ctx, h.collectionName)
	switch {
	case err != nil:
		checks["vector_store"] = "unhealthy"
		issues = append(issues, "vector store: "+err.Error())
	case !exists:
		checks["vector_store"] = "unhealthy"
		issues = append(issues, "vector store: collection "+h.collectionName+" missing")
	default:
		checks["vector_store"] = "healthy"
	}

	status := "healthy"
	statusCode := http.StatusOK
	if len(issues) > 0 {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Issues:    issues,
	})
}
