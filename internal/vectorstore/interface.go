package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks github.com/MinesMe/ainotea/internal/vectorstore VectorStore

import "context"

// Point represents a chunk vector with its metadata payload.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents a search result from vector search.
// Score is cosine similarity, equal to 1 minus the cosine distance.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// VectorStore defines the interface for vector storage operations.
type VectorStore interface {
	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search performs a similarity search restricted by the metadata filters.
	Search(ctx context.Context, collection string, query []float32, k int, filters map[string]any) ([]SearchResult, error)

	// DeleteByNote removes every point whose payload references the note.
	// Deleting a note with no points is a no-op, not an error.
	DeleteByNote(ctx context.Context, collection string, noteID int64) error
}
