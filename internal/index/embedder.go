package index

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks github.com/MinesMe/ainotea/internal/index Embedder

import "context"

// Embedder maps text strings to fixed-length dense vectors.
// The interface is defined from the consumer's perspective; in production it is
// implemented by llm.EmbeddingsClient. For a fixed model version the mapping is
// deterministic.
type Embedder interface {
	// EmbedTexts returns one vector per input text, in input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}
