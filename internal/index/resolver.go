package index

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/MinesMe/ainotea/internal/contextutil"
	"github.com/MinesMe/ainotea/internal/vectorstore"
)

const (
	// DefaultTopN is the number of nearest chunks fetched per query.
	DefaultTopN = 5
	// DefaultMaxDistance is the cosine distance above which a chunk is
	// considered too weak a match to return.
	DefaultMaxDistance = 0.5
)

// Match is one search hit: the owning note, the text of its best-matching
// chunk, and the relevance score (1 - cosine distance, higher is better).
type Match struct {
	NoteID    int64   `json:"note_id"`
	Snippet   string  `json:"snippet"`
	Relevance float32 `json:"relevance"`
}

// Resolver turns a free-text query into a ranked, per-note-deduplicated list
// of matches for one user. It is stateless per call; all state lives in the
// vector store.
type Resolver struct {
	embedder    Embedder
	store       vectorstore.VectorStore
	collection  string
	topN        int
	maxDistance float32
}

// NewResolver creates a query resolver. Non-positive topN or maxDistance
// select the defaults.
func NewResolver(embedder Embedder, store vectorstore.VectorStore, collection string, topN int, maxDistance float64) *Resolver {
	if topN <= 0 {
		topN = DefaultTopN
	}
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistance
	}
	return &Resolver{
		embedder:    embedder,
		store:       store,
		collection:  collection,
		topN:        topN,
		maxDistance: float32(maxDistance),
	}
}

// Search resolves query into matches owned by userID, ranked by relevance
// descending. A whitespace-only query returns no matches without touching the
// embedder. The user filter is applied on every store query; results can never
// contain another user's chunks regardless of vector proximity.
func (r *Resolver) Search(ctx context.Context, userID int64, query string) ([]Match, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	vectors, err := r.embedder.EmbedTexts(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to embed query: %w", ErrIndexUnavailable, err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("no embedding returned for query")
	}

	results, err := r.store.Search(ctx, r.collection, vectors[0], r.topN, map[string]any{
		"user_id": userID,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to search chunks: %w", ErrIndexUnavailable, err)
	}

	// Collapse chunk hits to one match per note, keeping the highest-relevance
	// chunk. First-seen order is kept for equal relevance, so ties preserve the
	// store's ranking.
	byNote := make(map[int64]int, len(results))
	matches := make([]Match, 0, len(results))
	for _, result := range results {
		noteID, ok := noteIDFromMeta(result.Meta)
		if !ok {
			// Chunks persisted before the payload schema settled may lack a
			// note reference; skip them rather than fail the whole query.
			logger.WarnContext(ctx, "skipping chunk with malformed metadata", "point_id", result.PointID)
			continue
		}

		distance := 1 - result.Score
		if distance >= r.maxDistance {
			continue
		}

		snippet, _ := result.Meta["text"].(string)
		relevance := result.Score

		if i, seen := byNote[noteID]; seen {
			if relevance > matches[i].Relevance {
				matches[i].Snippet = snippet
				matches[i].Relevance = relevance
			}
			continue
		}
		byNote[noteID] = len(matches)
		matches = append(matches, Match{
			NoteID:    noteID,
			Snippet:   snippet,
			Relevance: relevance,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Relevance > matches[j].Relevance
	})

	logger.DebugContext(ctx, "query resolved", "raw_results", len(results), "matches", len(matches))
	return matches, nil
}

// noteIDFromMeta extracts the owning note ID from a chunk payload.
// Qdrant returns integers as int64 but older payloads may decode as float64.
func noteIDFromMeta(meta map[string]any) (int64, bool) {
	switch v := meta["note_id"].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
