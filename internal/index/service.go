package index

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/MinesMe/ainotea/internal/contextutil"
	"github.com/MinesMe/ainotea/internal/vectorstore"
)

// chunkNamespace is the UUIDv5 namespace for deriving Qdrant point IDs from
// chunk keys. Qdrant only accepts UUID or integer point IDs, so the
// human-readable chunk key lives in the payload and the point ID is a
// deterministic hash of it.
var chunkNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("ainotea://chunk"))

// ChunkKey returns the identifier of a chunk: "{noteID}_{seq}" where seq is
// the chunk's 0-based position within the note's current chunking pass.
func ChunkKey(noteID int64, seq int) string {
	return fmt.Sprintf("%d_%d", noteID, seq)
}

// PointID derives the vector store point ID for a chunk key.
func PointID(chunkKey string) string {
	return uuid.NewSHA1(chunkNamespace, []byte(chunkKey)).String()
}

// Service keeps the vector index in step with note content: after every
// content mutation exactly the chunks of the current text are indexed, with no
// stale leftovers from earlier passes.
type Service struct {
	embedder   Embedder
	store      vectorstore.VectorStore
	collection string
	chunker    *Chunker

	// Same-note reindex calls are serialized so a slow older pass cannot
	// overwrite the chunks of a newer one. Different notes proceed in parallel.
	mu        sync.Mutex
	noteLocks map[int64]*noteLock
}

type noteLock struct {
	mu      sync.Mutex
	holders int
}

// NewService creates an indexing service. All dependencies are injected;
// the service holds no global state.
func NewService(embedder Embedder, store vectorstore.VectorStore, collection string, chunker *Chunker) *Service {
	if chunker == nil {
		chunker = NewChunker(0)
	}
	return &Service{
		embedder:   embedder,
		store:      store,
		collection: collection,
		chunker:    chunker,
		noteLocks:  make(map[int64]*noteLock),
	}
}

// ReindexNote replaces the indexed chunks of a note with chunks of fullText.
// It first unconditionally removes whatever is stored for the note, then
// chunks, embeds, and batch-upserts the new set tagged with the owner's
// userID. Empty or all-short text leaves the note with zero indexed chunks
// and is not an error.
//
// The caller must invoke this only after the note content is durably
// committed to the relational store; index failures surface as
// ErrIndexUnavailable and never roll the note back.
func (s *Service) ReindexNote(ctx context.Context, noteID, userID int64, fullText string) error {
	unlock := s.lockNote(noteID)
	defer unlock()

	logger := contextutil.LoggerFromContext(ctx)

	if err := s.store.DeleteByNote(ctx, s.collection, noteID); err != nil {
		return fmt.Errorf("%w: failed to clear chunks for note %d: %w", ErrIndexUnavailable, noteID, err)
	}

	chunks := s.chunker.Split(fullText)
	if len(chunks) == 0 {
		logger.DebugContext(ctx, "note has no indexable chunks", "note_id", noteID)
		return nil
	}

	vectors, err := s.embedder.EmbedTexts(ctx, chunks)
	if err != nil {
		return fmt.Errorf("%w: failed to embed chunks for note %d: %w", ErrIndexUnavailable, noteID, err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(chunks), len(vectors))
	}

	points := make([]vectorstore.Point, len(chunks))
	for i, text := range chunks {
		key := ChunkKey(noteID, i)
		points[i] = vectorstore.Point{
			ID:  PointID(key),
			Vec: vectors[i],
			Meta: map[string]any{
				"chunk_key":   key,
				"note_id":     noteID,
				"user_id":     userID,
				"chunk_index": i,
				"text":        text,
			},
		}
	}

	if err := s.store.Upsert(ctx, s.collection, points); err != nil {
		return fmt.Errorf("%w: failed to upsert chunks for note %d: %w", ErrIndexUnavailable, noteID, err)
	}

	logger.InfoContext(ctx, "indexed note", "note_id", noteID, "chunks", len(chunks))
	return nil
}

// RemoveNote deletes every indexed chunk of the note. Removing a note that
// has no chunks is an idempotent no-op.
func (s *Service) RemoveNote(ctx context.Context, noteID int64) error {
	unlock := s.lockNote(noteID)
	defer unlock()

	if err := s.store.DeleteByNote(ctx, s.collection, noteID); err != nil {
		return fmt.Errorf("%w: failed to remove chunks for note %d: %w", ErrIndexUnavailable, noteID, err)
	}
	return nil
}

// lockNote locks the note's mutex, creating it on first use. The map entry is
// removed when the last holder releases, so the map stays bounded by the
// number of notes being indexed right now, not ever indexed.
func (s *Service) lockNote(noteID int64) func() {
	s.mu.Lock()
	lock, ok := s.noteLocks[noteID]
	if !ok {
		lock = &noteLock{}
		s.noteLocks[noteID] = lock
	}
	lock.holders++
	s.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()

		s.mu.Lock()
		lock.holders--
		if lock.holders == 0 {
			delete(s.noteLocks, noteID)
		}
		s.mu.Unlock()
	}
}
