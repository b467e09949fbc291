package index

import (
	"context"
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/MinesMe/ainotea/internal/vectorstore"
)

// fakeEmbedder maps texts to 8-dimensional unit vectors derived from token
// hashes. Texts sharing words get nearby vectors, so cosine ranking behaves
// like a tiny real embedding model while staying fully deterministic.
type fakeEmbedder struct{}

func (fakeEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		var vec [8]float32
		for _, word := range strings.Fields(strings.ToLower(text)) {
			var hash uint32 = 2166136261
			for _, r := range word {
				hash ^= uint32(r)
				hash *= 16777619
			}
			vec[hash%8]++
		}
		var norm float64
		for _, v := range vec {
			norm += float64(v) * float64(v)
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			norm = 1
		}
		out := make([]float32, len(vec))
		for j, v := range vec {
			out[j] = float32(float64(v) / norm)
		}
		vectors[i] = out
	}
	return vectors, nil
}

// memoryStore is an in-memory VectorStore with exact cosine search, enough to
// exercise the indexing service and resolver end to end.
type memoryStore struct {
	points map[string]vectorstore.Point
}

func newMemoryStore() *memoryStore {
	return &memoryStore{points: make(map[string]vectorstore.Point)}
}

func (s *memoryStore) Upsert(_ context.Context, _ string, points []vectorstore.Point) error {
	for _, p := range points {
		s.points[p.ID] = p
	}
	return nil
}

func (s *memoryStore) Search(_ context.Context, _ string, query []float32, k int, filters map[string]any) ([]vectorstore.SearchResult, error) {
	var results []vectorstore.SearchResult
	for id, p := range s.points {
		if !matchesFilters(p.Meta, filters) {
			continue
		}
		results = append(results, vectorstore.SearchResult{
			PointID: id,
			Score:   cosine(query, p.Vec),
			Meta:    p.Meta,
		})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

func (s *memoryStore) DeleteByNote(_ context.Context, _ string, noteID int64) error {
	for id, p := range s.points {
		if p.Meta["note_id"] == noteID {
			delete(s.points, id)
		}
	}
	return nil
}

func matchesFilters(meta, filters map[string]any) bool {
	for key, want := range filters {
		if meta[key] != want {
			return false
		}
	}
	return true
}

func cosine(a, b []float32) float32 {
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return float32(dot)
}

func TestIndexAndSearch_EndToEnd(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	service := NewService(fakeEmbedder{}, store, "notes", nil)
	resolver := NewResolver(fakeEmbedder{}, store, "notes", 5, 0.99)

	paris := "Paris is the capital of France and one of the most visited cities in all of Europe today."
	eiffel := "The eiffel tower dominates the paris skyline and draws millions of visitors every single year."
	note := paris + "\n\n" + eiffel

	if err := service.ReindexNote(ctx, 42, 7, note); err != nil {
		t.Fatalf("ReindexNote() error = %v", err)
	}
	if len(store.points) != 2 {
		t.Fatalf("indexed %d points, want 2", len(store.points))
	}

	// Owner finds the note; the best chunk is the one sharing query terms.
	// Every query token appears in the eiffel paragraph and none in the
	// other, so the eiffel chunk must win the per-note collapse.
	matches, err := resolver.Search(ctx, 7, "eiffel tower skyline millions visitors year")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Search() returned %d matches, want 1: %v", len(matches), matches)
	}
	if matches[0].NoteID != 42 {
		t.Errorf("match NoteID = %d, want 42", matches[0].NoteID)
	}
	if matches[0].Snippet != eiffel {
		t.Errorf("match Snippet = %q, want the eiffel chunk", matches[0].Snippet)
	}

	// Another user never sees it, however close the vectors are.
	other, err := resolver.Search(ctx, 8, "eiffel tower skyline millions visitors year")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(other) != 0 {
		t.Errorf("other user's Search() = %v, want no matches", other)
	}
}

func TestReindex_ReplacesStaleChunks(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	service := NewService(fakeEmbedder{}, store, "notes", nil)

	long := func(s string) string { return s + " " + strings.Repeat("filler word here", 5) }

	three := long("first paragraph") + "\n\n" + long("second paragraph") + "\n\n" + long("third paragraph")
	if err := service.ReindexNote(ctx, 1, 1, three); err != nil {
		t.Fatalf("ReindexNote() error = %v", err)
	}
	if len(store.points) != 3 {
		t.Fatalf("indexed %d points, want 3", len(store.points))
	}

	// Shrinking the note must drop the extra chunk, not leave it behind.
	one := long("only paragraph")
	if err := service.ReindexNote(ctx, 1, 1, one); err != nil {
		t.Fatalf("ReindexNote() error = %v", err)
	}
	if len(store.points) != 1 {
		t.Fatalf("after reindex %d points remain, want 1", len(store.points))
	}
	for _, p := range store.points {
		if p.Meta["chunk_key"] != "1_0" {
			t.Errorf("surviving chunk_key = %v, want 1_0", p.Meta["chunk_key"])
		}
	}
}

func TestRemoveNote_EndToEnd(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	service := NewService(fakeEmbedder{}, store, "notes", nil)

	long := func(s string) string { return s + " " + strings.Repeat("filler word here", 5) }

	if err := service.ReindexNote(ctx, 1, 1, long("keep this note")); err != nil {
		t.Fatalf("ReindexNote() error = %v", err)
	}
	if err := service.ReindexNote(ctx, 2, 1, long("remove this note")); err != nil {
		t.Fatalf("ReindexNote() error = %v", err)
	}

	if err := service.RemoveNote(ctx, 2); err != nil {
		t.Fatalf("RemoveNote() error = %v", err)
	}
	if len(store.points) != 1 {
		t.Fatalf("%d points remain, want 1", len(store.points))
	}
	for _, p := range store.points {
		if p.Meta["note_id"] != int64(1) {
			t.Errorf("surviving note_id = %v, want 1", p.Meta["note_id"])
		}
	}
}
