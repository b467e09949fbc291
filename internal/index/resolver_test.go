package index

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	index_mocks "github.com/MinesMe/ainotea/internal/index/mocks"
	"github.com/MinesMe/ainotea/internal/vectorstore"
	vectorstore_mocks "github.com/MinesMe/ainotea/internal/vectorstore/mocks"
)

func TestNewResolver_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	resolver := NewResolver(
		index_mocks.NewMockEmbedder(ctrl),
		vectorstore_mocks.NewMockVectorStore(ctrl),
		"notes", 0, 0,
	)
	if resolver.topN != DefaultTopN {
		t.Errorf("topN = %d, want %d", resolver.topN, DefaultTopN)
	}
	if resolver.maxDistance != DefaultMaxDistance {
		t.Errorf("maxDistance = %v, want %v", resolver.maxDistance, DefaultMaxDistance)
	}
}

func TestResolver_Search_EmptyQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Neither the embedder nor the store may be called for a blank query.
	mockEmbedder := index_mocks.NewMockEmbedder(ctrl)
	mockStore := vectorstore_mocks.NewMockVectorStore(ctrl)
	resolver := NewResolver(mockEmbedder, mockStore, "notes", 5, 0.5)

	for _, query := range []string{"", "   ", "\n\t "} {
		matches, err := resolver.Search(context.Background(), 1, query)
		if err != nil {
			t.Errorf("Search(%q) error = %v", query, err)
		}
		if len(matches) != 0 {
			t.Errorf("Search(%q) = %v, want no matches", query, matches)
		}
	}
}

func TestResolver_Search_UserFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockEmbedder := index_mocks.NewMockEmbedder(ctrl)
	mockStore := vectorstore_mocks.NewMockVectorStore(ctrl)
	resolver := NewResolver(mockEmbedder, mockStore, "notes", 5, 0.5)

	queryVec := []float32{0.1, 0.2}
	mockEmbedder.EXPECT().EmbedTexts(gomock.Any(), []string{"eiffel tower"}).Return([][]float32{queryVec}, nil)
	mockStore.EXPECT().Search(gomock.Any(), "notes", queryVec, 5, map[string]any{"user_id": int64(7)}).Return(nil, nil)

	matches, err := resolver.Search(context.Background(), 7, "eiffel tower")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("Search() = %v, want no matches", matches)
	}
}

func TestResolver_Search_Ranking(t *testing.T) {
	tests := []struct {
		name    string
		results []vectorstore.SearchResult
		want    []Match
	}{
		{
			name: "weak matches discarded",
			results: []vectorstore.SearchResult{
				{PointID: "p1", Score: 0.9, Meta: map[string]any{"note_id": int64(1), "text": "strong"}},
				{PointID: "p2", Score: 0.4, Meta: map[string]any{"note_id": int64(2), "text": "weak"}},
			},
			want: []Match{
				{NoteID: 1, Snippet: "strong", Relevance: 0.9},
			},
		},
		{
			name: "distance exactly at threshold discarded",
			results: []vectorstore.SearchResult{
				{PointID: "p1", Score: 0.5, Meta: map[string]any{"note_id": int64(1), "text": "borderline"}},
			},
			want: []Match{},
		},
		{
			name: "one match per note keeping best chunk",
			results: []vectorstore.SearchResult{
				{PointID: "p1", Score: 0.8, Meta: map[string]any{"note_id": int64(1), "text": "good chunk"}},
				{PointID: "p2", Score: 0.95, Meta: map[string]any{"note_id": int64(1), "text": "best chunk"}},
				{PointID: "p3", Score: 0.7, Meta: map[string]any{"note_id": int64(2), "text": "other note"}},
			},
			want: []Match{
				{NoteID: 1, Snippet: "best chunk", Relevance: 0.95},
				{NoteID: 2, Snippet: "other note", Relevance: 0.7},
			},
		},
		{
			name: "sorted by relevance descending",
			results: []vectorstore.SearchResult{
				{PointID: "p1", Score: 0.6, Meta: map[string]any{"note_id": int64(1), "text": "a"}},
				{PointID: "p2", Score: 0.9, Meta: map[string]any{"note_id": int64(2), "text": "b"}},
				{PointID: "p3", Score: 0.75, Meta: map[string]any{"note_id": int64(3), "text": "c"}},
			},
			want: []Match{
				{NoteID: 2, Snippet: "b", Relevance: 0.9},
				{NoteID: 3, Snippet: "c", Relevance: 0.75},
				{NoteID: 1, Snippet: "a", Relevance: 0.6},
			},
		},
		{
			name: "equal relevance keeps store order",
			results: []vectorstore.SearchResult{
				{PointID: "p1", Score: 0.8, Meta: map[string]any{"note_id": int64(3), "text": "first"}},
				{PointID: "p2", Score: 0.8, Meta: map[string]any{"note_id": int64(1), "text": "second"}},
			},
			want: []Match{
				{NoteID: 3, Snippet: "first", Relevance: 0.8},
				{NoteID: 1, Snippet: "second", Relevance: 0.8},
			},
		},
		{
			name: "malformed metadata skipped",
			results: []vectorstore.SearchResult{
				{PointID: "p1", Score: 0.9, Meta: map[string]any{"text": "no note id"}},
				{PointID: "p2", Score: 0.85, Meta: map[string]any{"note_id": "not-a-number", "text": "bad type"}},
				{PointID: "p3", Score: 0.8, Meta: map[string]any{"note_id": int64(4), "text": "valid"}},
			},
			want: []Match{
				{NoteID: 4, Snippet: "valid", Relevance: 0.8},
			},
		},
		{
			name: "float64 note id accepted",
			results: []vectorstore.SearchResult{
				{PointID: "p1", Score: 0.9, Meta: map[string]any{"note_id": float64(11), "text": "legacy payload"}},
			},
			want: []Match{
				{NoteID: 11, Snippet: "legacy payload", Relevance: 0.9},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockEmbedder := index_mocks.NewMockEmbedder(ctrl)
			mockStore := vectorstore_mocks.NewMockVectorStore(ctrl)
			mockEmbedder.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).Return([][]float32{{0.1}}, nil)
			mockStore.EXPECT().Search(gomock.Any(), "notes", gomock.Any(), 5, gomock.Any()).Return(tt.results, nil)

			resolver := NewResolver(mockEmbedder, mockStore, "notes", 5, 0.5)
			matches, err := resolver.Search(context.Background(), 1, "query")
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}

			if len(matches) != len(tt.want) {
				t.Fatalf("Search() returned %d matches, want %d: %v", len(matches), len(tt.want), matches)
			}
			for i := range tt.want {
				if matches[i] != tt.want[i] {
					t.Errorf("match %d = %+v, want %+v", i, matches[i], tt.want[i])
				}
			}
		})
	}
}

func TestResolver_Search_Errors(t *testing.T) {
	embedErr := errors.New("embedding api down")
	storeErr := errors.New("qdrant down")

	tests := []struct {
		name  string
		setup func(e *index_mocks.MockEmbedder, s *vectorstore_mocks.MockVectorStore)
	}{
		{
			name: "embed fails",
			setup: func(e *index_mocks.MockEmbedder, s *vectorstore_mocks.MockVectorStore) {
				e.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).Return(nil, embedErr)
			},
		},
		{
			name: "store search fails",
			setup: func(e *index_mocks.MockEmbedder, s *vectorstore_mocks.MockVectorStore) {
				e.EXPECT().EmbedTexts(gomock.Any(), gomock.Any()).Return([][]float32{{0.1}}, nil)
				s.EXPECT().Search(gomock.Any(), "notes", gomock.Any(), 5, gomock.Any()).Return(nil, storeErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockEmbedder := index_mocks.NewMockEmbedder(ctrl)
			mockStore := vectorstore_mocks.NewMockVectorStore(ctrl)
			tt.setup(mockEmbedder, mockStore)

			resolver := NewResolver(mockEmbedder, mockStore, "notes", 5, 0.5)
			_, err := resolver.Search(context.Background(), 1, "query")
			if !errors.Is(err, ErrIndexUnavailable) {
				t.Errorf("Search() error = %v, want ErrIndexUnavailable", err)
			}
		})
	}
}
