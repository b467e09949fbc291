package notes

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_indexer.go -package=mocks github.com/MinesMe/ainotea/internal/notes Indexer
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_searcher.go -package=mocks github.com/MinesMe/ainotea/internal/notes Searcher

import (
	"context"
	"fmt"

	"github.com/MinesMe/ainotea/internal/contextutil"
	"github.com/MinesMe/ainotea/internal/index"
	"github.com/MinesMe/ainotea/internal/storage"
)

// Indexer keeps the vector index in step with note content.
// Implemented by index.Service.
type Indexer interface {
	ReindexNote(ctx context.Context, noteID, userID int64, fullText string) error
	RemoveNote(ctx context.Context, noteID int64) error
}

// Searcher resolves a free-text query to ranked note matches.
// Implemented by index.Resolver.
type Searcher interface {
	Search(ctx context.Context, userID int64, query string) ([]index.Match, error)
}

// CreateRequest carries the fields of a new note. Content holds already
// extracted text blocks; extraction from audio, photos, and links happens
// upstream of this service.
type CreateRequest struct {
	Title     string
	Type      storage.NoteType
	Content   []storage.Block
	SourceURI string
	FolderID  *int64
}

// SearchResult is a hydrated search hit: the full note record plus the
// matched chunk text and its relevance.
type SearchResult struct {
	Note      storage.Note `json:"note"`
	Snippet   string       `json:"snippet"`
	Relevance float32      `json:"relevance"`
}

// Service orchestrates note persistence and indexing. Relational writes
// always land first; an index failure leaves the note stored but unsearchable
// and is logged rather than rolled back.
type Service struct {
	noteRepo storage.NoteStore
	indexer  Indexer
	searcher Searcher
}

// NewService creates a notes service.
func NewService(noteRepo storage.NoteStore, indexer Indexer, searcher Searcher) *Service {
	return &Service{
		noteRepo: noteRepo,
		indexer:  indexer,
		searcher: searcher,
	}
}

// Create persists a new note and indexes its content.
func (s *Service) Create(ctx context.Context, userID int64, req CreateRequest) (*storage.Note, error) {
	if !req.Type.Valid() {
		return nil, fmt.Errorf("invalid note type %q", req.Type)
	}

	fullText := FullText(req.Content)
	title := req.Title
	if title == "" {
		title = DeriveTitle(fullText)
	}

	note := &storage.Note{
		UserID:    userID,
		FolderID:  req.FolderID,
		Title:     title,
		Type:      req.Type,
		Content:   req.Content,
		SourceURI: req.SourceURI,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}

	s.reindex(ctx, note, fullText)
	return note, nil
}

// Get returns one of the user's notes.
func (s *Service) Get(ctx context.Context, userID, noteID int64) (*storage.Note, error) {
	return s.noteRepo.GetByID(ctx, userID, noteID)
}

// List returns all of the user's notes, newest first.
func (s *Service) List(ctx context.Context, userID int64) ([]storage.Note, error) {
	return s.noteRepo.ListByUser(ctx, userID)
}

// AppendBlock appends a content block to a note and reindexes it.
func (s *Service) AppendBlock(ctx context.Context, userID, noteID int64, block storage.Block) (*storage.Note, error) {
	note, err := s.noteRepo.AppendBlock(ctx, userID, noteID, block)
	if err != nil {
		return nil, err
	}

	s.reindex(ctx, note, FullText(note.Content))
	return note, nil
}

// MoveToFolder re-parents a note. Folder membership is not indexed, so no
// reindex is needed.
func (s *Service) MoveToFolder(ctx context.Context, userID, noteID int64, folderID *int64) error {
	return s.noteRepo.MoveToFolder(ctx, userID, noteID, folderID)
}

// Delete removes a note and its indexed chunks.
func (s *Service) Delete(ctx context.Context, userID, noteID int64) error {
	if err := s.noteRepo.Delete(ctx, userID, noteID); err != nil {
		return err
	}

	if err := s.indexer.RemoveNote(ctx, noteID); err != nil {
		// The note row is gone; leftover chunks resolve to nothing during
		// search hydration, so this only delays cleanup.
		logger := contextutil.LoggerFromContext(ctx)
		logger.WarnContext(ctx, "note deleted but chunks not removed from index", "note_id", noteID, "error", err)
	}
	return nil
}

// Reindex rebuilds the note's index entries from its current content.
// Unlike the mutation paths this surfaces index errors, since indexing is the
// whole point of the call.
func (s *Service) Reindex(ctx context.Context, userID, noteID int64) error {
	note, err := s.noteRepo.GetByID(ctx, userID, noteID)
	if err != nil {
		return err
	}
	return s.indexer.ReindexNote(ctx, note.ID, note.UserID, FullText(note.Content))
}

// Search resolves the query and hydrates full note records in match order.
// Matches whose note no longer exists relationally are silently dropped.
func (s *Service) Search(ctx context.Context, userID int64, query string) ([]SearchResult, error) {
	matches, err := s.searcher.Search(ctx, userID, query)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(matches))
	for i, match := range matches {
		ids[i] = match.NoteID
	}

	found, err := s.noteRepo.ListByIDs(ctx, userID, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]storage.Note, len(found))
	for _, note := range found {
		byID[note.ID] = note
	}

	results := make([]SearchResult, 0, len(matches))
	for _, match := range matches {
		note, ok := byID[match.NoteID]
		if !ok {
			continue
		}
		results = append(results, SearchResult{
			Note:      note,
			Snippet:   match.Snippet,
			Relevance: match.Relevance,
		})
	}
	return results, nil
}

func (s *Service) reindex(ctx context.Context, note *storage.Note, fullText string) {
	if err := s.indexer.ReindexNote(ctx, note.ID, note.UserID, fullText); err != nil {
		// The note is committed; it stays readable and editable, just absent
		// from semantic search until the next successful reindex.
		logger := contextutil.LoggerFromContext(ctx)
		logger.WarnContext(ctx, "note saved but not indexed", "note_id", note.ID, "error", err)
	}
}
