package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MinesMe/ainotea/internal/auth"
	"github.com/MinesMe/ainotea/internal/contextutil"
	"github.com/MinesMe/ainotea/internal/notes"
	"github.com/MinesMe/ainotea/internal/storage"
)

// NotesHandler serves note CRUD and indexing endpoints.
type NotesHandler struct {
	service *notes.Service
}

// NewNotesHandler creates a new NotesHandler.
func NewNotesHandler(service *notes.Service) *NotesHandler {
	return &NotesHandler{service: service}
}

// CreateNoteRequest is the request body for note creation. Content carries
// already-extracted text blocks; binary sources are referenced by source_uri.
type CreateNoteRequest struct {
	Title     string           `json:"title,omitempty"`
	Type      storage.NoteType `json:"type"`
	Content   []storage.Block  `json:"content"`
	SourceURI string           `json:"source_uri,omitempty"`
	FolderID  *int64           `json:"folder_id,omitempty"`
}

// AppendBlockRequest is the request body for appending a content block.
type AppendBlockRequest struct {
	Block storage.Block `json:"block"`
}

// MoveNoteRequest is the request body for moving a note between folders.
// A null folder_id detaches the note.
type MoveNoteRequest struct {
	FolderID *int64 `json:"folder_id"`
}

// Create handles POST /api/notes.
func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Type.Valid() {
		writeError(w, http.StatusBadRequest, "invalid note type")
		return
	}

	note, err := h.service.Create(ctx, userID, notes.CreateRequest{
		Title:     req.Title,
		Type:      req.Type,
		Content:   req.Content,
		SourceURI: req.SourceURI,
		FolderID:  req.FolderID,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to create note", "error", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, note)
}

// List handles GET /api/notes.
func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	allNotes, err := h.service.List(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list notes", "error", err)
		writeServiceError(w, err)
		return
	}
	if allNotes == nil {
		allNotes = []storage.Note{}
	}

	writeJSON(w, http.StatusOK, allNotes)
}

// Get handles GET /api/notes/{id}.
func (h *NotesHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	noteID, err := noteIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid note id")
		return
	}

	note, err := h.service.Get(ctx, userID, noteID)
	if err != nil {
		logger.WarnContext(ctx, "failed to get note", "note_id", noteID, "error", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// AppendBlock handles POST /api/notes/{id}/blocks.
func (h *NotesHandler) AppendBlock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	noteID, err := noteIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid note id")
		return
	}

	var req AppendBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Block.Text == "" {
		writeError(w, http.StatusBadRequest, "block text is required")
		return
	}

	note, err := h.service.AppendBlock(ctx, userID, noteID, req.Block)
	if err != nil {
		logger.ErrorContext(ctx, "failed to append block", "note_id", noteID, "error", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// Move handles PATCH /api/notes/{id}/folder.
func (h *NotesHandler) Move(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	noteID, err := noteIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid note id")
		return
	}

	var req MoveNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.MoveToFolder(ctx, userID, noteID, req.FolderID); err != nil {
		logger.WarnContext(ctx, "failed to move note", "note_id", noteID, "error", err)
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/notes/{id}.
func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	noteID, err := noteIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid note id")
		return
	}

	if err := h.service.Delete(ctx, userID, noteID); err != nil {
		logger.WarnContext(ctx, "failed to delete note", "note_id", noteID, "error", err)
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reindex handles POST /api/notes/{id}/reindex. There is no automatic retry
// queue; this is the manual way to bring a note that failed to index back
// into search.
func (h *NotesHandler) Reindex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	noteID, err := noteIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid note id")
		return
	}

	if err := h.service.Reindex(ctx, userID, noteID); err != nil {
		logger.ErrorContext(ctx, "failed to reindex note", "note_id", noteID, "error", err)
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func noteIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
