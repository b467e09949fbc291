package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MinesMe/ainotea/internal/auth"
	"github.com/MinesMe/ainotea/internal/contextutil"
	"github.com/MinesMe/ainotea/internal/storage"
)

// FoldersHandler serves folder CRUD endpoints.
type FoldersHandler struct {
	folders storage.FolderStore
}

// NewFoldersHandler creates a new FoldersHandler.
func NewFoldersHandler(folders storage.FolderStore) *FoldersHandler {
	return &FoldersHandler{folders: folders}
}

// FolderRequest is the request body for creating or renaming a folder.
type FolderRequest struct {
	Name string `json:"name"`
}

// Create handles POST /api/folders.
func (h *FoldersHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	name, ok := decodeFolderName(w, r)
	if !ok {
		return
	}

	folder, err := h.folders.Create(ctx, userID, name)
	if err != nil {
		logger.WarnContext(ctx, "failed to create folder", "error", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, folder)
}

// List handles GET /api/folders.
func (h *FoldersHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	folders, err := h.folders.ListByUser(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list folders", "error", err)
		writeServiceError(w, err)
		return
	}
	if folders == nil {
		folders = []storage.Folder{}
	}

	writeJSON(w, http.StatusOK, folders)
}

// Rename handles PATCH /api/folders/{id}.
func (h *FoldersHandler) Rename(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	folderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid folder id")
		return
	}

	name, ok := decodeFolderName(w, r)
	if !ok {
		return
	}

	if err := h.folders.Rename(ctx, userID, folderID, name); err != nil {
		logger.WarnContext(ctx, "failed to rename folder", "folder_id", folderID, "error", err)
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/folders/{id}. Notes in the folder are detached,
// not deleted.
func (h *FoldersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	folderID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid folder id")
		return
	}

	if err := h.folders.Delete(ctx, userID, folderID); err != nil {
		logger.WarnContext(ctx, "failed to delete folder", "folder_id", folderID, "error", err)
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func decodeFolderName(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req FolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return "", false
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return "", false
	}
	return name, true
}
