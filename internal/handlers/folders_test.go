package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/MinesMe/ainotea/internal/storage"
	storage_mocks "github.com/MinesMe/ainotea/internal/storage/mocks"
)

func newFoldersRouter(t *testing.T) (http.Handler, *storage_mocks.MockFolderStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	folders := storage_mocks.NewMockFolderStore(ctrl)
	handler := NewFoldersHandler(folders)

	r := chi.NewRouter()
	r.Post("/api/folders", handler.Create)
	r.Get("/api/folders", handler.List)
	r.Patch("/api/folders/{id}", handler.Rename)
	r.Delete("/api/folders/{id}", handler.Delete)
	return r, folders
}

func TestFoldersHandler_Create(t *testing.T) {
	router, folders := newFoldersRouter(t)

	folders.EXPECT().Create(gomock.Any(), int64(7), "Work").Return(&storage.Folder{ID: 3, UserID: 7, Name: "Work"}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedJSONRequest(http.MethodPost, "/api/folders", `{"name": "Work"}`))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
}

func TestFoldersHandler_Create_Duplicate(t *testing.T) {
	router, folders := newFoldersRouter(t)

	folders.EXPECT().Create(gomock.Any(), int64(7), "Work").Return(nil, storage.ErrDuplicateFolder)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedJSONRequest(http.MethodPost, "/api/folders", `{"name": "Work"}`))

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
	}
}

func TestFoldersHandler_Create_BlankName(t *testing.T) {
	router, _ := newFoldersRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedJSONRequest(http.MethodPost, "/api/folders", `{"name": "  "}`))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestFoldersHandler_List(t *testing.T) {
	router, folders := newFoldersRouter(t)

	// nil from the store still serializes as an empty array.
	folders.EXPECT().ListByUser(gomock.Any(), int64(7)).Return(nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedJSONRequest(http.MethodGet, "/api/folders", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("body = %q, want empty JSON array", body)
	}
}

func TestFoldersHandler_Rename(t *testing.T) {
	router, folders := newFoldersRouter(t)

	folders.EXPECT().Rename(gomock.Any(), int64(7), int64(3), "Personal").Return(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedJSONRequest(http.MethodPatch, "/api/folders/3", `{"name": "Personal"}`))

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
}

func TestFoldersHandler_Delete_NotFound(t *testing.T) {
	router, folders := newFoldersRouter(t)

	folders.EXPECT().Delete(gomock.Any(), int64(7), int64(3)).Return(storage.ErrNotFound)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedJSONRequest(http.MethodDelete, "/api/folders/3", ""))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
