package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/nhoang/noteful-server/internal/apperr"
	"github.com/nhoang/noteful-server/internal/models"
	handler "github.com/nhoang/noteful-server/internal/server/handler/http"
)

type fakeFolderService struct {
	receivedID   string
	receivedName string

	folders []models.Folder
	folder  *models.Folder
	err     error
}

func (f *fakeFolderService) List(ctx context.Context, ownerID string) ([]models.Folder, error) {
	return f.folders, f.err
}

func (f *fakeFolderService) Get(ctx context.Context, ownerID, id string) (*models.Folder, error) {
	f.receivedID = id
	return f.folder, f.err
}

func (f *fakeFolderService) Create(ctx context.Context, ownerID, name string) (*models.Folder, error) {
	f.receivedName = name
	return f.folder, f.err
}

func (f *fakeFolderService) Update(ctx context.Context, ownerID, id, name string) (*models.Folder, error) {
	f.receivedID = id
	f.receivedName = name
	return f.folder, f.err
}

func (f *fakeFolderService) Delete(ctx context.Context, ownerID, id string) error {
	f.receivedID = id
	return f.err
}

func folderRouter(fake *fakeFolderService) http.Handler {
	h := &handler.FolderHandler{FolderService: fake}
	r := chi.NewRouter()
	r.Get("/api/folders", h.List)
	r.Post("/api/folders", h.Create)
	r.Get("/api/folders/{id}", h.Get)
	r.Put("/api/folders/{id}", h.Update)
	r.Delete("/api/folders/{id}", h.Delete)
	return r
}

func TestFolderCreate_Success(t *testing.T) {
	fake := &fakeFolderService{folder: &models.Folder{ID: "folder-1", Name: "Archive", UserID: "owner-a"}}
	router := folderRouter(fake)

	body, _ := json.Marshal(map[string]string{"name": "Archive"})
	req := httptest.NewRequest(http.MethodPost, "/api/folders", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusCreated)
	}
	if loc := w.Header().Get("Location"); loc != "/api/folders/folder-1" {
		t.Errorf("Location = %q", loc)
	}
	if fake.receivedName != "Archive" {
		t.Errorf("name = %q", fake.receivedName)
	}
}

func TestFolderCreate_DuplicateName(t *testing.T) {
	fake := &fakeFolderService{err: apperr.New(apperr.AlreadyExists, "Folder name already exists")}
	router := folderRouter(fake)

	body, _ := json.Marshal(map[string]string{"name": "Archive"})
	req := httptest.NewRequest(http.MethodPost, "/api/folders", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want %d", w.Code, http.StatusBadRequest)
	}
	if body := w.Body.String(); body != "Folder name already exists\n" {
		t.Errorf("body = %q", body)
	}
}

func TestFolderGet_MalformedID(t *testing.T) {
	router := folderRouter(&fakeFolderService{err: apperr.ErrMalformedID})

	req := httptest.NewRequest(http.MethodGet, "/api/folders/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want %d", w.Code, http.StatusBadRequest)
	}
	if body := w.Body.String(); body != "The `id` is not valid\n" {
		t.Errorf("body = %q", body)
	}
}

func TestFolderDelete_NotFound(t *testing.T) {
	router := folderRouter(&fakeFolderService{err: apperr.ErrNotFound})

	req := httptest.NewRequest(http.MethodDelete, "/api/folders/folder-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d; want %d", w.Code, http.StatusNotFound)
	}
}
