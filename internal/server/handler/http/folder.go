package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nhoang/noteful-server/internal/middleware"
	"github.com/nhoang/noteful-server/internal/models"
)

// FolderService defines the interface for folder operations required by
// the FolderHandler.
type FolderService interface {
	List(ctx context.Context, ownerID string) ([]models.Folder, error)
	Get(ctx context.Context, ownerID, id string) (*models.Folder, error)
	Create(ctx context.Context, ownerID, name string) (*models.Folder, error)
	Update(ctx context.Context, ownerID, id, name string) (*models.Folder, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// FolderHandler handles HTTP requests for folders.
type FolderHandler struct {
	FolderService FolderService
}

// nameRequest is the JSON payload for creating or renaming a folder or tag.
type nameRequest struct {
	Name string `json:"name"`
}

// List handles GET /api/folders.
func (h *FolderHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserIDFromContext(r.Context())

	folders, err := h.FolderService.List(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, folders)
}

// Get handles GET /api/folders/{id}.
func (h *FolderHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserIDFromContext(r.Context())

	folder, err := h.FolderService.Get(r.Context(), ownerID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, folder)
}

// Create handles POST /api/folders.
func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserIDFromContext(r.Context())

	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	folder, err := h.FolderService.Create(r.Context(), ownerID, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/%s", r.URL.Path, folder.ID))
	writeJSON(w, http.StatusCreated, folder)
}

// Update handles PUT /api/folders/{id}.
func (h *FolderHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserIDFromContext(r.Context())

	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	folder, err := h.FolderService.Update(r.Context(), ownerID, chi.URLParam(r, "id"), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, folder)
}

// Delete handles DELETE /api/folders/{id}.
func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserIDFromContext(r.Context())

	if err := h.FolderService.Delete(r.Context(), ownerID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
