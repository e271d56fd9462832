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

// TagService defines the interface for tag operations required by the
// TagHandler.
type TagService interface {
	List(ctx context.Context, ownerID string) ([]models.Tag, error)
	Get(ctx context.Context, ownerID, id string) (*models.Tag, error)
	Create(ctx context.Context, ownerID, name string) (*models.Tag, error)
	Update(ctx context.Context, ownerID, id, name string) (*models.Tag, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// TagHandler handles HTTP requests for tags.
type TagHandler struct {
	TagService TagService
}

// List handles GET /api/tags.
func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserIDFromContext(r.Context())

	tags, err := h.TagService.List(r.Context(), ownerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

// Get handles GET /api/tags/{id}.
func (h *TagHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserIDFromContext(r.Context())

	tag, err := h.TagService.Get(r.Context(), ownerID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tag)
}

// Create handles POST /api/tags.
func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserIDFromContext(r.Context())

	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	tag, err := h.TagService.Create(r.Context(), ownerID, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/%s", r.URL.Path, tag.ID))
	writeJSON(w, http.StatusCreated, tag)
}

// Update handles PUT /api/tags/{id}.
func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserIDFromContext(r.Context())

	var req nameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	tag, err := h.TagService.Update(r.Context(), ownerID, chi.URLParam(r, "id"), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tag)
}

// Delete handles DELETE /api/tags/{id}.
func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserIDFromContext(r.Context())

	if err := h.TagService.Delete(r.Context(), ownerID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
