package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/nhoang/noteful-server/internal/middleware"
	"github.com/nhoang/noteful-server/internal/models"
	"github.com/nhoang/noteful-server/internal/service"
)

// NoteService defines the interface for note operations required by the
// NoteHandler. Every operation is scoped to the authenticated owner.
type NoteService interface {
	List(ctx context.Context, ownerID string, params service.ListNotesParams) ([]models.Note, error)
	Get(ctx context.Context, ownerID, id string) (*models.Note, error)
	Create(ctx context.Context, ownerID string, params service.CreateNoteParams) (*models.Note, error)
	Update(ctx context.Context, ownerID, id string, params service.UpdateNoteParams) (*models.Note, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// NoteHandler handles HTTP requests for notes.
type NoteHandler struct {
	NoteService NoteService
}

// NoteRequest represents the JSON payload for creating or updating a note.
// Pointer fields distinguish absent from empty on update.
type NoteRequest struct {
	Title    string    `json:"title"`
	Content  *string   `json:"content"`
	FolderID *string   `json:"folderId"`
	Tags     *[]string `json:"tags"`
}

// List handles GET /api/notes with optional searchTerm, folderId and tagId
// query parameters.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserIDFromContext(r.Context())

	notes, err := h.NoteService.List(r.Context(), ownerID, service.ListNotesParams{
		SearchTerm: r.URL.Query().Get("searchTerm"),
		FolderID:   r.URL.Query().Get("folderId"),
		TagID:      r.URL.Query().Get("tagId"),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, notes)
}

// Get handles GET /api/notes/{id}.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserIDFromContext(r.Context())

	note, err := h.NoteService.Get(r.Context(), ownerID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// Create handles POST /api/notes. On success it responds 201 with the
// created note and a Location header identifying it.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserIDFromContext(r.Context())

	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	params := service.CreateNoteParams{Title: req.Title}
	if req.Content != nil {
		params.Content = *req.Content
	}
	if req.FolderID != nil {
		params.FolderID = *req.FolderID
	}
	if req.Tags != nil {
		params.Tags = *req.Tags
	}

	note, err := h.NoteService.Create(r.Context(), ownerID, params)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/%s", r.URL.Path, note.ID))
	writeJSON(w, http.StatusCreated, note)
}

// Update handles PUT /api/notes/{id}. Fields absent from the payload leave
// the stored values unchanged.
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserIDFromContext(r.Context())

	var req NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	note, err := h.NoteService.Update(r.Context(), ownerID, chi.URLParam(r, "id"), service.UpdateNoteParams{
		Title:    req.Title,
		Content:  req.Content,
		FolderID: req.FolderID,
		Tags:     req.Tags,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// Delete handles DELETE /api/notes/{id} and responds 204 when a note was
// removed, 404 when nothing was.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserIDFromContext(r.Context())

	if err := h.NoteService.Delete(r.Context(), ownerID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
