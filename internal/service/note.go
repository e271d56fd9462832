package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nhoang/noteful-server/internal/apperr"
	"github.com/nhoang/noteful-server/internal/models"
	"github.com/nhoang/noteful-server/internal/repository"
)

// NoteRepository defines the persistence operations needed by the NoteService.
type NoteRepository interface {
	// ListNotes returns the notes matching the filter, sorted by creation
	// time ascending, with tags expanded.
	ListNotes(ctx context.Context, filter repository.NoteFilter) ([]models.Note, error)
	// GetNoteByID fetches a single note by id for the owner, with tags
	// expanded. Returns sql.ErrNoRows when absent.
	GetNoteByID(ctx context.Context, ownerID, id string) (*models.Note, error)
	// CreateNote inserts a note and its tag references.
	CreateNote(ctx context.Context, note models.Note, tagIDs []string) error
	// UpdateNote merges the update onto the stored note; false means the
	// note does not exist for this owner.
	UpdateNote(ctx context.Context, update repository.NoteUpdate) (bool, error)
	// DeleteNote removes a note; false means nothing was removed.
	DeleteNote(ctx context.Context, ownerID, id string) (bool, error)
}

// ListNotesParams are the optional search parameters for a note listing.
type ListNotesParams struct {
	SearchTerm string
	FolderID   string
	TagID      string
}

// CreateNoteParams is the payload for creating a note.
type CreateNoteParams struct {
	Title    string
	Content  string
	FolderID string
	Tags     []string
}

// UpdateNoteParams is the payload for updating a note. Nil optional fields
// are absent from the request and leave the stored value unchanged.
type UpdateNoteParams struct {
	Title    string
	Content  *string
	FolderID *string
	Tags     *[]string
}

// NoteService orchestrates validation and persistence for notes. Reference
// validation and the subsequent write are not covered by one transaction;
// a reference deleted in between stays dangling until the next validation.
type NoteService struct {
	repo      NoteRepository
	validator *ReferenceValidator
}

// NewNoteService constructs a NoteService with the provided repository and
// validator.
func NewNoteService(repo NoteRepository, validator *ReferenceValidator) *NoteService {
	return &NoteService{repo: repo, validator: validator}
}

// List returns the owner's notes narrowed by the given parameters.
func (s *NoteService) List(ctx context.Context, ownerID string, params ListNotesParams) ([]models.Note, error) {
	filter := repository.NewNoteFilter(ownerID)
	filter.SearchTerm = params.SearchTerm
	filter.FolderID = params.FolderID
	filter.TagID = params.TagID
	return s.repo.ListNotes(ctx, filter)
}

// Get returns a single note. The id must be well-formed before storage is
// touched; an absent note is NotFound, not a validation failure.
func (s *NoteService) Get(ctx context.Context, ownerID, id string) (*models.Note, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.ErrMalformedID
	}
	note, err := s.repo.GetNoteByID(ctx, ownerID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	return note, nil
}

// Create validates the payload and persists a new note. The title check
// runs first, then both reference checks concurrently; nothing is written
// unless all pass.
func (s *NoteService) Create(ctx context.Context, ownerID string, params CreateNoteParams) (*models.Note, error) {
	if params.Title == "" {
		return nil, apperr.ErrMissingTitle
	}

	if err := s.validator.ValidateRefs(ctx, ownerID, params.FolderID, params.Tags); err != nil {
		return nil, err
	}

	note := models.Note{
		ID:        uuid.NewString(),
		Title:     params.Title,
		Content:   params.Content,
		UserID:    ownerID,
		FolderID:  params.FolderID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateNote(ctx, note, distinctTagIDs(params.Tags)); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	created, err := s.repo.GetNoteByID(ctx, ownerID, note.ID)
	if err != nil {
		return nil, fmt.Errorf("read back note: %w", err)
	}
	return created, nil
}

// Update re-validates any references present in the payload and merges it
// onto the stored note. A note missing for (id, owner) after validation is
// NotFound, distinct from a validation failure.
func (s *NoteService) Update(ctx context.Context, ownerID, id string, params UpdateNoteParams) (*models.Note, error) {
	if params.Title == "" {
		return nil, apperr.ErrMissingTitle
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.ErrMalformedID
	}

	var folderID string
	if params.FolderID != nil {
		folderID = *params.FolderID
	}
	var tags []string
	if params.Tags != nil {
		tags = *params.Tags
	}
	if err := s.validator.ValidateRefs(ctx, ownerID, folderID, tags); err != nil {
		return nil, err
	}

	tagsUpdate := params.Tags
	if tagsUpdate != nil {
		distinct := distinctTagIDs(*tagsUpdate)
		tagsUpdate = &distinct
	}

	found, err := s.repo.UpdateNote(ctx, repository.NoteUpdate{
		ID:       id,
		OwnerID:  ownerID,
		Title:    params.Title,
		Content:  params.Content,
		FolderID: params.FolderID,
		Tags:     tagsUpdate,
	})
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	if !found {
		return nil, apperr.ErrNotFound
	}

	updated, err := s.repo.GetNoteByID(ctx, ownerID, id)
	if err != nil {
		return nil, fmt.Errorf("read back note: %w", err)
	}
	return updated, nil
}

// distinctTagIDs drops repeated ids, keeping first-occurrence order. A tag
// may reference a note only once; the join table enforces that per row.
func distinctTagIDs(ids []string) []string {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[string]struct{}, len(ids))
	distinct := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}
	return distinct
}

// Delete removes a note scoped to its owner. A second delete of the same id
// reports NotFound, never a failure.
func (s *NoteService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.ErrMalformedID
	}
	deleted, err := s.repo.DeleteNote(ctx, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if !deleted {
		return apperr.ErrNotFound
	}
	return nil
}
