package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nhoang/noteful-server/internal/apperr"
	"github.com/nhoang/noteful-server/internal/models"
)

// TagRepository defines the persistence operations needed by the TagService.
type TagRepository interface {
	ListTags(ctx context.Context, ownerID string) ([]models.Tag, error)
	GetTagByID(ctx context.Context, ownerID, id string) (*models.Tag, error)
	CreateTag(ctx context.Context, tag models.Tag) error
	UpdateTag(ctx context.Context, tag models.Tag) (bool, error)
	DeleteTag(ctx context.Context, ownerID, id string) (bool, error)
}

// TagService implements owner-scoped tag CRUD.
type TagService struct {
	repo TagRepository
}

// NewTagService constructs a TagService with the provided repository.
func NewTagService(repo TagRepository) *TagService {
	return &TagService{repo: repo}
}

// List returns all tags of the owner.
func (s *TagService) List(ctx context.Context, ownerID string) ([]models.Tag, error) {
	return s.repo.ListTags(ctx, ownerID)
}

// Get returns a single tag of the owner.
func (s *TagService) Get(ctx context.Context, ownerID, id string) (*models.Tag, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.ErrMalformedID
	}
	tag, err := s.repo.GetTagByID(ctx, ownerID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get tag: %w", err)
	}
	return tag, nil
}

// Create adds a tag for the owner. The name is required and must be unique
// per owner.
func (s *TagService) Create(ctx context.Context, ownerID, name string) (*models.Tag, error) {
	if name == "" {
		return nil, apperr.New(apperr.InvalidArgument, "Missing `name` in request body")
	}
	tag := models.Tag{ID: uuid.NewString(), Name: name, UserID: ownerID}
	if err := s.repo.CreateTag(ctx, tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

// Update renames a tag of the owner.
func (s *TagService) Update(ctx context.Context, ownerID, id, name string) (*models.Tag, error) {
	if name == "" {
		return nil, apperr.New(apperr.InvalidArgument, "Missing `name` in request body")
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.ErrMalformedID
	}
	tag := models.Tag{ID: id, Name: name, UserID: ownerID}
	found, err := s.repo.UpdateTag(ctx, tag)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.ErrNotFound
	}
	return &tag, nil
}

// Delete removes a tag of the owner. Notes referencing it keep their
// reference; it fails validation on their next mutation.
func (s *TagService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.ErrMalformedID
	}
	deleted, err := s.repo.DeleteTag(ctx, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if !deleted {
		return apperr.ErrNotFound
	}
	return nil
}
