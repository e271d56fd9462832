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

// FolderRepository defines the persistence operations needed by the
// FolderService.
type FolderRepository interface {
	ListFolders(ctx context.Context, ownerID string) ([]models.Folder, error)
	GetFolderByID(ctx context.Context, ownerID, id string) (*models.Folder, error)
	CreateFolder(ctx context.Context, folder models.Folder) error
	UpdateFolder(ctx context.Context, folder models.Folder) (bool, error)
	DeleteFolder(ctx context.Context, ownerID, id string) (bool, error)
}

// FolderService implements owner-scoped folder CRUD.
type FolderService struct {
	repo FolderRepository
}

// NewFolderService constructs a FolderService with the provided repository.
func NewFolderService(repo FolderRepository) *FolderService {
	return &FolderService{repo: repo}
}

// List returns all folders of the owner.
func (s *FolderService) List(ctx context.Context, ownerID string) ([]models.Folder, error) {
	return s.repo.ListFolders(ctx, ownerID)
}

// Get returns a single folder of the owner.
func (s *FolderService) Get(ctx context.Context, ownerID, id string) (*models.Folder, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.ErrMalformedID
	}
	folder, err := s.repo.GetFolderByID(ctx, ownerID, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get folder: %w", err)
	}
	return folder, nil
}

// Create adds a folder for the owner. The name is required and must be
// unique per owner.
func (s *FolderService) Create(ctx context.Context, ownerID, name string) (*models.Folder, error) {
	if name == "" {
		return nil, apperr.New(apperr.InvalidArgument, "Missing `name` in request body")
	}
	folder := models.Folder{ID: uuid.NewString(), Name: name, UserID: ownerID}
	if err := s.repo.CreateFolder(ctx, folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// Update renames a folder of the owner.
func (s *FolderService) Update(ctx context.Context, ownerID, id, name string) (*models.Folder, error) {
	if name == "" {
		return nil, apperr.New(apperr.InvalidArgument, "Missing `name` in request body")
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.ErrMalformedID
	}
	folder := models.Folder{ID: id, Name: name, UserID: ownerID}
	found, err := s.repo.UpdateFolder(ctx, folder)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.ErrNotFound
	}
	return &folder, nil
}

// Delete removes a folder of the owner. Notes referencing it keep their
// reference; it fails validation on their next mutation.
func (s *FolderService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.ErrMalformedID
	}
	deleted, err := s.repo.DeleteFolder(ctx, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	if !deleted {
		return apperr.ErrNotFound
	}
	return nil
}
