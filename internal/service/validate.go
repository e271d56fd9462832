// Package service provides the business logic for authentication, reference
// validation and folder/tag/note lifecycles, delegating persistence to
// repository interfaces.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nhoang/noteful-server/internal/apperr"
)

// FolderStore defines the folder lookup needed by the validator.
type FolderStore interface {
	// FolderExists reports whether a folder exists and belongs to the owner.
	FolderExists(ctx context.Context, ownerID, folderID string) (bool, error)
}

// TagStore defines the tag lookup needed by the validator.
type TagStore interface {
	// CountTagsByIDs counts the ids that resolve to tags of the owner.
	CountTagsByIDs(ctx context.Context, ownerID string, ids []string) (int, error)
}

// ReferenceValidator verifies that folder and tag references supplied with
// a note request resolve to records owned by the requesting user.
type ReferenceValidator struct {
	folders FolderStore
	tags    TagStore
}

// NewReferenceValidator constructs a ReferenceValidator over the given stores.
func NewReferenceValidator(folders FolderStore, tags TagStore) *ReferenceValidator {
	return &ReferenceValidator{folders: folders, tags: tags}
}

// ValidateFolderRef succeeds trivially when folderID is empty. Otherwise the
// folder must exist and belong to ownerID; a folder owned by a different
// user fails the same way a missing one does.
func (v *ReferenceValidator) ValidateFolderRef(ctx context.Context, ownerID, folderID string) error {
	if folderID == "" {
		return nil
	}
	if _, err := uuid.Parse(folderID); err != nil {
		return apperr.ErrInvalidFolder
	}
	exists, err := v.folders.FolderExists(ctx, ownerID, folderID)
	if err != nil {
		return fmt.Errorf("validate folder: %w", err)
	}
	if !exists {
		return apperr.ErrInvalidFolder
	}
	return nil
}

// ValidateTagRefs succeeds trivially when tagIDs is empty. Otherwise every
// distinct id must resolve to a tag owned by ownerID; any mismatch rejects
// the whole set without reporting which id failed.
func (v *ReferenceValidator) ValidateTagRefs(ctx context.Context, ownerID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}

	distinct := make([]string, 0, len(tagIDs))
	seen := make(map[string]struct{}, len(tagIDs))
	for _, id := range tagIDs {
		if _, err := uuid.Parse(id); err != nil {
			return apperr.ErrInvalidTag
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}

	count, err := v.tags.CountTagsByIDs(ctx, ownerID, distinct)
	if err != nil {
		return fmt.Errorf("validate tags: %w", err)
	}
	if count != len(distinct) {
		return apperr.ErrInvalidTag
	}
	return nil
}

// ValidateRefs runs the folder and tag checks concurrently and waits for
// both. The request fails if either check fails; when both fail, the
// folder error is the one reported.
func (v *ReferenceValidator) ValidateRefs(ctx context.Context, ownerID, folderID string, tagIDs []string) error {
	folderDone := make(chan error, 1)
	go func() {
		folderDone <- v.ValidateFolderRef(ctx, ownerID, folderID)
	}()

	tagErr := v.ValidateTagRefs(ctx, ownerID, tagIDs)

	if folderErr := <-folderDone; folderErr != nil {
		return folderErr
	}
	return tagErr
}
