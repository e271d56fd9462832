package service_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/nhoang/noteful-server/internal/apperr"
	"github.com/nhoang/noteful-server/internal/service"
)

// Well-formed ids used across the validator tests.
const (
	folderF1 = "5f0f0a3c-9d3e-4b91-b9a1-000000000001"
	tagT1    = "5f0f0a3c-9d3e-4b91-b9a1-000000000002"
	tagT2    = "5f0f0a3c-9d3e-4b91-b9a1-000000000003"
)

type mockFolderStore struct {
	called           bool
	receivedOwnerID  string
	receivedFolderID string

	exists bool
	err    error
}

func (m *mockFolderStore) FolderExists(ctx context.Context, ownerID, folderID string) (bool, error) {
	m.called = true
	m.receivedOwnerID = ownerID
	m.receivedFolderID = folderID
	return m.exists, m.err
}

type mockTagStore struct {
	called          bool
	receivedOwnerID string
	receivedIDs     []string

	count int
	err   error
}

func (m *mockTagStore) CountTagsByIDs(ctx context.Context, ownerID string, ids []string) (int, error) {
	m.called = true
	m.receivedOwnerID = ownerID
	m.receivedIDs = ids
	return m.count, m.err
}

func TestValidateFolderRef_EmptyIDSucceedsWithoutLookup(t *testing.T) {
	folders := &mockFolderStore{}
	v := service.NewReferenceValidator(folders, &mockTagStore{})

	if err := v.ValidateFolderRef(context.Background(), "owner-a", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if folders.called {
		t.Error("empty folder id must not touch the store")
	}
}

func TestValidateFolderRef_NotOwned(t *testing.T) {
	// A folder id owned by another user resolves to exists=false under this
	// owner's scope.
	folders := &mockFolderStore{exists: false}
	v := service.NewReferenceValidator(folders, &mockTagStore{})

	err := v.ValidateFolderRef(context.Background(), "owner-a", folderF1)
	if !errors.Is(err, apperr.ErrInvalidFolder) {
		t.Fatalf("error = %v; want ErrInvalidFolder", err)
	}
	if folders.receivedOwnerID != "owner-a" || folders.receivedFolderID != folderF1 {
		t.Errorf("lookup args = (%q, %q)", folders.receivedOwnerID, folders.receivedFolderID)
	}
}

func TestValidateFolderRef_MalformedID(t *testing.T) {
	folders := &mockFolderStore{}
	v := service.NewReferenceValidator(folders, &mockTagStore{})

	err := v.ValidateFolderRef(context.Background(), "owner-a", "not-a-uuid")
	if !errors.Is(err, apperr.ErrInvalidFolder) {
		t.Fatalf("error = %v; want ErrInvalidFolder", err)
	}
	if folders.called {
		t.Error("malformed folder id must not touch the store")
	}
}

func TestValidateFolderRef_StoreError(t *testing.T) {
	folders := &mockFolderStore{err: errors.New("db down")}
	v := service.NewReferenceValidator(folders, &mockTagStore{})

	err := v.ValidateFolderRef(context.Background(), "owner-a", folderF1)
	if err == nil || errors.Is(err, apperr.ErrInvalidFolder) {
		t.Fatalf("error = %v; want opaque store failure", err)
	}
}

func TestValidateTagRefs_EmptyListSucceedsWithoutLookup(t *testing.T) {
	tags := &mockTagStore{}
	v := service.NewReferenceValidator(&mockFolderStore{}, tags)

	if err := v.ValidateTagRefs(context.Background(), "owner-a", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.ValidateTagRefs(context.Background(), "owner-a", []string{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tags.called {
		t.Error("empty tag list must not touch the store")
	}
}

func TestValidateTagRefs_AllOwned(t *testing.T) {
	tags := &mockTagStore{count: 2}
	v := service.NewReferenceValidator(&mockFolderStore{}, tags)

	if err := v.ValidateTagRefs(context.Background(), "owner-a", []string{tagT1, tagT2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(tags.receivedIDs, []string{tagT1, tagT2}) {
		t.Errorf("lookup ids = %v", tags.receivedIDs)
	}
}

func TestValidateTagRefs_DuplicatesCountedOnce(t *testing.T) {
	tags := &mockTagStore{count: 1}
	v := service.NewReferenceValidator(&mockFolderStore{}, tags)

	if err := v.ValidateTagRefs(context.Background(), "owner-a", []string{tagT1, tagT1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(tags.receivedIDs, []string{tagT1}) {
		t.Errorf("lookup ids = %v; want deduplicated", tags.receivedIDs)
	}
}

// One missing or foreign id rejects the whole set; the caller is not told
// which id failed.
func TestValidateTagRefs_AnyMismatchRejectsWholeSet(t *testing.T) {
	tags := &mockTagStore{count: 1}
	v := service.NewReferenceValidator(&mockFolderStore{}, tags)

	err := v.ValidateTagRefs(context.Background(), "owner-a", []string{tagT1, tagT2})
	if !errors.Is(err, apperr.ErrInvalidTag) {
		t.Fatalf("error = %v; want ErrInvalidTag", err)
	}
}

func TestValidateTagRefs_MalformedID(t *testing.T) {
	tags := &mockTagStore{}
	v := service.NewReferenceValidator(&mockFolderStore{}, tags)

	err := v.ValidateTagRefs(context.Background(), "owner-a", []string{tagT1, "not-a-uuid"})
	if !errors.Is(err, apperr.ErrInvalidTag) {
		t.Fatalf("error = %v; want ErrInvalidTag", err)
	}
	if tags.called {
		t.Error("malformed tag id must not touch the store")
	}
}

func TestValidateRefs_BothChecksRun(t *testing.T) {
	folders := &mockFolderStore{exists: true}
	tags := &mockTagStore{count: 1}
	v := service.NewReferenceValidator(folders, tags)

	if err := v.ValidateRefs(context.Background(), "owner-a", folderF1, []string{tagT1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !folders.called || !tags.called {
		t.Errorf("both checks must run: folder=%v tag=%v", folders.called, tags.called)
	}
}

func TestValidateRefs_EitherFailureFailsTheRequest(t *testing.T) {
	t.Run("invalid folder", func(t *testing.T) {
		v := service.NewReferenceValidator(&mockFolderStore{exists: false}, &mockTagStore{count: 1})
		err := v.ValidateRefs(context.Background(), "owner-a", folderF1, []string{tagT1})
		if !errors.Is(err, apperr.ErrInvalidFolder) {
			t.Fatalf("error = %v; want ErrInvalidFolder", err)
		}
	})

	t.Run("invalid tag", func(t *testing.T) {
		v := service.NewReferenceValidator(&mockFolderStore{exists: true}, &mockTagStore{count: 0})
		err := v.ValidateRefs(context.Background(), "owner-a", folderF1, []string{tagT1})
		if !errors.Is(err, apperr.ErrInvalidTag) {
			t.Fatalf("error = %v; want ErrInvalidTag", err)
		}
	})
}

// When both references are invalid, exactly one of the two errors surfaces,
// never a generic one.
func TestValidateRefs_BothInvalid(t *testing.T) {
	v := service.NewReferenceValidator(&mockFolderStore{exists: false}, &mockTagStore{count: 0})

	err := v.ValidateRefs(context.Background(), "owner-a", folderF1, []string{tagT1})
	if !errors.Is(err, apperr.ErrInvalidFolder) && !errors.Is(err, apperr.ErrInvalidTag) {
		t.Fatalf("error = %v; want one of the two reference errors", err)
	}
}
