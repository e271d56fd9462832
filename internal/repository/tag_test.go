package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/nhoang/noteful-server/internal/apperr"
	"github.com/nhoang/noteful-server/internal/models"
)

func setupTagMock(t *testing.T) (*PostgresTagRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresTagRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestCountTagsByIDs(t *testing.T) {
	repo, mock, cleanup := setupTagMock(t)
	defer cleanup()

	ids := []string{"tag-1", "tag-2"}
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM tags WHERE user_id = $1 AND id = ANY($2)`)).
		WithArgs("owner-a", pq.Array(ids)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	count, err := repo.CountTagsByIDs(context.Background(), "owner-a", ids)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d; want 1", count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestTagsByIDs(t *testing.T) {
	repo, mock, cleanup := setupTagMock(t)
	defer cleanup()

	ids := []string{"tag-1", "tag-2"}
	rows := sqlmock.NewRows([]string{"id", "name", "user_id"}).
		AddRow("tag-1", "work", "owner-a").
		AddRow("tag-2", "home", "owner-a")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, user_id FROM tags WHERE user_id = $1 AND id = ANY($2)`)).
		WithArgs("owner-a", pq.Array(ids)).
		WillReturnRows(rows)

	tags, err := repo.TagsByIDs(context.Background(), "owner-a", ids)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tags) != 2 {
		t.Errorf("expected 2 tags, got %d", len(tags))
	}
	if tags[0].Name != "work" || tags[1].Name != "home" {
		t.Errorf("unexpected tags returned: %+v", tags)
	}
}

func TestCreateTag_DuplicateName(t *testing.T) {
	repo, mock, cleanup := setupTagMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO tags (id, name, user_id) VALUES ($1, $2, $3)`)).
		WithArgs("tag-1", "work", "owner-a").
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.CreateTag(context.Background(), models.Tag{ID: "tag-1", Name: "work", UserID: "owner-a"})
	if apperr.CodeOf(err) != apperr.AlreadyExists {
		t.Errorf("error code = %q; want %q", apperr.CodeOf(err), apperr.AlreadyExists)
	}
	if got := apperr.MessageOf(err); got != "The tag name already exists" {
		t.Errorf("message = %q", got)
	}
}

func TestUpdateTag_NotFound(t *testing.T) {
	repo, mock, cleanup := setupTagMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE tags SET name = $1 WHERE id = $2 AND user_id = $3`)).
		WithArgs("renamed", "tag-1", "owner-a").
		WillReturnResult(sqlmock.NewResult(0, 0))

	found, err := repo.UpdateTag(context.Background(), models.Tag{ID: "tag-1", Name: "renamed", UserID: "owner-a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Errorf("expected found = false")
	}
}

func TestDeleteTag_Success(t *testing.T) {
	repo, mock, cleanup := setupTagMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM tags WHERE id = $1 AND user_id = $2`)).
		WithArgs("tag-1", "owner-a").
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.DeleteTag(context.Background(), "owner-a", "tag-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !deleted {
		t.Errorf("expected deleted = true")
	}
}
