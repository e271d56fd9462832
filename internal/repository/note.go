package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/nhoang/noteful-server/internal/models"
)

// NoteFilter narrows a note listing. It can only be built through
// NewNoteFilter, so every listing query carries the owner scope.
type NoteFilter struct {
	ownerID string

	// SearchTerm, if non-empty, matches notes whose title contains it,
	// case-insensitively. Content is not searched.
	SearchTerm string
	// FolderID, if non-empty, restricts to notes in that folder.
	FolderID string
	// TagID, if non-empty, restricts to notes carrying that tag.
	TagID string
}

// NewNoteFilter creates a filter scoped to the given owner.
func NewNoteFilter(ownerID string) NoteFilter {
	return NoteFilter{ownerID: ownerID}
}

// NoteUpdate describes a partial update of a note. Nil optional fields
// leave the stored value unchanged; a non-nil empty Tags list removes all
// tag references.
type NoteUpdate struct {
	ID      string
	OwnerID string
	Title   string
	Content *string
	// FolderID moves the note into a folder when set; an empty value
	// clears the folder.
	FolderID *string
	// Tags replaces the note's tag references when set.
	Tags *[]string
}

// PostgresNoteRepository implements note persistence against PostgreSQL.
type PostgresNoteRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresNoteRepository creates a new PostgresNoteRepository using the
// provided *sql.DB.
func NewPostgresNoteRepository(db *sql.DB) *PostgresNoteRepository {
	return &PostgresNoteRepository{DB: db}
}

// ListNotes fetches the owner's notes matching the filter, sorted by
// creation time ascending, with tag references expanded to full records.
// The filter conditions are combined with AND.
func (r *PostgresNoteRepository) ListNotes(ctx context.Context, filter NoteFilter) ([]models.Note, error) {
	query := `SELECT id, title, content, user_id, folder_id, created_at FROM notes WHERE user_id = $1`
	args := []any{filter.ownerID}

	if filter.SearchTerm != "" {
		args = append(args, escapeLike(filter.SearchTerm))
		query += fmt.Sprintf(` AND title ILIKE '%%' || $%d || '%%'`, len(args))
	}
	if filter.FolderID != "" {
		args = append(args, filter.FolderID)
		query += fmt.Sprintf(` AND folder_id = $%d`, len(args))
	}
	if filter.TagID != "" {
		args = append(args, filter.TagID)
		query += fmt.Sprintf(` AND id IN (SELECT note_id FROM note_tags WHERE tag_id = $%d)`, len(args))
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListNotes: %w", err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	ids := make([]string, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *note)
		ids = append(ids, note.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListNotes rows: %w", err)
	}

	tagsByNote, err := r.noteTags(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range notes {
		if tags, ok := tagsByNote[notes[i].ID]; ok {
			notes[i].Tags = tags
		}
	}
	return notes, nil
}

// GetNoteByID fetches a single note by id for the given owner, with tags
// expanded. Returns sql.ErrNoRows if no such note exists for this owner.
func (r *PostgresNoteRepository) GetNoteByID(ctx context.Context, ownerID, id string) (*models.Note, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, title, content, user_id, folder_id, created_at FROM notes
		WHERE id = $1 AND user_id = $2
	`, id, ownerID)

	note, err := scanNote(row)
	if err != nil {
		return nil, err
	}

	tagsByNote, err := r.noteTags(ctx, []string{note.ID})
	if err != nil {
		return nil, err
	}
	if tags, ok := tagsByNote[note.ID]; ok {
		note.Tags = tags
	}
	return note, nil
}

// CreateNote inserts a note and its tag references. The references must
// already be validated; no ownership check happens here.
func (r *PostgresNoteRepository) CreateNote(ctx context.Context, note models.Note, tagIDs []string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var folderID any
	if note.FolderID != "" {
		folderID = note.FolderID
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO notes (id, title, content, user_id, folder_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, note.ID, note.Title, note.Content, note.UserID, folderID, note.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}

	if err := insertNoteTags(ctx, tx, note.ID, tagIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// UpdateNote merges the update onto the stored note, scoped to its owner.
// Returns false if the note does not exist for this owner.
func (r *PostgresNoteRepository) UpdateNote(ctx context.Context, update NoteUpdate) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	setFolder := update.FolderID != nil
	var folderID any
	if setFolder && *update.FolderID != "" {
		folderID = *update.FolderID
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE notes SET title = $1, content = COALESCE($2, content), folder_id = CASE WHEN $3 THEN $4 ELSE folder_id END
		WHERE id = $5 AND user_id = $6
	`, update.Title, update.Content, setFolder, folderID, update.ID, update.OwnerID)
	if err != nil {
		return false, fmt.Errorf("update note: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update note rows: %w", err)
	}
	if rows == 0 {
		return false, nil
	}

	if update.Tags != nil {
		_, err = tx.ExecContext(ctx, `DELETE FROM note_tags WHERE note_id = $1`, update.ID)
		if err != nil {
			return false, fmt.Errorf("clear note tags: %w", err)
		}
		if err := insertNoteTags(ctx, tx, update.ID, *update.Tags); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return true, nil
}

// DeleteNote removes a note, scoped to its owner. Returns false if nothing
// was removed. Tag references go with it via ON DELETE CASCADE.
func (r *PostgresNoteRepository) DeleteNote(ctx context.Context, ownerID, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM notes WHERE id = $1 AND user_id = $2
	`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("DeleteNote: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("DeleteNote rows: %w", err)
	}
	return rows > 0, nil
}

// noteTags loads the expanded tag records for the given notes, keyed by
// note id and ordered by each note's tag list position.
func (r *PostgresNoteRepository) noteTags(ctx context.Context, noteIDs []string) (map[string][]models.Tag, error) {
	if len(noteIDs) == 0 {
		return map[string][]models.Tag{}, nil
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT nt.note_id, t.id, t.name, t.user_id
		FROM note_tags nt
		JOIN tags t ON t.id = nt.tag_id
		WHERE nt.note_id = ANY($1)
		ORDER BY nt.note_id, nt.position
	`, pq.Array(noteIDs))
	if err != nil {
		return nil, fmt.Errorf("noteTags: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]models.Tag)
	for rows.Next() {
		var noteID string
		var tag models.Tag
		if err := rows.Scan(&noteID, &tag.ID, &tag.Name, &tag.UserID); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		result[noteID] = append(result[noteID], tag)
	}
	return result, rows.Err()
}

// insertNoteTags writes the ordered tag references of a note.
func insertNoteTags(ctx context.Context, tx *sql.Tx, noteID string, tagIDs []string) error {
	for i, tagID := range tagIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO note_tags (note_id, tag_id, position) VALUES ($1, $2, $3)
		`, noteID, tagID, i)
		if err != nil {
			return fmt.Errorf("insert note tag: %w", err)
		}
	}
	return nil
}

// escapeLike makes a string safe as a literal ILIKE substring. Backslash
// is the default LIKE escape character in Postgres.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*models.Note, error) {
	var note models.Note
	var folderID sql.NullString
	if err := row.Scan(&note.ID, &note.Title, &note.Content, &note.UserID, &folderID, &note.CreatedAt); err != nil {
		return nil, err
	}
	if folderID.Valid {
		note.FolderID = folderID.String
	}
	note.Tags = make([]models.Tag, 0)
	return &note, nil
}
