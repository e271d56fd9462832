package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/nhoang/noteful-server/internal/apperr"
	"github.com/nhoang/noteful-server/internal/models"
)

// PostgresTagRepository implements tag persistence against PostgreSQL.
type PostgresTagRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresTagRepository creates a new PostgresTagRepository using the
// provided *sql.DB.
func NewPostgresTagRepository(db *sql.DB) *PostgresTagRepository {
	return &PostgresTagRepository{DB: db}
}

// CountTagsByIDs counts the tags among ids that exist AND belong to the
// given owner. Tags owned by other users do not count.
func (r *PostgresTagRepository) CountTagsByIDs(ctx context.Context, ownerID string, ids []string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM tags WHERE user_id = $1 AND id = ANY($2)
	`, ownerID, pq.Array(ids)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("CountTagsByIDs: %w", err)
	}
	return count, nil
}

// TagsByIDs fetches the owner's tags matching ids. The result order is
// unspecified; callers needing list order must reorder.
func (r *PostgresTagRepository) TagsByIDs(ctx context.Context, ownerID string, ids []string) ([]models.Tag, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, user_id FROM tags WHERE user_id = $1 AND id = ANY($2)
	`, ownerID, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("TagsByIDs: %w", err)
	}
	defer rows.Close()

	tags := make([]models.Tag, 0, len(ids))
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.UserID); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// ListTags fetches all tags for the given owner, sorted by name.
func (r *PostgresTagRepository) ListTags(ctx context.Context, ownerID string) ([]models.Tag, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, user_id FROM tags WHERE user_id = $1 ORDER BY name ASC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ListTags: %w", err)
	}
	defer rows.Close()

	tags := make([]models.Tag, 0)
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.UserID); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// GetTagByID fetches a single tag by id for the given owner.
// Returns sql.ErrNoRows if no such tag exists for this owner.
func (r *PostgresTagRepository) GetTagByID(ctx context.Context, ownerID, id string) (*models.Tag, error) {
	var t models.Tag
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, user_id FROM tags WHERE id = $1 AND user_id = $2
	`, id, ownerID).Scan(&t.ID, &t.Name, &t.UserID)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTag inserts a new tag. A duplicate name for the same owner is
// reported as a client error.
func (r *PostgresTagRepository) CreateTag(ctx context.Context, tag models.Tag) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO tags (id, name, user_id) VALUES ($1, $2, $3)
	`, tag.ID, tag.Name, tag.UserID)
	if isUniqueViolation(err) {
		return apperr.Wrap(apperr.AlreadyExists, "The tag name already exists", err)
	}
	if err != nil {
		return fmt.Errorf("CreateTag: %w", err)
	}
	return nil
}

// UpdateTag renames a tag, scoped to its owner. Returns false if the tag
// does not exist for this owner.
func (r *PostgresTagRepository) UpdateTag(ctx context.Context, tag models.Tag) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE tags SET name = $1 WHERE id = $2 AND user_id = $3
	`, tag.Name, tag.ID, tag.UserID)
	if isUniqueViolation(err) {
		return false, apperr.Wrap(apperr.AlreadyExists, "The tag name already exists", err)
	}
	if err != nil {
		return false, fmt.Errorf("UpdateTag: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("UpdateTag rows: %w", err)
	}
	return rows > 0, nil
}

// DeleteTag removes a tag, scoped to its owner. Returns false if nothing
// was removed.
func (r *PostgresTagRepository) DeleteTag(ctx context.Context, ownerID, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM tags WHERE id = $1 AND user_id = $2
	`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("DeleteTag: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("DeleteTag rows: %w", err)
	}
	return rows > 0, nil
}
