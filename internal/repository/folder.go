package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nhoang/noteful-server/internal/apperr"
	"github.com/nhoang/noteful-server/internal/models"
)

// PostgresFolderRepository implements folder persistence against PostgreSQL.
type PostgresFolderRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresFolderRepository creates a new PostgresFolderRepository using
// the provided *sql.DB.
func NewPostgresFolderRepository(db *sql.DB) *PostgresFolderRepository {
	return &PostgresFolderRepository{DB: db}
}

// FolderExists checks whether a folder with the given id exists AND belongs
// to the given owner. A folder owned by a different user does not count.
func (r *PostgresFolderRepository) FolderExists(ctx context.Context, ownerID, folderID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM folders WHERE id = $1 AND user_id = $2)
	`, folderID, ownerID).Scan(&exists)
	return exists, err
}

// ListFolders fetches all folders for the given owner, sorted by name.
func (r *PostgresFolderRepository) ListFolders(ctx context.Context, ownerID string) ([]models.Folder, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, user_id FROM folders WHERE user_id = $1 ORDER BY name ASC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ListFolders: %w", err)
	}
	defer rows.Close()

	folders := make([]models.Folder, 0)
	for rows.Next() {
		var f models.Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.UserID); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// GetFolderByID fetches a single folder by id for the given owner.
// Returns sql.ErrNoRows if no such folder exists for this owner.
func (r *PostgresFolderRepository) GetFolderByID(ctx context.Context, ownerID, id string) (*models.Folder, error) {
	var f models.Folder
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, user_id FROM folders WHERE id = $1 AND user_id = $2
	`, id, ownerID).Scan(&f.ID, &f.Name, &f.UserID)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// CreateFolder inserts a new folder. A duplicate name for the same owner is
// reported as a client error.
func (r *PostgresFolderRepository) CreateFolder(ctx context.Context, folder models.Folder) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO folders (id, name, user_id) VALUES ($1, $2, $3)
	`, folder.ID, folder.Name, folder.UserID)
	if isUniqueViolation(err) {
		return apperr.Wrap(apperr.AlreadyExists, "Folder name already exists", err)
	}
	if err != nil {
		return fmt.Errorf("CreateFolder: %w", err)
	}
	return nil
}

// UpdateFolder renames a folder, scoped to its owner. Returns false if the
// folder does not exist for this owner.
func (r *PostgresFolderRepository) UpdateFolder(ctx context.Context, folder models.Folder) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE folders SET name = $1 WHERE id = $2 AND user_id = $3
	`, folder.Name, folder.ID, folder.UserID)
	if isUniqueViolation(err) {
		return false, apperr.Wrap(apperr.AlreadyExists, "Folder name already exists", err)
	}
	if err != nil {
		return false, fmt.Errorf("UpdateFolder: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("UpdateFolder rows: %w", err)
	}
	return rows > 0, nil
}

// DeleteFolder removes a folder, scoped to its owner. Returns false if
// nothing was removed.
func (r *PostgresFolderRepository) DeleteFolder(ctx context.Context, ownerID, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM folders WHERE id = $1 AND user_id = $2
	`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("DeleteFolder: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("DeleteFolder rows: %w", err)
	}
	return rows > 0, nil
}
