// Package repository provides Postgres persistence for users, folders,
// tags and notes. Every query on owned records filters by the owner's id.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/nhoang/noteful-server/internal/apperr"
	"github.com/nhoang/noteful-server/internal/models"
)

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a Postgres unique constraint error.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// PostgresUserRepository implements user persistence against PostgreSQL.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the
// given database connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// CreateUser inserts a new user. A duplicate username is reported as a
// client error.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user models.User) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (id, fullname, username, password_hash) VALUES ($1, $2, $3, $4)
	`, user.ID, user.Fullname, user.Username, user.PasswordHash)
	if isUniqueViolation(err) {
		return apperr.Wrap(apperr.AlreadyExists, "The username already exists", err)
	}
	if err != nil {
		return fmt.Errorf("CreateUser: %w", err)
	}
	return nil
}

// GetUserByUsername fetches a user by username. Returns sql.ErrNoRows if
// no such user exists.
func (r *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, fullname, username, password_hash FROM users WHERE username = $1
	`, username).Scan(&user.ID, &user.Fullname, &user.Username, &user.PasswordHash)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
