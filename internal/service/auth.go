package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nhoang/noteful-server/internal/apperr"
	"github.com/nhoang/noteful-server/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines the persistence operations required by the
// authentication service.
type UserRepository interface {
	// CreateUser inserts a new user record.
	CreateUser(ctx context.Context, user models.User) error
	// GetUserByUsername fetches a user by username. Returns sql.ErrNoRows
	// when absent.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// TokenIssuer creates signed auth tokens.
type TokenIssuer interface {
	Issue(userID, username string) (string, error)
}

// RegisterParams is the payload for registering a user.
type RegisterParams struct {
	Fullname string
	Username string
	Password string
}

// AuthService implements registration and login.
type AuthService struct {
	users  UserRepository
	tokens TokenIssuer
}

// NewAuthService constructs an AuthService using the provided repository
// and token issuer.
func NewAuthService(users UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a user with a bcrypt-hashed credential. The returned
// record carries the hash internally but never serializes it.
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	username := strings.TrimSpace(params.Username)
	if username == "" {
		return nil, apperr.New(apperr.InvalidArgument, "Missing `username` in request body")
	}
	if params.Password == "" {
		return nil, apperr.New(apperr.InvalidArgument, "Missing `password` in request body")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Fullname:     strings.TrimSpace(params.Fullname),
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies the credential and issues an auth token. An unknown
// username and a wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperr.New(apperr.Unauthorized, "Incorrect username or password")
	}
	if err != nil {
		return "", fmt.Errorf("login lookup: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperr.New(apperr.Unauthorized, "Incorrect username or password")
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
