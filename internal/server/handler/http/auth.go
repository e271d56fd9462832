package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nhoang/noteful-server/internal/models"
	"github.com/nhoang/noteful-server/internal/service"
)

// AuthService defines the interface for registration and login required
// by the HTTP handlers.
type AuthService interface {
	// Register creates a new user with a hashed credential.
	Register(ctx context.Context, params service.RegisterParams) (*models.User, error)
	// Login verifies a credential and returns a signed auth token.
	Login(ctx context.Context, username, password string) (string, error)
}

// AuthHandler handles HTTP requests for user registration and login.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
}

// RegisterRequest represents the JSON payload for user registration.
type RegisterRequest struct {
	Fullname string `json:"fullname"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest represents the JSON payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles POST /api/users. On success it responds 201 with the
// created user; the password hash is never part of the response body.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	user, err := h.AuthService.Register(r.Context(), service.RegisterParams{
		Fullname: req.Fullname,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("%s/%s", r.URL.Path, user.ID))
	writeJSON(w, http.StatusCreated, user)
}

// Login handles POST /api/login and responds with an auth token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	authToken, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"authToken": authToken})
}
