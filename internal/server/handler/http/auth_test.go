package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nhoang/noteful-server/internal/apperr"
	"github.com/nhoang/noteful-server/internal/models"
	handler "github.com/nhoang/noteful-server/internal/server/handler/http"
	"github.com/nhoang/noteful-server/internal/service"
)

// fakeAuthService records calls and returns preconfigured results.
type fakeAuthService struct {
	receivedRegister service.RegisterParams
	receivedUsername string
	receivedPassword string

	user  *models.User
	token string
	err   error
}

func (f *fakeAuthService) Register(ctx context.Context, params service.RegisterParams) (*models.User, error) {
	f.receivedRegister = params
	return f.user, f.err
}

func (f *fakeAuthService) Login(ctx context.Context, username, password string) (string, error) {
	f.receivedUsername = username
	f.receivedPassword = password
	return f.token, f.err
}

func TestRegister_Success(t *testing.T) {
	fake := &fakeAuthService{
		user: &models.User{ID: "user-1", Fullname: "Bob User", Username: "bobuser", PasswordHash: "secret-hash"},
	}
	h := &handler.AuthHandler{AuthService: fake}

	body, _ := json.Marshal(map[string]string{
		"fullname": "Bob User",
		"username": "bobuser",
		"password": "open sesame",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.Register(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusCreated)
	}
	if loc := w.Header().Get("Location"); loc != "/api/users/user-1" {
		t.Errorf("Location = %q", loc)
	}
	if fake.receivedRegister.Password != "open sesame" {
		t.Errorf("password not forwarded: %+v", fake.receivedRegister)
	}
	if strings.Contains(w.Body.String(), "secret-hash") {
		t.Error("response must never contain the password credential")
	}

	var got map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got["username"] != "bobuser" {
		t.Errorf("response = %v", got)
	}
	if _, ok := got["password"]; ok {
		t.Error("response must not have a password field")
	}
}

func TestRegister_BadJSON(t *testing.T) {
	h := &handler.AuthHandler{AuthService: &fakeAuthService{}}

	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString("not-a-json"))
	w := httptest.NewRecorder()
	h.Register(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want %d", w.Code, http.StatusBadRequest)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	fake := &fakeAuthService{err: apperr.New(apperr.AlreadyExists, "The username already exists")}
	h := &handler.AuthHandler{AuthService: fake}

	body, _ := json.Marshal(map[string]string{"username": "bobuser", "password": "x"})
	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.Register(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want %d", w.Code, http.StatusBadRequest)
	}
	if body := w.Body.String(); body != "The username already exists\n" {
		t.Errorf("body = %q", body)
	}
}

func TestLogin_Success(t *testing.T) {
	fake := &fakeAuthService{token: "signed-token"}
	h := &handler.AuthHandler{AuthService: fake}

	body, _ := json.Marshal(map[string]string{"username": "bobuser", "password": "open sesame"})
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}

	var got map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got["authToken"] != "signed-token" {
		t.Errorf("response = %v", got)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	fake := &fakeAuthService{err: apperr.New(apperr.Unauthorized, "Incorrect username or password")}
	h := &handler.AuthHandler{AuthService: fake}

	body, _ := json.Marshal(map[string]string{"username": "bobuser", "password": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.Login(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d; want %d", w.Code, http.StatusUnauthorized)
	}
}
