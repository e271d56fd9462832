package http

import (
	"net/http"

	"github.com/nhoang/noteful-server/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the API.
// It applies JSON content-type enforcement and request logging, mounts the
// public registration and login endpoints, and protects the note, folder
// and tag routes with bearer-token authentication.
//
// Routes:
//
//	POST   /api/users        → authHandler.Register
//	POST   /api/login        → authHandler.Login
//	GET    /api/notes        → noteHandler.List      (protected)
//	POST   /api/notes        → noteHandler.Create    (protected)
//	GET    /api/notes/{id}   → noteHandler.Get       (protected)
//	PUT    /api/notes/{id}   → noteHandler.Update    (protected)
//	DELETE /api/notes/{id}   → noteHandler.Delete    (protected)
//	       /api/folders...   → folderHandler         (protected)
//	       /api/tags...      → tagHandler            (protected)
func NewRouter(
	authHandler *AuthHandler,
	noteHandler *NoteHandler,
	folderHandler *FolderHandler,
	tagHandler *TagHandler,
	tokens middleware.TokenVerifier,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/users", authHandler.Register)
		r.Post("/login", authHandler.Login)

		// Protected group: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokens))

			r.Route("/notes", func(r chi.Router) {
				r.Get("/", noteHandler.List)
				r.Post("/", noteHandler.Create)
				r.Get("/{id}", noteHandler.Get)
				r.Put("/{id}", noteHandler.Update)
				r.Delete("/{id}", noteHandler.Delete)
			})

			r.Route("/folders", func(r chi.Router) {
				r.Get("/", folderHandler.List)
				r.Post("/", folderHandler.Create)
				r.Get("/{id}", folderHandler.Get)
				r.Put("/{id}", folderHandler.Update)
				r.Delete("/{id}", folderHandler.Delete)
			})

			r.Route("/tags", func(r chi.Router) {
				r.Get("/", tagHandler.List)
				r.Post("/", tagHandler.Create)
				r.Get("/{id}", tagHandler.Get)
				r.Put("/{id}", tagHandler.Update)
				r.Delete("/{id}", tagHandler.Delete)
			})
		})
	})

	return r
}
