// Package main initializes and starts the note-taking API server, setting
// up configuration, logging, the database connection, repositories,
// services and handlers.
package main

import (
	"cmp"
	"fmt"

	nethttp "net/http"

	"github.com/nhoang/noteful-server/internal/config"
	"github.com/nhoang/noteful-server/internal/db"
	"github.com/nhoang/noteful-server/internal/logger"
	"github.com/nhoang/noteful-server/internal/repository"
	"github.com/nhoang/noteful-server/internal/server/handler/http"
	"github.com/nhoang/noteful-server/internal/service"
	"github.com/nhoang/noteful-server/internal/token"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.TokenSecret == "" {
		zapLogger.Fatal("token secret is required")
	}

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Initialize repositories.
	userRepo := repository.NewPostgresUserRepository(postgresDB)
	folderRepo := repository.NewPostgresFolderRepository(postgresDB)
	tagRepo := repository.NewPostgresTagRepository(postgresDB)
	noteRepo := repository.NewPostgresNoteRepository(postgresDB)

	// Initialize business-logic services.
	tokens := token.New(options.TokenSecret)
	authService := service.NewAuthService(userRepo, tokens)
	validator := service.NewReferenceValidator(folderRepo, tagRepo)
	noteService := service.NewNoteService(noteRepo, validator)
	folderService := service.NewFolderService(folderRepo)
	tagService := service.NewTagService(tagRepo)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{AuthService: authService}
	noteHandler := &http.NoteHandler{NoteService: noteService}
	folderHandler := &http.FolderHandler{FolderService: folderService}
	tagHandler := &http.TagHandler{TagService: tagService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, noteHandler, folderHandler, tagHandler, tokens, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
