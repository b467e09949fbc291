package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"github.com/MinesMe/ainotea/internal/auth"
	"github.com/MinesMe/ainotea/internal/config"
	"github.com/MinesMe/ainotea/internal/handlers"
	"github.com/MinesMe/ainotea/internal/http"
	"github.com/MinesMe/ainotea/internal/index"
	"github.com/MinesMe/ainotea/internal/llm"
	"github.com/MinesMe/ainotea/internal/notes"
	"github.com/MinesMe/ainotea/internal/storage"
	"github.com/MinesMe/ainotea/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	userRepo := storage.NewUserRepo(db)
	folderRepo := storage.NewFolderRepo(db)
	noteRepo := storage.NewNoteRepo(db)

	// Initialize Qdrant vector store
	ctx := context.Background()
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	// Ensure collection exists with correct vector size
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

	// Validate embedding client vector size (fail-fast)
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
	testEmbeddings, err := embedder.EmbedTexts(ctx, []string{"test"})
	if err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	if len(testEmbeddings) == 0 || len(testEmbeddings[0]) != cfg.QdrantVectorSize {
		log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.QdrantVectorSize, len(testEmbeddings[0]))
	}
	slog.Info("Embedding client validated", "vector_size", cfg.QdrantVectorSize)

	// Create indexing service and query resolver
	indexService := index.NewService(embedder, vectorStore, cfg.QdrantCollection, index.NewChunker(cfg.MinChunkLen))
	resolver := index.NewResolver(embedder, vectorStore, cfg.QdrantCollection, cfg.SearchTopN, cfg.SearchMaxDistance)
	slog.Info("Index services initialized", "min_chunk_len", cfg.MinChunkLen, "top_n", cfg.SearchTopN)

	// Create notes service
	noteService := notes.NewService(noteRepo, indexService, resolver)

	// Create token issuer for device registration
	issuer := auth.NewTokenIssuer(cfg.AuthSecret, cfg.AuthTokenTTL)

	// Create router with dependencies
	deps := &http.Deps{
		Auth:    handlers.NewAuthHandler(userRepo, issuer),
		Notes:   handlers.NewNotesHandler(noteService),
		Folders: handlers.NewFoldersHandler(folderRepo),
		Search:  handlers.NewSearchHandler(noteService),
		Health:  handlers.NewHealthHandler(db, vectorStore, cfg.QdrantCollection),
		Issuer:  issuer,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
