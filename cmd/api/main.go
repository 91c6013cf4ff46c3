package main

import (
	"context"
	_ "embed"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pagemark/internal/config"
	"pagemark/internal/handlers"
	"pagemark/internal/highlight"
	"pagemark/internal/http"
	"pagemark/internal/indexer"
	"pagemark/internal/llm"
	"pagemark/internal/messaging"
	"pagemark/internal/page"
	"pagemark/internal/service"
	"pagemark/internal/storage"
	"pagemark/internal/vectorstore"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API manages saved text highlights: listing, searching, deleting,
// exporting, and defining selected text, plus restoring highlights into
// submitted pages.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Pagemark API
//   description: |
//     Management API for persistent text highlights and the hub that live
//     page contexts connect to.
//   version: 1.0.0
// schemes:
//   - http
// consumes:
//   - application/json
// produces:
//   - application/json

//go:embed index.html
var indexHTML string

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

	kvRepo := storage.NewKVRepo(db)
	store := highlight.NewStore(kvRepo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Semantic index (optional)
	var (
		searcher    service.SimilarSearcher
		vectorCheck handlers.CollectionChecker
		pipeline    *indexer.Pipeline
	)
	if cfg.SemanticSearchEnabled() {
		vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
		if err != nil {
			log.Fatalf("Failed to create Qdrant client: %v", err)
		}
		defer func() {
			_ = vectorStore.Close()
		}()

		// Ensure collection exists with correct vector size
		if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
			log.Fatalf("Failed to ensure Qdrant collection: %v", err)
		}
		slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

		embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)
		pipeline = indexer.NewPipeline(embedder, vectorStore, cfg.QdrantCollection)
		store.WithIndexer(pipeline)
		searcher = pipeline
		vectorCheck = vectorStore
	} else {
		slog.Info("Semantic search disabled", "reason", "QDRANT_URL not set")
	}

	// Create LLM client (external service layer)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)

	definitions := service.NewDefinitionService(llmClient, store, service.DefinitionConfig{
		MaxTokens:      cfg.DefinitionMaxTokens,
		Temperature:    0.3,
		Timeout:        cfg.DefinitionTimeout,
		FallbackAPIKey: cfg.LLMAPIKey,
	})

	hub := messaging.NewHub(definitions, cfg.DefinitionTimeout)
	highlights := service.NewHighlightService(store, hub, searcher)
	pages := service.NewPageService(store, page.Load)

	// Create router with dependencies
	deps := &http.Deps{
		Highlights:     highlights,
		Definitions:    definitions,
		Pages:          pages,
		Tabs:           hub,
		Hub:            hub,
		Store:          kvRepo,
		VectorStore:    vectorCheck,
		CollectionName: cfg.QdrantCollection,
		IndexHTML:      indexHTML,
	}
	router := http.NewRouter(deps)

	// Back-fill the semantic index in background after router is ready
	if pipeline != nil {
		go func() {
			records, err := store.GetAll(ctx)
			if err != nil {
				slog.Error("Failed to read highlights for indexing", "error", err)
				return
			}
			slog.Info("Starting background indexing of highlights", "count", len(records))
			n, err := pipeline.IndexAll(ctx, records)
			if err != nil {
				slog.Error("Indexing completed with errors", "indexed", n, "error", err)
			} else {
				slog.Info("Indexing completed successfully", "indexed", n)
			}
		}()
	}

	// Start API server
	addr := ":" + cfg.APIPort
	server := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		slog.Info("Shutting down API server")
		hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		log.Fatalf("API server failed to start: %v", err)
	}
}
