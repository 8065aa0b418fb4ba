package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/capabilities"
	"inkwell/internal/config"
	"inkwell/internal/handler"
	"inkwell/internal/middleware"
	"inkwell/internal/repository/sqlite"
	"inkwell/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.MaxLogFiles)
		if err != nil {
			log.Fatalf("Failed to setup log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
		"store_path", cfg.StorePath(),
	)

	// JWT verifier is optional; without JWKS_URL the auth gate is off and
	// the store is only reachable from localhost setups.
	var verifier auth.TokenVerifier
	if cfg.JWKSURL != "" {
		v, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
		defer v.Close()
		verifier = v
	} else {
		logger.Warn("JWKS_URL not set, authentication disabled")
	}

	// Open the local store
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	tables := sqlite.NewTableNames(cfg.TablePrefix)
	store, err := sqlite.Open(cfg.StorePath(), tables, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	logger.Info("store opened", "path", cfg.StorePath())

	// Create repositories
	docRepo := sqlite.NewDocumentRepository(store)
	workItemRepo := sqlite.NewWorkItemRepository(store)
	promptRepo := sqlite.NewPromptRepository(store)
	settingsRepo := sqlite.NewSettingsRepository(store)
	cacheRepo := sqlite.NewCacheRepository(store)

	// Initialize model catalog
	registry, err := capabilities.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize model registry: %v", err)
	}

	// Create services
	saver := service.NewCoalescer(config.SaveDebounce)
	docService := service.NewDocumentService(docRepo, saver, logger)
	workItemService := service.NewWorkItemService(workItemRepo, docRepo, logger)
	promptService := service.NewPromptService(promptRepo, logger)
	settingsService := service.NewSettingsService(settingsRepo, cacheRepo, logger)
	uploadService := service.NewUploadService(docService, logger)
	chatService := service.NewChatService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.DefaultModel, registry, logger)

	// Drop stale cache entries left over from the previous run
	if err := settingsService.PruneCache(context.Background()); err != nil {
		logger.Warn("cache prune failed", "error", err)
	}

	// Create handlers
	docHandler := handler.NewDocumentHandler(docService, logger)
	workItemHandler := handler.NewWorkItemHandler(workItemService, logger)
	promptHandler := handler.NewPromptHandler(promptService, logger)
	settingsHandler := handler.NewSettingsHandler(settingsService, logger)
	uploadHandler := handler.NewUploadHandler(uploadService, logger)
	chatHandler := handler.NewChatHandler(chatService, logger)
	modelsHandler := handler.NewModelsHandler(chatService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Document routes
	mux.HandleFunc("GET /api/documents", docHandler.ListDocuments)
	mux.HandleFunc("POST /api/documents", docHandler.CreateDocument)
	mux.HandleFunc("DELETE /api/documents", docHandler.ClearDocuments)
	mux.HandleFunc("GET /api/documents/{id}", docHandler.GetDocument)
	mux.HandleFunc("PATCH /api/documents/{id}", docHandler.UpdateDocument)
	mux.HandleFunc("DELETE /api/documents/{id}", docHandler.DeleteDocument)

	// Editing lifecycle routes
	mux.HandleFunc("POST /api/documents/{id}/open", docHandler.OpenDocument)
	mux.HandleFunc("PUT /api/documents/{id}/current-chapter/{chapterId}", docHandler.SwitchChapter)
	mux.HandleFunc("PUT /api/documents/{id}/content", docHandler.SaveContent)
	mux.HandleFunc("POST /api/documents/{id}/content/flush", docHandler.FlushContent)

	// Work item routes
	mux.HandleFunc("GET /api/documents/{id}/items/{type}", workItemHandler.ListByDocument)
	mux.HandleFunc("POST /api/documents/{id}/items/{type}", workItemHandler.Create)
	mux.HandleFunc("DELETE /api/documents/{id}/items", workItemHandler.DeleteByDocument)
	mux.HandleFunc("GET /api/items/{type}/{id}", workItemHandler.Get)
	mux.HandleFunc("PATCH /api/items/{type}/{id}", workItemHandler.Update)
	mux.HandleFunc("DELETE /api/items/{type}/{id}", workItemHandler.Delete)

	// Prompt routes
	mux.HandleFunc("GET /api/prompts", promptHandler.ListPrompts)
	mux.HandleFunc("POST /api/prompts", promptHandler.CreatePrompt)
	mux.HandleFunc("GET /api/prompts/{id}", promptHandler.GetPrompt)
	mux.HandleFunc("PATCH /api/prompts/{id}", promptHandler.UpdatePrompt)
	mux.HandleFunc("DELETE /api/prompts/{id}", promptHandler.DeletePrompt)

	// Settings routes
	mux.HandleFunc("GET /api/settings/{key}", settingsHandler.GetSetting)
	mux.HandleFunc("PUT /api/settings/{key}", settingsHandler.PutSetting)
	mux.HandleFunc("DELETE /api/settings/{key}", settingsHandler.DeleteSetting)

	// Cache routes
	mux.HandleFunc("GET /api/cache", settingsHandler.GetCacheEntry)
	mux.HandleFunc("PUT /api/cache", settingsHandler.PutCacheEntry)

	// Upload route
	mux.HandleFunc("POST /api/uploads", uploadHandler.Upload)

	// Chat routes
	mux.HandleFunc("POST /api/chat/completions", chatHandler.Complete)
	mux.HandleFunc("POST /api/chat/stream", chatHandler.Stream)
	mux.HandleFunc("GET /api/models", modelsHandler.ListModels)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → Routes
	h = middleware.Auth(verifier, logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "Last-Event-ID"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disabled to allow long-lived SSE streams
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown: flush pending debounced writes before closing the
	// store so no buffered edits are lost.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}

	saver.FlushAll()
}
