// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/rosenlund/cutline/internal/api"
	"github.com/rosenlund/cutline/internal/editor"
	"github.com/rosenlund/cutline/internal/export"
	"github.com/rosenlund/cutline/internal/library"
	"github.com/rosenlund/cutline/internal/mcpserver"
	"github.com/rosenlund/cutline/internal/medialib"
	"github.com/rosenlund/cutline/internal/models"
	"github.com/rosenlund/cutline/internal/probe"
	"github.com/rosenlund/cutline/internal/sse"
	"github.com/rosenlund/cutline/internal/storage"
	"github.com/rosenlund/cutline/internal/timeline"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger. In MCP mode stdout carries the
	// protocol, so logs go to stderr.
	logOut := io.Writer(os.Stdout)
	if app.mcpMode {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("media_path", cfg.Media.Path),
		slog.String("sqlite_path", cfg.Media.SQLitePath),
		slog.String("output_path", cfg.Media.OutputPath),
		slog.Int("tracks", len(cfg.Timeline.Tracks)),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Ensure media and output directories exist.
	if err := os.MkdirAll(cfg.Media.Path, 0o755); err != nil {
		return fmt.Errorf("create media dir: %w", err)
	}
	if err := os.MkdirAll(cfg.Media.OutputPath, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	// Initialize storage providers.
	store, err := storage.NewFS(cfg.Media.Path)
	if err != nil {
		return fmt.Errorf("init media storage: %w", err)
	}
	outputs, err := storage.NewFS(cfg.Media.OutputPath)
	if err != nil {
		return fmt.Errorf("init output storage: %w", err)
	}

	// Initialize SQLite media catalog.
	catalog, err := library.Open(cfg.Media.SQLitePath)
	if err != nil {
		return fmt.Errorf("init media catalog: %w", err)
	}
	defer catalog.Close()

	// SSE broker.
	broker := sse.NewBroker(250 * time.Millisecond)
	defer broker.Close()

	// Media library with ffprobe resolution; library changes fan out over SSE.
	prober := probe.NewFFProbe(cfg.Media.FFProbeBin)
	lib := medialib.New(store, catalog, prober, logger, func(kind string, item models.MediaItem) {
		broker.PublishEditorEvent(kind, item)
	})

	// Reconcile the catalog with files already on disk.
	if err := lib.Sync(); err != nil {
		logger.Warn("initial media sync failed", slog.String("error", err.Error()))
	}

	// Timeline model and editor session.
	model := timeline.NewModel(cfg.Timeline.ModelTracks(), cfg.Media.DefaultClipSeconds)
	geom := timeline.Geometry{
		PixelsPerSecond: cfg.Timeline.PixelsPerSecond,
		GutterWidth:     cfg.Timeline.GutterWidth,
	}
	tick := time.Duration(cfg.Timeline.TickMillis) * time.Millisecond
	session := editor.NewSession(model, geom, lib, tick, logger, broker.PublishEditorEvent)
	defer session.Shutdown()

	// Export service writes job manifests to the outputs directory.
	exportSvc := export.NewService(&export.ManifestEncoder{Outputs: outputs}, logger, broker.PublishEditorEvent)

	// MCP stdio mode bypasses the HTTP stack entirely.
	if app.mcpMode {
		logger.Info("Starting MCP server on stdio")
		return mcpserver.New(session, lib).ServeStdio()
	}

	// Build API router.
	apiRouter := api.NewRouter(session, lib, exportSvc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Watch the media directory so files dropped into it are imported.
	g.Go(func() error {
		if err := medialib.Watch(gCtx, lib, cfg.Media.Path, logger); err != nil {
			logger.Warn("media watcher stopped", slog.String("error", err.Error()))
		}
		return nil
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")
		session.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
