// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/hollis/daybook/internal/aggregator"
	"github.com/hollis/daybook/internal/api"
	"github.com/hollis/daybook/internal/index"
	"github.com/hollis/daybook/internal/journal"
	"github.com/hollis/daybook/internal/mcpserver"
	"github.com/hollis/daybook/internal/sources"
	"github.com/hollis/daybook/internal/sse"
	"github.com/hollis/daybook/internal/storage"
)

// buildSources assembles the enabled sources from configuration. API
// sources share a single HTTP client; file sources read local exports.
func buildSources(cfg *Config) []sources.Source {
	var srcs []sources.Source
	client := sources.NewClient()

	if cfg.Sources.News.Enabled() {
		srcs = append(srcs, sources.NewNewsSource(client, cfg.Sources.News))
	}
	if cfg.Sources.Weather.Enabled() {
		srcs = append(srcs, sources.NewWeatherSource(client, cfg.Sources.Weather))
	}
	if cfg.Sources.BoxOffice.Enabled() {
		srcs = append(srcs, sources.NewBoxOfficeSource(client, cfg.Sources.BoxOffice))
	}
	if cfg.Sources.Chart.Enabled() {
		srcs = append(srcs, sources.NewChartSource(client, cfg.Sources.Chart))
	}
	if cfg.Sources.Netflix.Enabled() {
		srcs = append(srcs, sources.NewNetflixSource(cfg.Sources.Netflix))
	}
	if cfg.Sources.Music.Enabled() {
		srcs = append(srcs, sources.NewMusicSource(cfg.Sources.Music))
	}
	if cfg.Sources.Fandango.Enabled() {
		srcs = append(srcs, sources.NewFandangoSource(cfg.Sources.Fandango))
	}
	if cfg.Sources.Ticketmaster.Enabled() {
		srcs = append(srcs, sources.NewTicketmasterSource(cfg.Sources.Ticketmaster))
	}
	if cfg.Sources.Yelp.Enabled() {
		srcs = append(srcs, sources.NewYelpSource(cfg.Sources.Yelp))
	}
	return srcs
}

// Run performs a single collection pass: every enabled source is
// collected, rendered and merge-appended into the journal tree.
func Run(ctx context.Context, opts ...Option) error {
	app, err := buildApp(opts)
	if err != nil {
		return err
	}
	cfg := app.config
	logger := newLogger(cfg, os.Stdout)

	if err := os.MkdirAll(cfg.Journal.Path, 0o755); err != nil {
		return fmt.Errorf("create journal dir: %w", err)
	}

	srcs := buildSources(cfg)
	if len(srcs) == 0 {
		logger.Warn("no sources enabled, nothing to collect")
		return nil
	}
	logger.Info("Collection starting",
		slog.String("journal_path", cfg.Journal.Path),
		slog.Int("sources", len(srcs)))

	engine := journal.NewEngine(logger)
	agg := aggregator.New(cfg.Journal.Path, engine, srcs, logger)

	sum, err := agg.Run(ctx)
	if err != nil {
		return fmt.Errorf("collection pass: %w", err)
	}
	if sum.Failed > 0 || sum.Errored > 0 {
		return fmt.Errorf("collection pass finished with %d failed sections and %d source errors", sum.Failed, sum.Errored)
	}
	return nil
}

// Serve starts the read-only HTTP API with the SQLite index, the file
// watcher and the SSE broker.
func Serve(ctx context.Context, opts ...Option) error {
	app, err := buildApp(opts)
	if err != nil {
		return err
	}
	cfg := app.config
	logger := newLogger(cfg, os.Stdout)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("journal_path", cfg.Journal.Path),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Ensure journal directory exists.
	if err := os.MkdirAll(cfg.Journal.Path, 0o755); err != nil {
		return fmt.Errorf("create journal dir: %w", err)
	}

	// Initialize storage.
	store, err := storage.NewFS(cfg.Journal.Path)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	// Initialize SQLite index.
	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	defer db.Close()

	// Run initial sync.
	if err := index.Sync(db, store, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	// SSE broker.
	broker := sse.NewBroker(2 * time.Second)

	// Build API service and router.
	svc := api.NewService(store, db)
	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

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

	// Start file watcher with SSE callback. Watch returns nil on a clean
	// context cancel, so any error here means the watcher could not run
	// and the index would silently go stale; let errgroup surface it.
	g.Go(func() error {
		if err := index.Watch(gCtx, db, store, cfg.Journal.Path, logger, func(kind, path string) {
			broker.PublishDayEvent(kind, path, dayFromFilename(path))
		}); err != nil {
			return fmt.Errorf("file watcher: %w", err)
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

// ServeMCP exposes the journal to MCP clients over stdio.
func ServeMCP(_ context.Context, opts ...Option) error {
	app, err := buildApp(opts)
	if err != nil {
		return err
	}
	cfg := app.config
	logger := newLogger(cfg, os.Stderr)

	store, err := storage.NewFS(cfg.Journal.Path)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	defer db.Close()

	if err := index.Sync(db, store, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	logger.Info("MCP server starting", slog.String("journal_path", cfg.Journal.Path))
	return mcpserver.New(store, db).ServeStdio()
}

// dayFromFilename extracts the day from a YYYY-MM-DD.md basename, or
// returns "" for files outside the naming scheme.
func dayFromFilename(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), ".md")
	if _, err := time.Parse("2006-01-02", name); err != nil {
		return ""
	}
	return name
}
