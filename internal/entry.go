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
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/starford/raidho/internal/api"
	"github.com/starford/raidho/internal/catalog"
	"github.com/starford/raidho/internal/drivespace"
	"github.com/starford/raidho/internal/indexer"
	"github.com/starford/raidho/internal/mcpserver"
)

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, logger, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	db, engine, runner, err := app.buildCore(logger)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := api.NewService(engine, db, runner, cfg.Query.PageSize)
	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check and metrics endpoints (unauthenticated).
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
	r.Handle("/metrics", promhttp.Handler())

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server.
	g.Go(func() error {
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

		// Let queued indexing runs finish before the DB closes.
		runner.Wait()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunScan performs one synchronous scan-and-save run and exits.
func RunScan(ctx context.Context, opts ...Option) error {
	app, logger, err := newApplication(opts)
	if err != nil {
		return err
	}
	if app.scan == nil {
		return fmt.Errorf("scan request is required")
	}

	db, _, runner, err := app.buildCore(logger)
	if err != nil {
		return err
	}
	defer db.Close()

	res := runner.RunSync(*app.scan)
	return res.Err
}

// RunMCP serves the catalog tools over MCP stdio transport.
func RunMCP(ctx context.Context, opts ...Option) error {
	app, logger, err := newApplication(opts)
	if err != nil {
		return err
	}

	db, engine, runner, err := app.buildCore(logger)
	if err != nil {
		return err
	}
	defer db.Close()

	srv := mcpserver.New(engine, runner)
	logger.Info("MCP server starting on stdio")
	return srv.ServeStdio()
}

// newApplication applies options and installs the JSON logger.
func newApplication(opts []Option) (*application, *slog.Logger, error) {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, nil, fmt.Errorf("config is required")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: app.config.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", app.config.App.HTTP.Address()),
		slog.String("sqlite_path", app.config.SQLite.Path),
		slog.Int64("index_workers", app.config.Index.Workers),
		slog.Uint64("query_cache_limit", app.config.Query.CacheLimit),
		slog.String("log_level", app.config.App.LogLevel.String()))

	return app, logger, nil
}

// buildCore opens the catalog store and constructs the query engine and
// indexing runner over it. A failed schema application is fatal here:
// the process must not run against an inconsistent store.
func (a *application) buildCore(logger *slog.Logger) (*catalog.DB, *catalog.Engine, *indexer.Runner, error) {
	db, err := catalog.Open(a.config.SQLite.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init catalog: %w", err)
	}
	engine := catalog.NewEngine(db, a.config.Query.CacheLimit)
	runner := indexer.NewRunner(db, engine, drivespace.Available, logger, a.config.Index.Workers)
	return db, engine, runner, nil
}
