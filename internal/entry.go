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
	"golang.org/x/sync/errgroup"

	"github.com/avelar/inkpad/internal/api"
	"github.com/avelar/inkpad/internal/docservice"
	"github.com/avelar/inkpad/internal/sse"
	"github.com/avelar/inkpad/internal/storage"
	"github.com/avelar/inkpad/internal/store"
	"github.com/avelar/inkpad/internal/templates"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := o.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("templates_dir", cfg.Templates.Dir),
		slog.String("attachments_dir", cfg.Attachments.Dir),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Open the workspace database.
	db, err := store.Open(cfg.SQLite.Path, logger)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer db.Close()

	// Attachment file store.
	files, err := storage.NewFS(cfg.Attachments.Dir)
	if err != nil {
		return fmt.Errorf("init attachments: %w", err)
	}

	// Template registry.
	registry, err := templates.NewRegistry(cfg.Templates.Dir)
	if err != nil {
		logger.Warn("template load incomplete", slog.String("error", err.Error()))
	}

	// SSE broker.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	// Build document service and router.
	svc := docservice.NewService(db, registry)
	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker, files)
	attachments := api.NewAttachmentHandler(files)

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

	// Attachment files served at the top level so image block URLs work
	// without the /api prefix.
	r.Get("/attachments/{filename}", attachments.ServeFile)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Watch the template directory; broadcast reloads to clients.
	g.Go(func() error {
		return registry.Watch(gCtx, logger, func() {
			broker.Publish(sse.Event{Type: "templates.reloaded", Data: map[string]string{}})
		})
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
