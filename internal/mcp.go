package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/avelar/inkpad/internal/docservice"
	"github.com/avelar/inkpad/internal/mcpserver"
	"github.com/avelar/inkpad/internal/storage"
	"github.com/avelar/inkpad/internal/store"
	"github.com/avelar/inkpad/internal/templates"
)

// RunMCP serves the MCP tools over stdio. Logs go to stderr because stdout
// carries the protocol stream.
func RunMCP(_ context.Context, opts ...Option) error {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := o.config

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	db, err := store.Open(cfg.SQLite.Path, logger)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer db.Close()

	files, err := storage.NewFS(cfg.Attachments.Dir)
	if err != nil {
		return fmt.Errorf("init attachments: %w", err)
	}

	registry, err := templates.NewRegistry(cfg.Templates.Dir)
	if err != nil {
		logger.Warn("template load incomplete", slog.String("error", err.Error()))
	}

	svc := docservice.NewService(db, registry)
	srv := mcpserver.New(svc, files)

	logger.Info("MCP server starting on stdio")
	return srv.ServeStdio()
}
