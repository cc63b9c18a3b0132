package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/flatfiles/internal/catalog"
	"github.com/JonMunkholm/flatfiles/internal/column"
	"github.com/JonMunkholm/flatfiles/internal/config"
	"github.com/JonMunkholm/flatfiles/internal/logging"
	"github.com/JonMunkholm/flatfiles/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"catalog", cfg.Columns.CatalogPath,
		"rate_limit", cfg.Server.RateLimit,
	)

	cat, err := catalog.Load(cfg.Columns.CatalogPath, catalog.Defaults{
		Culture:    cfg.Columns.DefaultCulture,
		NullValues: cfg.Columns.DefaultNullValues,
		Trim:       cfg.Columns.DefaultTrim,
		TrimChars:  cfg.Columns.DefaultTrimChars,
	})
	if err != nil {
		slog.Error("failed to load column catalog", logging.ErrorAttrs(err)...)
		slog.Error(column.FormatUserError(err))
		os.Exit(1)
	}

	slog.Info("columns registered", "count", cat.Len(), "types", len(column.Types()))
	for _, info := range cat.Describe() {
		slog.Debug("column", "name", info.Name, "kind", info.Kind, "null", info.Null)
	}

	server := web.NewServer(cat, cfg.Server)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
