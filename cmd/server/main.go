package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"stablearb/internal/config"
	"stablearb/internal/pipeline"
	"stablearb/internal/server"
	"stablearb/internal/store"
	"stablearb/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/stablearb.yaml", "path to config file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting stablearb server",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// A missing or unreachable database degrades to a non-persistent,
	// cache-less mode rather than failing startup.
	st := openStore(ctx, cfg, logger)
	if pg, ok := st.(*store.Postgres); ok {
		defer pg.Close()
	}

	dispatcher := pipeline.Build(cfg, st, logger)
	srv := server.New(dispatcher, st, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(cfg.Server.Port)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			logger.Error("http server error", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("server stopped")
}

// openStore connects to the configured database, falling back to the
// disabled store when no database is configured or the connection fails.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) store.Store {
	if !cfg.Database.Configured() {
		logger.Warn("no database configured, persistence disabled")
		return store.Disabled{}
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pg, err := store.Connect(connectCtx, cfg.Database, logger)
	if err != nil {
		logger.Error("database connection failed, persistence disabled", "error", err)
		return store.Disabled{}
	}

	logger.Info("database connected", "table", cfg.Database.Table)
	return pg
}
