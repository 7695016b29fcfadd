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
	"stablearb/internal/store"
	"stablearb/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/stablearb.yaml", "path to config file")
	loop := flag.Bool("loop", false, "keep running, one pass per interval")
	force := flag.Bool("force", false, "bypass the save debounce")
	interval := flag.Duration("interval", 61*time.Second, "pass interval in loop mode")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting cron runner",
		"version", version.Version,
		"loop", *loop,
		"interval", *interval,
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

	if !cfg.Database.Configured() {
		logger.Warn("no database configured, passes will not persist")
	}

	var st store.Store = store.Disabled{}
	if cfg.Database.Configured() {
		pg, err := store.Connect(ctx, cfg.Database, logger)
		if err != nil {
			logger.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		st = pg
	}

	dispatcher := pipeline.Build(cfg, st, logger)
	params := pipeline.Params{Cron: true, Force: *force}

	runOnce := func() {
		resp := dispatcher.Run(ctx, params)
		logger.Info("pass finished", "saved", resp.Saved())
	}

	runOnce()
	if !*loop {
		return
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("cron runner stopped")
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
