package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"stablearb/internal/config"
	"stablearb/internal/store"
)

// checkdb prints the most recent history rows, a quick sanity check that
// snapshots are landing in the table.
func main() {
	configPath := flag.String("config", "configs/stablearb.yaml", "path to config file")
	n := flag.Int("n", 5, "number of rows to print")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	if !cfg.Database.Configured() {
		fmt.Fprintln(os.Stderr, "no database configured")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pg, err := store.Connect(ctx, cfg.Database, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect:", err)
		os.Exit(1)
	}
	defer pg.Close()

	recs, err := pg.Latest(ctx, *n)
	if err != nil {
		fmt.Fprintln(os.Stderr, "select:", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "%d row(s)\n", len(recs))
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, rec := range recs {
		if err := enc.Encode(rec); err != nil {
			fmt.Fprintln(os.Stderr, "encode:", err)
			os.Exit(1)
		}
	}
}
