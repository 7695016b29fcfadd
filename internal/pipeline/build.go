package pipeline

import (
	"log/slog"

	"stablearb/internal/binance"
	"stablearb/internal/config"
	"stablearb/internal/forex"
	"stablearb/internal/gate"
	"stablearb/internal/history"
	"stablearb/internal/snapshot"
	"stablearb/internal/store"
)

// Build constructs a Dispatcher from configuration and a connected (or
// disabled) store. Shared by the server and the loop runner.
func Build(cfg *config.Config, st store.Store, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	pairs := cfg.ModelPairs()

	fxClient := forex.NewClient(
		cfg.Forex.URL,
		cfg.Forex.APIKey,
		forex.WithTimeout(cfg.Forex.Timeout),
		forex.WithLogger(logger),
	)
	fxService := forex.NewService(fxClient, st, cfg.Pipeline.ForexCacheTTL, pairs, logger)

	books := binance.NewClient(
		cfg.Crypto.URL,
		binance.WithProxy(cfg.Crypto.ProxyURL),
		binance.WithUserAgent(cfg.Crypto.UserAgent),
		binance.WithDepth(cfg.Crypto.Depth),
		binance.WithTimeout(cfg.Crypto.Timeout),
		binance.WithLogger(logger),
	)
	assembler := snapshot.NewAssembler(books, pairs, cfg.Pipeline.PairConcurrency, logger)

	g := gate.New(st, cfg.Pipeline.SaveDebounce, logger)

	reducer := history.New(st, pairs, history.Config{
		Target:   cfg.Pipeline.HistoryTarget,
		PageSize: cfg.Pipeline.HistoryPageSize,
		MaxPages: cfg.Pipeline.HistoryMaxPages,
	}, logger)

	return NewDispatcher(fxService, assembler, g, reducer, logger)
}
