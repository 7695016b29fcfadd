package snapshot

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"stablearb/internal/binance"
	"stablearb/internal/model"
)

// BookSource fetches raw depth for one market symbol.
type BookSource interface {
	Depth(ctx context.Context, symbol string) (*binance.Depth, error)
}

// Assembler builds Full Snapshots for a fixed pair list.
type Assembler struct {
	books       BookSource
	pairs       []model.Pair
	concurrency int
	logger      *slog.Logger
}

// NewAssembler creates an Assembler. Concurrency bounds the number of
// simultaneous depth fetches.
func NewAssembler(books BookSource, pairs []model.Pair, concurrency int, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	if concurrency < 1 {
		concurrency = len(pairs)
	}
	return &Assembler{
		books:       books,
		pairs:       pairs,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Assemble fetches every pair's order book concurrently and merges the
// results with the forex map into one Full Snapshot. Failures are isolated
// per pair: a failed fetch yields an entry with empty book data.
func (a *Assembler) Assemble(ctx context.Context, prices map[string]float64, fxTimestamp int64) *model.FullSnapshot {
	results := make([]model.PairSnapshot, len(a.pairs))

	g := &errgroup.Group{}
	g.SetLimit(a.concurrency)
	for i, pair := range a.pairs {
		i, pair := i, pair
		g.Go(func() error {
			results[i] = a.assemblePair(ctx, pair, prices)
			return nil
		})
	}
	// Tasks never return errors; Wait is the fan-in barrier.
	_ = g.Wait()

	snap := &model.FullSnapshot{
		Meta:   model.Meta{FxTimestamp: fxTimestamp},
		Prices: prices,
		Pairs:  make(map[string]model.PairSnapshot, len(a.pairs)),
	}
	for i, pair := range a.pairs {
		snap.Pairs[pair.ID] = results[i]
	}
	return snap
}

// assemblePair builds one pair's snapshot from the forex map and a fresh
// depth fetch.
func (a *Assembler) assemblePair(ctx context.Context, pair model.Pair, prices map[string]float64) model.PairSnapshot {
	var fx *float64
	if v, ok := prices[pair.ForexSymbol]; ok {
		fx = &v
	}

	bids := []model.PriceLevel{}
	asks := []model.PriceLevel{}

	depth, err := a.books.Depth(ctx, pair.Market)
	if err != nil {
		a.logger.Warn("depth fetch failed",
			"pair", pair.ID,
			"market", pair.Market,
			"error", err,
		)
	} else if depth != nil {
		if pair.Inverted {
			// Swapped quote direction: raw asks become bids and vice
			// versa, with reciprocal prices.
			bids = MapLevels(depth.Asks, true)
			asks = MapLevels(depth.Bids, true)
		} else {
			bids = MapLevels(depth.Bids, false)
			asks = MapLevels(depth.Asks, false)
		}
	}

	return model.PairSnapshot{
		Forex:     fx,
		Bids:      bids,
		Asks:      asks,
		CryptoRef: ReferencePrice(bids, asks),
	}
}
