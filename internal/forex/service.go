package forex

import (
	"context"
	"log/slog"
	"time"

	"stablearb/internal/model"
)

// LatestReader reads the most recent stored snapshots. Satisfied by the
// history store.
type LatestReader interface {
	Latest(ctx context.Context, n int) ([]model.HistoryRecord, error)
}

// Service is the cache-aware forex fetcher. A stored prices map younger
// than ttl answers without an API call; a stale one is the fallback when
// the API fails.
type Service struct {
	client  *Client
	store   LatestReader
	ttl     time.Duration
	symbols []string
	logger  *slog.Logger

	now func() time.Time
}

// NewService creates a Service fetching quotes for the given pairs.
func NewService(client *Client, store LatestReader, ttl time.Duration, pairs []model.Pair, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	symbols := make([]string, 0, len(pairs))
	for _, p := range pairs {
		symbols = append(symbols, p.ForexSymbol)
	}
	return &Service{
		client:  client,
		store:   store,
		ttl:     ttl,
		symbols: symbols,
		logger:  logger,
		now:     time.Now,
	}
}

// Snapshot returns the current prices map and its timestamp in epoch
// milliseconds. It never fails: total unavailability yields a nil map and
// timestamp zero.
func (s *Service) Snapshot(ctx context.Context) (map[string]float64, int64) {
	nowMs := s.now().UnixMilli()

	var cached map[string]float64
	var cachedTS int64

	recs, err := s.store.Latest(ctx, 1)
	if err != nil {
		// Treated as an empty cache; the pipeline continues without it.
		s.logger.Warn("forex cache read failed", "error", err)
	} else if len(recs) > 0 {
		cached = recs[0].Data.Prices
		cachedTS = recs[0].Data.Meta.FxTimestamp
		if cached != nil && cachedTS > 0 && nowMs-cachedTS < s.ttl.Milliseconds() {
			s.logger.Debug("forex cache hit",
				"age_ms", nowMs-cachedTS,
				"symbols", len(cached),
			)
			return cached, cachedTS
		}
	}

	prices, err := s.client.Prices(ctx, s.symbols)
	if err != nil {
		s.logger.Warn("forex fetch failed", "error", err)
		if cached != nil {
			s.logger.Info("serving stale forex prices", "age_ms", nowMs-cachedTS)
			return cached, cachedTS
		}
		return nil, 0
	}

	s.logger.Debug("forex fetched", "symbols", len(prices))
	return prices, nowMs
}
