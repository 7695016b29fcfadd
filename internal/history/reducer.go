package history

import (
	"context"
	"log/slog"
	"time"

	"stablearb/internal/model"
	"stablearb/internal/store"
)

// Config holds reducer tunables.
type Config struct {
	// Target bounds the number of records returned.
	Target int
	// PageSize is the page size for unfiltered scans.
	PageSize int
	// MaxPages caps the unfiltered scan as a safety bound.
	MaxPages int
}

// Reducer turns a stored history range into minimal records.
type Reducer struct {
	store  store.Store
	pairs  []model.Pair
	cfg    Config
	logger *slog.Logger
}

// New creates a Reducer projecting onto the given pair list.
func New(st store.Store, pairs []model.Pair, cfg Config, logger *slog.Logger) *Reducer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reducer{
		store:  st,
		pairs:  pairs,
		cfg:    cfg,
		logger: logger,
	}
}

// Reduce fetches the requested range, downsamples it to the target
// cardinality, and projects each record to its minimal form. It is
// best-effort: store failures yield an empty (non-nil) result.
func (r *Reducer) Reduce(ctx context.Context, since *time.Time) []model.MinimalRecord {
	var (
		recs []model.HistoryRecord
		err  error
	)
	if since != nil {
		recs, err = r.store.SelectSince(ctx, *since)
		if err != nil {
			r.logger.Warn("history range read failed", "error", err)
			return []model.MinimalRecord{}
		}
	} else {
		recs = r.fetchPaged(ctx)
	}

	recs = Downsample(recs, r.cfg.Target)

	out := make([]model.MinimalRecord, 0, len(recs))
	for _, rec := range recs {
		out = append(out, r.project(rec))
	}
	return out
}

// fetchPaged scans the table newest-first until an empty page, a short
// page, or the page ceiling.
func (r *Reducer) fetchPaged(ctx context.Context) []model.HistoryRecord {
	var all []model.HistoryRecord
	for page := 0; page < r.cfg.MaxPages; page++ {
		recs, err := r.store.SelectPage(ctx, page*r.cfg.PageSize, r.cfg.PageSize)
		if err != nil {
			r.logger.Warn("history page read failed", "page", page, "error", err)
			break
		}
		all = append(all, recs...)
		if len(recs) < r.cfg.PageSize {
			break
		}
	}
	return all
}

// Stride returns the sampling step for reducing n records to at most
// target: ceil(n/target), minimum 1.
func Stride(n, target int) int {
	if target < 1 || n <= target {
		return 1
	}
	return (n + target - 1) / target
}

// Downsample keeps every Stride(n, target)-th record, preserving order.
func Downsample(recs []model.HistoryRecord, target int) []model.HistoryRecord {
	step := Stride(len(recs), target)
	if step == 1 {
		return recs
	}
	out := make([]model.HistoryRecord, 0, (len(recs)+step-1)/step)
	for i := 0; i < len(recs); i += step {
		out = append(out, recs[i])
	}
	return out
}

// project reduces one stored record to its served fields. Every configured
// pair gets an entry; values the source lacks are explicit nulls.
func (r *Reducer) project(rec model.HistoryRecord) model.MinimalRecord {
	min := model.MinimalRecord{
		ID:        rec.ID,
		CreatedAt: rec.CreatedAt,
		Pairs:     make(map[string]model.MinimalPair, len(r.pairs)),
	}
	if ts := rec.Data.Meta.FxTimestamp; ts != 0 {
		min.FxTimestamp = &ts
	}

	for _, pair := range r.pairs {
		var mp model.MinimalPair
		if ps, ok := rec.Data.Pairs[pair.ID]; ok {
			mp.Forex = ps.Forex
			mp.CryptoRef = ps.CryptoRef
			if len(ps.Bids) > 0 {
				v := ps.Bids[0].Volume
				mp.Bid1Vol = &v
			}
			if len(ps.Asks) > 0 {
				v := ps.Asks[0].Volume
				mp.Ask1Vol = &v
			}
		}
		min.Pairs[pair.ID] = mp
	}
	return min
}
