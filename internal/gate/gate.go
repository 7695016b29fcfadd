package gate

import (
	"context"
	"log/slog"
	"time"

	"stablearb/internal/model"
	"stablearb/internal/store"
)

// ReasonDebounce marks a save skipped because the previous row is too
// recent.
const ReasonDebounce = "debounce"

// SaveResult reports the outcome of one save attempt. Err carries a store
// failure as text so the result serializes cleanly into response bodies.
type SaveResult struct {
	Saved   bool   `json:"saved"`
	Skipped bool   `json:"skipped,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Err     string `json:"error,omitempty"`
}

// Gate applies the write debounce in front of the history store.
type Gate struct {
	store    store.Store
	debounce time.Duration
	logger   *slog.Logger

	now func() time.Time
}

// New creates a Gate with the given debounce interval.
func New(st store.Store, debounce time.Duration, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{
		store:    st,
		debounce: debounce,
		logger:   logger,
		now:      time.Now,
	}
}

// AttemptSave inserts the snapshot unless the most recent stored row is
// younger than the debounce interval. force bypasses the debounce. Store
// failures are captured in the result and never propagate.
func (g *Gate) AttemptSave(ctx context.Context, snap *model.FullSnapshot, force bool) SaveResult {
	if !force {
		recs, err := g.store.Latest(ctx, 1)
		if err != nil {
			// A failed read means the debounce cannot be evaluated;
			// proceed with the write rather than lose the snapshot.
			g.logger.Warn("debounce read failed", "error", err)
		} else if len(recs) > 0 {
			age := g.now().Sub(recs[0].CreatedAt)
			if age < g.debounce {
				g.logger.Debug("save skipped",
					"reason", ReasonDebounce,
					"age", age,
				)
				return SaveResult{Skipped: true, Reason: ReasonDebounce}
			}
		}
	}

	if err := g.store.Insert(ctx, snap); err != nil {
		g.logger.Error("snapshot insert failed", "error", err)
		return SaveResult{Err: err.Error()}
	}

	g.logger.Info("snapshot saved",
		"resolved_pairs", snap.ResolvedPairs(),
		"forced", force,
	)
	return SaveResult{Saved: true}
}
