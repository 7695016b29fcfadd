package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"stablearb/internal/forex"
	"stablearb/internal/gate"
	"stablearb/internal/history"
	"stablearb/internal/model"
	"stablearb/internal/snapshot"
)

// StatusCron is the acknowledgment status sent to automated callers.
const StatusCron = "Cron executed"

// Params carries the decoded query parameters of one invocation.
type Params struct {
	// Cron selects the automated minimal-response mode.
	Cron bool
	// Force bypasses the persistence debounce.
	Force bool
	// Since filters history to records at or after this instant.
	Since *time.Time
}

// Response is the outcome of one pipeline pass. For cron callers only
// Status and Save are populated; interactive callers additionally get the
// live snapshot and the reduced history.
type Response struct {
	Cron    bool
	Status  string
	Save    *gate.SaveResult
	Live    *model.FullSnapshot
	History []model.MinimalRecord
}

// Saved reports whether this pass persisted a snapshot.
func (r *Response) Saved() bool {
	return r.Save != nil && r.Save.Saved
}

// Dispatcher runs the snapshot pipeline.
type Dispatcher struct {
	forex     *forex.Service
	assembler *snapshot.Assembler
	gate      *gate.Gate
	reducer   *history.Reducer
	logger    *slog.Logger
}

// NewDispatcher wires the pipeline stages together.
func NewDispatcher(fx *forex.Service, asm *snapshot.Assembler, g *gate.Gate, red *history.Reducer, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		forex:     fx,
		assembler: asm,
		gate:      g,
		reducer:   red,
		logger:    logger,
	}
}

// Run executes one pass. It never fails: every upstream or store problem
// degrades to null sub-results inside the response.
func (d *Dispatcher) Run(ctx context.Context, p Params) *Response {
	start := time.Now()
	logger := d.logger.With("run_id", uuid.NewString())

	logger.Debug("pipeline pass started",
		"cron", p.Cron,
		"force", p.Force,
		"since", p.Since,
	)

	prices, fxTS := d.forex.Snapshot(ctx)
	snap := d.assembler.Assemble(ctx, prices, fxTS)

	resp := &Response{Cron: p.Cron, Live: snap}

	// Persist only when something actually resolved; an entirely empty
	// snapshot carries no information worth a row.
	if resolved := snap.ResolvedPairs(); resolved > 0 {
		res := d.gate.AttemptSave(ctx, snap, p.Force)
		resp.Save = &res
	} else {
		logger.Warn("no pairs resolved, skipping persistence")
	}

	if p.Cron {
		resp.Status = StatusCron
		resp.Live = nil
		logger.Info("pipeline pass complete",
			"mode", "cron",
			"saved", resp.Saved(),
			"duration", time.Since(start),
		)
		return resp
	}

	resp.History = d.reducer.Reduce(ctx, p.Since)
	logger.Info("pipeline pass complete",
		"mode", "interactive",
		"saved", resp.Saved(),
		"history", len(resp.History),
		"duration", time.Since(start),
	)
	return resp
}
