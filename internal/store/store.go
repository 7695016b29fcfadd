package store

import (
	"context"
	"errors"
	"time"

	"stablearb/internal/model"
)

// ErrDisabled is returned by writes when no store is configured.
var ErrDisabled = errors.New("store disabled: no database configured")

// Store is the append-only history table. Implementations never mutate or
// delete existing rows.
type Store interface {
	// Insert appends one snapshot row; created_at is assigned by the store.
	Insert(ctx context.Context, snap *model.FullSnapshot) error

	// Latest returns up to n most recent rows, created_at descending.
	Latest(ctx context.Context, n int) ([]model.HistoryRecord, error)

	// SelectSince returns every row with created_at >= since, created_at
	// descending, unbounded.
	SelectSince(ctx context.Context, since time.Time) ([]model.HistoryRecord, error)

	// SelectPage returns one page of rows ordered created_at descending.
	SelectPage(ctx context.Context, offset, size int) ([]model.HistoryRecord, error)
}

// Disabled is the no-op Store used when database credentials are missing.
// Reads behave like an empty table so the pipeline degrades to a
// cache-less, non-persistent mode; writes fail with ErrDisabled.
type Disabled struct{}

func (Disabled) Insert(ctx context.Context, snap *model.FullSnapshot) error {
	return ErrDisabled
}

func (Disabled) Latest(ctx context.Context, n int) ([]model.HistoryRecord, error) {
	return nil, nil
}

func (Disabled) SelectSince(ctx context.Context, since time.Time) ([]model.HistoryRecord, error) {
	return nil, nil
}

func (Disabled) SelectPage(ctx context.Context, offset, size int) ([]model.HistoryRecord, error) {
	return nil, nil
}
