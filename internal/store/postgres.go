package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stablearb/internal/config"
	"stablearb/internal/model"
)

// Postgres is the pgx-backed Store.
type Postgres struct {
	pool   *pgxpool.Pool
	table  string
	logger *slog.Logger
}

// Connect creates a connection pool and verifies it with a ping.
func Connect(ctx context.Context, cfg config.DBConfig, logger *slog.Logger) (*Postgres, error) {
	if logger == nil {
		logger = slog.Default()
	}

	poolCfg, err := pgxpool.ParseConfig(BuildConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	poolCfg.MinConns = int32(cfg.MinConns)
	poolCfg.MaxConns = int32(cfg.MaxConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Postgres{
		pool:   pool,
		table:  cfg.Table,
		logger: logger,
	}, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// Ping verifies the connection is healthy.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Insert appends one snapshot row.
func (p *Postgres) Insert(ctx context.Context, snap *model.FullSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	sql := fmt.Sprintf(`INSERT INTO %s (data) VALUES ($1)`, p.table)
	if _, err := p.pool.Exec(ctx, sql, data); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// Latest returns up to n most recent rows.
func (p *Postgres) Latest(ctx context.Context, n int) ([]model.HistoryRecord, error) {
	sql := fmt.Sprintf(
		`SELECT id, created_at, data FROM %s ORDER BY created_at DESC LIMIT $1`,
		p.table,
	)
	rows, err := p.pool.Query(ctx, sql, n)
	if err != nil {
		return nil, fmt.Errorf("select latest: %w", err)
	}
	return scanRecords(rows)
}

// SelectSince returns every row at or after the given instant, newest first.
func (p *Postgres) SelectSince(ctx context.Context, since time.Time) ([]model.HistoryRecord, error) {
	sql := fmt.Sprintf(
		`SELECT id, created_at, data FROM %s WHERE created_at >= $1 ORDER BY created_at DESC`,
		p.table,
	)
	rows, err := p.pool.Query(ctx, sql, since)
	if err != nil {
		return nil, fmt.Errorf("select since: %w", err)
	}
	return scanRecords(rows)
}

// SelectPage returns one page of rows, newest first.
func (p *Postgres) SelectPage(ctx context.Context, offset, size int) ([]model.HistoryRecord, error) {
	sql := fmt.Sprintf(
		`SELECT id, created_at, data FROM %s ORDER BY created_at DESC OFFSET $1 LIMIT $2`,
		p.table,
	)
	rows, err := p.pool.Query(ctx, sql, offset, size)
	if err != nil {
		return nil, fmt.Errorf("select page: %w", err)
	}
	return scanRecords(rows)
}

// scanRecords drains a result set into history records, decoding the jsonb
// payload of each row.
func scanRecords(rows pgx.Rows) ([]model.HistoryRecord, error) {
	defer rows.Close()

	var recs []model.HistoryRecord
	for rows.Next() {
		var (
			rec  model.HistoryRecord
			data []byte
		)
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &data); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if err := json.Unmarshal(data, &rec.Data); err != nil {
			return nil, fmt.Errorf("decode row %d: %w", rec.ID, err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return recs, nil
}
