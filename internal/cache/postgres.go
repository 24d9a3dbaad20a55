package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createCacheTable = `
CREATE TABLE IF NOT EXISTS api_cache (
	cache_key  TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

const upsertCacheEntry = `
INSERT INTO api_cache (cache_key, payload, expires_at, updated_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (cache_key) DO UPDATE
SET payload = EXCLUDED.payload,
    expires_at = EXCLUDED.expires_at,
    updated_at = EXCLUDED.updated_at`

// Postgres is a pgxpool-backed store using a single api_cache table.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects, verifies connectivity, and bootstraps the schema.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	cfg.MaxConns = 5
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, createCacheTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create api_cache table: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Close releases the pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// Get implements Store.
func (p *Postgres) Get(ctx context.Context, key string) (Entry, bool, error) {
	var payload string
	var e Entry
	err := p.pool.QueryRow(ctx,
		"SELECT payload, expires_at, updated_at FROM api_cache WHERE cache_key = $1", key,
	).Scan(&payload, &e.ExpiresAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("query cache entry: %w", err)
	}
	e.Payload = []byte(payload)
	return e, true, nil
}

// Set implements Store. Expired rows are silently overwritten, never purged.
func (p *Postgres) Set(ctx context.Context, key string, e Entry) error {
	_, err := p.pool.Exec(ctx, upsertCacheEntry, key, string(e.Payload), e.ExpiresAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert cache entry: %w", err)
	}
	return nil
}
