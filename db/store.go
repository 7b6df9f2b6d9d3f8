// Package db persists search history and a local event cache in Postgres.
// The cache doubles as a fallback catalog when the Gamma API is unreachable.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/sqlc-dev/pqtype"

	"github.com/OldEphraim/polymarket-market-finder/utils/clients"
)

type Store struct {
	db *sql.DB
}

func NewStore(connStr string) (*Store, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(2 * time.Minute)

	return &Store{db: db}, nil
}

// Open connects to Postgres and makes sure the schema exists. Entry points
// use this rather than NewStore so history and caching work against a fresh
// database.
func Open(ctx context.Context, connStr string) (*Store, error) {
	store, err := NewStore(connStr)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

// EnsureSchema creates the tables if they do not exist yet
func (s *Store) EnsureSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS search_history (
    id          BIGSERIAL PRIMARY KEY,
    query       TEXT NOT NULL,
    variants    JSONB,
    match_count INT NOT NULL DEFAULT 0,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS event_cache (
    slug       TEXT PRIMARY KEY,
    title      TEXT,
    payload    JSONB NOT NULL,
    position   INT NOT NULL DEFAULT 0,
    fetched_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// RecordSearch appends one search to the history
func (s *Store) RecordSearch(ctx context.Context, query string, variants []string, matchCount int) error {
	raw, _ := json.Marshal(variants)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO search_history (query, variants, match_count) VALUES ($1, $2, $3)`,
		query,
		pqtype.NullRawMessage{RawMessage: raw, Valid: true},
		matchCount,
	)
	if err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}
	return nil
}

// SearchRecord is one row of search history
type SearchRecord struct {
	Query      string
	Variants   []string
	MatchCount int
	CreatedAt  time.Time
}

// RecentSearches returns the newest history entries, newest first
func (s *Store) RecentSearches(ctx context.Context, limit int) ([]SearchRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT query, variants, match_count, created_at
		 FROM search_history
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query search history: %w", err)
	}
	defer rows.Close()

	var out []SearchRecord
	for rows.Next() {
		var rec SearchRecord
		var raw pqtype.NullRawMessage
		if err := rows.Scan(&rec.Query, &raw, &rec.MatchCount, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan search history row: %w", err)
		}
		if raw.Valid {
			_ = json.Unmarshal(raw.RawMessage, &rec.Variants)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// UpsertEvents refreshes the event cache with a bulk listing. Position
// records the source order of the listing so CachedEvents can reproduce it.
func (s *Store) UpsertEvents(ctx context.Context, events []clients.GammaEvent) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const q = `
INSERT INTO event_cache (slug, title, payload, position, fetched_at)
VALUES ($1, $2, $3, $4, NOW())
ON CONFLICT (slug) DO UPDATE
SET title = EXCLUDED.title,
    payload = EXCLUDED.payload,
    position = EXCLUDED.position,
    fetched_at = EXCLUDED.fetched_at`

	for i, event := range events {
		if event.Slug == "" {
			continue
		}
		payload, merr := json.Marshal(event)
		if merr != nil {
			continue
		}
		if _, err = tx.ExecContext(ctx, q, event.Slug, event.Title, payload, i); err != nil {
			return fmt.Errorf("failed to upsert event %s: %w", event.Slug, err)
		}
	}

	return tx.Commit()
}

// CachedEvents returns cached events no older than maxAge, in the source
// order of the listing they came from
func (s *Store) CachedEvents(ctx context.Context, maxAge time.Duration) ([]clients.GammaEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload
		 FROM event_cache
		 WHERE fetched_at > NOW() - ($1::text || ' seconds')::interval
		 ORDER BY position, slug`,
		fmt.Sprintf("%.0f", maxAge.Seconds()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query event cache: %w", err)
	}
	defer rows.Close()

	var out []clients.GammaEvent
	for rows.Next() {
		var payload json.RawMessage
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan cached event: %w", err)
		}
		var event clients.GammaEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			continue
		}
		out = append(out, event)
	}
	return out, rows.Err()
}
