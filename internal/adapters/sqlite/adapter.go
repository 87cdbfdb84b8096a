// Package sqlite provides a SQLite-backed implementation of the history
// store port: one row per known user holding the last generated vibe as a
// JSON blob plus bookkeeping counters.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // driver registration

	"github.com/vibecheck-labs/vibecheck/internal/core/domain"
	"github.com/vibecheck-labs/vibecheck/internal/core/ports"
)

// Adapter implements the history store port for SQLite.
type Adapter struct {
	db *sql.DB
}

var _ ports.HistoryStore = (*Adapter)(nil)

// NewAdapter creates a connection and runs the schema migration.
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}
	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully.
func (a *Adapter) Close() error {
	return a.db.Close()
}

// SyncUser upserts the user row at login time, keeping the platform id
// current without touching the stored vibe.
func (a *Adapter) SyncUser(ctx context.Context, email, spotifyID string) error {
	query := `
		INSERT INTO user_stats (email, spotify_id) VALUES (?, ?)
		ON CONFLICT(email) DO UPDATE SET
			spotify_id = excluded.spotify_id,
			updated_at = CURRENT_TIMESTAMP;
	`
	if _, err := a.db.ExecContext(ctx, query, email, spotifyID); err != nil {
		return fmt.Errorf("failed to sync user: %w", err)
	}
	return nil
}

// LastVibe returns the stored result for the identity, or
// domain.ErrNotFound when the user has no stored vibe.
func (a *Adapter) LastVibe(ctx context.Context, email string) (domain.VibeResult, error) {
	row := a.db.QueryRowContext(ctx,
		"SELECT last_vibe_json FROM user_stats WHERE email = ?", email)

	var payload sql.NullString
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return domain.VibeResult{}, domain.ErrNotFound
		}
		return domain.VibeResult{}, fmt.Errorf("failed to load last vibe: %w", err)
	}
	if !payload.Valid || payload.String == "" {
		return domain.VibeResult{}, domain.ErrNotFound
	}

	var result domain.VibeResult
	if err := json.Unmarshal([]byte(payload.String), &result); err != nil {
		return domain.VibeResult{}, fmt.Errorf("failed to decode stored vibe: %w", err)
	}
	return result, nil
}

// SaveVibe stores the full result JSON and bumps the generation counter in
// one transaction.
func (a *Adapter) SaveVibe(ctx context.Context, email string, result domain.VibeResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode vibe: %w", err)
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO user_stats (email, last_vibe_json, search_count)
		VALUES (?, ?, 1)
		ON CONFLICT(email) DO UPDATE SET
			last_vibe_json = excluded.last_vibe_json,
			search_count   = search_count + 1,
			updated_at     = CURRENT_TIMESTAMP;
	`
	if _, err := tx.ExecContext(ctx, query, email, string(payload)); err != nil {
		return fmt.Errorf("failed to save vibe: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}
	return nil
}

// SearchCount reports how many generations the user has run.
func (a *Adapter) SearchCount(ctx context.Context, email string) (int, error) {
	row := a.db.QueryRowContext(ctx,
		"SELECT search_count FROM user_stats WHERE email = ?", email)

	var count int
	if err := row.Scan(&count); err != nil {
		if err == sql.ErrNoRows {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("failed to load search count: %w", err)
	}
	return count, nil
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS user_stats (
		email          TEXT PRIMARY KEY,
		spotify_id     TEXT,
		search_count   INTEGER NOT NULL DEFAULT 0,
		last_vibe_json TEXT,
		created_at     DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at     DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}
	return nil
}
