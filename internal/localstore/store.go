// Package localstore persists the application snapshot to on-device storage:
// a SQLite database holding one JSON blob per named slot. Every save rewrites
// the whole blob; there is no incremental persistence.
package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"invotrack/internal/domain/snapshot"

	_ "modernc.org/sqlite"
)

// Slot is the single persisted slot name. The suffix tags the schema version
// of the payload so a future format change can move to a new slot.
const Slot = "invoice_status_tracker_v1"

// Store is a SQLite-backed single-slot snapshot store.
type Store struct {
	db     *sql.DB
	slot   string
	logger *slog.Logger
}

// Open creates the backing database (and slot table) at the given path.
// Use ":memory:" for an ephemeral store.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	schema := `
CREATE TABLE IF NOT EXISTS snapshots (
    slot TEXT PRIMARY KEY,
    payload TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create snapshot table: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, slot: Slot, logger: logger}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the stored snapshot. A missing row or an unparsable payload
// yields the default empty snapshot; only infrastructure failures error.
func (s *Store) Load(ctx context.Context) (*snapshot.Snapshot, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM snapshots WHERE slot = ?`, s.slot,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return snapshot.Default(), nil
	}
	if err != nil {
		return snapshot.Default(), fmt.Errorf("load snapshot: %w", err)
	}

	var snap snapshot.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		s.logger.Warn("stored snapshot unparsable, starting fresh", "error", err)
		return snapshot.Default(), nil
	}
	snap.Normalize()
	return &snap, nil
}

// Save serializes the snapshot and overwrites the slot.
func (s *Store) Save(ctx context.Context, snap *snapshot.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (slot, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, s.slot, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
