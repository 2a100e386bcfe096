// Package repository persists the entity store as a single serialized
// blob, the way the original dashboard kept its whole state under one
// browser-storage key. SQLite is the local backing file; there is no
// server and no network.
package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"proptrack/internal/models"
)

// SnapshotRepository stores exactly one snapshot row.
type SnapshotRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open opens (or creates) the SQLite file and ensures the schema.
func Open(path string, logger *zap.Logger) (*SnapshotRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}

	repo := NewSnapshotRepository(db, logger)
	if err := repo.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// NewSnapshotRepository wraps an existing connection (used by tests).
func NewSnapshotRepository(db *sql.DB, logger *zap.Logger) *SnapshotRepository {
	return &SnapshotRepository{db: db, logger: logger}
}

func (r *SnapshotRepository) ensureSchema() error {
	const createTable = `
CREATE TABLE IF NOT EXISTS snapshots (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  data TEXT NOT NULL,
  saved_at TEXT NOT NULL
);
`
	if _, err := r.db.Exec(createTable); err != nil {
		return fmt.Errorf("create snapshots table: %w", err)
	}
	return nil
}

func (r *SnapshotRepository) Close() error { return r.db.Close() }

// Save serializes the snapshot and upserts the single row.
func (r *SnapshotRepository) Save(s models.Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = r.db.Exec(`
INSERT INTO snapshots (id, data, saved_at) VALUES (1, ?, ?)
ON CONFLICT(id) DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at
`, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load reads the stored snapshot. A missing row yields the empty snapshot;
// a missing or malformed collection inside the blob yields that collection
// empty. Older blobs written before a collection existed therefore load
// without error.
func (r *SnapshotRepository) Load() (models.Snapshot, error) {
	var data string
	err := r.db.QueryRow(`SELECT data FROM snapshots WHERE id = 1`).Scan(&data)
	if err == sql.ErrNoRows {
		return models.Empty(), nil
	}
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	return Decode([]byte(data))
}

// Reset deletes the stored row.
func (r *SnapshotRepository) Reset() error {
	if _, err := r.db.Exec(`DELETE FROM snapshots WHERE id = 1`); err != nil {
		return fmt.Errorf("reset snapshot: %w", err)
	}
	if r.logger != nil {
		r.logger.Info("stored snapshot cleared")
	}
	return nil
}

// rawSnapshot defers each collection so one bad collection cannot sink the
// whole load.
type rawSnapshot struct {
	Houses    json.RawMessage `json:"houses"`
	Rooms     json.RawMessage `json:"rooms"`
	Tenants   json.RawMessage `json:"tenants"`
	Payments  json.RawMessage `json:"payments"`
	Showings  json.RawMessage `json:"showings"`
	LentItems json.RawMessage `json:"lentItems"`
	Leads     json.RawMessage `json:"leads"`
}

// Decode parses a persisted blob tolerantly: collections that are absent,
// null or malformed come back empty instead of failing the load.
func Decode(data []byte) (models.Snapshot, error) {
	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}

	s := models.Empty()
	decodeList(raw.Houses, &s.Houses)
	decodeList(raw.Rooms, &s.Rooms)
	decodeList(raw.Tenants, &s.Tenants)
	decodeList(raw.Payments, &s.Payments)
	decodeList(raw.Showings, &s.Showings)
	decodeList(raw.LentItems, &s.LentItems)
	decodeList(raw.Leads, &s.Leads)
	s.Normalize()
	return s, nil
}

func decodeList[T any](raw json.RawMessage, dst *[]T) {
	if len(raw) == 0 {
		return
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return
	}
	*dst = items
}

// ExportJSON writes the snapshot to a plain file for backup.
func ExportJSON(s models.Snapshot, path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write backup file: %w", err)
	}
	return nil
}

// ImportJSON reads a backup file with the same tolerance as Load.
func ImportJSON(path string) (models.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("read backup file: %w", err)
	}
	return Decode(data)
}
