package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/lib"
	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// SqliteCheckpointStore keeps checkpoints in a single SQLite database file.
// Useful when many runs share one state location and partial files in a
// directory would be awkward to manage.
type SqliteCheckpointStore struct {
	db *sql.DB
}

// Fixed-width timestamp layout so lexicographic ORDER BY matches time order
// (RFC3339Nano trims trailing zeros and does not sort correctly as text)
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const checkpointTableDDL = `
CREATE TABLE IF NOT EXISTS checkpoints (
	name      TEXT PRIMARY KEY,
	step      TEXT NOT NULL,
	saved_at  TEXT NOT NULL,
	document  TEXT NOT NULL
);`

// NewSqliteCheckpointStore opens (or creates) the checkpoint database in the
// given directory
func NewSqliteCheckpointStore(dir string) (*SqliteCheckpointStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create checkpoint directory: %w", err)
	}
	path := filepath.Join(dir, "checkpoints.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open checkpoint database: %w", err)
	}

	// Single writer keeps "database is locked" errors out of normal runs
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(checkpointTableDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create checkpoints table: %w", err)
	}

	return &SqliteCheckpointStore{db: db}, nil
}

// Save upserts the state under the given checkpoint name
func (s *SqliteCheckpointStore) Save(name string, state *models.PipelineState) error {
	if err := state.Validate(); err != nil {
		return fmt.Errorf("cannot save invalid pipeline state: %w", err)
	}

	document, err := json.Marshal(state)
	if err != nil {
		return lib.ErrCheckpointFailure(name, err)
	}

	_, err = s.db.Exec(`
		INSERT INTO checkpoints (name, step, saved_at, document)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			step = excluded.step,
			saved_at = excluded.saved_at,
			document = excluded.document`,
		name, string(state.CurrentStep), time.Now().UTC().Format(sqliteTimeLayout), string(document))
	if err != nil {
		return lib.ErrCheckpointFailure(name, err)
	}

	return nil
}

// Load reads a checkpoint back by name
func (s *SqliteCheckpointStore) Load(name string) (*models.PipelineState, error) {
	var document string
	err := s.db.QueryRow(`SELECT document FROM checkpoints WHERE name = ?`, name).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, lib.ErrCheckpointNotFound(name)
	}
	if err != nil {
		return nil, lib.ErrCheckpointFailure(name, err)
	}

	var state models.PipelineState
	if err := json.Unmarshal([]byte(document), &state); err != nil {
		return nil, lib.ErrCorruptedCheckpoint(name, err)
	}
	if err := state.Validate(); err != nil {
		return nil, lib.ErrCorruptedCheckpoint(name, err)
	}

	return &state, nil
}

// List returns every stored checkpoint, newest first
func (s *SqliteCheckpointStore) List() ([]CheckpointInfo, error) {
	rows, err := s.db.Query(`SELECT name, step, saved_at FROM checkpoints ORDER BY saved_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}
	defer rows.Close()

	infos := []CheckpointInfo{}
	for rows.Next() {
		var info CheckpointInfo
		var savedAt string
		if err := rows.Scan(&info.Name, &info.Step, &savedAt); err != nil {
			return nil, fmt.Errorf("failed to scan checkpoint row: %w", err)
		}
		if t, parseErr := time.Parse(sqliteTimeLayout, savedAt); parseErr == nil {
			info.SavedAt = t
		}
		infos = append(infos, info)
	}

	return infos, rows.Err()
}

// Delete removes a stored checkpoint
func (s *SqliteCheckpointStore) Delete(name string) error {
	result, err := s.db.Exec(`DELETE FROM checkpoints WHERE name = ?`, name)
	if err != nil {
		return lib.ErrCheckpointFailure(name, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return lib.ErrCheckpointFailure(name, err)
	}
	if affected == 0 {
		return lib.ErrCheckpointNotFound(name)
	}

	return nil
}

// Close releases the underlying database handle
func (s *SqliteCheckpointStore) Close() error {
	return s.db.Close()
}

// NewCheckpointStore builds the configured checkpoint backend
func NewCheckpointStore(cfg models.CheckpointConfig) (CheckpointStore, error) {
	switch cfg.Backend {
	case "sqlite":
		return NewSqliteCheckpointStore(cfg.Dir)
	case "file", "":
		return NewFileCheckpointStore(cfg.Dir)
	default:
		return nil, fmt.Errorf("unknown checkpoint backend: %s", cfg.Backend)
	}
}
