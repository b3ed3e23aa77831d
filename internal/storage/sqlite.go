// Package storage persists ledger collections as snapshot blobs in a
// local SQLite database. Each collection is one JSON blob under a named
// key; readers of a missing or corrupt blob get the empty value back,
// never an error.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Snapshot keys, one per persisted collection.
const (
	KeyClients           = "clients"
	KeyInvoices          = "invoices"
	KeyEstimates         = "estimates"
	KeyTimeEntries       = "timeEntries"
	KeyProjects          = "projects"
	KeyRecurringInvoices = "recurringInvoices"
	KeyBusinessInfo      = "businessInfo"
)

// SnapshotStore implements blob persistence on SQLite.
type SnapshotStore struct {
	db     *sql.DB
	dbPath string
}

// NewSnapshotStore opens (creating if needed) the snapshot database at
// dbPath and ensures the schema exists.
func NewSnapshotStore(dbPath string) (*SnapshotStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath cannot be empty")
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SnapshotStore{db: db, dbPath: dbPath}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *SnapshotStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			key        TEXT PRIMARY KEY,
			data       BLOB NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return fmt.Errorf("failed to create snapshots table: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

// Save writes the blob for key, replacing any previous value.
func (s *SnapshotStore) Save(key string, data []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO snapshots (key, data, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		key, data)
	if err != nil {
		return fmt.Errorf("failed to save snapshot %q: %w", key, err)
	}
	return nil
}

// Load reads the blob for key. A missing key returns (nil, nil).
func (s *SnapshotStore) Load(key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM snapshots WHERE key = ?`, key).Scan(&data)
	switch {
	case err == sql.ErrNoRows:
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("failed to load snapshot %q: %w", key, err)
	}
	return data, nil
}

// Delete removes the blob for key. Missing keys are not an error.
func (s *SnapshotStore) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM snapshots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete snapshot %q: %w", key, err)
	}
	return nil
}

// DeleteAll removes every persisted blob in one statement, so a wipe
// is never partially observable.
func (s *SnapshotStore) DeleteAll() error {
	if _, err := s.db.Exec(`DELETE FROM snapshots`); err != nil {
		return fmt.Errorf("failed to delete snapshots: %w", err)
	}
	return nil
}
