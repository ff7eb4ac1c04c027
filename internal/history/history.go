// Package history keeps a SQLite ledger of finished imports. It is write
// mostly: imports never consult it.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/gnzdotmx/ytpappend/internal/utils"
)

// DefaultFileName is the ledger file inside the per-user config directory
const DefaultFileName = "history.db"

const schema = `CREATE TABLE IF NOT EXISTS imports (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_at INTEGER NOT NULL,
	playlist TEXT NOT NULL,
	source TEXT NOT NULL,
	target TEXT NOT NULL,
	status TEXT NOT NULL,
	videos INTEGER NOT NULL DEFAULT 0,
	message TEXT NOT NULL DEFAULT ''
);`

// Entry is one recorded file outcome
type Entry struct {
	ID       int64
	RunAt    time.Time
	Playlist string
	Source   string
	Target   string
	Status   string
	Videos   int
	Message  string
}

// DB wraps the ledger database
type DB struct {
	conn *sql.DB
}

// DefaultPath returns ~/.ytpappend/history.db
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, utils.ConfigDirName, DefaultFileName), nil
}

// Open opens or creates the ledger at path
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if _, err := conn.Exec(schema); err != nil {
		if cerr := conn.Close(); cerr != nil {
			utils.LogWarning("Failed to close history database: %v", cerr)
		}
		return nil, fmt.Errorf("failed to create history table: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the database
func (d *DB) Close() error {
	return d.conn.Close()
}

// Record stores one entry and returns its ID
func (d *DB) Record(e Entry) (int64, error) {
	res, err := d.conn.Exec(
		`INSERT INTO imports (run_at, playlist, source, target, status, videos, message) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.RunAt.UnixMilli(), e.Playlist, e.Source, e.Target, e.Status, e.Videos, e.Message,
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite insert failed: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns up to limit entries, newest first
func (d *DB) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := d.conn.Query(
		`SELECT id, run_at, playlist, source, target, status, videos, message
		 FROM imports ORDER BY run_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite query failed: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			utils.LogWarning("Failed to close rows: %v", err)
		}
	}()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var runAt int64
		if err := rows.Scan(&e.ID, &runAt, &e.Playlist, &e.Source, &e.Target, &e.Status, &e.Videos, &e.Message); err != nil {
			return nil, err
		}
		e.RunAt = time.UnixMilli(runAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
