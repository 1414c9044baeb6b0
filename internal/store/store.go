// Package store persists tasks, focus sessions, categories, achievements and
// settings in SQLite and serves them to the summary pipelines.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const currentVersion = 2

// dateLayout is how scheduled days are stored.
const dateLayout = "2006-01-02"

type Store struct {
	db  *sql.DB
	now func() time.Time
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Ping reports whether the database is reachable.
func (s *Store) Ping() error {
	return s.db.Ping()
}

func (s *Store) stamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}
	if version < 2 {
		if err := s.migrateV2(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS categories (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL UNIQUE,
		color       TEXT NOT NULL DEFAULT '#6C63FF',
		created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		title             TEXT NOT NULL,
		description       TEXT NOT NULL DEFAULT '',
		priority          TEXT NOT NULL DEFAULT 'medium' CHECK (priority IN ('high','medium','low')),
		category_id       INTEGER REFERENCES categories(id) ON DELETE SET NULL,
		estimated_minutes INTEGER NOT NULL DEFAULT 0,
		scheduled_for     TEXT NOT NULL,
		completed         INTEGER NOT NULL DEFAULT 0,
		completed_at      TEXT,
		archived          INTEGER NOT NULL DEFAULT 0,
		created_at        TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
		updated_at        TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_scheduled ON tasks(scheduled_for);
	CREATE INDEX IF NOT EXISTS idx_tasks_completed ON tasks(completed_at);

	CREATE TABLE IF NOT EXISTS focus_sessions (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		task_id         INTEGER REFERENCES tasks(id) ON DELETE SET NULL,
		mode            TEXT NOT NULL DEFAULT 'pomodoro' CHECK (mode IN ('pomodoro','short_break','long_break')),
		planned_seconds INTEGER NOT NULL,
		actual_seconds  INTEGER NOT NULL DEFAULT 0,
		status          TEXT NOT NULL DEFAULT 'running',
		started_at      TEXT NOT NULL,
		ended_at        TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_focus_started ON focus_sessions(started_at);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('focus_pomodoro',    '1500'),
		('focus_short_break', '300'),
		('focus_long_break',  '900'),
		('focus_rounds',      '4'),
		('daily_goal',        '8');

	INSERT OR IGNORE INTO categories (name, color) VALUES
		('Work Projects',        '#6C63FF'),
		('Personal Development', '#2EC4B6'),
		('Health & Fitness',     '#2ECC71'),
		('Creative Work',        '#F39C12'),
		('Learning',             '#7AA2F7');
	`
	_, err := s.db.Exec(ddl)
	return err
}

func (s *Store) migrateV2() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS achievements (
		id          TEXT PRIMARY KEY,
		icon        TEXT NOT NULL DEFAULT '',
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		color       TEXT NOT NULL DEFAULT '#6C63FF',
		unlocked_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/dayzen/dayzen.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "dayzen", "dayzen.db"), nil
}
