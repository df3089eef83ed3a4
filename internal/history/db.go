package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Attempt is one recorded workflow run.
type Attempt struct {
	ID        int64
	Serial    string
	IP        string
	Port      int
	State     string // "done" or "failed"
	Reason    string
	CreatedAt time.Time
}

// DB wraps the SQLite history database.
type DB struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the history database in dir.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	dbPath := filepath.Join(dir, "history.db")
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Enable WAL mode for better concurrent access
	if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	h := &DB{db: sqlDB, path: dbPath}
	if err := h.migrate(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return h, nil
}

// Close closes the database.
func (h *DB) Close() error {
	return h.db.Close()
}

// Path returns the path to the history database file.
func (h *DB) Path() string {
	return h.path
}

func (h *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS attempts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		serial TEXT NOT NULL,
		ip TEXT NOT NULL DEFAULT '',
		port INTEGER NOT NULL DEFAULT 0,
		state TEXT NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS device_ips (
		serial TEXT PRIMARY KEY,
		ip TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_attempts_serial ON attempts(serial);
	`
	if _, err := h.db.Exec(schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// RecordAttempt stores a finished workflow run.
func (h *DB) RecordAttempt(a Attempt) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	_, err := h.db.Exec(
		`INSERT INTO attempts (serial, ip, port, state, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.Serial, a.IP, a.Port, a.State, a.Reason, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	return nil
}

// RecentAttempts returns up to limit attempts, newest first.
func (h *DB) RecentAttempts(limit int) ([]Attempt, error) {
	rows, err := h.db.Query(
		`SELECT id, serial, ip, port, state, reason, created_at
		 FROM attempts ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.ID, &a.Serial, &a.IP, &a.Port, &a.State, &a.Reason, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// RememberIP upserts the last WiFi IP seen for a device.
func (h *DB) RememberIP(serial, ip string) error {
	_, err := h.db.Exec(
		`INSERT INTO device_ips (serial, ip, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(serial) DO UPDATE SET
		   ip = excluded.ip,
		   updated_at = excluded.updated_at`,
		serial, ip, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("remember ip: %w", err)
	}
	return nil
}

// LastIP returns the last remembered WiFi IP for a device, if any.
func (h *DB) LastIP(serial string) (string, bool, error) {
	var ip string
	err := h.db.QueryRow(`SELECT ip FROM device_ips WHERE serial = ?`, serial).Scan(&ip)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("last ip: %w", err)
	}
	return ip, true, nil
}
