package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned by stores when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// seq orders rows by insertion; ids are UUIDs and carry no order.
	schema := `
	CREATE TABLE IF NOT EXISTS admin (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS employee (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		position TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS member (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		membership_type TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS attendance (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		employee_name TEXT NOT NULL,
		check_in TEXT NOT NULL,
		check_out TEXT
	);

	CREATE TABLE IF NOT EXISTS reservation (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		customer_name TEXT NOT NULL,
		reservation_date TEXT NOT NULL,
		status TEXT NOT NULL,
		source TEXT NOT NULL DEFAULT 'manual'
	);

	CREATE TABLE IF NOT EXISTS sale (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		sale_date TEXT NOT NULL,
		amount REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_attendance_employee_open ON attendance(employee_name, check_out);
	CREATE INDEX IF NOT EXISTS idx_reservation_date ON reservation(reservation_date);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SQLLimit maps a non-positive limit to SQLite's "no limit".
func SQLLimit(n int) int {
	if n <= 0 {
		return -1
	}
	return n
}
