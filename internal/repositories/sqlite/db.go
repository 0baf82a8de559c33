// Package sqlite backs the repositories with an embedded database, the
// zero-setup option for a single till.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS menu_versions (
	id         TEXT PRIMARY KEY,
	hash       TEXT NOT NULL,
	created_at TEXT NOT NULL,
	created_by TEXT,
	snapshot   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS menu_items (
	id          TEXT PRIMARY KEY,
	version_id  TEXT NOT NULL,
	external_id TEXT,
	name        TEXT NOT NULL,
	price_cents INTEGER NOT NULL,
	section     TEXT,
	category    TEXT,
	station     TEXT,
	position    INTEGER NOT NULL,
	FOREIGN KEY(version_id) REFERENCES menu_versions(id)
);
CREATE INDEX IF NOT EXISTS idx_menu_items_version ON menu_items(version_id);

CREATE TABLE IF NOT EXISTS corrections (
	id                TEXT PRIMARY KEY,
	raw_text          TEXT NOT NULL,
	predicted_item_id TEXT,
	corrected_item_id TEXT NOT NULL,
	user_id           TEXT,
	created_at        TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_corrections_created ON corrections(created_at DESC);

CREATE TABLE IF NOT EXISTS workstations (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	slug       TEXT NOT NULL UNIQUE,
	color      TEXT NOT NULL,
	active     BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tickets (
	id          TEXT PRIMARY KEY,
	table_no    INTEGER NOT NULL,
	waiter_id   TEXT,
	text        TEXT NOT NULL,
	status      TEXT NOT NULL,
	total_cents INTEGER NOT NULL,
	created_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS ticket_lines (
	id               TEXT PRIMARY KEY,
	ticket_id        TEXT NOT NULL,
	text             TEXT NOT NULL,
	note             TEXT,
	category         TEXT NOT NULL,
	menu_id          TEXT,
	menu_name        TEXT,
	unit_price_cents INTEGER NOT NULL,
	qty              REAL NOT NULL,
	unit             TEXT,
	multiplier       REAL NOT NULL,
	line_total_cents INTEGER NOT NULL,
	score            REAL,
	status           TEXT NOT NULL,
	FOREIGN KEY(ticket_id) REFERENCES tickets(id)
);
CREATE INDEX IF NOT EXISTS idx_ticket_lines_ticket ON ticket_lines(ticket_id);
`

// Open opens (creating if needed) the database file and ensures the schema.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}
	return db, nil
}

// Timestamps are stored as RFC 3339 text so rows stay readable in any
// sqlite shell.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
