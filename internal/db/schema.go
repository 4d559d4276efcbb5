package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. Deleting a reference row cascades to
// the inventory items that point at it; deleting an item cascades to its notes.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    first_name    TEXT NOT NULL DEFAULT '',
    last_name     TEXT NOT NULL DEFAULT '',
    email         TEXT NOT NULL UNIQUE,
    role          TEXT CHECK (role IN ('ADMIN', 'LEADER', 'MEMBER', 'GUEST')),
    active        INTEGER NOT NULL DEFAULT 0,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS locations (
    id   INTEGER PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS areas (
    id          INTEGER PRIMARY KEY,
    name        TEXT NOT NULL,
    location_id INTEGER NOT NULL REFERENCES locations(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS manufacturers (
    id   INTEGER PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS statuses (
    id   INTEGER PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS assignees (
    id   INTEGER PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS approvers (
    id   INTEGER PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS items (
    id              INTEGER PRIMARY KEY,
    name            TEXT NOT NULL UNIQUE,
    description     TEXT NOT NULL DEFAULT '',
    status_id       INTEGER NOT NULL REFERENCES statuses(id) ON DELETE CASCADE,
    location_id     INTEGER NOT NULL REFERENCES locations(id) ON DELETE CASCADE,
    area_id         INTEGER NOT NULL REFERENCES areas(id) ON DELETE CASCADE,
    manufacturer_id INTEGER NOT NULL REFERENCES manufacturers(id) ON DELETE CASCADE,
    model_no        TEXT NOT NULL DEFAULT '',
    serial_no       TEXT,
    qty             INTEGER NOT NULL CHECK (qty >= 0),
    total_cost      TEXT,
    assigned_to     INTEGER REFERENCES assignees(id) ON DELETE CASCADE,
    approved_by     INTEGER NOT NULL REFERENCES approvers(id) ON DELETE CASCADE,
    approved_date   TEXT NOT NULL DEFAULT '',
    purchase_date   TEXT NOT NULL DEFAULT '',
    inserted_by     INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    inserted_date   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    modified_by     TEXT,
    modified_date   DATETIME
);

CREATE TABLE IF NOT EXISTS item_notes (
    id            INTEGER PRIMARY KEY,
    item_id       INTEGER NOT NULL REFERENCES items(id) ON DELETE CASCADE,
    comment       TEXT NOT NULL,
    inserted_by   TEXT NOT NULL,
    inserted_date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS contacts (
    id            INTEGER PRIMARY KEY,
    fullname      TEXT NOT NULL,
    email         TEXT NOT NULL,
    subject       TEXT NOT NULL,
    message       TEXT NOT NULL,
    inserted_date DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// migrations is a list of SQL statements applied in order after schema creation.
// Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{
	// Migration 1: index the foreign keys the item forms and the summary
	// view filter on.
	`CREATE INDEX IF NOT EXISTS idx_areas_location ON areas(location_id)`,
	`CREATE INDEX IF NOT EXISTS idx_items_location ON items(location_id)`,
	`CREATE INDEX IF NOT EXISTS idx_item_notes_item ON item_notes(item_id)`,
}

// Migrate creates the schema and runs the migrations.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
