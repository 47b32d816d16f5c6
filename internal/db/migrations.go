package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. Money columns are REAL whole-unit
// amounts; dates are stored as YYYY-MM-DD text, blank when unknown.
const schema = `
CREATE TABLE IF NOT EXISTS items (
    id           TEXT PRIMARY KEY,
    name         TEXT NOT NULL,
    category     TEXT NOT NULL,
    buy_platform TEXT NOT NULL,
    buy_date     TEXT NOT NULL DEFAULT '',
    buy_price    REAL NOT NULL DEFAULT 0,
    sell_site    TEXT NOT NULL DEFAULT '',
    sell_date    TEXT NOT NULL DEFAULT '',
    sell_price   REAL NOT NULL DEFAULT 0,
    shipping     REAL NOT NULL DEFAULT 0,
    fee          REAL NOT NULL DEFAULT 0,
    profit       REAL NOT NULL DEFAULT 0,
    rate         REAL NOT NULL DEFAULT 0,
    image        BLOB,
    image_mime   TEXT,
    created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_items_buy_date ON items(buy_date);
`

// migrations is a list of SQL statements applied in order after schema
// creation. Each migration must be idempotent. Append new migrations at the
// end.
var migrations = []string{
	// Migration 1: backfill blank buy dates on rows imported from older
	// backups, which allowed items without an acquisition date.
	`UPDATE items SET buy_date = date('now') WHERE buy_date IS NULL OR buy_date = ''`,
}

// Migrate runs the database schema migrations.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}

// EnsureSchema creates all tables and indexes if they don't already exist,
// without applying data migrations. Used by tests that need blank dates to
// survive.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
