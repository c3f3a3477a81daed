package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
var migrations = []string{
	// Cached copy of the published listing set. The canonical JSON
	// snapshot lives in payload; the columns exist for inspection and
	// ad-hoc queries. position preserves the CMS sort order.
	`CREATE TABLE IF NOT EXISTS listings (
		id             TEXT    PRIMARY KEY,
		slug           TEXT    NOT NULL,
		name           TEXT    NOT NULL,
		developer      TEXT    NOT NULL DEFAULT '',
		status         TEXT    NOT NULL,
		property_type  TEXT    NOT NULL,
		city           TEXT    NOT NULL DEFAULT '',
		district       TEXT    NOT NULL DEFAULT '',
		total_area     REAL    NOT NULL DEFAULT 0,
		rent_price_sqm REAL,
		featured       INTEGER NOT NULL DEFAULT 0,
		position       INTEGER NOT NULL,
		payload        TEXT    NOT NULL,
		fetched_at     DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_listings_slug ON listings(slug)`,
	// Local audit log of accepted lead submissions; the CMS is the
	// system of record.
	`CREATE TABLE IF NOT EXISTS leads (
		id           TEXT    PRIMARY KEY,
		name         TEXT    NOT NULL,
		email        TEXT    NOT NULL,
		phone        TEXT    NOT NULL DEFAULT '',
		company      TEXT    NOT NULL DEFAULT '',
		project_id   TEXT    NOT NULL DEFAULT '',
		project_name TEXT    NOT NULL DEFAULT '',
		message      TEXT    NOT NULL DEFAULT '',
		unit_size    REAL,
		budget       REAL,
		submitted_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
}

// migrate runs all migrations in order.
func migrate(database *sql.DB) error {
	for i, m := range migrations {
		if _, err := database.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
