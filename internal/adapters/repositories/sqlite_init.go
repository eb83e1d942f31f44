package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema initializes the SQLite database schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createQueriesTable := `
	CREATE TABLE IF NOT EXISTS queries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source_address TEXT NOT NULL,
		destination_address TEXT NOT NULL,
		source_lat REAL NOT NULL,
		source_lon REAL NOT NULL,
		dest_lat REAL NOT NULL,
		dest_lon REAL NOT NULL,
		distance_km REAL NOT NULL,
		distance_miles REAL NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`

	createGeocodeCacheTable := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lat REAL NOT NULL,
		lon REAL NOT NULL
	);
	`

	createTimestampIndex := `
	CREATE INDEX IF NOT EXISTS idx_queries_timestamp
	ON queries(timestamp DESC, id DESC);
	`

	statements := []string{
		createQueriesTable,
		createGeocodeCacheTable,
		createTimestampIndex,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
