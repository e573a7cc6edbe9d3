// Package db persists zonal computation results to sqlite: a run
// registry plus per-run statistics matrices and extraction rows.
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the sqlite connection for zonal result storage.
type DB struct {
	*sql.DB
}

// Open opens (or creates) the result database at path and applies
// pending migrations.
func Open(path string) (*DB, error) {
	sdb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := sdb.Exec(`PRAGMA journal_mode=WAL; PRAGMA foreign_keys=ON;`); err != nil {
		sdb.Close()
		return nil, fmt.Errorf("setting pragmas: %w", err)
	}

	db := &DB{sdb}
	if err := db.MigrateUp(); err != nil {
		sdb.Close()
		return nil, err
	}
	return db, nil
}
