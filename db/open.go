// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the configured database. databaseType is "sqlite" or
// "postgres"; anything else is rejected so a typo doesn't silently pick a
// driver.
func Open(databaseType, databaseURL string) (*sql.DB, error) {
	switch databaseType {
	case "sqlite":
		conn, err := sql.Open("sqlite", databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		// SQLite ships with foreign keys off; the schema relies on
		// ON DELETE CASCADE for answer ownership.
		if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to enable sqlite foreign keys: %w", err)
		}
		return conn, nil
	case "postgres":
		conn, err := sql.Open("postgres", databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
		return conn, nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", databaseType)
	}
}
