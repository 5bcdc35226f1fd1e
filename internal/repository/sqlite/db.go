package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const busyTimeout = 5 * time.Second

// pragmas applied to every new token database.
var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeout.Milliseconds()),
	"PRAGMA synchronous = NORMAL",
}

// Open creates the token database file at path, along with any missing
// parent directories. The special path ":memory:" skips the filesystem.
func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("create token db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open token db %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases alive and serialises
	// token writes.
	db.SetMaxOpenConns(1)
	db.SetConnMaxIdleTime(0)

	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}
	return db, nil
}
