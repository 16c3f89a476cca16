package probe

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Cache persists probe results across runs in a sqlite database. Rows are
// keyed by path; size and mtime guard against stale entries, so a rewritten
// file is re-probed. Sub-second mtime precision is kept by storing Unix
// nanoseconds.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (creating if needed) the cache database at path.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open probe cache: %w", err)
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Cache{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS probe_cache (
			path     TEXT PRIMARY KEY,
			size     INTEGER NOT NULL,
			mtime_ns INTEGER NOT NULL,
			duration REAL NOT NULL,
			probed_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("init probe cache schema: %w", err)
	}
	return nil
}

// Lookup returns the cached duration for path when a row exists with
// matching size and mtime. The second return is false on miss or on any
// query error (a broken cache degrades to re-probing, never to failure).
func (c *Cache) Lookup(path string, size int64, mtime time.Time) (float64, bool) {
	var dur float64
	err := c.db.QueryRow(
		`SELECT duration FROM probe_cache WHERE path = ? AND size = ? AND mtime_ns = ?`,
		path, size, mtime.UnixNano(),
	).Scan(&dur)
	if err != nil {
		return 0, false
	}
	return dur, true
}

// Store upserts the probe result for path.
func (c *Cache) Store(path string, size int64, mtime time.Time, duration float64) error {
	_, err := c.db.Exec(
		`INSERT INTO probe_cache (path, size, mtime_ns, duration, probed_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			size = excluded.size,
			mtime_ns = excluded.mtime_ns,
			duration = excluded.duration,
			probed_at = excluded.probed_at`,
		path, size, mtime.UnixNano(), duration, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("store probe cache row: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}
