// Package store persists browsing history in a local SQLite database.
package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/mail-browser/internal/model"
)

// Visit is one remembered location.
type Visit struct {
	ID           string    `db:"id"`
	Location     string    `db:"location"`
	ViewMode     string    `db:"view_mode"`
	VisitCount   int       `db:"visit_count"`
	FirstVisited time.Time `db:"first_visited"`
	LastVisited  time.Time `db:"last_visited"`
}

// SQLiteStore keeps browsing history in a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// RecordVisit remembers a selected location, bumping its visit count
// when it was seen before.
func (s *SQLiteStore) RecordVisit(location string, mode model.ViewMode) error {
	if location == "" {
		return nil
	}

	const query = `
		INSERT INTO visits (id, location, view_mode, visit_count, first_visited, last_visited)
		VALUES (?, ?, ?, 1, ?, ?)
		ON CONFLICT(location) DO UPDATE SET
			visit_count  = visit_count + 1,
			view_mode    = excluded.view_mode,
			last_visited = excluded.last_visited`

	now := time.Now().UTC()
	if _, err := s.db.Exec(query, uuid.NewString(), location, mode.String(), now, now); err != nil {
		return fmt.Errorf("recording visit for %q: %w", location, err)
	}
	return nil
}

// RecentLocations returns locations most recently selected first.
func (s *SQLiteStore) RecentLocations(limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}

	var locations []string
	err := s.db.Select(
		&locations,
		"SELECT location FROM visits ORDER BY last_visited DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing recent locations: %w", err)
	}
	return locations, nil
}

// FrequentLocations returns locations by descending visit count.
func (s *SQLiteStore) FrequentLocations(limit int) ([]Visit, error) {
	if limit <= 0 {
		limit = 10
	}

	var visits []Visit
	err := s.db.Select(
		&visits,
		"SELECT * FROM visits ORDER BY visit_count DESC, last_visited DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing frequent locations: %w", err)
	}
	return visits, nil
}

// Forget drops a location from the history.
func (s *SQLiteStore) Forget(location string) error {
	if _, err := s.db.Exec("DELETE FROM visits WHERE location = ?", location); err != nil {
		return fmt.Errorf("forgetting %q: %w", location, err)
	}
	return nil
}

// PruneOlderThan deletes entries whose last visit predates cutoff and
// returns how many were removed.
func (s *SQLiteStore) PruneOlderThan(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec("DELETE FROM visits WHERE last_visited < ?", cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("pruning history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return n, nil
}
