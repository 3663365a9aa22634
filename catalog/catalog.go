// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package catalog records the completed trials of a batch in a SQLite
// database, so that they can later be found and aggregated per drive
// frequency in seed-list order.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SchemaVersion is the current catalog schema version
const SchemaVersion = 1

const schemaSQL = `
CREATE TABLE IF NOT EXISTS trials (
	name        TEXT PRIMARY KEY,
	base        TEXT NOT NULL,
	variant     TEXT NOT NULL,
	drive_g     REAL NOT NULL,
	drive_freq  REAL NOT NULL,
	seed        INTEGER NOT NULL,
	seed_idx    INTEGER NOT NULL,
	sim_time    REAL NOT NULL,
	dt          REAL NOT NULL,
	meg_path    TEXT NOT NULL,
	stable      INTEGER NOT NULL,
	rate_ex     REAL NOT NULL DEFAULT 0,
	peak_freq   REAL NOT NULL DEFAULT 0,
	rank        INTEGER NOT NULL DEFAULT 0,
	created_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trials_group ON trials(base, drive_g, drive_freq, seed_idx);

CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY
);
`

// Entry is one completed trial
type Entry struct {
	Name      string
	Base      string
	Variant   string
	DriveG    float64
	DriveFreq float64
	Seed      int64
	SeedIdx   int
	SimTime   float64
	Dt        float64
	MEGPath   string
	Stable    bool
	RateEx    float64 // includes the first-step rest crossing, see artifact.PopStats
	PeakFreq  float64
	Rank      int
	Created   time.Time
}

// Catalog is a SQLite trial catalog.  It is safe for concurrent use.
type Catalog struct {
	mu   sync.Mutex
	db   *sql.DB
	path string
}

// Open opens or creates the catalog database at path.
func Open(ctx context.Context, path string) (*Catalog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create catalog directory: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(10000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite works best with single writer

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize catalog schema: %w", err)
	}
	return &Catalog{db: db, path: path}, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	var version int
	err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version > SchemaVersion {
		return fmt.Errorf("catalog schema version %d is newer than supported version %d", version, SchemaVersion)
	}
	if version < SchemaVersion {
		if _, err := db.ExecContext(ctx, `INSERT OR REPLACE INTO schema_version (version) VALUES (?)`, SchemaVersion); err != nil {
			return fmt.Errorf("failed to set schema version: %w", err)
		}
	}
	return nil
}

// Path returns the database file path
func (c *Catalog) Path() string { return c.path }

// Close closes the database
func (c *Catalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.db.Close()
}

// Record inserts or replaces the entry for a completed trial
func (c *Catalog) Record(ctx context.Context, e *Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e.Name == "" {
		return fmt.Errorf("trial name is required")
	}
	if e.Created.IsZero() {
		e.Created = time.Now()
	}
	stable := 0
	if e.Stable {
		stable = 1
	}
	_, err := c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO trials
			(name, base, variant, drive_g, drive_freq, seed, seed_idx, sim_time, dt,
			 meg_path, stable, rate_ex, peak_freq, rank, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Name, e.Base, e.Variant, e.DriveG, e.DriveFreq, e.Seed, e.SeedIdx, e.SimTime, e.Dt,
		e.MEGPath, stable, e.RateEx, e.PeakFreq, e.Rank, e.Created.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to record trial %s: %w", e.Name, err)
	}
	return nil
}

// Trials returns the entries for one base name, drive strength and frequency,
// in seed-list order
func (c *Catalog) Trials(ctx context.Context, base string, driveG, freq float64) ([]Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rows, err := c.db.QueryContext(ctx, `
		SELECT name, base, variant, drive_g, drive_freq, seed, seed_idx, sim_time, dt,
		       meg_path, stable, rate_ex, peak_freq, rank, created_at
		FROM trials
		WHERE base = ? AND drive_g = ? AND drive_freq = ?
		ORDER BY seed_idx`, base, driveG, freq)
	if err != nil {
		return nil, fmt.Errorf("failed to query trials: %w", err)
	}
	defer rows.Close()

	var ents []Entry
	for rows.Next() {
		var e Entry
		var stable int
		var created string
		if err := rows.Scan(&e.Name, &e.Base, &e.Variant, &e.DriveG, &e.DriveFreq, &e.Seed, &e.SeedIdx,
			&e.SimTime, &e.Dt, &e.MEGPath, &stable, &e.RateEx, &e.PeakFreq, &e.Rank, &created); err != nil {
			return nil, fmt.Errorf("failed to scan trial: %w", err)
		}
		e.Stable = stable != 0
		e.Created, _ = time.Parse(time.RFC3339Nano, created)
		ents = append(ents, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trials: %w", err)
	}
	return ents, nil
}

// Frequencies returns the distinct drive frequencies recorded for one base
// name and drive strength, in descending order
func (c *Catalog) Frequencies(ctx context.Context, base string, driveG float64) ([]float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rows, err := c.db.QueryContext(ctx, `
		SELECT DISTINCT drive_freq FROM trials
		WHERE base = ? AND drive_g = ?
		ORDER BY drive_freq DESC`, base, driveG)
	if err != nil {
		return nil, fmt.Errorf("failed to query frequencies: %w", err)
	}
	defer rows.Close()

	var freqs []float64
	for rows.Next() {
		var f float64
		if err := rows.Scan(&f); err != nil {
			return nil, fmt.Errorf("failed to scan frequency: %w", err)
		}
		freqs = append(freqs, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate frequencies: %w", err)
	}
	return freqs, nil
}

// Count returns the total number of recorded trials
func (c *Catalog) Count(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trials`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count trials: %w", err)
	}
	return n, nil
}
