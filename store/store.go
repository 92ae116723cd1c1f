// Package store provides SQLite-based persistence for synthesis runs.
// Each run records the query (catalog size, target signature), the search
// method and parameters, and the discovered paths, so results survive the
// process and repeated queries can be compared offline.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store handles SQLite database operations for synthesis run logging.
type Store struct {
	db *sql.DB
}

// Run represents one synthesis query record.
type Run struct {
	ID         string     `json:"id"`
	Method     string     `json:"method"` // "exact" or "ants"
	Target     string     `json:"target"`
	Components int        `json:"components"`
	States     int        `json:"states"`
	Edges      int        `json:"edges"`
	Complete   bool       `json:"complete"`
	Seed       int64      `json:"seed"`
	StartedAt  time.Time  `json:"started_at"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
}

// Path represents one discovered transition sequence for a run.
type Path struct {
	ID      int64    `json:"id"`
	RunID   string   `json:"run_id"`
	Rank    int      `json:"rank"`
	Steps   []string `json:"steps"`
	Hamming int      `json:"hamming"`
	Reached bool     `json:"reached"`
}

// Open creates a store backed by the given database file. Pass ":memory:"
// for an in-process database.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		method TEXT NOT NULL,
		target TEXT NOT NULL,
		components INTEGER NOT NULL DEFAULT 0,
		states INTEGER NOT NULL DEFAULT 0,
		edges INTEGER NOT NULL DEFAULT 0,
		complete INTEGER NOT NULL DEFAULT 1,
		seed INTEGER NOT NULL DEFAULT 0,
		started_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		ended_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS paths (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		rank INTEGER NOT NULL,
		steps TEXT NOT NULL,
		hamming INTEGER NOT NULL DEFAULT 0,
		reached INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);

	CREATE INDEX IF NOT EXISTS idx_paths_run ON paths(run_id);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection for custom queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// SaveRun inserts a run record. A missing ID is assigned a fresh UUID;
// the assigned ID is returned.
func (s *Store) SaveRun(r *Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.StartedAt.IsZero() {
		r.StartedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (id, method, target, components, states, edges, complete, seed, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Method, r.Target, r.Components, r.States, r.Edges,
		r.Complete, r.Seed, r.StartedAt, r.EndedAt,
	)
	if err != nil {
		return "", fmt.Errorf("save run: %w", err)
	}
	return r.ID, nil
}

// FinishRun marks a run as ended.
func (s *Store) FinishRun(id string) error {
	_, err := s.db.Exec(`UPDATE runs SET ended_at = ? WHERE id = ?`, time.Now().UTC(), id)
	return err
}

// SavePaths inserts all paths of a run in one transaction, ranked by
// slice position.
func (s *Store) SavePaths(runID string, paths []Path) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	stmt, err := tx.Prepare(
		`INSERT INTO paths (run_id, rank, steps, hamming, reached) VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for i, p := range paths {
		if _, err := stmt.Exec(runID, i, strings.Join(p.Steps, "|"), p.Hamming, p.Reached); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert path %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// GetRun retrieves a run by ID.
func (s *Store) GetRun(id string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, method, target, components, states, edges, complete, seed, started_at, ended_at
		 FROM runs WHERE id = ?`, id,
	)
	return scanRun(row)
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]*Run, error) {
	rows, err := s.db.Query(
		`SELECT id, method, target, components, states, edges, complete, seed, started_at, ended_at
		 FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// PathsForRun retrieves a run's paths ordered by rank.
func (s *Store) PathsForRun(runID string) ([]*Path, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, rank, steps, hamming, reached
		 FROM paths WHERE run_id = ? ORDER BY rank`, runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []*Path
	for rows.Next() {
		var p Path
		var steps string
		if err := rows.Scan(&p.ID, &p.RunID, &p.Rank, &steps, &p.Hamming, &p.Reached); err != nil {
			return nil, err
		}
		if steps != "" {
			p.Steps = strings.Split(steps, "|")
		}
		paths = append(paths, &p)
	}
	return paths, rows.Err()
}

// ExportRunJSON exports a run and its paths as indented JSON.
func (s *Store) ExportRunJSON(runID string) ([]byte, error) {
	run, err := s.GetRun(runID)
	if err != nil {
		return nil, err
	}
	paths, err := s.PathsForRun(runID)
	if err != nil {
		return nil, err
	}

	export := map[string]any{
		"run":   run,
		"paths": paths,
	}
	return json.MarshalIndent(export, "", "  ")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var r Run
	var endedAt sql.NullTime
	err := row.Scan(&r.ID, &r.Method, &r.Target, &r.Components, &r.States,
		&r.Edges, &r.Complete, &r.Seed, &r.StartedAt, &endedAt)
	if err != nil {
		return nil, err
	}
	if endedAt.Valid {
		r.EndedAt = &endedAt.Time
	}
	return &r, nil
}
