// Package store persists estimation runs to SQLite so point estimates can
// be compared across invocations and prior choices.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/pnsuau/MAP/internal/timeutil"
)

// Estimate is one persisted point estimate: a scenario parameter estimated
// by one estimator under one prior. Estimates produced by the same
// invocation share a RunID.
type Estimate struct {
	ID        string
	RunID     string
	Scenario  string // "coin" or "weight"
	Estimator string // "mle" or "map"
	Prior     string // prior description, empty for MLE
	Parameter string // estimated parameter name
	Value     float64
	CreatedAt time.Time
}

// Store wraps the SQLite database holding estimation runs.
type Store struct {
	*sql.DB
	clock timeutil.Clock
}

// Open opens (creating if necessary) the store at path. The schema is
// managed by migrations; callers run MigrateUp before inserting.
func Open(path string) (*Store, error) {
	return OpenWithClock(path, timeutil.RealClock{})
}

// OpenWithClock opens the store with an explicit clock for timestamps.
func OpenWithClock(path string, clock timeutil.Clock) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", path, err)
	}

	// set busy timeout to avoid transient locks when used from CLI
	if _, err := db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return &Store{DB: db, clock: clock}, nil
}

// InsertEstimate writes e to the store, assigning an ID and CreatedAt when
// unset, and returns the stored row.
func (s *Store) InsertEstimate(e Estimate) (Estimate, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock.Now().UTC()
	}

	_, err := s.Exec(
		`INSERT INTO estimates (
			id, run_id, scenario, estimator, prior, parameter, value, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.RunID, e.Scenario, e.Estimator, e.Prior, e.Parameter, e.Value,
		e.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Estimate{}, fmt.Errorf("failed to insert estimate: %w", err)
	}
	return e, nil
}

// ListEstimates returns all stored estimates, newest first.
func (s *Store) ListEstimates() ([]Estimate, error) {
	return s.queryEstimates(
		`SELECT id, run_id, scenario, estimator, prior, parameter, value, created_at
		 FROM estimates ORDER BY created_at DESC, rowid DESC`)
}

// ListRunEstimates returns the estimates of a single run in insertion order.
func (s *Store) ListRunEstimates(runID string) ([]Estimate, error) {
	return s.queryEstimates(
		`SELECT id, run_id, scenario, estimator, prior, parameter, value, created_at
		 FROM estimates WHERE run_id = ? ORDER BY rowid ASC`, runID)
}

func (s *Store) queryEstimates(query string, args ...interface{}) ([]Estimate, error) {
	rows, err := s.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query estimates: %w", err)
	}
	defer rows.Close()

	var out []Estimate
	for rows.Next() {
		var e Estimate
		var createdAt string
		if err := rows.Scan(&e.ID, &e.RunID, &e.Scenario, &e.Estimator, &e.Prior,
			&e.Parameter, &e.Value, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan estimate: %w", err)
		}
		e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at %q: %w", createdAt, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read estimates: %w", err)
	}
	return out, nil
}
