// Package storage provides SQLite-based persistence for recorded runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-physlab/internal/config"
)

// Store manages the SQLite database connection for run recording.
type Store struct {
	db *sql.DB
}

// Run is one recorded simulation.
type Run struct {
	ID        int64
	Preset    string
	Timestep  string
	Dt        float64 // fixed step, 0 for realtime
	StartedAt time.Time
	Frames    int64 // set when the run is finished
}

// Sample is one actor's state at one fetched frame.
type Sample struct {
	Frame    int64
	SimTime  float64
	Actor    string
	Position mgl64.Vec3
	Velocity mgl64.Vec3
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			preset TEXT NOT NULL,
			timestep TEXT NOT NULL,
			dt REAL NOT NULL DEFAULT 0,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			frames INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS samples (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			frame INTEGER NOT NULL,
			sim_time REAL NOT NULL,
			actor TEXT NOT NULL,
			x REAL NOT NULL, y REAL NOT NULL, z REAL NOT NULL,
			vx REAL NOT NULL, vy REAL NOT NULL, vz REAL NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_samples_run_actor ON samples(run_id, actor, frame);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CreateRun starts a new run record.
// Returns the ID of the inserted record.
func (s *Store) CreateRun(preset, timestep string, dt float64) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (preset, timestep, dt) VALUES (?, ?, ?)",
		preset, timestep, dt,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot create run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// AppendSamples stores a batch of samples in one transaction.
func (s *Store) AppendSamples(runID int64, samples []Sample) error {
	if len(samples) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO samples (run_id, frame, sim_time, actor, x, y, z, vx, vy, vz)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, sm := range samples {
		p, v := sm.Position, sm.Velocity
		if _, err := stmt.Exec(runID, sm.Frame, sm.SimTime, sm.Actor,
			p.X(), p.Y(), p.Z(), v.X(), v.Y(), v.Z()); err != nil {
			return fmt.Errorf("storage: cannot insert sample: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit samples: %w", err)
	}
	return nil
}

// FinishRun records the number of frames a run reached.
func (s *Store) FinishRun(runID int64, frames int64) error {
	_, err := s.db.Exec("UPDATE runs SET frames = ? WHERE id = ?", frames, runID)
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	return nil
}

// ListRuns retrieves the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, preset, timestep, dt, started_at, frames
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt any
		if err := rows.Scan(&r.ID, &r.Preset, &r.Timestep, &r.Dt, &startedAt, &r.Frames); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.StartedAt = parseTime(startedAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// Run retrieves a run by ID. Returns nil if it does not exist.
func (s *Store) Run(id int64) (*Run, error) {
	var r Run
	var startedAt any

	err := s.db.QueryRow(
		`SELECT id, preset, timestep, dt, started_at, frames
		 FROM runs
		 WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.Preset, &r.Timestep, &r.Dt, &startedAt, &r.Frames)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}

	r.StartedAt = parseTime(startedAt)
	return &r, nil
}

// Samples retrieves a run's samples in frame order. An empty actor
// returns samples of every actor.
func (s *Store) Samples(runID int64, actor string) ([]Sample, error) {
	rows, err := s.db.Query(
		`SELECT frame, sim_time, actor, x, y, z, vx, vy, vz
		 FROM samples
		 WHERE run_id = ? AND (? = '' OR actor = ?)
		 ORDER BY frame, rowid`,
		runID, actor, actor,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query samples: %w", err)
	}
	defer rows.Close()

	var samples []Sample
	for rows.Next() {
		var sm Sample
		var x, y, z, vx, vy, vz float64
		if err := rows.Scan(&sm.Frame, &sm.SimTime, &sm.Actor, &x, &y, &z, &vx, &vy, &vz); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sm.Position = mgl64.Vec3{x, y, z}
		sm.Velocity = mgl64.Vec3{vx, vy, vz}
		samples = append(samples, sm)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return samples, nil
}

// Actors lists the distinct actor names recorded for a run.
func (s *Store) Actors(runID int64) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT DISTINCT actor FROM samples WHERE run_id = ? ORDER BY actor",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query actors: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// DeleteRun removes a run and its samples.
func (s *Store) DeleteRun(runID int64) error {
	if _, err := s.db.Exec("DELETE FROM samples WHERE run_id = ?", runID); err != nil {
		return fmt.Errorf("storage: cannot delete samples: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM runs WHERE id = ?", runID); err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
