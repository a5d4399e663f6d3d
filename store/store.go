// Package store persists game lists and sampling runs in SQLite.
//
// Schema:
//
//	games        one row per game, id gives insertion order
//	runs         one row per sampling run, keyed by a UUID
//	run_samples  one row per (run, player) holding that player's chain as JSON
//
// Every method takes a context and is safe for concurrent use.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/mhrank/games"
	"github.com/katalvlaran/mhrank/matrix"
	"github.com/katalvlaran/mhrank/mh"
)

// Sentinel errors for persistence.
var (
	// ErrRunNotFound is returned when no run has the requested id.
	ErrRunNotFound = errors.New("store: run not found")

	// ErrNilResult is returned when SaveRun is given a nil result or sample matrix.
	ErrNilResult = errors.New("store: result is nil")

	// ErrCorruptRun is returned when stored samples do not match the run's shape.
	ErrCorruptRun = errors.New("store: stored samples do not match run shape")
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id     INTEGER PRIMARY KEY AUTOINCREMENT,
	winner INTEGER NOT NULL,
	loser  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	label      TEXT NOT NULL DEFAULT '',
	source     TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL,
	players    INTEGER NOT NULL,
	sweeps     INTEGER NOT NULL,
	seed       INTEGER NOT NULL,
	step_scale REAL NOT NULL,
	accepted   INTEGER NOT NULL,
	total      INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS run_samples (
	run_id       TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	player       INTEGER NOT NULL,
	samples_json TEXT NOT NULL,
	PRIMARY KEY (run_id, player)
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`

// Store wraps a SQLite connection pool.
type Store struct {
	db *sqlx.DB
}

// RunMeta describes where a run came from. Zero CreatedAt means now.
type RunMeta struct {
	Label     string
	Source    string
	CreatedAt time.Time
}

// Run is one row of the runs table.
type Run struct {
	ID        string    `db:"id"`
	Label     string    `db:"label"`
	Source    string    `db:"source"`
	CreatedAt time.Time `db:"created_at"`
	Players   int       `db:"players"`
	Sweeps    int       `db:"sweeps"`
	Seed      int64     `db:"seed"`
	StepScale float64   `db:"step_scale"`
	Accepted  int       `db:"accepted"`
	Total     int       `db:"total"`
}

// Open opens or creates the database at path and migrates the schema.
// Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if path == ":memory:" {
		// each pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	if _, err = db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertGames appends gs in order inside one transaction.
func (s *Store) InsertGames(ctx context.Context, gs []games.Game) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `INSERT INTO games (winner, loser) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("store: prepare: %w", err)
	}
	defer stmt.Close()

	for k, g := range gs {
		if _, err = stmt.ExecContext(ctx, g.Winner, g.Loser); err != nil {
			return fmt.Errorf("store: insert game %d: %w", k, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}

	return nil
}

// LoadGames returns every stored game in insertion order together with
// max index + 1 as the player count.
func (s *Store) LoadGames(ctx context.Context) ([]games.Game, int, error) {
	var gs []games.Game
	err := s.db.SelectContext(ctx, &gs, `SELECT winner, loser FROM games ORDER BY id`)
	if err != nil {
		return nil, 0, fmt.Errorf("store: load games: %w", err)
	}

	return gs, games.MaxPlayer(gs) + 1, nil
}

// SaveRun stores res under a fresh UUID. The run row and all sample rows are
// written in one transaction.
func (s *Store) SaveRun(ctx context.Context, meta RunMeta, res *mh.Result) (uuid.UUID, error) {
	if res == nil || res.Samples == nil {
		return uuid.Nil, ErrNilResult
	}
	id := uuid.New()
	created := meta.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	players, sweeps := res.Samples.Shape()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `INSERT INTO runs
		(id, label, source, created_at, players, sweeps, seed, step_scale, accepted, total)
		VALUES (:id, :label, :source, :created_at, :players, :sweeps, :seed, :step_scale, :accepted, :total)`,
		Run{
			ID:        id.String(),
			Label:     meta.Label,
			Source:    meta.Source,
			CreatedAt: created.UTC(),
			Players:   players,
			Sweeps:    sweeps,
			Seed:      res.Seed,
			StepScale: res.StepScale,
			Accepted:  res.Accepted,
			Total:     res.Total,
		})
	if err != nil {
		return uuid.Nil, fmt.Errorf("store: insert run: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx, `INSERT INTO run_samples (run_id, player, samples_json) VALUES (?, ?, ?)`)
	if err != nil {
		return uuid.Nil, fmt.Errorf("store: prepare: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < players; i++ {
		row, rerr := res.Samples.Row(i)
		if rerr != nil {
			return uuid.Nil, rerr
		}
		blob, merr := json.Marshal(row)
		if merr != nil {
			return uuid.Nil, fmt.Errorf("store: encode player %d: %w", i, merr)
		}
		if _, err = stmt.ExecContext(ctx, id.String(), i, string(blob)); err != nil {
			return uuid.Nil, fmt.Errorf("store: insert samples for player %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("store: commit: %w", err)
	}

	return id, nil
}

// LoadRun returns the run row for id.
func (s *Store) LoadRun(ctx context.Context, id uuid.UUID) (Run, error) {
	var r Run
	err := s.db.GetContext(ctx, &r, `SELECT * FROM runs WHERE id = ?`, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("store: load run: %w", err)
	}

	return r, nil
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	var rs []Run
	if err := s.db.SelectContext(ctx, &rs, `SELECT * FROM runs ORDER BY created_at DESC, id`); err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}

	return rs, nil
}

// LoadRunSamples rebuilds the players × sweeps sample matrix of run id.
func (s *Store) LoadRunSamples(ctx context.Context, id uuid.UUID) (*matrix.Dense, error) {
	r, err := s.LoadRun(ctx, id)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Player int    `db:"player"`
		JSON   string `db:"samples_json"`
	}
	err = s.db.SelectContext(ctx, &rows,
		`SELECT player, samples_json FROM run_samples WHERE run_id = ? ORDER BY player`, id.String())
	if err != nil {
		return nil, fmt.Errorf("store: load samples: %w", err)
	}
	if len(rows) != r.Players {
		return nil, fmt.Errorf("%w: %d rows for %d players", ErrCorruptRun, len(rows), r.Players)
	}

	m, err := matrix.NewDense(r.Players, r.Sweeps)
	if err != nil {
		return nil, err
	}
	for k, row := range rows {
		var vals []float64
		if err = json.Unmarshal([]byte(row.JSON), &vals); err != nil {
			return nil, fmt.Errorf("store: decode player %d: %w", row.Player, err)
		}
		if row.Player != k || len(vals) != r.Sweeps {
			return nil, fmt.Errorf("%w: player %d", ErrCorruptRun, row.Player)
		}
		for t, v := range vals {
			if err = m.Set(k, t, v); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}
