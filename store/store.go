// Package store keeps a history of ranking runs in SQLite.
//
// Each Run records the season, the configuration label and the resulting
// leaderboard, so past rankings can be listed and compared without
// recomputing them. The pure-Go modernc.org/sqlite driver is used; no cgo is
// required.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	// Register the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/lossrank/leaderboard"
)

// ErrNotFound is returned by GetRun for an unknown id.
var ErrNotFound = errors.New("store: run not found")

// Run is one stored ranking.
type Run struct {
	ID         uuid.UUID
	Season     int
	Label      string
	Damping    float64
	Iterations int
	CreatedAt  time.Time
	Entries    []leaderboard.Entry
}

// Store is a SQLite-backed run history. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn (a file path, or ":memory:")
// and creates the schema if needed.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "store: open %s", dsn)
	}
	// SQLite has a single writer, and ":memory:" is per connection.
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "store: ping")
	}

	s := &Store{db: db}
	if err = s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun inserts r and its entries in one transaction. A zero ID is replaced
// by a fresh random UUID and a zero CreatedAt by the current time; both are
// written back to r.
func (s *Store) SaveRun(ctx context.Context, r *Run) error {
	if r == nil {
		return errors.New("store: nil run")
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	r.CreatedAt = r.CreatedAt.UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "store: begin")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO run (id, season, label, damping, iterations, created_ts) VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.Season, r.Label, r.Damping, r.Iterations, r.CreatedAt.UnixNano(),
	); err != nil {
		return errors.Wrapf(err, "store: insert run %s", r.ID)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO run_entry (run_id, place, team, score) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "store: prepare entries")
	}
	defer stmt.Close()
	for _, e := range r.Entries {
		if _, err = stmt.ExecContext(ctx, r.ID.String(), e.Place, e.Team, e.Score); err != nil {
			return errors.Wrapf(err, "store: insert entry %d of run %s", e.Place, r.ID)
		}
	}

	return errors.Wrap(tx.Commit(), "store: commit")
}

// GetRun returns the run with the given id, entries in place order.
func (s *Store) GetRun(ctx context.Context, id uuid.UUID) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, season, label, damping, iterations, created_ts FROM run WHERE id = ?`, id.String())
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrNotFound, "id %s", id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT place, team, score FROM run_entry WHERE run_id = ? ORDER BY place`, id.String())
	if err != nil {
		return nil, errors.Wrap(err, "store: query entries")
	}
	defer rows.Close()

	for rows.Next() {
		var e leaderboard.Entry
		if err = rows.Scan(&e.Place, &e.Team, &e.Score); err != nil {
			return nil, errors.Wrap(err, "store: scan entry")
		}
		r.Entries = append(r.Entries, e)
	}

	return r, errors.Wrap(rows.Err(), "store: iterate entries")
}

// ListRuns returns the newest runs first, without entries. limit <= 0 means no limit.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT id, season, label, damping, iterations, created_ts FROM run ORDER BY created_ts DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "store: query runs")
	}
	defer rows.Close()

	list := make([]*Run, 0)
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, r)
	}

	return list, errors.Wrap(rows.Err(), "store: iterate runs")
}

// scanner is the part of *sql.Row and *sql.Rows that scanRun needs.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var (
		r       Run
		id      string
		created int64
	)
	if err := sc.Scan(&id, &r.Season, &r.Label, &r.Damping, &r.Iterations, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrap(err, "store: scan run")
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.Wrapf(err, "store: run id %q", id)
	}
	r.ID = parsed
	r.CreatedAt = time.Unix(0, created).UTC()

	return &r, nil
}
