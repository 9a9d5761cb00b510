package store

import (
	"context"

	"github.com/pkg/errors"
)

// schema is applied on every Open; each statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS run (
		id         TEXT    NOT NULL PRIMARY KEY,
		season     INTEGER NOT NULL,
		label      TEXT    NOT NULL,
		damping    REAL    NOT NULL,
		iterations INTEGER NOT NULL DEFAULT 0,
		created_ts INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_run_created_ts ON run (created_ts)`,
	`CREATE TABLE IF NOT EXISTS run_entry (
		run_id TEXT    NOT NULL REFERENCES run (id) ON DELETE CASCADE,
		place  INTEGER NOT NULL,
		team   TEXT    NOT NULL,
		score  REAL    NOT NULL,
		PRIMARY KEY (run_id, place)
	)`,
}

func (s *Store) migrate(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "store: begin migration")
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range schema {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return errors.Wrapf(err, "store: migration step %d", i)
		}
	}

	return errors.Wrap(tx.Commit(), "store: commit migration")
}
