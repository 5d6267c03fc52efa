package storages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/reusee/e5"
	"github.com/reusee/turing/encodings"
	"github.com/reusee/turing/logs"
	"github.com/reusee/turing/machines"
	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("not found")

var wrap = e5.Wrap.With(e5.WrapStacktrace)

const schema = `
CREATE TABLE IF NOT EXISTS machines (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL,
	encoding    TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	machine_id  TEXT NOT NULL,
	input       TEXT NOT NULL,
	output      TEXT NOT NULL,
	result      TEXT NOT NULL,
	state       TEXT NOT NULL,
	steps       INTEGER NOT NULL,
	created_at  TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS runs_machine ON runs (machine_id, created_at);
`

// Store keeps encoded machines and a log of simulation runs in SQLite.
// Machines are stored in their flat encoding.
type Store struct {
	db     *sql.DB
	logger logs.Logger
}

func OpenStore(path string, logger logs.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, wrap(err)
	}
	for _, stmt := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		schema,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, wrap(fmt.Errorf("open %s: %w", path, err))
		}
	}
	logger = logs.OrDiscard(logger)
	logger.Debug("store opened", "path", path)
	return &Store{
		db:     db,
		logger: logger,
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts or replaces m.
func (s *Store) Save(ctx context.Context, m encodings.EncodedMachine) error {
	if m.ID == "" {
		return fmt.Errorf("%w: empty id", encodings.ErrInvalidMachine)
	}
	return s.withTx(ctx, func(tx Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO machines (id, name, description, encoding, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				name = excluded.name,
				description = excluded.description,
				encoding = excluded.encoding,
				updated_at = excluded.updated_at`,
			m.ID, m.Name, m.Description, encodings.Encode(m), time.Now().UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return err
		}
		s.logger.DebugContext(ctx, "machine saved", "id", m.ID)
		return nil
	})
}

func scanMachine(scan func(dest ...any) error) (encodings.EncodedMachine, error) {
	var id, name, description, encoding string
	if err := scan(&id, &name, &description, &encoding); err != nil {
		return encodings.EncodedMachine{}, err
	}
	m := encodings.Decode(encoding)
	m.ID = id
	m.Name = name
	m.Description = description
	return m, nil
}

func (s *Store) Load(ctx context.Context, id string) (encodings.EncodedMachine, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, encoding FROM machines WHERE id = ?`,
		id,
	)
	m, err := scanMachine(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return m, fmt.Errorf("%w: machine %s", ErrNotFound, id)
	} else if err != nil {
		return m, wrap(err)
	}
	return m, nil
}

// List returns all stored machines ordered by id.
func (s *Store) List(ctx context.Context) (ret []encodings.EncodedMachine, err error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, encoding FROM machines ORDER BY id`,
	)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()
	for rows.Next() {
		m, err := scanMachine(rows.Scan)
		if err != nil {
			return nil, wrap(err)
		}
		ret = append(ret, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err)
	}
	return ret, nil
}

// Delete removes the machine and its runs.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.withTx(ctx, func(tx Tx) error {
		res, err := tx.Exec(ctx, `DELETE FROM machines WHERE id = ?`, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return wrap(err)
		}
		if n == 0 {
			return fmt.Errorf("%w: machine %s", ErrNotFound, id)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM runs WHERE machine_id = ?`, id); err != nil {
			return err
		}
		return nil
	})
}

// Run is one logged simulation.
type Run struct {
	ID        string
	MachineID string
	Input     string
	Output    string
	Result    machines.Result
	State     string
	Steps     uint64
	CreatedAt time.Time
}

// RecordRun stores run, assigning an id and timestamp when missing.
func (s *Store) RecordRun(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	run.CreatedAt = run.CreatedAt.UTC()
	err := s.withTx(ctx, func(tx Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO runs (id, machine_id, input, output, result, state, steps, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, run.MachineID, run.Input, run.Output, string(run.Result), run.State, int64(run.Steps),
			run.CreatedAt.Format(time.RFC3339Nano),
		)
		return err
	})
	if err != nil {
		return run, err
	}
	s.logger.DebugContext(ctx, "run recorded", "id", run.ID, "machine", run.MachineID, "result", run.Result)
	return run, nil
}

// Runs returns the runs of a machine, oldest first.
func (s *Store) Runs(ctx context.Context, machineID string) (ret []Run, err error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, machine_id, input, output, result, state, steps, created_at
		FROM runs WHERE machine_id = ? ORDER BY created_at, id`,
		machineID,
	)
	if err != nil {
		return nil, wrap(err)
	}
	defer rows.Close()
	for rows.Next() {
		var run Run
		var result, createdAt string
		var steps int64
		if err := rows.Scan(
			&run.ID, &run.MachineID, &run.Input, &run.Output,
			&result, &run.State, &steps, &createdAt,
		); err != nil {
			return nil, wrap(err)
		}
		run.Result = machines.Result(result)
		run.Steps = uint64(steps)
		run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, wrap(err)
		}
		ret = append(ret, run)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err)
	}
	return ret, nil
}
