// Package repo provides the report run ledger storage
package repo

import (
	"context"
	"strings"
	"time"

	"ordertrack/internal/modkit/repokit"
	perr "ordertrack/internal/platform/errors"
	"ordertrack/internal/platform/store"
	"ordertrack/internal/services/report/domain"
)

// Schema creates the ledger table; statements run in both SQLite and Postgres
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS report_runs (
		id           TEXT PRIMARY KEY,
		started_at   TEXT NOT NULL,
		finished_at  TEXT NOT NULL,
		today        TEXT NOT NULL,
		sources      TEXT NOT NULL DEFAULT '',
		rows_in      BIGINT NOT NULL DEFAULT 0,
		duplicates   BIGINT NOT NULL DEFAULT 0,
		resolved     BIGINT NOT NULL DEFAULT 0,
		unresolvable BIGINT NOT NULL DEFAULT 0,
		file         TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL,
		error        TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS report_runs_started_idx ON report_runs (started_at)`,
}

// timestamps are stored as fixed width UTC text so they sort in both backends
const tsLayout = "2006-01-02T15:04:05.000000Z"

// sources are joined on newlines, file names never contain one
const sourceSep = "\n"

type (
	sqlRepo struct{ q repokit.Queryer }
	binder  struct{}
)

// NewSQL constructs a new repo binder over the store seam
func NewSQL() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &sqlRepo{q: q} }

// Storage defines the ledger repository
type Storage interface {
	Insert(ctx context.Context, r domain.Run) error
	Recent(ctx context.Context, limit int) ([]domain.Run, error)
	LatestOK(ctx context.Context) (domain.Run, error)
}

// Migrate creates the ledger table when missing
func Migrate(ctx context.Context, db repokit.TxRunner) error {
	if err := store.Migrate(ctx, db, Schema...); err != nil {
		return perr.FromDB(err, "ledger migrate")
	}
	return nil
}

const columns = `id, started_at, finished_at, today, sources, rows_in, duplicates,
	resolved, unresolvable, file, status, error`

// Insert implements Storage
func (s *sqlRepo) Insert(ctx context.Context, r domain.Run) error {
	err := store.ExecOne(ctx, s.q,
		`INSERT INTO report_runs (`+columns+`) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		r.ID, r.StartedAt.UTC().Format(tsLayout), r.FinishedAt.UTC().Format(tsLayout), r.Today,
		strings.Join(r.Sources, sourceSep), int64(r.Rows), int64(r.Duplicates),
		int64(r.Resolved), int64(r.Unresolvable), r.File, r.Status, r.Error,
	)
	if err != nil {
		return perr.WithOp(perr.FromDB(err, "insert run"), "ledger.insert")
	}
	return nil
}

// Recent implements Storage, newest first
func (s *sqlRepo) Recent(ctx context.Context, limit int) ([]domain.Run, error) {
	out, err := store.Many(ctx, s.q, scanRun,
		`SELECT `+columns+` FROM report_runs ORDER BY started_at DESC, id DESC LIMIT ?`, int64(limit))
	if err != nil {
		return nil, perr.WithOp(perr.FromDB(err, "list runs"), "ledger.recent")
	}
	if out == nil {
		out = []domain.Run{}
	}
	return out, nil
}

// LatestOK implements Storage; no successful run is perr.ErrNotFound
func (s *sqlRepo) LatestOK(ctx context.Context) (domain.Run, error) {
	r, err := store.One(ctx, s.q, scanRun,
		`SELECT `+columns+` FROM report_runs WHERE status = ? ORDER BY started_at DESC, id DESC LIMIT 1`, domain.RunOK)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.Run{}, err
		}
		return domain.Run{}, perr.WithOp(perr.FromDB(err, "latest run"), "ledger.latest")
	}
	return r, nil
}

func scanRun(row store.Row) (domain.Run, error) {
	var (
		r                       domain.Run
		started, finished, srcs string
		rows, dups, ok, bad     int64
	)
	if err := row.Scan(&r.ID, &started, &finished, &r.Today, &srcs, &rows, &dups,
		&ok, &bad, &r.File, &r.Status, &r.Error); err != nil {
		return domain.Run{}, err
	}
	r.StartedAt, _ = time.Parse(tsLayout, started)
	r.FinishedAt, _ = time.Parse(tsLayout, finished)
	r.Sources = []string{}
	if srcs != "" {
		r.Sources = strings.Split(srcs, sourceSep)
	}
	r.Rows, r.Duplicates, r.Resolved, r.Unresolvable = int(rows), int(dups), int(ok), int(bad)
	return r, nil
}
