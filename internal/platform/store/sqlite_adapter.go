package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// sqliteAdapter wraps database/sql over modernc sqlite and implements TxRunner
type sqliteAdapter struct {
	db *sql.DB
	tracing
}

func newSQLiteAdapter(db *sql.DB, tr tracing) *sqliteAdapter {
	return &sqliteAdapter{db: db, tracing: tr}
}

func (a *sqliteAdapter) Ping(ctx context.Context) error { return a.db.PingContext(ctx) }
func (a *sqliteAdapter) Close() error                   { return a.db.Close() }

func (a *sqliteAdapter) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	return sqlQuerier{q: a.db, tracing: a.tracing}.Exec(ctx, q, args...)
}

func (a *sqliteAdapter) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	return sqlQuerier{q: a.db, tracing: a.tracing}.Query(ctx, q, args...)
}

func (a *sqliteAdapter) QueryRow(ctx context.Context, q string, args ...any) Row {
	return sqlQuerier{q: a.db, tracing: a.tracing}.QueryRow(ctx, q, args...)
}

func (a *sqliteAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(sqlQuerier{q: tx, tracing: a.tracing}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// dbQuerier is the surface shared by *sql.DB and *sql.Tx
type dbQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type sqlQuerier struct {
	q dbQuerier
	tracing
}

func (s sqlQuerier) Exec(ctx context.Context, q string, args ...any) (CommandTag, error) {
	start := time.Now()
	res, err := s.q.ExecContext(ctx, q, args...)
	s.emit(ctx, q, args, start, err)
	if err != nil {
		return sqlTag{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return sqlTag{}, err
	}
	return sqlTag{n: n}, nil
}

func (s sqlQuerier) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := s.q.QueryContext(ctx, q, args...)
	s.emit(ctx, q, args, start, err)
	if err != nil {
		return nil, err
	}
	return sqlRows{r: rs}, nil
}

func (s sqlQuerier) QueryRow(ctx context.Context, q string, args ...any) Row {
	start := time.Now()
	r := s.q.QueryRowContext(ctx, q, args...)
	return sqlRow{
		r: r,
		after: func(scanErr error) {
			s.emit(ctx, q, args, start, scanErr)
		},
	}
}

type sqlRow struct {
	r     *sql.Row
	after func(error)
}

func (x sqlRow) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return err
}

type sqlRows struct{ r *sql.Rows }

func (x sqlRows) Next() bool            { return x.r.Next() }
func (x sqlRows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x sqlRows) Err() error            { return x.r.Err() }
func (x sqlRows) Close()                { _ = x.r.Close() }
func (x sqlRows) Columns() []string {
	cols, err := x.r.Columns()
	if err != nil {
		return nil
	}
	return cols
}

type sqlTag struct{ n int64 }

func (t sqlTag) String() string      { return fmt.Sprintf("ROWS %d", t.n) }
func (t sqlTag) RowsAffected() int64 { return t.n }
