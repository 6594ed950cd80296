// Package store opens the SQL backend behind the report run ledger
// SQLite is the default, Postgres is optional; both sit behind the same seam
package store

import (
	"context"
	"errors"
	"fmt"

	"ordertrack/internal/platform/logger"
)

// Store is the facade over the configured backend
// zero value is safe but has no DB
type Store struct {
	// Log is the logger used by subclients
	Log logger.Logger

	// DB is the sql seam, nil when the ledger is disabled
	DB TxRunner

	// Driver names the backend behind DB ("sqlite", "pgsql")
	Driver string

	tracer QueryTracer
}

// Row exposes the minimal scan contract a single row needs
type Row interface {
	Scan(dest ...any) error
}

// Rows exposes the minimal iteration and scan for a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag is a tiny interface to inspect command results
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the read and write surface repos use
// statements use '?' placeholders, backends rebind as needed
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner wraps transaction execution around a function
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// Open constructs a Store for cfg.Driver; an empty driver leaves DB nil
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	s.Log = s.Log.With().Str("component", "store").Logger()

	var (
		db  TxRunner
		err error
	)
	switch cfg.Driver {
	case "":
		return s, nil
	case DriverSQLite:
		db, err = openSQLite(ctx, cfg.SQLite, s)
	case DriverPG:
		db, err = openPG(ctx, cfg.PG, s)
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}
	s.DB = db
	s.Driver = cfg.Driver
	s.Log.Info().Str("driver", cfg.Driver).Msg("store opened")
	return s, nil
}

// Guard pings the backend when one is configured
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	if p, ok := s.DB.(Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("%s: %w", s.Driver, err)
		}
	}
	return nil
}

// Close releases the backend, nil DB is ignored
func (s *Store) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}
	if c, ok := s.DB.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
