package errors

// Mapping of driver errors from the run ledger backends onto ErrorCode

import (
	"context"
	"database/sql"
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the ledger cares about
const (
	pgErrUniqueViolation   = "23505"
	pgErrNotNullViolation  = "23502"
	pgErrCheckViolation    = "23514"
	pgErrSerializationFail = "40001"
	pgErrDeadlockDetected  = "40P01"
	pgErrLockNotAvailable  = "55P03"
	pgErrCannotConnectNow  = "57P03"
)

// DBErrorCode classifies a Postgres or SQLite error; !ok means err is not a driver error we recognise
func DBErrorCode(err error) (ErrorCode, bool) {
	if err == nil {
		return ErrorCodeUnknown, false
	}
	if stderrs.Is(err, sql.ErrNoRows) || stderrs.Is(err, pgx.ErrNoRows) {
		return ErrorCodeNotFound, true
	}

	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrUniqueViolation:
			return ErrorCodeDuplicateKey, true
		case pgErrNotNullViolation, pgErrCheckViolation:
			return ErrorCodeValidation, true
		case pgErrCannotConnectNow, pgErrSerializationFail, pgErrDeadlockDetected, pgErrLockNotAvailable:
			return ErrorCodeUnavailable, true
		}
		return ErrorCodeDB, true
	}

	// modernc sqlite reports through message text: "constraint failed: UNIQUE constraint failed: ..."
	s := strings.ToLower(Root(err).Error())
	switch {
	case strings.Contains(s, "unique constraint failed"):
		return ErrorCodeDuplicateKey, true
	case strings.Contains(s, "not null constraint failed"), strings.Contains(s, "check constraint failed"):
		return ErrorCodeValidation, true
	case strings.Contains(s, "database is locked"), strings.Contains(s, "sqlite_busy"):
		return ErrorCodeUnavailable, true
	case strings.Contains(s, "sqlite"), strings.Contains(s, "no such table"):
		return ErrorCodeDB, true
	}
	return ErrorCodeUnknown, false
}

// FromDB wraps a driver error with its mapped code; unrecognised errors become ErrorCodeDB
func FromDB(err error, msg string) error {
	if err == nil {
		return nil
	}
	if code, ok := DBErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}

// FromDBf is the formatted variant of FromDB
func FromDBf(err error, format string, a ...any) error {
	return FromDB(err, fmt.Sprintf(format, a...))
}

// IsRetryable reports whether a database error is transient contention worth retrying
// local cancellation and deadlines are never retryable
func IsRetryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrSerializationFail, pgErrDeadlockDetected, pgErrLockNotAvailable, pgErrCannotConnectNow:
			return true
		}
		return false
	}
	s := strings.ToLower(Root(err).Error())
	return strings.Contains(s, "database is locked") ||
		strings.Contains(s, "sqlite_busy") ||
		strings.Contains(s, "commit unexpectedly resulted in rollback")
}
