package errors

import (
	"context"
	"database/sql"
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestDBErrorCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code ErrorCode
		ok   bool
	}{
		{"nil", nil, ErrorCodeUnknown, false},
		{"no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), ErrorCodeNotFound, true},
		{"pg unique", &pgconn.PgError{Code: "23505"}, ErrorCodeDuplicateKey, true},
		{"pg not null", &pgconn.PgError{Code: "23502"}, ErrorCodeValidation, true},
		{"pg serialization", &pgconn.PgError{Code: "40001"}, ErrorCodeUnavailable, true},
		{"pg other", &pgconn.PgError{Code: "42P01"}, ErrorCodeDB, true},
		{"sqlite unique", stderrs.New("constraint failed: UNIQUE constraint failed: report_runs.id (1555)"), ErrorCodeDuplicateKey, true},
		{"sqlite busy", stderrs.New("database is locked (5) (SQLITE_BUSY)"), ErrorCodeUnavailable, true},
		{"sqlite no table", stderrs.New("SQL logic error: no such table: report_runs (1)"), ErrorCodeDB, true},
		{"foreign", stderrs.New("boom"), ErrorCodeUnknown, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			code, ok := DBErrorCode(c.err)
			if code != c.code || ok != c.ok {
				t.Fatalf("DBErrorCode = (%v, %v), want (%v, %v)", code, ok, c.code, c.ok)
			}
		})
	}
}

func TestFromDB(t *testing.T) {
	if FromDB(nil, "x") != nil {
		t.Fatalf("FromDB(nil) should be nil")
	}
	err := FromDBf(&pgconn.PgError{Code: "23505"}, "insert run %s", "r1")
	if !IsCode(err, ErrorCodeDuplicateKey) || err.Error() == "" {
		t.Fatalf("FromDBf = %v", err)
	}
	if !IsCode(FromDB(stderrs.New("weird"), "x"), ErrorCodeDB) {
		t.Fatalf("unknown driver errors should map to DB")
	}
}

func TestIsRetryable(t *testing.T) {
	if IsRetryable(nil) || IsRetryable(context.Canceled) || IsRetryable(fmt.Errorf("x: %w", context.DeadlineExceeded)) {
		t.Fatalf("nil and context errors are not retryable")
	}
	if !IsRetryable(&pgconn.PgError{Code: "40P01"}) || IsRetryable(&pgconn.PgError{Code: "23505"}) {
		t.Fatalf("pg retry classification wrong")
	}
	if !IsRetryable(stderrs.New("database is locked")) {
		t.Fatalf("sqlite busy should retry")
	}
}
