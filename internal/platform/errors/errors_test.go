package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeUnreadable, http.StatusUnprocessableEntity},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnsupportedFormat, http.StatusUnsupportedMediaType},
		{ErrorCodeTooLarge, http.StatusRequestEntityTooLarge},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodeIO, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorTypeAndMethods(t *testing.T) {
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	e1 := Newf(ErrorCodeUnsupportedFormat, "unsupported source %q", "orders.pdf")
	if CodeOf(e1) != ErrorCodeUnsupportedFormat || e1.Error() != `unsupported source "orders.pdf"` {
		t.Fatalf("Newf = %v (%v)", e1, CodeOf(e1))
	}

	src := stderrs.New("root")
	e2 := Wrapf(src, ErrorCodeUnreadable, "read %s", "a.csv")
	if e2.Error() != "read a.csv: root" {
		t.Fatalf("Wrapf().Error = %q", e2.Error())
	}
	if stderrs.Unwrap(e2) != src {
		t.Fatalf("Wrap did not keep orig")
	}
	if got, ok := As(e2); !ok || got.Code() != ErrorCodeUnreadable {
		t.Fatalf("As() failed for our error")
	}
	if _, ok := As(src); ok {
		t.Fatalf("As() true for foreign error")
	}

	e3 := WithOp(WithField(e2, "files"), "ingest.read")
	if fe, ok := As(e3); !ok || fe.Field() != "files" || fe.Op() != "ingest.read" {
		t.Fatalf("WithField/WithOp failed")
	}
	if orig, _ := As(e2); orig.Field() != "" || orig.Op() != "" {
		t.Fatalf("copy-on-write mutated original")
	}

	if wf := WireFrom(nil); wf != (Wire{}) {
		t.Fatalf("WireFrom(nil) = %+v", wf)
	}
	if wf := WireFrom(src); wf.Code != ErrorCodeUnknown || wf.Message != "root" {
		t.Fatalf("WireFrom(foreign) = %+v", wf)
	}
	if wf := WireFrom(e3); wf.Code != ErrorCodeUnreadable || wf.Message != "read a.csv" || wf.Field != "files" {
		t.Fatalf("WireFrom(ours) = %+v", wf)
	}
	if HTTPStatus(e2) != http.StatusUnprocessableEntity {
		t.Fatalf("HTTPStatus mismatch")
	}

	if !IsCode(NotFoundf("x"), ErrorCodeNotFound) ||
		!IsCode(InvalidArgf("x"), ErrorCodeInvalidArgument) ||
		!IsCode(JSONErrf("x"), ErrorCodeJSON) ||
		!IsCode(PanicErrf("x"), ErrorCodePanic) ||
		!IsCode(Unsupportedf("x"), ErrorCodeUnsupportedFormat) ||
		!IsCode(Unreadablef("x"), ErrorCodeUnreadable) ||
		!IsCode(Unavailablef("x"), ErrorCodeUnavailable) {
		t.Fatalf("sugar helpers code mismatch")
	}

	if WrapIf(nil, ErrorCodeIO, "ignored") != nil || WrapIf(src, ErrorCodeIO, "io") == nil {
		t.Fatalf("WrapIf")
	}

	deep := fmt.Errorf("level2: %w", fmt.Errorf("level1: %w", src))
	if got := Root(deep); got == nil || got.Error() != "root" {
		t.Fatalf("Root() = %v", got)
	}
	if !IsCode(ErrNotFound, ErrorCodeNotFound) {
		t.Fatalf("ErrNotFound code mismatch")
	}
}
