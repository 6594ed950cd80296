package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ordertrack/internal/platform/logger"
	"ordertrack/internal/platform/net/middleware"
	"ordertrack/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	testkit.Serial(t)
	var buf bytes.Buffer
	prev := logger.Replace(zerolog.New(&buf))
	t.Cleanup(func() { logger.Replace(*prev) })
	return &buf
}

func TestAccessLog_PassThroughAndBytes(t *testing.T) {
	buf := captureLogs(t)
	h := middleware.AccessLogZerolog(middleware.AccessLogOptions{})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("hi"))
		_, _ = w.Write([]byte("there"))
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/reports", nil))

	if rr.Code != http.StatusCreated || rr.Body.String() != "hithere" {
		t.Fatalf("got %d %q", rr.Code, rr.Body.String())
	}
	out := buf.String()
	for _, want := range []string{`"status":201`, `"bytes":7`, `"path":"/api/v1/reports"`, `"level":"info"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log %q missing %s", out, want)
		}
	}
}

func TestAccessLog_SlowAndServerErrorsWarn(t *testing.T) {
	buf := captureLogs(t)
	slow := middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: time.Nanosecond})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(50 * time.Microsecond)
	}))
	slow.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/slow", nil))
	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Fatalf("slow request not warned: %s", buf.String())
	}

	buf.Reset()
	failing := middleware.AccessLogZerolog(middleware.AccessLogOptions{})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	failing.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Fatalf("5xx not warned: %s", buf.String())
	}
}

func TestRequestContext_PropagatesID(t *testing.T) {
	buf := captureLogs(t)
	var chain http.Handler = middleware.AccessLogZerolog(middleware.AccessLogOptions{})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	chain = middleware.RequestContext()(chain)
	chain = middleware.RequestID()(chain)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rr := httptest.NewRecorder()
	chain.ServeHTTP(rr, req)

	if rr.Header().Get("X-Request-ID") != "abc-123" {
		t.Fatalf("header = %q", rr.Header().Get("X-Request-ID"))
	}
	if !strings.Contains(buf.String(), `"request_id":"abc-123"`) {
		t.Fatalf("log missing request id: %s", buf.String())
	}
}
