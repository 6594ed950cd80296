package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	phttp "ordertrack/internal/platform/net/http"
)

type guard struct{ err error }

func (g guard) Guard(context.Context) error { return g.err }

func serve(t *testing.T, d Deps, path string, data any) int {
	t.Helper()
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), d)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	env := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s: %v: %s", path, err, rec.Body.String())
	}
	if err := json.Unmarshal(env.Data, data); err != nil {
		t.Fatalf("%s data: %v", path, err)
	}
	return rec.Code
}

func TestHealth(t *testing.T) {
	start := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	d := Deps{ServiceName: "svc", StartedAt: start, Now: func() time.Time { return start.Add(90 * time.Second) }}
	var got HealthResponse
	if code := serve(t, d, "/health", &got); code != http.StatusOK {
		t.Fatalf("code = %d", code)
	}
	want := HealthResponse{OK: true, Service: "svc", Started: "2024-06-03T09:00:00Z", Uptime: 90, Now: "2024-06-03T09:01:30Z"}
	if got != want {
		t.Fatalf("health = %+v", got)
	}
}

func TestReady(t *testing.T) {
	cases := []struct {
		name   string
		ledger Guarder
		status string
		check  string
	}{
		{"no ledger", nil, "ok", "skipped"},
		{"ledger up", guard{}, "ok", "ok"},
		{"ledger down", guard{errors.New("sqlite: locked")}, "fail", "fail"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got ReadyResponse
			serve(t, Deps{ServiceName: "svc", Ledger: tc.ledger}, "/ready", &got)
			if got.Status != tc.status || len(got.Checks) != 1 || got.Checks[0].Status != tc.check {
				t.Fatalf("ready = %+v", got)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	var got struct {
		Service string `json:"service"`
		Version string `json:"version"`
	}
	serve(t, Deps{ServiceName: "ordertrack-api"}, "/version", &got)
	if got.Service != "ordertrack-api" || got.Version == "" {
		t.Fatalf("version = %+v", got)
	}
}
