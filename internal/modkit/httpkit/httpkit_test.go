package httpkit_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ordertrack/internal/modkit/httpkit"
	perr "ordertrack/internal/platform/errors"
	phttp "ordertrack/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func newRouter() (*chi.Mux, httpkit.Router) {
	m := chi.NewRouter()
	return m, phttp.AdaptChi(m)
}

func serve(m http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	m.ServeHTTP(rec, req)
	return rec
}

func TestMountAPIV1_StackAndSugar(t *testing.T) {
	m, r := newRouter()
	httpkit.MountAPIV1(r, httpkit.CommonStack(httpkit.StackOptions{CORSOrigins: []string{"*"}, Timeout: time.Second}), func(api httpkit.Router) {
		httpkit.Get(api, "/ping", func(*http.Request) (any, error) { return "pong", nil })
		httpkit.Get(api, "/missing", func(*http.Request) (any, error) { return nil, perr.NotFoundf("no report loaded") })
		httpkit.Get(api, "/file", func(*http.Request) (any, error) {
			return httpkit.File("a.xlsx", "application/octet-stream", []byte("xx")), nil
		})
		httpkit.PostJSON(api, "/echo", func(_ *http.Request, in struct {
			Name string `json:"name" validate:"required"`
		}) (any, error) {
			return in.Name, nil
		})
		httpkit.Post(api, "/raw", func(r *http.Request) (any, error) {
			return httpkit.Created(r.Header.Get("Content-Type")), nil
		})
	})

	rec := serve(m, "GET", "/api/v1/ping", "")
	var env httpkit.Envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if rec.Code != 200 || env.Data != "pong" || env.RequestID == "" {
		t.Fatalf("ping => %d %+v", rec.Code, env)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("request id header missing")
	}

	if rec = serve(m, "GET", "/api/v1/missing", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("missing => %d", rec.Code)
	}
	if rec = serve(m, "GET", "/api/v1/file", ""); rec.Body.String() != "xx" {
		t.Fatalf("file => %q", rec.Body.String())
	}
	if rec = serve(m, "POST", "/api/v1/echo", `{"name":"x"}`); rec.Code != 200 {
		t.Fatalf("echo => %d %s", rec.Code, rec.Body.String())
	}
	if rec = serve(m, "POST", "/api/v1/echo", `{"name":""}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("echo invalid => %d", rec.Code)
	}
	if rec = serve(m, "POST", "/api/v1/raw", ""); rec.Code != http.StatusCreated {
		t.Fatalf("raw => %d", rec.Code)
	}
	if rec = serve(m, "GET", "/ping", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("unversioned path should 404, got %d", rec.Code)
	}
}

func TestCommonStack_Defaults(t *testing.T) {
	base := httpkit.CommonStack(httpkit.StackOptions{})
	withCORS := httpkit.CommonStack(httpkit.StackOptions{CORSOrigins: []string{"https://example.com"}})
	if len(withCORS) != len(base)+1 {
		t.Fatalf("cors not appended: %d vs %d", len(withCORS), len(base))
	}
}

func TestMountUnder_AppliesMiddleware(t *testing.T) {
	m, r := newRouter()
	httpkit.MountUnder(r, "/x", []func(http.Handler) http.Handler{func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Mod", "1")
			next.ServeHTTP(w, req)
		})
	}}, func(sub httpkit.Router) {
		httpkit.Get(sub, "/y", func(*http.Request) (any, error) { return nil, nil })
	})
	if rec := serve(m, "GET", "/x/y", ""); rec.Header().Get("X-Mod") != "1" {
		t.Fatalf("middleware not applied: %v", rec.Header())
	}
}

func TestQueryHelpers(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/x?bucket=GCP,%20AZURE&bucket=&bucket=Virtual%20CPU&limit=7", nil)
	got := httpkit.QueryList(r, "bucket")
	if len(got) != 3 || got[0] != "GCP" || got[1] != "AZURE" || got[2] != "Virtual CPU" {
		t.Fatalf("list = %q", got)
	}
	if httpkit.QueryList(r, "missing") != nil {
		t.Fatal("absent list must be nil")
	}
	if n, err := httpkit.QueryInt(r, "limit", 20, 1, 200); err != nil || n != 7 {
		t.Fatalf("limit = %d, %v", n, err)
	}
}
