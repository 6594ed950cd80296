package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "ordertrack/internal/platform/errors"
	pnet "ordertrack/internal/platform/net"
	phttp "ordertrack/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func reqWithReqID(method, path, rid string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	return req.WithContext(pnet.WithRequest(req.Context(), rid))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) phttp.Envelope {
	t.Helper()
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal %q: %v", rec.Body.String(), err)
	}
	return env
}

func TestHandle_OKAndCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.OK(map[string]string{"a": "b"})
	})(rec, reqWithReqID("GET", "/x", "rid-1"))

	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		t.Fatalf("ok => %d %s", rec.Code, rec.Header().Get("Content-Type"))
	}
	env := decode(t, rec)
	if env.StatusCode != 200 || env.RequestID != "rid-1" || env.Data == nil {
		t.Fatalf("bad envelope: %+v", env)
	}

	rec = httptest.NewRecorder()
	phttp.Handle(func(*http.Request) phttp.Response { return phttp.Created(1) })(rec, reqWithReqID("POST", "/x", ""))
	if rec.Code != http.StatusCreated {
		t.Fatalf("created => %d", rec.Code)
	}
}

func TestHandle_ErrorMapsStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{perr.NotFoundf("no report loaded"), http.StatusNotFound},
		{perr.InvalidArgf("bad month"), http.StatusUnprocessableEntity},
		{perr.JSONErrf("invalid JSON"), http.StatusBadRequest},
		{perr.Unsupportedf("only .csv and .xlsx"), http.StatusUnsupportedMediaType},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		phttp.Handle(func(*http.Request) phttp.Response { return phttp.Error(c.err) })(rec, reqWithReqID("GET", "/", "rid-e"))
		if rec.Code != c.want {
			t.Errorf("%v => %d want %d", c.err, rec.Code, c.want)
			continue
		}
		env := decode(t, rec)
		if env.Error == "" || env.RequestID != "rid-e" || env.Data != nil {
			t.Errorf("bad error envelope: %+v", env)
		}
	}
}

func TestHandle_ErrorCarriesField(t *testing.T) {
	rec := httptest.NewRecorder()
	err := perr.WithField(perr.InvalidArgf("limit must be at most 200"), "limit")
	phttp.RespondError(rec, reqWithReqID("GET", "/", ""), err)
	if env := decode(t, rec); env.Field != "limit" {
		t.Fatalf("field = %q", env.Field)
	}
}

func TestHandle_File(t *testing.T) {
	rec := httptest.NewRecorder()
	body := []byte("PK\x03\x04data")
	phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.File("report.xlsx", "application/octet-stream", body)
	})(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != 200 || rec.Body.String() != string(body) {
		t.Fatalf("file => %d %q", rec.Code, rec.Body.String())
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="report.xlsx"` {
		t.Fatalf("disposition = %q", cd)
	}
	if rec.Header().Get("Content-Length") != "10" {
		t.Fatalf("length = %q", rec.Header().Get("Content-Length"))
	}
}

func TestHandle_ExtraHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	phttp.Handle(func(*http.Request) phttp.Response {
		return phttp.Response{Status: http.StatusNoContent, Header: http.Header{"X-Run": {"r1"}}}
	})(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 || rec.Header().Get("X-Run") != "r1" {
		t.Fatalf("no content => %d %q %v", rec.Code, rec.Body.String(), rec.Header())
	}
}

func TestSugar_GetAndPostJSON(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	phttp.GetJSON(r, "/g", func(*http.Request) (any, error) { return "got", nil })
	phttp.PostJSON(r, "/p", func(_ *http.Request, in struct {
		N int `json:"n" validate:"min=1"`
	}) (any, error) {
		return in.N * 2, nil
	})

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/g", nil))
	if env := decode(t, rec); env.Data != "got" {
		t.Fatalf("GET => %+v", env)
	}

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("POST", "/p", strings.NewReader(`{"n":4}`)))
	if env := decode(t, rec); env.Data != float64(8) {
		t.Fatalf("POST => %+v", env)
	}

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("POST", "/p", strings.NewReader(`{"n":0}`)))
	if rec.Code != http.StatusUnprocessableEntity && rec.Code != http.StatusBadRequest {
		t.Fatalf("validation => %d", rec.Code)
	}
}
