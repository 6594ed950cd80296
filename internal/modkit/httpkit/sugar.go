package httpkit

import (
	"net/http"
	"strings"

	phttp "ordertrack/internal/platform/net/http"
	"ordertrack/internal/platform/net/http/bind"
)

// Get registers a no-body handler and uses the envelope adapter
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// Post registers a handler that reads its own body (multipart, raw)
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, Call(h))
}

// PostJSON binds and validates T before calling h
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}

// QueryInt reads a bounded integer query parameter, def when absent
func QueryInt(r *http.Request, name string, def, lo, hi int) (int, error) {
	return bind.QueryInt(r, name, def, lo, hi)
}

// QueryList collects a repeated query parameter, comma separated values are split
func QueryList(r *http.Request, name string) []string {
	var out []string
	for _, v := range r.URL.Query()[name] {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
