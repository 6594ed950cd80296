// Package swaggerkit mounts Swagger UI over a static OpenAPI document
package swaggerkit

import (
	"net/http"
	"strconv"

	phttp "ordertrack/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// DocPath is where the JSON document is served
const DocPath = "/api/docs/doc.json"

// skeleton keeps the UI loadable when no document is supplied
var skeleton = []byte(`{"openapi":"3.0.3","info":{"title":"API","version":"0.0.0"},"paths":{}}`)

// Mount the Swagger UI and doc if enabled; an empty doc serves the skeleton
func Mount(r phttp.Router, enabled bool, doc []byte) {
	if !enabled {
		return
	}
	if len(doc) == 0 {
		doc = skeleton
	}
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get(DocPath, serveDoc(doc))
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL(DocPath),
	))
}

func serveDoc(doc []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
		_, _ = w.Write(doc)
	}
}
