// Package module wires date resolution into the API using modkit
package module

import (
	"ordertrack/internal/core/series"
	"ordertrack/internal/modkit"
	"ordertrack/internal/modkit/httpkit"
	str "ordertrack/internal/platform/strings"
	dateshttp "ordertrack/internal/services/api/dates/http"
	datessvc "ordertrack/internal/services/api/dates/service"
)

// Ports exposed by the dates module
type Ports struct {
	Resolver datessvc.Service
}

// Module implements the dates module
type Module struct {
	b     modkit.Built
	svc   datessvc.Service
	ports Ports
}

// New constructs the dates module; chunking follows CORE_REPORT_WORKERS and CORE_REPORT_CHUNK
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("dates"), modkit.WithPrefix("/dates")}, opts...)...)

	core := deps.Cfg.Prefix("CORE_REPORT_")
	s := datessvc.New(deps.Clock, series.Options{
		Workers:   core.MayInt("WORKERS", 0),
		ChunkSize: core.MayInt("CHUNK", 2048),
	})
	return &Module{b: b, svc: s, ports: Ports{Resolver: s}}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { dateshttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
