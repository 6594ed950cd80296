// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"ordertrack/internal/modkit"
	"ordertrack/internal/modkit/httpkit"
	str "ordertrack/internal/platform/strings"

	metahttp "ordertrack/internal/services/api/meta/http"
)

// ServiceName is reported by health and version
const ServiceName = "ordertrack-api"

// Module implements the modkit.Module interface
type Module struct {
	b    modkit.Built
	deps metahttp.Deps
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	hd := metahttp.Deps{
		ServiceName: ServiceName,
		StartedAt:   deps.Now(),
		Now:         deps.Now,
	}
	// a store without a backend has nothing to ping
	if deps.Store != nil && deps.Store.DB != nil {
		hd.Ledger = deps.Store
	}
	return &Module{b: b, deps: hd}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "meta") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
