// Package module wires the dashboard views into the API using modkit
package module

import (
	"ordertrack/internal/modkit"
	"ordertrack/internal/modkit/httpkit"
	str "ordertrack/internal/platform/strings"
	"ordertrack/internal/services/report/domain"

	dashhttp "ordertrack/internal/services/api/dashboard/http"
)

// Ports declares the injected dashboard port
type Ports struct {
	Dashboard domain.DashboardPort
}

// Module implements the dashboard API module
type Module struct {
	b    modkit.Built
	dash domain.DashboardPort
}

// New constructs the dashboard module
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("dashboard"),
		modkit.WithPrefix("/dashboard"),
	}, opts...)...)

	injected, _ := b.Ports.(Ports)
	if injected.Dashboard == nil {
		panic("dashboard API module requires the Dashboard port")
	}
	return &Module{b: b, dash: injected.Dashboard}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { dashhttp.Register(rr, m.dash) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Ports returns nil, the module only consumes ports
func (m *Module) Ports() any { return nil }
