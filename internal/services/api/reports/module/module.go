// Package module wires report endpoints into the API using modkit
package module

import (
	"ordertrack/internal/modkit"
	"ordertrack/internal/modkit/httpkit"
	str "ordertrack/internal/platform/strings"
	"ordertrack/internal/services/report/domain"

	reportshttp "ordertrack/internal/services/api/reports/http"
)

// Ports declares the report service ports this module needs injected
type Ports struct {
	Generator domain.GeneratorPort
	Latest    domain.LatestPort
	Runs      domain.RunsPort
}

// Module implements the reports API module
type Module struct {
	b    modkit.Built
	deps reportshttp.Deps
}

// New constructs the reports module; API_UPLOAD_MAX_MB bounds a single upload
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("reports"),
		modkit.WithPrefix("/reports"),
	}, opts...)...)

	injected, _ := b.Ports.(Ports)
	if injected.Generator == nil || injected.Latest == nil || injected.Runs == nil {
		panic("reports API module requires the report service ports")
	}

	return &Module{b: b, deps: reportshttp.Deps{
		Generator: injected.Generator,
		Latest:    injected.Latest,
		Runs:      injected.Runs,
		MaxUpload: int64(deps.Cfg.Prefix("API_").MayInt("UPLOAD_MAX_MB", 64)) << 20,
	}}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { reportshttp.Register(rr, m.deps) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Ports returns nil, the module only consumes ports
func (m *Module) Ports() any { return nil }
