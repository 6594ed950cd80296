// Package module implements the report service module
package module

import (
	"ordertrack/internal/modkit"
	"ordertrack/internal/modkit/httpkit"
	"ordertrack/internal/services/report/domain"
	"ordertrack/internal/services/report/repo"
	"ordertrack/internal/services/report/service"
)

// Ports exposed by the report module
type Ports struct {
	Generator domain.GeneratorPort
	Latest    domain.LatestPort
	Runs      domain.RunsPort
	Dashboard domain.DashboardPort
}

// Module implements the report service module
type Module struct {
	deps  modkit.Deps
	svc   *service.Service
	ports Ports
}

// New constructs a new report module
func New(deps modkit.Deps, opts Options) *Module {
	svc := service.New(deps.DB(), repo.NewSQL(), service.Config{
		TopN:      opts.TopN,
		Workers:   opts.Workers,
		ChunkSize: opts.ChunkSize,
		OutputDir: opts.OutputDir,
		Clock:     deps.Clock,
	})

	m := &Module{deps: deps, svc: svc}
	m.ports = Ports{
		Generator: svc,
		Latest:    svc,
		Runs:      svc,
		Dashboard: service.NewDashboard(svc),
	}
	return m
}

// Service returns the concrete service for startup tasks
func (m *Module) Service() *service.Service { return m.svc }

// Name satisfies modkit.Module
func (m *Module) Name() string { return "report" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module, the API modules own the routes
func (m *Module) MountRoutes(httpkit.Router) {}
