// Package api composes the HTTP API from the service modules
package api

import (
	"context"
	_ "embed"
	"time"

	"ordertrack/internal/platform/config"
	"ordertrack/internal/platform/logger"
	"ordertrack/internal/platform/metrics"
	phttp "ordertrack/internal/platform/net/http"
	"ordertrack/internal/platform/store"
	ptime "ordertrack/internal/platform/time"

	"ordertrack/internal/modkit"
	"ordertrack/internal/modkit/httpkit"
	"ordertrack/internal/modkit/module"
	"ordertrack/internal/modkit/swaggerkit"

	dashmod "ordertrack/internal/services/api/dashboard/module"
	datesmod "ordertrack/internal/services/api/dates/module"
	metamod "ordertrack/internal/services/api/meta/module"
	reportsmod "ordertrack/internal/services/api/reports/module"

	reportmod "ordertrack/internal/services/report/module"
)

//go:embed openapi.json
var openapi []byte

// Options are the API options
type Options struct {
	// Config is the root config; modules pick their own prefixes
	Config config.Conf
	Store  *store.Store
	Clock  ptime.Clock

	EnableSwagger  bool
	EnableProfiler bool
	CORSOrigins    []string
	Timeout        time.Duration
	SlowRequest    time.Duration
}

// OptionsFromConfig reads API_SWAGGER, API_PROFILER, API_CORS, API_TIMEOUT and API_SLOW_MS
func OptionsFromConfig(cfg config.Conf, st *store.Store) Options {
	api := cfg.Prefix("API_")
	return Options{
		Config:         cfg,
		Store:          st,
		EnableSwagger:  api.MayBool("SWAGGER", true),
		EnableProfiler: api.MayBool("PROFILER", false),
		CORSOrigins:    api.MayCSV("CORS", nil),
		Timeout:        api.MayDuration("TIMEOUT", 60*time.Second),
		SlowRequest:    time.Duration(api.MayInt("SLOW_MS", 2000)) * time.Millisecond,
	}
}

// Mount composes the modules onto r, migrates the run ledger and loads
// today's workbook from the output directory when one was already built
func Mount(ctx context.Context, r phttp.Router, opt Options) error {
	log := logger.Named("api")
	deps := modkit.Deps{
		Log:   *log,
		Cfg:   opt.Config,
		Store: opt.Store,
		Clock: opt.Clock,
	}

	// the report service module owns the ports the HTTP modules consume
	report := reportmod.New(deps, reportmod.FromConfig(deps.Cfg))
	ports := module.MustPortsOf[reportmod.Ports](report)

	svc := report.Service()
	if err := svc.Migrate(ctx); err != nil {
		return err
	}
	switch ok, err := svc.LoadToday(ctx); {
	case err != nil:
		log.Warn().Err(err).Msg("today's workbook could not be loaded")
	case ok:
		log.Info().Msg("today's workbook loaded")
	}

	mods := []module.Module{
		report,
		metamod.New(deps),
		datesmod.New(deps),
		reportsmod.New(deps, modkit.WithPorts(reportsmod.Ports{
			Generator: ports.Generator,
			Latest:    ports.Latest,
			Runs:      ports.Runs,
		})),
		dashmod.New(deps, modkit.WithPorts(dashmod.Ports{Dashboard: ports.Dashboard})),
	}

	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: opt.CORSOrigins,
		Timeout:     opt.Timeout,
		SlowRequest: opt.SlowRequest,
	})
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})

	swaggerkit.Mount(r, opt.EnableSwagger, openapi)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	r.Handle("/metrics", metrics.Handler())
	return nil
}
