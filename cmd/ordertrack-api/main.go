// Command ordertrack-api serves uploads, report downloads, dashboard views,
// date resolution and run history over HTTP
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"ordertrack/internal/modkit/repokit"
	"ordertrack/internal/platform/config"
	"ordertrack/internal/platform/logger"
	phttp "ordertrack/internal/platform/net/http"
	"ordertrack/internal/platform/store"

	"ordertrack/internal/services/api"
)

func main() {
	logger.Init(logger.FromEnv())
	l := logger.Get()
	root := config.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// run ledger, sqlite by default (SERVICE_STORE_DRIVER, SERVICE_SQLITE_*, SERVICE_PGSQL_*)
	opts := []store.Option{store.WithLogger(*l)}
	if root.Prefix("SERVICE_STORE_").MayBool("LOG_SQL", false) {
		opts = append(opts, store.WithTracer(store.Tracer(*l)))
	}
	st, err := store.Open(ctx, store.ConfigFromEnv(root), opts...)
	if err != nil {
		l.Fatal().Err(err).Msg("store open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	if st.DB != nil {
		repokit.MustGuard(ctx, "ledger", st)
	}

	// http server (API_PORT, API_WRITE_TIMEOUT)
	srv := phttp.NewServer(root)
	if err := api.Mount(ctx, srv.Router(), api.OptionsFromConfig(root, st)); err != nil {
		l.Fatal().Err(err).Msg("api mount failed")
	}

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			l.Error().Err(err).Msg("http shutdown")
		}
	}()

	if err := srv.Run(ctx); err != nil {
		l.Fatal().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("bye")
}
