// Command ordertrack-report builds the daily order workbook from one or more
// CSV or XLSX exports and records the run in the ledger
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ordertrack/internal/adapters/ingest/tabular"
	"ordertrack/internal/core/dates"
	"ordertrack/internal/modkit"
	"ordertrack/internal/platform/config"
	"ordertrack/internal/platform/logger"
	"ordertrack/internal/platform/store"
	ptime "ordertrack/internal/platform/time"

	reportmod "ordertrack/internal/services/report/module"
)

func main() {
	logger.Init(logger.FromEnv())
	l := logger.Get()
	root := config.New()
	opts := reportmod.FromConfig(root)

	var (
		fOut      = flag.String("out", opts.OutputDir, "directory the workbook is written to")
		fTop      = flag.Int("top", opts.TopN, "rows kept in the TOP sheet")
		fWorkers  = flag.Int("workers", opts.Workers, "parallel workers, 0 uses every CPU")
		fChunk    = flag.Int("chunk", opts.ChunkSize, "rows per date resolution task")
		fToday    = flag.String("today", "", "report date YYYY-MM-DD, defaults to the current date")
		fNoLedger = flag.Bool("no-ledger", false, "do not record the run")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] export.csv [export.xlsx ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	opts.OutputDir, opts.TopN, opts.Workers, opts.ChunkSize = *fOut, *fTop, *fWorkers, *fChunk

	deps := modkit.Deps{Log: *l, Cfg: root}
	if *fToday != "" {
		d, err := dates.ParseISO(*fToday)
		if err != nil {
			l.Fatal().Err(err).Msg("bad -today")
		}
		deps.Clock = ptime.Fixed(time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.Local))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !*fNoLedger {
		st, err := store.Open(ctx, store.ConfigFromEnv(root), store.WithLogger(*l))
		if err != nil {
			l.Fatal().Err(err).Msg("store open failed")
		}
		defer func() {
			if err := st.Close(context.Background()); err != nil {
				l.Error().Err(err).Msg("failed to close store")
			}
		}()
		deps.Store = st
	}

	svc := reportmod.New(deps, opts).Service()
	if err := svc.Migrate(ctx); err != nil {
		l.Fatal().Err(err).Msg("ledger migrate failed")
	}

	srcs := make([]tabular.Source, 0, flag.NArg())
	for _, path := range flag.Args() {
		srcs = append(srcs, tabular.FileSource(path))
	}
	out, err := svc.Generate(ctx, srcs)
	if err != nil {
		l.Fatal().Err(err).Str("run", out.Run.ID).Msg("report failed")
	}
	l.Info().
		Str("run", out.Run.ID).
		Str("file", out.Run.File).
		Int("rows", out.Run.Rows).
		Int("duplicates", out.Run.Duplicates).
		Int("resolved", out.Run.Resolved).
		Int("unresolvable", out.Run.Unresolvable).
		Msg("report written")
}
