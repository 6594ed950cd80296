// Package service builds order reports, keeps the latest one in memory and
// records every generation in the run ledger
package service

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"ordertrack/internal/adapters/export/workbook"
	"ordertrack/internal/adapters/ingest/tabular"
	"ordertrack/internal/core/dates"
	"ordertrack/internal/core/schema"
	"ordertrack/internal/core/series"
	"ordertrack/internal/modkit/repokit"
	perr "ordertrack/internal/platform/errors"
	"ordertrack/internal/platform/logger"
	"ordertrack/internal/platform/metrics"
	ptime "ordertrack/internal/platform/time"
	"ordertrack/internal/services/report/domain"
	"ordertrack/internal/services/report/repo"
)

// Config for the report service
type Config struct {
	TopN      int
	Workers   int
	ChunkSize int
	OutputDir string // "" keeps workbooks in memory only
	Clock     ptime.Clock
	Schema    schema.Schema
}

type snapshot struct {
	report   *domain.Report
	name     string
	workbook []byte
}

// Service implements GeneratorPort, LatestPort and RunsPort
type Service struct {
	db     repokit.TxRunner
	binder repokit.Binder[repo.Storage]
	cfg    Config
	latest atomic.Pointer[snapshot]
}

var (
	_ domain.GeneratorPort = (*Service)(nil)
	_ domain.LatestPort    = (*Service)(nil)
	_ domain.RunsPort      = (*Service)(nil)
)

// New constructs the service; a nil db disables the ledger
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], cfg Config) *Service {
	if cfg.TopN <= 0 {
		cfg.TopN = 20
	}
	if cfg.Clock == nil {
		cfg.Clock = ptime.System
	}
	if len(cfg.Schema.Names()) == 0 {
		cfg.Schema = schema.Default()
	}
	return &Service{db: db, binder: binder, cfg: cfg}
}

// Today is the calendar date of the configured clock
func (s *Service) Today() dates.Date { return dates.FromTime(s.cfg.Clock()) }

// FileName is the workbook name for a day, reporte_general_DD-MM-YYYY.xlsx
func FileName(d dates.Date) string {
	return "reporte_general_" + d.Time().Format("02-01-2006") + ".xlsx"
}

func (s *Service) buildOptions() BuildOptions {
	return BuildOptions{
		Schema: s.cfg.Schema,
		Series: series.Options{Workers: s.cfg.Workers, ChunkSize: s.cfg.ChunkSize},
	}
}

// Generate reads srcs, builds the report and workbook for today, writes it to
// the output directory and records the run. The run is recorded on failure too
func (s *Service) Generate(ctx context.Context, srcs []tabular.Source) (domain.Outcome, error) {
	started := s.cfg.Clock()
	run := domain.Run{
		ID:        uuid.NewString(),
		StartedAt: started,
		Today:     dates.FromTime(started).ISO(),
		Sources:   make([]string, 0, len(srcs)),
		Status:    domain.RunOK,
	}
	for _, src := range srcs {
		run.Sources = append(run.Sources, src.Name)
	}
	ctx = logger.WithRun(ctx, run.ID)
	log := logger.C(ctx).With().Str("component", "report").Logger()

	out, err := s.generate(ctx, dates.FromTime(started), srcs, &run)
	run.FinishedAt = s.cfg.Clock()
	metrics.ReportBuilt(err, run.FinishedAt.Sub(started))
	if err != nil {
		run.Status, run.Error = domain.RunError, err.Error()
	}
	if rerr := s.record(ctx, run); rerr != nil {
		log.Error().Err(rerr).Msg("run not recorded")
	}
	if err != nil {
		log.Warn().Err(err).Msg("report failed")
		return domain.Outcome{Run: run}, err
	}
	out.Run = run
	log.Info().Str("file", run.File).Int("rows", run.Rows).Msg("report ready")
	return out, nil
}

func (s *Service) generate(ctx context.Context, today dates.Date, srcs []tabular.Source, run *domain.Run) (domain.Outcome, error) {
	frame, err := tabular.ReadAll(ctx, srcs, tabular.Options{Workers: s.cfg.Workers})
	if err != nil {
		return domain.Outcome{}, err
	}
	rep, err := Build(ctx, frame, today, s.buildOptions())
	if err != nil {
		return domain.Outcome{}, err
	}
	body, err := workbook.Bytes(Book(rep, s.cfg.TopN))
	if err != nil {
		return domain.Outcome{}, err
	}
	name := FileName(today)

	run.Rows = len(rep.Orders)
	run.Duplicates = rep.Duplicates
	run.Resolved, run.Unresolvable = rep.Resolution()

	if s.cfg.OutputDir != "" {
		path := filepath.Join(s.cfg.OutputDir, name)
		if err := writeFile(path, body); err != nil {
			return domain.Outcome{}, err
		}
		run.File = path
	}
	s.latest.Store(&snapshot{report: rep, name: name, workbook: body})
	return domain.Outcome{Workbook: body, Name: name}, nil
}

func writeFile(path string, body []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "create %s", filepath.Dir(path))
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "write %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "rename %s", path)
	}
	return nil
}

// Load reads a workbook or export from disk and makes it the latest report
// exports are rendered into a workbook named for today
func (s *Service) Load(ctx context.Context, path string) error {
	body, err := os.ReadFile(path)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "read %s", path)
	}
	frame, err := tabular.Read(tabular.BytesSource(path, body))
	if err != nil {
		return err
	}
	rep, err := Build(ctx, frame, s.Today(), s.buildOptions())
	if err != nil {
		return err
	}
	name := filepath.Base(path)
	if tabular.Format(path) != "xlsx" {
		if body, err = workbook.Bytes(Book(rep, s.cfg.TopN)); err != nil {
			return err
		}
		name = FileName(rep.Today)
	}
	s.latest.Store(&snapshot{report: rep, name: name, workbook: body})
	return nil
}

// LoadToday loads today's workbook from the output directory when it exists
func (s *Service) LoadToday(ctx context.Context) (bool, error) {
	if s.cfg.OutputDir == "" {
		return false, nil
	}
	path := filepath.Join(s.cfg.OutputDir, FileName(s.Today()))
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err := s.Load(ctx, path); err != nil {
		return false, err
	}
	return true, nil
}

// Latest implements LatestPort
func (s *Service) Latest() (*domain.Report, bool) {
	snap := s.latest.Load()
	if snap == nil {
		return nil, false
	}
	return snap.report, true
}

// LatestWorkbook implements LatestPort
func (s *Service) LatestWorkbook() (string, []byte, bool) {
	snap := s.latest.Load()
	if snap == nil {
		return "", nil, false
	}
	return snap.name, snap.workbook, true
}

// Runs implements RunsPort
func (s *Service) Runs(ctx context.Context, limit int) ([]domain.Run, error) {
	if s.db == nil {
		return nil, perr.Unavailablef("run ledger is disabled")
	}
	return repokit.MustBind(s.binder, s.db).Recent(ctx, limit)
}

// Migrate prepares the ledger, a no-op when it is disabled
func (s *Service) Migrate(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return repo.Migrate(ctx, s.db)
}

func (s *Service) record(ctx context.Context, run domain.Run) error {
	if s.db == nil {
		return nil
	}
	// the run is written even when the request was cancelled mid build
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	return repokit.InTx(ctx, s.db, s.binder, func(r repo.Storage) error {
		return r.Insert(ctx, run)
	})
}
