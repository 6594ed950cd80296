package domain

import (
	"context"

	"ordertrack/internal/adapters/ingest/tabular"
)

// Outcome is what a generation hands back
type Outcome struct {
	Run      Run
	Workbook []byte
	Name     string
}

// GeneratorPort builds reports from uploaded sources
type GeneratorPort interface {
	Generate(ctx context.Context, srcs []tabular.Source) (Outcome, error)
}

// LatestPort exposes the most recent report held in memory
type LatestPort interface {
	Latest() (*Report, bool)
	LatestWorkbook() (name string, body []byte, ok bool)
}

// RunsPort lists ledger entries
type RunsPort interface {
	Runs(ctx context.Context, limit int) ([]Run, error)
}

// DashboardPort serves the interactive views over the latest report
type DashboardPort interface {
	KPIs(ctx context.Context) (KPIs, error)
	Orders(ctx context.Context, status string) ([]OrderView, error)
	Clouds(ctx context.Context, month string) (CloudsView, error)
	Deactivations(ctx context.Context, buckets []string) (DeactivationsView, error)
}
