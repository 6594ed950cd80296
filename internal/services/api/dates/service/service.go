// Package service resolves ad hoc date lists for the API
package service

import (
	"context"
	"strings"

	"ordertrack/internal/core/dates"
	"ordertrack/internal/core/series"
	perr "ordertrack/internal/platform/errors"
	"ordertrack/internal/platform/metrics"
	ptime "ordertrack/internal/platform/time"
	"ordertrack/internal/services/api/dates/domain"
)

// Service defines the dates service contract
type Service interface {
	Resolve(ctx context.Context, in domain.ResolveInput) (domain.ResolveOutput, error)
}

type svc struct {
	clock ptime.Clock
	opt   series.Options
}

// New constructs the dates service
func New(clock ptime.Clock, opt series.Options) Service {
	if clock == nil {
		clock = ptime.System
	}
	return &svc{clock: clock, opt: opt}
}

// Resolve runs every item through the resolver against one today
func (s *svc) Resolve(ctx context.Context, in domain.ResolveInput) (domain.ResolveOutput, error) {
	today := dates.FromTime(s.clock())
	if in.Today != "" {
		d, err := dates.ParseISO(in.Today)
		if err != nil {
			return domain.ResolveOutput{}, perr.WithField(perr.InvalidArgf("today must be a YYYY-MM-DD calendar date"), "today")
		}
		today = d
	}

	entries := make([]series.Entry, len(in.Items))
	for i, it := range in.Items {
		if strings.TrimSpace(it.Value) != "" {
			entries[i].Value = dates.Text(it.Value)
		}
		if it.Hint != nil {
			entries[i].Hint = dates.DaysElapsed(*it.Hint)
		}
	}
	results, err := series.ResolveParallel(ctx, entries, today, s.opt)
	if err != nil {
		return domain.ResolveOutput{}, err
	}

	out := domain.ResolveOutput{Today: today.ISO(), Items: make([]domain.ResolvedItem, len(results))}
	for i, r := range results {
		out.Items[i] = domain.ResolvedItem{
			Value:    in.Items[i].Value,
			ISO:      r.ISO(),
			Display:  r.Display(),
			Resolved: r.OK(),
		}
	}
	c := series.Tally(entries, results)
	out.Resolved, out.Unresolvable, out.Missing = c.Resolved, c.Unresolvable, c.Missing
	metrics.Dates("api", c.Resolved, c.Unresolvable, c.Missing)
	return out, nil
}
