package service

import (
	"context"
	"strings"

	"ordertrack/internal/adapters/ingest/tabular"
	"ordertrack/internal/core/busdays"
	"ordertrack/internal/core/dates"
	"ordertrack/internal/core/normalize"
	"ordertrack/internal/core/schema"
	"ordertrack/internal/core/series"
	"ordertrack/internal/platform/logger"
	"ordertrack/internal/platform/metrics"
	str "ordertrack/internal/platform/strings"
	"ordertrack/internal/services/report/domain"
)

// droppedColumns never reach the report, matched after key folding
var droppedColumns = []string{
	"Order ID", "Party Role ID", "Mail Contacto Técnico", "Instalation Address",
	"Nombre Elemento", "Monto", "Moneda", "Tipo de Precio", "Delta",
	"Fecha Agendamiento", "Motivo Reprogramación", "Motivo", "Segmento",
	"Fecha Cancelación", "Current Phase",
}

var droppedKeys = func() map[string]bool {
	m := make(map[string]bool, len(droppedColumns))
	for _, c := range droppedColumns {
		m[normalize.Key(c)] = true
	}
	return m
}()

// BuildOptions tunes Build
type BuildOptions struct {
	Schema schema.Schema
	Series series.Options
}

// Build reshapes f into a report as of today
// unresolvable dates are values, the only error is ctx cancellation
func Build(ctx context.Context, f tabular.Frame, today dates.Date, opt BuildOptions) (*domain.Report, error) {
	sch := opt.Schema
	if len(sch.Names()) == 0 {
		sch = schema.Default()
	}
	headers := schema.Apply(f.Columns, schema.Canonicalize(f.Columns, sch))

	var keep []int
	var cols []string
	for i, h := range headers {
		if droppedKeys[normalize.Key(h)] {
			continue
		}
		keep = append(keep, i)
		cols = append(cols, h)
	}
	rows := make([][]dates.Raw, len(f.Rows))
	for r, src := range f.Rows {
		row := make([]dates.Raw, len(keep))
		for j, i := range keep {
			row[j] = src[i]
		}
		rows[r] = row
	}

	at := func(name string) int {
		for i, c := range cols {
			if c == name {
				return i
			}
		}
		return -1
	}
	rows, dups := dedupe(rows, at(schema.Subscription), at(schema.Interaction))

	rep := &domain.Report{Today: today, Duplicates: dups}

	// source days open, read before the column is overwritten
	daysCol := at(schema.DaysOpen)
	hints := make([]dates.Hint, len(rows))
	if daysCol >= 0 {
		for i, row := range rows {
			if row[daysCol].Kind() == dates.KindText {
				hints[i] = dates.ParseHint(row[daysCol].String())
			}
		}
	}

	createdCol := at(schema.CreatedAt)
	created := make([]dates.Result, len(rows))
	if createdCol >= 0 {
		var (
			c   series.Counts
			err error
		)
		if created, c, err = resolveColumn(ctx, rows, createdCol, hints, today, opt.Series); err != nil {
			return nil, err
		}
		rep.Dates = append(rep.Dates, stats(schema.CreatedAt, c))
	}

	activatedCol := at(schema.ActivatedAt)
	activated := make([]dates.Result, len(rows))
	if activatedCol >= 0 {
		// days since activation = days since creation - days open
		actHints := make([]dates.Hint, len(rows))
		for i := range rows {
			h, ok := hints[i].Get()
			c, cok := created[i].Date()
			if ok && cok {
				actHints[i] = dates.DaysElapsed(today.DaysSince(c) - h)
			}
		}
		var (
			c   series.Counts
			err error
		)
		if activated, c, err = resolveColumn(ctx, rows, activatedCol, actHints, today, opt.Series); err != nil {
			return nil, err
		}
		rep.Dates = append(rep.Dates, stats(schema.ActivatedAt, c))
	}

	// any other FECHA column is rendered as DD-MM-YY too, without a hint
	resolved := map[int][]dates.Result{}
	if createdCol >= 0 {
		resolved[createdCol] = created
	}
	if activatedCol >= 0 {
		resolved[activatedCol] = activated
	}
	for i, c := range cols {
		if _, done := resolved[i]; done || !strings.Contains(strings.ToUpper(c), "FECHA") {
			continue
		}
		res, _, err := resolveColumn(ctx, rows, i, nil, today, opt.Series)
		if err != nil {
			return nil, err
		}
		resolved[i] = res
	}

	days := busdays.Column(created, activated, today)
	if daysCol < 0 {
		cols = append(cols, schema.DaysOpen)
		daysCol = len(cols) - 1
	}
	rep.Columns = cols

	text := func(row []dates.Raw, name string) string {
		if i := at(name); i >= 0 {
			return row[i].String()
		}
		return ""
	}
	rep.Orders = make([]domain.Order, len(rows))
	for r, row := range rows {
		vals := make([]any, len(cols))
		for j := range cols {
			switch res, isDate := resolved[j]; {
			case j == daysCol:
				if days[r].Valid {
					vals[j] = days[r].N
				}
			case isDate:
				vals[j] = res[r].Display()
			case row[j].Kind() != dates.KindMissing:
				vals[j] = row[j].String()
			}
		}
		rep.Orders[r] = domain.Order{
			Values:       vals,
			Status:       str.Fold(text(row, schema.Status)),
			Category:     str.Fold(text(row, schema.Category)),
			Offer:        text(row, schema.Offer),
			Model:        text(row, schema.Model),
			Subscription: text(row, schema.Subscription),
			Interaction:  text(row, schema.Interaction),
			Customer:     text(row, schema.Customer),
			Responsible:  text(row, schema.Responsible),
			Created:      created[r],
			Activated:    activated[r],
			DaysOpen:     days[r],
		}
	}

	ok, bad := rep.Resolution()
	missing := 0
	for _, c := range rep.Dates {
		missing += c.Missing
	}
	logger.C(ctx).Info().
		Str("component", "report").
		Int("rows", len(rows)).
		Int("duplicates", dups).
		Int("dates_resolved", ok).
		Int("dates_unresolvable", bad).
		Int("dates_missing", missing).
		Msg("report built")
	return rep, nil
}

// dedupe keeps the first row per subscription and interaction pair
// with neither column present nothing is dropped
func dedupe(rows [][]dates.Raw, sub, inter int) ([][]dates.Raw, int) {
	if sub < 0 && inter < 0 {
		return rows, 0
	}
	seen := make(map[[2]string]bool, len(rows))
	out := rows[:0:0]
	for _, row := range rows {
		k := [2]string{cellKey(row, sub), cellKey(row, inter)}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, row)
	}
	return out, len(rows) - len(out)
}

// cellKey tells a missing cell apart from any text
func cellKey(row []dates.Raw, i int) string {
	if i < 0 || row[i].Kind() == dates.KindMissing {
		return "\x00"
	}
	return row[i].Kind().String() + ":" + row[i].String()
}

func resolveColumn(ctx context.Context, rows [][]dates.Raw, col int, hints []dates.Hint, today dates.Date, opt series.Options) ([]dates.Result, series.Counts, error) {
	values := make([]dates.Raw, len(rows))
	for i, row := range rows {
		values[i] = row[col]
	}
	entries := series.Pair(values, hints)
	res, err := series.ResolveParallel(ctx, entries, today, opt)
	if err != nil {
		return nil, series.Counts{}, err
	}
	return res, series.Tally(entries, res), nil
}

func stats(column string, c series.Counts) domain.ColumnStats {
	metrics.Dates(column, c.Resolved, c.Unresolvable, c.Missing)
	return domain.ColumnStats{Column: column, Resolved: c.Resolved, Unresolvable: c.Unresolvable, Missing: c.Missing}
}
