// Package series resolves whole date columns row by row
package series

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"ordertrack/internal/core/dates"
)

// Entry is one row: the raw value and the hint that travels with it
type Entry struct {
	Value dates.Raw
	Hint  dates.Hint
}

// Pair zips values with hints once, rows past the end of hints get NoHint
func Pair(values []dates.Raw, hints []dates.Hint) []Entry {
	out := make([]Entry, len(values))
	for i, v := range values {
		out[i].Value = v
		if i < len(hints) {
			out[i].Hint = hints[i]
		}
	}
	return out
}

// Normalized holds the two serialized columns, both as long as the input
type Normalized struct {
	ISO     []string
	Display []string
}

// Resolve maps every entry through dates.Resolve, keeping order and length
func Resolve(entries []Entry, today dates.Date) []dates.Result {
	out := make([]dates.Result, len(entries))
	resolveRange(entries, out, today)
	return out
}

// Normalize resolves entries and serializes them, unresolvable rows become ""
func Normalize(entries []Entry, today dates.Date) Normalized {
	return Columns(Resolve(entries, today))
}

// Columns serializes results into the ISO and display columns
func Columns(results []dates.Result) Normalized {
	n := Normalized{
		ISO:     make([]string, len(results)),
		Display: make([]string, len(results)),
	}
	for i, r := range results {
		n.ISO[i] = r.ISO()
		n.Display[i] = r.Display()
	}
	return n
}

// Counts splits a resolved column by outcome
// Missing cells are empty input, not parse failures
type Counts struct {
	Resolved     int
	Unresolvable int
	Missing      int
}

// Tally counts the outcomes of results, aligned with the entries they came from
func Tally(entries []Entry, results []dates.Result) Counts {
	var c Counts
	for i, r := range results {
		switch {
		case r.OK():
			c.Resolved++
		case i < len(entries) && entries[i].Value.Kind() == dates.KindMissing:
			c.Missing++
		default:
			c.Unresolvable++
		}
	}
	return c
}

// Options tunes ResolveParallel
type Options struct {
	Workers   int // <=0 means GOMAXPROCS
	ChunkSize int // rows per task, <=0 means 2048
}

// ResolveParallel is Resolve split into fixed chunks over a bounded worker set
// each worker writes only its own slice of the output, rows never see each other
// the only error is ctx cancellation
func ResolveParallel(ctx context.Context, entries []Entry, today dates.Date, opt Options) ([]dates.Result, error) {
	chunk := opt.ChunkSize
	if chunk <= 0 {
		chunk = 2048
	}
	if len(entries) <= chunk {
		return Resolve(entries, today), nil
	}
	workers := opt.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := make([]dates.Result, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(entries); start += chunk {
		start := start
		end := min(start+chunk, len(entries))
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			resolveRange(entries[start:end], out[start:end], today)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func resolveRange(in []Entry, out []dates.Result, today dates.Date) {
	for i, e := range in {
		out[i] = dates.Resolve(e.Value, e.Hint, today)
	}
}
