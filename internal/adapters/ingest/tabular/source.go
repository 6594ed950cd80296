package tabular

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	perr "ordertrack/internal/platform/errors"
	"ordertrack/internal/platform/logger"
	"ordertrack/internal/platform/metrics"
)

// Source is one named upload or file; Open is called once
type Source struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// FileSource reads from disk, the origin name is the base name
func FileSource(path string) Source {
	return Source{
		Name: filepath.Base(path),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// BytesSource wraps an in-memory upload
func BytesSource(name string, b []byte) Source {
	return Source{
		Name: filepath.Base(name),
		Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(b)), nil },
	}
}

// Format names the decoder for a file name, "" when unsupported
func Format(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return "csv"
	case ".xlsx", ".xlsm":
		return "xlsx"
	}
	return ""
}

// Read decodes one source by its extension
func Read(src Source) (Frame, error) {
	format := Format(src.Name)
	if format == "" {
		return Frame{}, perr.Unsupportedf("%s: only .csv and .xlsx are accepted", src.Name)
	}
	rc, err := src.Open()
	if err != nil {
		return Frame{}, perr.WithOp(perr.Wrap(err, perr.ErrorCodeIO, "open source"), src.Name)
	}
	defer func() { _ = rc.Close() }()

	var f Frame
	if format == "csv" {
		f, err = ReadCSV(rc)
	} else {
		f, err = ReadXLSX(rc)
	}
	if err != nil {
		return Frame{}, perr.WithOp(err, src.Name)
	}
	metrics.Rows(format, f.Len())
	return f, nil
}

// Options tunes ReadAll
type Options struct {
	Workers int // <=0 means 4
}

// ReadAll decodes sources concurrently and concatenates them in input order
// unreadable sources are logged and skipped; with more than one source each
// row carries its file name in OriginColumn. No readable source is an error
func ReadAll(ctx context.Context, srcs []Source, opt Options) (Frame, error) {
	if len(srcs) == 0 {
		return Frame{}, perr.InvalidArgf("no sources given")
	}
	workers := opt.Workers
	if workers <= 0 {
		workers = 4
	}

	frames := make([]Frame, len(srcs))
	errs := make([]error, len(srcs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, src := range srcs {
		i, src := i, src
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			frames[i], errs[i] = Read(src)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Frame{}, err
	}

	log := logger.C(ctx).With().Str("component", "ingest").Logger()
	var ok []Frame
	for i, src := range srcs {
		if errs[i] != nil {
			metrics.SourceSkipped()
			log.Warn().Err(errs[i]).Str("source", src.Name).Msg("source skipped")
			continue
		}
		f := frames[i]
		if len(srcs) > 1 {
			f = withOrigin(f, src.Name)
		}
		ok = append(ok, f)
	}
	if len(ok) == 0 {
		return Frame{}, perr.Unreadablef("none of the %d sources could be read", len(srcs))
	}
	out := Concat(ok...)
	log.Info().Int("sources", len(ok)).Int("rows", out.Len()).Int("columns", len(out.Columns)).Msg("sources loaded")
	return out, nil
}
