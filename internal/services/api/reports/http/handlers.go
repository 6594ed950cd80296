// Package http provides http transport for report uploads, downloads and run history
package http

import (
	"errors"
	"io"
	stdhttp "net/http"
	"path/filepath"

	"ordertrack/internal/adapters/export/workbook"
	"ordertrack/internal/adapters/ingest/tabular"
	"ordertrack/internal/modkit/httpkit"
	perr "ordertrack/internal/platform/errors"
	"ordertrack/internal/platform/logger"
	"ordertrack/internal/services/report/domain"
)

// FilesField is the multipart field carrying the exports
const FilesField = "files"

// multipart parts above this spill to temp files
const formMemory = 32 << 20

// Deps are the handler dependencies
type Deps struct {
	Generator domain.GeneratorPort
	Latest    domain.LatestPort
	Runs      domain.RunsPort
	MaxUpload int64
}

type handlers struct{ deps Deps }

// Register mounts report endpoints on the given router
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Post(r, "/", h.upload)
	httpkit.Get(r, "/", h.runs)
	httpkit.Get(r, "/latest/workbook", h.workbook)
}

// @Summary Build today's report from uploaded exports
// @Tags Reports
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "CSV or XLSX exports, repeatable"
// @Success 201 {object} domain.Run
// @Failure 413 {object} httpkit.Envelope
// @Failure 422 {object} httpkit.Envelope
// @Router /reports [post]
func (h *handlers) upload(r *stdhttp.Request) (any, error) {
	if h.deps.MaxUpload > 0 {
		r.Body = stdhttp.MaxBytesReader(nil, r.Body, h.deps.MaxUpload)
	}
	if err := r.ParseMultipartForm(formMemory); err != nil {
		var tooBig *stdhttp.MaxBytesError
		if errors.As(err, &tooBig) {
			return nil, perr.Newf(perr.ErrorCodeTooLarge, "upload exceeds %d bytes", tooBig.Limit)
		}
		return nil, perr.WithField(perr.InvalidArgf("expected a multipart form: %v", err), FilesField)
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			logger.C(r.Context()).Debug().Err(err).Msg("multipart cleanup")
		}
	}()

	parts := r.MultipartForm.File[FilesField]
	if len(parts) == 0 {
		return nil, perr.WithField(perr.InvalidArgf("at least one file is required"), FilesField)
	}
	srcs := make([]tabular.Source, 0, len(parts))
	for _, fh := range parts {
		fh := fh
		srcs = append(srcs, tabular.Source{
			Name: filepath.Base(fh.Filename),
			Open: func() (io.ReadCloser, error) { return fh.Open() },
		})
	}

	out, err := h.deps.Generator.Generate(r.Context(), srcs)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(out.Run), nil
}

// @Summary Recent report runs, newest first
// @Tags Reports
// @Produce json
// @Param limit query int false "1..200, default 20"
// @Success 200 {array} domain.Run
// @Failure 503 {object} httpkit.Envelope "ledger disabled"
// @Router /reports [get]
func (h *handlers) runs(r *stdhttp.Request) (any, error) {
	limit, err := httpkit.QueryInt(r, "limit", 20, 1, 200)
	if err != nil {
		return nil, err
	}
	return h.deps.Runs.Runs(r.Context(), limit)
}

// @Summary Download the latest workbook
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 404 {object} httpkit.Envelope
// @Router /reports/latest/workbook [get]
func (h *handlers) workbook(_ *stdhttp.Request) (any, error) {
	name, body, ok := h.deps.Latest.LatestWorkbook()
	if !ok {
		return nil, perr.NotFoundf("no report loaded")
	}
	return httpkit.File(name, workbook.ContentType, body), nil
}
