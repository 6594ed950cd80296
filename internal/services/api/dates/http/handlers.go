// Package http provides http transport for date resolution
package http

import (
	stdhttp "net/http"

	"ordertrack/internal/modkit/httpkit"
	"ordertrack/internal/services/api/dates/domain"
	svc "ordertrack/internal/services/api/dates/service"
)

// Register mounts the dates endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.ResolveInput](r, "/resolve", h.resolve)
}

type handlers struct{ svc svc.Service }

// @Summary Resolve ambiguous dates
// @Tags Dates
// @Accept json
// @Produce json
// @Param payload body domain.ResolveInput true "Values and hints"
// @Success 200 {object} domain.ResolveOutput
// @Router /dates/resolve [post]
func (h *handlers) resolve(r *stdhttp.Request, in domain.ResolveInput) (any, error) {
	return h.svc.Resolve(r.Context(), in)
}
