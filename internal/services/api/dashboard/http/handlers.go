// Package http provides http transport for the dashboard views
package http

import (
	stdhttp "net/http"

	"ordertrack/internal/modkit/httpkit"
	"ordertrack/internal/services/report/domain"
)

// Register mounts dashboard endpoints on the given router
func Register(r httpkit.Router, d domain.DashboardPort) {
	h := &handlers{dash: d}

	httpkit.Get(r, "/kpis", h.kpis)
	httpkit.Get(r, "/orders", h.orders)
	httpkit.Get(r, "/clouds", h.clouds)
	httpkit.Get(r, "/deactivations", h.deactivations)
}

type handlers struct{ dash domain.DashboardPort }

// @Summary Headline order counts
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.KPIs
// @Failure 404 {object} httpkit.Envelope "no report loaded"
// @Router /dashboard/kpis [get]
func (h *handlers) kpis(r *stdhttp.Request) (any, error) {
	return h.dash.KPIs(r.Context())
}

// @Summary Orders grid
// @Tags Dashboard
// @Produce json
// @Param status query string false "all, completed or inprogress"
// @Success 200 {array} domain.OrderView
// @Failure 404 {object} httpkit.Envelope "no report loaded"
// @Failure 422 {object} httpkit.Envelope
// @Router /dashboard/orders [get]
func (h *handlers) orders(r *stdhttp.Request) (any, error) {
	return h.dash.Orders(r.Context(), r.URL.Query().Get("status"))
}

// @Summary Third party cloud activations per month
// @Tags Dashboard
// @Produce json
// @Param month query string false "YYYY-MM, narrows the detail"
// @Success 200 {object} domain.CloudsView
// @Failure 404 {object} httpkit.Envelope "no report loaded"
// @Failure 422 {object} httpkit.Envelope
// @Router /dashboard/clouds [get]
func (h *handlers) clouds(r *stdhttp.Request) (any, error) {
	return h.dash.Clouds(r.Context(), r.URL.Query().Get("month"))
}

// @Summary Deactivations by offer bucket
// @Tags Dashboard
// @Produce json
// @Param bucket query []string false "repeatable or comma separated"
// @Success 200 {object} domain.DeactivationsView
// @Failure 404 {object} httpkit.Envelope "no report loaded"
// @Failure 422 {object} httpkit.Envelope
// @Router /dashboard/deactivations [get]
func (h *handlers) deactivations(r *stdhttp.Request) (any, error) {
	return h.dash.Deactivations(r.Context(), httpkit.QueryList(r, "bucket"))
}
