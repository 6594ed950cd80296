// Package metrics holds the Prometheus collectors for report building and date resolution
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	datesResolvedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ordertrack_dates_total",
		Help: "Date values processed, by column and outcome",
	}, []string{"column", "outcome"})

	rowsIngestedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ordertrack_rows_ingested_total",
		Help: "Rows read from uploaded sources, by format",
	}, []string{"format"})

	sourcesSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ordertrack_sources_skipped_total",
		Help: "Sources that could not be read and were left out of a report",
	})

	reportsBuiltTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ordertrack_reports_built_total",
		Help: "Reports built, by result",
	}, []string{"result"})

	reportBuildDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ordertrack_report_build_duration_seconds",
		Help:    "Time taken to reshape a frame into a report",
		Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
	})
)

func init() {
	prometheus.MustRegister(
		datesResolvedTotal,
		rowsIngestedTotal,
		sourcesSkippedTotal,
		reportsBuiltTotal,
		reportBuildDuration,
	)
}

// Dates records resolution outcomes for one column, empty cells count as missing
func Dates(column string, resolved, unresolvable, missing int) {
	datesResolvedTotal.WithLabelValues(column, "resolved").Add(float64(resolved))
	datesResolvedTotal.WithLabelValues(column, "unresolvable").Add(float64(unresolvable))
	datesResolvedTotal.WithLabelValues(column, "missing").Add(float64(missing))
}

// Rows records rows read in the given format ("csv", "xlsx")
func Rows(format string, n int) {
	rowsIngestedTotal.WithLabelValues(format).Add(float64(n))
}

// SourceSkipped counts one unreadable source
func SourceSkipped() { sourcesSkippedTotal.Inc() }

// ReportBuilt records a finished build and how long it took
func ReportBuilt(err error, took time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	reportsBuiltTotal.WithLabelValues(result).Inc()
	reportBuildDuration.Observe(took.Seconds())
}

// Handler serves the default registry
func Handler() http.Handler { return promhttp.Handler() }
