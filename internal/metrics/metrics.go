// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	importRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "battlecards",
		Subsystem: "import",
		Name:      "runs_total",
		Help:      "Bulk imports broken down by outcome.",
	}, []string{"result"})

	importRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "battlecards",
		Subsystem: "import",
		Name:      "records_total",
		Help:      "Records written by bulk imports broken down by operation.",
	}, []string{"operation"})

	importRowErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "battlecards",
		Subsystem: "import",
		Name:      "row_errors_total",
		Help:      "Rows rejected during bulk import reconciliation.",
	})

	importDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "battlecards",
		Subsystem: "import",
		Name:      "duration_seconds",
		Help:      "Wall time of bulk imports.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
	})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "battlecards",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests broken down by method, route and status.",
	}, []string{"method", "route", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "battlecards",
		Subsystem: "http",
		Name:      "latency_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// Import outcomes recorded by RecordImport.
const (
	ImportSucceeded = "succeeded"
	ImportRejected  = "rejected"
	ImportAborted   = "aborted"
)

// RecordImport counts one import run.
func RecordImport(result string, created, updated, rowErrors int, elapsed time.Duration) {
	importRuns.WithLabelValues(result).Inc()
	importRecords.WithLabelValues("create").Add(float64(created))
	importRecords.WithLabelValues("update").Add(float64(updated))
	importRowErrors.Add(float64(rowErrors))
	importDuration.Observe(elapsed.Seconds())
}

// RecordRequest counts one served HTTP request.
func RecordRequest(method, route string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
