package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	loginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dronesim_admin_login_attempts_total",
			Help: "Total number of admin login attempts",
		},
		[]string{"status"},
	)

	logouts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dronesim_admin_logouts_total",
			Help: "Total number of admin logouts",
		},
	)

	backendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dronesim_admin_backend_requests_total",
			Help: "Backend API calls by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	backendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dronesim_admin_backend_request_duration_seconds",
			Help:    "Time spent waiting on backend API calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	recordDeletes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dronesim_admin_download_deletes_total",
			Help: "Download record delete attempts by outcome",
		},
		[]string{"status"},
	)

	csvExports = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dronesim_admin_csv_exports_total",
			Help: "Total number of CSV exports served",
		},
	)

	exportedRows = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dronesim_admin_csv_exported_rows_total",
			Help: "Total number of download records written to CSV exports",
		},
	)
)

// Handler returns the Prometheus exposition handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveLogin counts one login attempt.
func ObserveLogin(ok bool) {
	loginAttempts.WithLabelValues(outcome(ok)).Inc()
}

// ObserveLogout counts one logout.
func ObserveLogout() {
	logouts.Inc()
}

// ObserveBackendCall records one backend call and how long it took.
func ObserveBackendCall(endpoint string, ok bool, elapsed time.Duration) {
	backendRequests.WithLabelValues(endpoint, outcome(ok)).Inc()
	backendDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveDelete counts one delete attempt.
func ObserveDelete(ok bool) {
	recordDeletes.WithLabelValues(outcome(ok)).Inc()
}

// ObserveExport counts one CSV export of rows records.
func ObserveExport(rows int) {
	csvExports.Inc()
	exportedRows.Add(float64(rows))
}

func outcome(ok bool) string {
	if ok {
		return OutcomeSuccess
	}
	return OutcomeFailure
}
