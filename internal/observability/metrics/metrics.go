package metrics

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "fleetdesk_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	estimationRuns    *prometheus.CounterVec
	estimationLatency *prometheus.HistogramVec

	dashboardRequests *prometheus.CounterVec

	deviceMutations *prometheus.CounterVec

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec

	alertsActive *prometheus.GaugeVec
)

// Init registers observability metrics and DB-backed gauges.
func Init(db *sql.DB, logger *log.Logger) {
	registerOnce.Do(func() {
		estimationRuns = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "estimation_runs_total",
				Help: "Total fleet estimation passes by result",
			},
			[]string{"result"},
		)
		estimationLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "estimation_latency_seconds",
				Help:    "Fleet estimation pass latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		dashboardRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "dashboard_requests_total",
				Help: "Total dashboard summary requests by cache outcome",
			},
			[]string{"cache"},
		)

		deviceMutations = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "device_mutations_total",
				Help: "Total device inventory mutations by action",
			},
			[]string{"action"},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "budget_export_total",
				Help: "Total budget report exports by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "budget_export_latency_seconds",
				Help:    "Budget report export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		alertsActive = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: metricPrefix + "budget_alerts_active",
				Help: "Budget alerts raised by the latest evaluation, by severity",
			},
			[]string{"severity"},
		)

		prometheus.MustRegister(
			estimationRuns,
			estimationLatency,
			dashboardRequests,
			deviceMutations,
			exportTotal,
			exportLatency,
			alertsActive,
		)

		if db != nil {
			registerDBMetrics(db, logger)
		}
	})
}

// ObserveEstimation records one estimation pass.
func ObserveEstimation(err error, duration time.Duration) {
	result := resultSuccess
	if err != nil {
		result = resultError
	}
	if estimationRuns != nil {
		estimationRuns.WithLabelValues(result).Inc()
	}
	if estimationLatency != nil {
		estimationLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// IncDashboardRequest counts a summary request by cache outcome.
func IncDashboardRequest(cacheHit bool) {
	if dashboardRequests == nil {
		return
	}
	outcome := "miss"
	if cacheHit {
		outcome = "hit"
	}
	dashboardRequests.WithLabelValues(outcome).Inc()
}

// IncDeviceMutation counts an inventory mutation.
func IncDeviceMutation(action string) {
	if action == "" {
		action = "unknown"
	}
	if deviceMutations != nil {
		deviceMutations.WithLabelValues(action).Inc()
	}
}

// ObserveExport records export latency and result.
func ObserveExport(format string, err error, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	result := resultSuccess
	if err != nil {
		result = resultError
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// SetActiveAlerts replaces the active alert gauge with fresh counts.
func SetActiveAlerts(bySeverity map[string]int) {
	if alertsActive == nil {
		return
	}
	alertsActive.Reset()
	for severity, count := range bySeverity {
		if severity == "" || count < 0 {
			continue
		}
		alertsActive.WithLabelValues(severity).Set(float64(count))
	}
}
