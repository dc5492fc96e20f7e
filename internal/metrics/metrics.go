// Package metrics exposes Prometheus counters for analysis runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RunsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "csvscope_runs_started_total",
		Help: "Total number of analysis runs triggered",
	})

	RunsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "csvscope_runs_completed_total",
		Help: "Total number of analysis runs that finished successfully",
	})

	RunsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "csvscope_runs_failed_total",
		Help: "Total number of analysis runs that ended in an error",
	})

	RunsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "csvscope_runs_rejected_total",
		Help: "Total number of run triggers rejected because a run was in flight",
	})

	RunInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "csvscope_run_in_flight",
		Help: "Whether an analysis run is currently in flight (0 or 1)",
	})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "csvscope_run_duration_seconds",
		Help:    "Wall-clock duration of analysis runs",
		Buckets: prometheus.DefBuckets,
	})
)
