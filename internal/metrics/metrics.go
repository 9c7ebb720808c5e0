// Package metrics holds the Prometheus collectors shared by the flight desk,
// the sales assistant and the dashboard.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IntentsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concierge_intents_total",
			Help: "Total number of inputs dispatched, by bot and resolved intent",
		},
		[]string{"bot", "intent"},
	)

	DashboardBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concierge_dashboard_builds_total",
			Help: "Total number of dashboard view models built",
		},
		[]string{"status"},
	)

	DashboardBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "concierge_dashboard_build_seconds",
			Help:    "Duration of dashboard view model builds in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
	)
)

// ObserveIntent counts one dispatch.
func ObserveIntent(bot, intent string) {
	IntentsDispatched.WithLabelValues(bot, intent).Inc()
}

// ObserveBuild records one dashboard build that started at start.
func ObserveBuild(start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	DashboardBuilds.WithLabelValues(status).Inc()
	DashboardBuildDuration.Observe(time.Since(start).Seconds())
}
