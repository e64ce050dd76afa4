// Package metrics defines the Prometheus instrumentation for the HTTP
// server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Simulations counts completed projection runs by outcome.
	Simulations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifeplan_simulations_total",
			Help: "Completed projection runs by status.",
		},
		[]string{"status"},
	)

	// SimulationDuration observes how long a projection run takes.
	SimulationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lifeplan_simulation_duration_seconds",
			Help:    "Duration of projection runs.",
			Buckets: prometheus.DefBuckets,
		},
	)

	// PlanTransfers counts plan CSV imports and exports by outcome.
	PlanTransfers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifeplan_plan_transfers_total",
			Help: "Plan file imports and exports by direction and status.",
		},
		[]string{"direction", "status"},
	)
)
