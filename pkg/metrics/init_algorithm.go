package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAlgorithmMetrics() {
	r.RunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "communities_algorithm_runs_total",
			Help: "Total number of algorithm runs",
		},
		[]string{"algorithm", "status"},
	)

	r.RunDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "communities_algorithm_run_duration_seconds",
			Help:    "Algorithm run duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
		[]string{"algorithm"},
	)

	r.RunIterations = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "communities_algorithm_iterations",
			Help:    "Sweeps, rounds or power iterations per run",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
		},
		[]string{"algorithm"},
	)

	r.NonConvergedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "communities_algorithm_nonconverged_total",
			Help: "Runs stopped by the iteration cap before converging",
		},
		[]string{"algorithm"},
	)

	r.CommunitiesFound = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "communities_found",
			Help: "Number of communities found by the last run",
		},
		[]string{"algorithm"},
	)

	r.Modularity = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "communities_modularity",
			Help: "Modularity of the last partition found",
		},
		[]string{"algorithm"},
	)
}
