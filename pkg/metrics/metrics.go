package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Run status label values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// RunStats summarizes one finished algorithm run.
type RunStats struct {
	Iterations    int
	Converged     bool
	Communities   int     // zero for rankings
	Modularity    float64 // only recorded when HasModularity is set
	HasModularity bool
}

// RecordRun records a successful algorithm run
func (r *Registry) RecordRun(algorithm string, duration time.Duration, stats RunStats) {
	r.RunsTotal.WithLabelValues(algorithm, StatusSuccess).Inc()
	r.RunDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
	r.RunIterations.WithLabelValues(algorithm).Observe(float64(stats.Iterations))

	if !stats.Converged {
		r.NonConvergedTotal.WithLabelValues(algorithm).Inc()
	}
	if stats.Communities > 0 {
		r.CommunitiesFound.WithLabelValues(algorithm).Set(float64(stats.Communities))
	}
	if stats.HasModularity {
		r.Modularity.WithLabelValues(algorithm).Set(stats.Modularity)
	}
}

// RecordRunError records a failed algorithm run
func (r *Registry) RecordRunError(algorithm string, duration time.Duration) {
	r.RunsTotal.WithLabelValues(algorithm, StatusError).Inc()
	r.RunDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
}

// RecordGraph records the size of the graph being processed
func (r *Registry) RecordGraph(vertices, edges int) {
	r.GraphVertices.Set(float64(vertices))
	r.GraphEdges.Set(float64(edges))
}

// RecordLoad records a graph file load
func (r *Registry) RecordLoad(format, status string, duration time.Duration) {
	r.GraphLoadsTotal.WithLabelValues(format, status).Inc()
	r.GraphLoadDuration.WithLabelValues(format).Observe(duration.Seconds())
}

// UpdateSystemMetrics samples uptime, goroutines and memory usage
func (r *Registry) UpdateSystemMetrics() {
	r.mu.Lock()
	defer r.mu.Unlock()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	r.UptimeSeconds.Set(time.Since(r.started).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(m.Alloc))
	r.MemorySysBytes.Set(float64(m.Sys))
}

// WriteToFile writes every metric in the Prometheus text format, for
// collection by a node exporter textfile collector.
func (r *Registry) WriteToFile(path string) error {
	r.UpdateSystemMetrics()
	return prometheus.WriteToTextfile(path, r.registry)
}
