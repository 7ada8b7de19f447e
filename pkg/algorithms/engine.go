package algorithms

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/RandyRDavila/graphcommunities/pkg/graph"
	"github.com/RandyRDavila/graphcommunities/pkg/logging"
	"github.com/RandyRDavila/graphcommunities/pkg/metrics"
	"github.com/RandyRDavila/graphcommunities/pkg/parallel"
)

// Engine wraps Compute with run ids, structured logging and metrics, and
// runs batches of selectors on a worker pool.
type Engine struct {
	logger  logging.Logger
	metrics *metrics.Registry
	workers int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the engine logger. The default discards output.
func WithLogger(logger logging.Logger) EngineOption {
	return func(e *Engine) { e.logger = logger }
}

// WithMetrics sets the registry runs are recorded in. The default is a
// private registry.
func WithMetrics(registry *metrics.Registry) EngineOption {
	return func(e *Engine) { e.metrics = registry }
}

// WithWorkers sets how many selectors RunAll executes concurrently.
func WithWorkers(n int) EngineOption {
	return func(e *Engine) { e.workers = n }
}

// NewEngine creates an engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger:  logging.NewNopLogger(),
		metrics: metrics.NewRegistry(),
		workers: 1,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(logging.Component("engine"))
	return e
}

// Metrics returns the registry the engine records into.
func (e *Engine) Metrics() *metrics.Registry { return e.metrics }

// Run computes one selector on g.
func (e *Engine) Run(g graph.Graph, alg Algorithm) (*Result, error) {
	runID := uuid.NewString()
	name := "unknown"
	if alg != nil {
		name = alg.Kind().String()
	}

	log := e.logger.With(logging.RunID(runID), logging.Algorithm(name))
	e.metrics.RecordGraph(g.Order(), g.Size())
	log.Debug("algorithm started", logging.Vertices(g.Order()), logging.Edges(g.Size()))

	op := logging.StartTimer(log, "algorithm finished")
	result, err := Compute(g, alg)
	if err != nil {
		op.EndError(err)
		e.metrics.RecordRunError(name, op.Elapsed())
		return nil, err
	}
	result.RunID = runID

	stats := metrics.RunStats{
		Iterations: result.Iterations(),
		Converged:  result.Converged(),
	}
	fields := []logging.Field{
		logging.Iterations(stats.Iterations),
		logging.Converged(stats.Converged),
	}
	if c := result.Communities; c != nil {
		stats.Communities = c.NumCommunities()
		stats.Modularity = c.Modularity
		stats.HasModularity = c.Partition.Complete() == nil && g.Size() > 0
		fields = append(fields, logging.Communities(stats.Communities), logging.Modularity(c.Modularity))
	}
	e.metrics.RecordRun(name, op.Elapsed(), stats)

	level := logging.InfoLevel
	if !stats.Converged {
		level = logging.WarnLevel
	}
	op.EndWithLevel(level, fields...)
	return result, nil
}

// RunAll computes every selector on g concurrently. Results line up with
// algs; a failed selector leaves a nil result and contributes to the joined
// error.
func (e *Engine) RunAll(g graph.Graph, algs []Algorithm) ([]*Result, error) {
	pool, err := parallel.NewWorkerPool(e.workers)
	if err != nil {
		return nil, err
	}
	defer pool.Close()
	pool.SetLogger(e.logger)

	results := make([]*Result, len(algs))
	errs := pool.Run(len(algs), func(i int) error {
		r, err := e.Run(g, algs[i])
		results[i] = r
		return err
	})

	var failed []error
	for i, err := range errs {
		if err != nil {
			failed = append(failed, fmt.Errorf("selector %d: %w", i, err))
		}
	}
	return results, errors.Join(failed...)
}
