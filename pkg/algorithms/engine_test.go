package algorithms

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RandyRDavila/graphcommunities/pkg/graph"
	"github.com/RandyRDavila/graphcommunities/pkg/logging"
	"github.com/RandyRDavila/graphcommunities/pkg/parallel"
)

type bogusSelector struct{}

func (bogusSelector) Kind() Kind      { return Kind(99) }
func (bogusSelector) validate() error { return nil }

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindLouvain, KindKClique, KindLabelPropagation, KindBulkLabelPropagation, KindPageRank} {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	parsed, err := ParseKind("  LPA ")
	require.NoError(t, err)
	assert.Equal(t, KindLabelPropagation, parsed)

	_, err = ParseKind("spectral")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
	assert.True(t, IsPrecondition(err))
	assert.Equal(t, "unknown", Kind(0).String())
}

func TestCompute_EverySelector(t *testing.T) {
	g := twoCliques(t, 5)
	selectors := []Algorithm{
		LouvainOptions{},
		KCliqueOptions{},
		LabelPropagationOptions{Seed: 1},
		DefaultBulkLabelPropagationOptions(),
		DefaultPageRankOptions(),
	}

	for _, alg := range selectors {
		t.Run(alg.Kind().String(), func(t *testing.T) {
			result, err := Compute(g, alg)
			require.NoError(t, err)
			assert.Equal(t, alg.Kind(), result.Kind)
			assert.True(t, result.Converged())
			assert.Positive(t, result.Iterations())

			if alg.Kind() == KindPageRank {
				require.NotNil(t, result.Ranking)
				assert.Nil(t, result.Communities)
				assert.Len(t, result.Ranking.Scores, 10)
				return
			}
			require.NotNil(t, result.Communities)
			assert.Nil(t, result.Ranking)
			assert.Equal(t, [][]int{{1, 2, 3, 4, 5}, {6, 7, 8, 9, 10}}, result.Communities.Partition.Groups())
		})
	}
}

func TestCompute_UnknownSelector(t *testing.T) {
	_, err := Compute(triangleGraph(t), nil)
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
	assert.True(t, IsPrecondition(err))

	_, err = Compute(triangleGraph(t), bogusSelector{})
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
	assert.True(t, IsPrecondition(err))
}

func TestCompute_PropagatesPreconditions(t *testing.T) {
	_, err := Compute(newGraph(t, 3, graph.Undirected), LouvainOptions{})
	assert.ErrorIs(t, err, ErrEmptyGraph)
	assert.True(t, IsPrecondition(err))
}

func counterValue(t *testing.T, e *Engine, algorithm, status string) float64 {
	t.Helper()
	counter, err := e.Metrics().RunsTotal.GetMetricWithLabelValues(algorithm, status)
	require.NoError(t, err)
	var m dto.Metric
	require.NoError(t, counter.Write(&m))
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, e *Engine, algorithm string) float64 {
	t.Helper()
	gauge, err := e.Metrics().CommunitiesFound.GetMetricWithLabelValues(algorithm)
	require.NoError(t, err)
	var m dto.Metric
	require.NoError(t, gauge.Write(&m))
	return m.GetGauge().GetValue()
}

func decodeLogs(t *testing.T, buf *bytes.Buffer) []logging.LogEntry {
	t.Helper()
	var entries []logging.LogEntry
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var entry logging.LogEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestEngine_Run(t *testing.T) {
	var buf bytes.Buffer
	e := NewEngine(WithLogger(logging.NewJSONLogger(&buf, logging.InfoLevel)))

	result, err := e.Run(twoCliques(t, 4), LouvainOptions{})
	require.NoError(t, err)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, 2, result.Communities.NumCommunities())

	assert.Equal(t, 1.0, counterValue(t, e, "louvain", "success"))
	assert.Equal(t, 2.0, gaugeValue(t, e, "louvain"))

	entries := decodeLogs(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "INFO", entries[0].Level)
	assert.Equal(t, "algorithm finished", entries[0].Message)
	assert.Equal(t, "louvain", entries[0].Fields["algorithm"])
	assert.Equal(t, result.RunID, entries[0].Fields["run_id"])
	assert.Equal(t, "engine", entries[0].Fields["component"])
}

func TestEngine_RunError(t *testing.T) {
	var buf bytes.Buffer
	e := NewEngine(WithLogger(logging.NewJSONLogger(&buf, logging.InfoLevel)))

	_, err := e.Run(triangleGraph(t), BulkLabelPropagationOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAsyncUnsupported)
	assert.Equal(t, 1.0, counterValue(t, e, "bulk_label_propagation", "error"))

	entries := decodeLogs(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "ERROR", entries[0].Level)
}

func TestEngine_RunWarnsWhenNotConverged(t *testing.T) {
	var buf bytes.Buffer
	e := NewEngine(WithLogger(logging.NewJSONLogger(&buf, logging.InfoLevel)))

	g := newGraph(t, 3, graph.Undirected, [2]int{1, 2}, [2]int{2, 3})
	opts := DefaultBulkLabelPropagationOptions()
	opts.MaxIterations = 4

	result, err := e.Run(g, opts)
	require.NoError(t, err)
	assert.False(t, result.Converged())

	entries := decodeLogs(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "WARN", entries[0].Level)
	assert.Equal(t, false, entries[0].Fields["converged"])
}

func TestEngine_RunAll(t *testing.T) {
	e := NewEngine(WithWorkers(3))
	g := karateGraph(t)

	algs := []Algorithm{
		LouvainOptions{},
		DefaultPageRankOptions(),
		KCliqueOptions{},
		BulkLabelPropagationOptions{}, // rejected
		LabelPropagationOptions{Seed: 9},
	}
	results, err := e.RunAll(g, algs)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAsyncUnsupported)
	assert.Contains(t, err.Error(), "selector 3")

	require.Len(t, results, len(algs))
	for i, r := range results {
		if i == 3 {
			assert.Nil(t, r)
			continue
		}
		require.NotNil(t, r, "selector %d", i)
		assert.Equal(t, algs[i].Kind(), r.Kind)
	}

	// Engine runs match direct computation
	direct, err := Compute(g, LouvainOptions{})
	require.NoError(t, err)
	assert.True(t, direct.Communities.Partition.Equal(results[0].Communities.Partition))
}

func TestEngine_RunAllInvalidWorkers(t *testing.T) {
	e := NewEngine(WithWorkers(parallel.MaxWorkers + 1))
	_, err := e.RunAll(triangleGraph(t), []Algorithm{KCliqueOptions{}})
	assert.ErrorIs(t, err, parallel.ErrTooManyWorkers)
}

func TestEngine_NilSelector(t *testing.T) {
	e := NewEngine()
	_, err := e.Run(triangleGraph(t), nil)
	assert.True(t, errors.Is(err, ErrUnknownAlgorithm))
	assert.Equal(t, 1.0, counterValue(t, e, "unknown", "error"))
}
