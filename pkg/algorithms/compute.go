package algorithms

import (
	"fmt"

	"github.com/RandyRDavila/graphcommunities/pkg/graph"
)

// Result is the outcome of one Compute call. Exactly one of Communities and
// Ranking is set, depending on Kind.
type Result struct {
	Kind        Kind
	RunID       string // set by Engine
	Communities *CommunityDetectionResult
	Ranking     *PageRankResult
}

// Iterations returns the sweeps, rounds or power iterations performed.
func (r *Result) Iterations() int {
	if r.Ranking != nil {
		return r.Ranking.Iterations
	}
	if r.Communities != nil {
		return r.Communities.Iterations
	}
	return 0
}

// Converged reports whether the engine stopped before its iteration cap.
func (r *Result) Converged() bool {
	if r.Ranking != nil {
		return r.Ranking.Converged
	}
	return r.Communities != nil && r.Communities.Converged
}

// Compute runs the engine the selector names on g. Every engine is
// single-threaded and allocates its own working state, so concurrent calls
// on graphs that are not being modified are safe.
func Compute(g graph.Graph, alg Algorithm) (*Result, error) {
	if alg == nil {
		return nil, precondition("Compute", fmt.Errorf("%w: nil selector", ErrUnknownAlgorithm))
	}

	result := &Result{Kind: alg.Kind()}
	var err error

	switch a := alg.(type) {
	case LouvainOptions:
		result.Communities, err = Louvain(g, a)
	case KCliqueOptions:
		result.Communities, err = KClique(g, a)
	case LabelPropagationOptions:
		result.Communities, err = LabelPropagation(g, a)
	case BulkLabelPropagationOptions:
		result.Communities, err = BulkLabelPropagation(g, a)
	case PageRankOptions:
		result.Ranking, err = PageRank(g, a)
	default:
		return nil, precondition("Compute", fmt.Errorf("%w: %T", ErrUnknownAlgorithm, alg))
	}

	if err != nil {
		return nil, err
	}
	return result, nil
}
