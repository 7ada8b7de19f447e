package algorithms

import (
	"fmt"
	"math/rand"
	"strings"
)

// Kind identifies one of the engines.
type Kind int

const (
	KindLouvain Kind = iota + 1
	KindKClique
	KindLabelPropagation
	KindBulkLabelPropagation
	KindPageRank
)

// String returns the canonical name of the engine
func (k Kind) String() string {
	switch k {
	case KindLouvain:
		return "louvain"
	case KindKClique:
		return "kclique"
	case KindLabelPropagation:
		return "label_propagation"
	case KindBulkLabelPropagation:
		return "bulk_label_propagation"
	case KindPageRank:
		return "pagerank"
	default:
		return "unknown"
	}
}

// ParseKind converts an engine name to a Kind
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "louvain":
		return KindLouvain, nil
	case "kclique", "k_clique", "clique":
		return KindKClique, nil
	case "label_propagation", "lpa":
		return KindLabelPropagation, nil
	case "bulk_label_propagation", "bulk_lpa":
		return KindBulkLabelPropagation, nil
	case "pagerank", "page_rank":
		return KindPageRank, nil
	default:
		return 0, precondition("ParseKind", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s))
	}
}

// Algorithm is the closed set of engine selectors accepted by Compute. Each
// selector carries its own parameters.
type Algorithm interface {
	Kind() Kind
	validate() error
}

// DefaultMaxIterations applies when a selector leaves MaxIterations at zero.
const DefaultMaxIterations = 100

// DefaultLouvainThreshold is the minimum modularity gain per round.
const DefaultLouvainThreshold = 1e-3

// LouvainOptions selects Louvain modularity optimization.
type LouvainOptions struct {
	Threshold float64   // 0 means DefaultLouvainThreshold
	Evaluator Evaluator // nil means NewmanGirvan
}

// KCliqueOptions selects triangle clique percolation. It has no parameters.
type KCliqueOptions struct{}

// LabelPropagationOptions selects the reference label propagation engine.
type LabelPropagationOptions struct {
	Synchronous   bool
	MaxIterations int        // 0 means DefaultMaxIterations
	Seed          int64      // used when Rand is nil
	Rand          *rand.Rand // visitation order and tie-break source
}

// BulkLabelPropagationOptions selects the sorted-edge-list engine.
type BulkLabelPropagationOptions struct {
	Synchronous   bool // must be true
	MaxIterations int  // 0 means DefaultMaxIterations
	Weighted      bool // accumulate edge weight instead of counts
}

// PageRankOptions configures PageRank algorithm
type PageRankOptions struct {
	DampingFactor float64 // Usually 0.85
	MaxIterations int     // 0 means DefaultMaxIterations
	Tolerance     float64 // Convergence threshold on max absolute change
	Weighted      bool    // use edge weights for transition probabilities
	TopN          int     // number of ranked vertices to report
}

// DefaultLabelPropagationOptions returns asynchronous propagation with the
// default iteration cap.
func DefaultLabelPropagationOptions() LabelPropagationOptions {
	return LabelPropagationOptions{MaxIterations: DefaultMaxIterations}
}

// DefaultBulkLabelPropagationOptions returns synchronous bulk propagation.
func DefaultBulkLabelPropagationOptions() BulkLabelPropagationOptions {
	return BulkLabelPropagationOptions{Synchronous: true, MaxIterations: DefaultMaxIterations}
}

// DefaultPageRankOptions returns default PageRank configuration
func DefaultPageRankOptions() PageRankOptions {
	return PageRankOptions{
		DampingFactor: 0.85,
		MaxIterations: DefaultMaxIterations,
		Tolerance:     1e-6,
		TopN:          10,
	}
}

func (LouvainOptions) Kind() Kind              { return KindLouvain }
func (KCliqueOptions) Kind() Kind              { return KindKClique }
func (LabelPropagationOptions) Kind() Kind     { return KindLabelPropagation }
func (BulkLabelPropagationOptions) Kind() Kind { return KindBulkLabelPropagation }
func (PageRankOptions) Kind() Kind             { return KindPageRank }

func (o LouvainOptions) validate() error {
	if o.Threshold < 0 {
		return precondition("Louvain", fmt.Errorf("threshold %g must be non-negative", o.Threshold))
	}
	return nil
}

func (KCliqueOptions) validate() error { return nil }

func (o LabelPropagationOptions) validate() error {
	if o.MaxIterations < 0 {
		return precondition("LabelPropagation", ErrInvalidIterations)
	}
	return nil
}

func (o BulkLabelPropagationOptions) validate() error {
	if !o.Synchronous {
		return precondition("BulkLabelPropagation", ErrAsyncUnsupported)
	}
	if o.MaxIterations < 0 {
		return precondition("BulkLabelPropagation", ErrInvalidIterations)
	}
	return nil
}

func (o PageRankOptions) validate() error {
	if !(o.DampingFactor > 0 && o.DampingFactor < 1) {
		return precondition("PageRank", ErrInvalidDamping)
	}
	if !(o.Tolerance > 0) {
		return precondition("PageRank", ErrInvalidTolerance)
	}
	if o.MaxIterations < 0 {
		return precondition("PageRank", ErrInvalidIterations)
	}
	return nil
}

func maxIterations(n int) int {
	if n == 0 {
		return DefaultMaxIterations
	}
	return n
}
