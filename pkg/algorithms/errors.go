package algorithms

import (
	"errors"
	"fmt"
)

// Domain precondition errors
var (
	ErrEmptyGraph        = errors.New("graph has no edges")
	ErrInvalidDamping    = errors.New("damping factor must lie in (0,1)")
	ErrInvalidTolerance  = errors.New("tolerance must be positive")
	ErrInvalidIterations = errors.New("max iterations must be non-negative")
	ErrAsyncUnsupported  = errors.New("bulk label propagation supports synchronous updates only")
	ErrPartitionSize     = errors.New("partition size does not match graph order")
	ErrUnknownAlgorithm  = errors.New("unknown algorithm")
)

// Incomplete-result errors
var (
	ErrUnassigned = errors.New("vertex has no community")
)

// PreconditionError reports that an engine refused its input.
type PreconditionError struct {
	Op    string // Operation that failed (e.g., "Modularity", "PageRank")
	Cause error
}

// Error implements the error interface.
func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *PreconditionError) Unwrap() error {
	return e.Cause
}

// IncompleteError reports a vertex that a partition leaves unassigned.
type IncompleteError struct {
	Vertex int
}

// Error implements the error interface.
func (e *IncompleteError) Error() string {
	return fmt.Sprintf("vertex %d: %v", e.Vertex, ErrUnassigned)
}

// Unwrap returns ErrUnassigned.
func (e *IncompleteError) Unwrap() error {
	return ErrUnassigned
}

func precondition(op string, cause error) error {
	return &PreconditionError{Op: op, Cause: cause}
}

// IsPrecondition returns true if the error is a domain precondition failure.
func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}

// IsIncomplete returns true if the error reports an unassigned vertex.
func IsIncomplete(err error) bool {
	return errors.Is(err, ErrUnassigned)
}
