package graph

import (
	"errors"
	"fmt"
)

// Input validation errors
var (
	ErrInvalidVertex = errors.New("invalid vertex")
	ErrSelfLoop      = errors.New("self-loops are not supported")
	ErrInvalidWeight = errors.New("edge weight must be positive and finite")
	ErrVertexCount   = errors.New("vertex count must be non-negative")
)

// EdgeError describes a rejected edge insertion.
type EdgeError struct {
	Op    string // Operation that failed (e.g., "AddEdge")
	U, V  int
	Cause error
}

// Error implements the error interface.
func (e *EdgeError) Error() string {
	return fmt.Sprintf("%s (%d,%d): %v", e.Op, e.U, e.V, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *EdgeError) Unwrap() error {
	return e.Cause
}

func edgeError(op string, u, v int, cause error) error {
	return &EdgeError{Op: op, U: u, V: v, Cause: cause}
}
