package graphio

import (
	"errors"
	"fmt"

	"github.com/RandyRDavila/graphcommunities/pkg/graph"
)

// Input errors. Vertex and weight failures reuse the graph package
// sentinels so callers can match them with errors.Is regardless of source.
var (
	ErrMalformedRow   = errors.New("row must have two or three columns")
	ErrInvalidVertex  = graph.ErrInvalidVertex
	ErrInvalidWeight  = graph.ErrInvalidWeight
	ErrBadFormat      = errors.New("not a binary edge file")
	ErrUnknownFormat  = errors.New("unknown graph format")
	ErrUnsupportedVer = errors.New("unsupported binary edge file version")
)

// ParseError locates a rejected row in a text edge file. Column is 1-based
// and 0 when the whole row is at fault.
type ParseError struct {
	Line   int
	Column int
	Err    error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Column == 0 {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d, column %d: %v", e.Line, e.Column, e.Err)
}

// Unwrap returns the underlying cause for error chain support.
func (e *ParseError) Unwrap() error {
	return e.Err
}
