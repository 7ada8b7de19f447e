// Package graphio reads and writes graphs as two-column edge lists and as a
// compact snappy-compressed binary arc list.
package graphio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/RandyRDavila/graphcommunities/pkg/graph"
	"github.com/RandyRDavila/graphcommunities/pkg/validation"
)

// ReadOptions controls how a text edge list is interpreted.
type ReadOptions struct {
	Directed bool
	// Vertices fixes the vertex count. Zero infers it from the largest id.
	Vertices int
	// IgnoreWeights drops a third column instead of parsing it
	IgnoreWeights bool
}

// ReadEdges parses an edge list with one edge per row: two vertex ids and an
// optional positive weight, separated by a comma or by whitespace. Blank
// rows and rows starting with '#' or '%' are skipped, as is a first row
// whose leading field is not a number (a header). A repeated edge keeps the
// last weight.
func ReadEdges(r io.Reader, opts ReadOptions) (*graph.Adjacency, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var edges []graph.Edge
	maxVertex := 0
	line, dataRows := 0, 0

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || text[0] == '#' || text[0] == '%' {
			continue
		}

		fields := splitRow(text)
		if dataRows == 0 && isHeader(fields) {
			dataRows++
			continue
		}
		dataRows++

		if len(fields) != 2 && len(fields) != 3 {
			return nil, &ParseError{Line: line, Err: fmt.Errorf("%w: got %d", ErrMalformedRow, len(fields))}
		}

		u, err := parseVertex(fields[0], line, 1, opts.Vertices)
		if err != nil {
			return nil, err
		}
		v, err := parseVertex(fields[1], line, 2, opts.Vertices)
		if err != nil {
			return nil, err
		}
		if u == v {
			return nil, &ParseError{Line: line, Column: 2, Err: graph.ErrSelfLoop}
		}

		e := graph.Edge{U: u, V: v}
		if len(fields) == 3 && !opts.IgnoreWeights {
			w, err := strconv.ParseFloat(fields[2], 64)
			if err == nil {
				err = validation.ValidateWeight(w)
			}
			if err != nil {
				return nil, &ParseError{Line: line, Column: 3, Err: fmt.Errorf("%w: %v", ErrInvalidWeight, err)}
			}
			e.Weight = w
		}

		edges = append(edges, e)
		maxVertex = max(maxVertex, u, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read edges: %w", err)
	}

	n := opts.Vertices
	if n == 0 {
		n = maxVertex
	}
	kind := graph.Undirected
	if opts.Directed {
		kind = graph.Directed
	}
	return graph.FromEdges(n, kind, edges)
}

func splitRow(text string) []string {
	if !strings.ContainsRune(text, ',') {
		return strings.Fields(text)
	}
	fields := strings.Split(text, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

func isHeader(fields []string) bool {
	_, err := strconv.ParseInt(fields[0], 10, 64)
	return err != nil
}

func parseVertex(field string, line, column, limit int) (int, error) {
	id, err := strconv.ParseInt(field, 10, 64)
	if err == nil {
		err = validation.ValidateVertex(id)
	}
	if err == nil && limit > 0 && id > int64(limit) {
		err = fmt.Errorf("vertex %d exceeds vertex count %d", id, limit)
	}
	if err != nil {
		return 0, &ParseError{Line: line, Column: column, Err: fmt.Errorf("%w: %v", ErrInvalidVertex, err)}
	}
	return int(id), nil
}

// WriteOptions controls text output.
type WriteOptions struct {
	Comma  rune // field separator, ',' when zero
	Header bool // write a "source,target[,weight]" header row
}

// WriteEdges writes every edge of g once, with a weight column when g is
// weighted. The output reads back into an equal graph with ReadEdges.
func WriteEdges(w io.Writer, g graph.Graph, opts WriteOptions) error {
	writer := csv.NewWriter(w)
	if opts.Comma != 0 {
		writer.Comma = opts.Comma
	}

	weighted := g.Weighted()
	if opts.Header {
		header := []string{"source", "target"}
		if weighted {
			header = append(header, "weight")
		}
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	row := make([]string, 2, 3)
	for i, e := range g.Edges() {
		row = row[:2]
		row[0] = strconv.Itoa(e.U)
		row[1] = strconv.Itoa(e.V)
		if weighted {
			row = append(row, strconv.FormatFloat(e.Weight, 'g', -1, 64))
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
