package graphio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/exp/mmap"

	"github.com/RandyRDavila/graphcommunities/pkg/graph"
	"github.com/RandyRDavila/graphcommunities/pkg/logging"
	"github.com/RandyRDavila/graphcommunities/pkg/metrics"
)

// Format identifies an on-disk graph encoding.
type Format int

const (
	// FormatText is a comma or whitespace separated edge list
	FormatText Format = iota
	// FormatBinary is the snappy-compressed sorted arc list
	FormatBinary
)

// String returns the metric label of the format
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// ParseFormat converts a format name to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "csv", "tsv", "edges":
		return FormatText, nil
	case "binary", "bin", "gcel":
		return FormatBinary, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// DetectFormat picks a format from the file extension. Anything other than
// .bin or .gcel is read as text.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bin", ".gcel":
		return FormatBinary
	default:
		return FormatText
	}
}

// Loader reads graph files through a read-only memory map and records each
// load in a metrics registry.
type Loader struct {
	logger  logging.Logger
	metrics *metrics.Registry
}

// NewLoader creates a loader. A nil logger discards output and a nil
// registry uses the process default.
func NewLoader(logger logging.Logger, registry *metrics.Registry) *Loader {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if registry == nil {
		registry = metrics.DefaultRegistry()
	}
	return &Loader{
		logger:  logger.With(logging.Component("graphio")),
		metrics: registry,
	}
}

// Loaded is the result of a file load. Edges is set for binary files,
// which store the sorted arc list the bulk engine consumes directly.
type Loaded struct {
	Graph  *graph.Adjacency
	Edges  *graph.SortedEdgeList
	Format Format
}

// LoadFile reads the graph at path, detecting its format from the
// extension. Directedness of binary files comes from the file header.
func (l *Loader) LoadFile(path string, opts ReadOptions) (*Loaded, error) {
	format := DetectFormat(path)
	log := l.logger.With(logging.Path(path), logging.String("format", format.String()))

	start := time.Now()
	loaded, err := l.load(path, format, opts)
	if err != nil {
		l.metrics.RecordLoad(format.String(), metrics.StatusError, time.Since(start))
		log.Error("graph load failed", logging.Error(err))
		return nil, err
	}
	l.metrics.RecordLoad(format.String(), metrics.StatusSuccess, time.Since(start))

	log.Info("graph loaded",
		logging.Vertices(loaded.Graph.Order()),
		logging.Edges(loaded.Graph.Size()),
		logging.Latency(time.Since(start)),
	)
	return loaded, nil
}

func (l *Loader) load(path string, format Format, opts ReadOptions) (*Loaded, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer r.Close()

	loaded := &Loaded{Format: format}
	switch format {
	case FormatBinary:
		data := make([]byte, r.Len())
		if _, err := r.ReadAt(data, 0); err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		loaded.Edges, err = DecodeBinary(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		loaded.Graph, err = loaded.Edges.Graph()
	default:
		loaded.Graph, err = ReadEdges(io.NewSectionReader(r, 0, int64(r.Len())), opts)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return loaded, nil
}

// SaveFile writes g to path in the given format, replacing any existing
// file.
func SaveFile(path string, g graph.Graph, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	switch format {
	case FormatBinary:
		err = WriteBinary(f, graph.NewSortedEdgeList(g, g.Weighted()))
	case FormatText:
		err = WriteEdges(f, g, WriteOptions{Header: true})
	default:
		err = fmt.Errorf("%w: %d", ErrUnknownFormat, format)
	}

	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}
