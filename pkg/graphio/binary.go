package graphio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/golang/snappy"

	"github.com/RandyRDavila/graphcommunities/pkg/graph"
	"github.com/RandyRDavila/graphcommunities/pkg/pools"
)

// Binary edge file layout:
//
//	magic   [4]byte "GCEL"
//	version uint8
//	flags   uint8    bit 0 directed, bit 1 weighted
//	payload snappy block
//
// The payload holds uvarint n, uvarint arc count, then per arc the source
// delta from the previous arc and the target as uvarints, followed by the
// little-endian float64 weight when weighted. Arcs are stored exactly as in
// the sorted edge list, so undirected edges appear in both orientations.
var binaryMagic = [4]byte{'G', 'C', 'E', 'L'}

const (
	binaryVersion = 1
	headerSize    = 6

	flagDirected = 1 << 0
	flagWeighted = 1 << 1
)

// WriteBinary encodes a sorted edge list.
func WriteBinary(w io.Writer, el *graph.SortedEdgeList) error {
	buf := pools.NewBufferBuilder(16 + 4*el.Len())
	defer buf.Release()

	buf.WriteUvarint(uint64(el.N))
	buf.WriteUvarint(uint64(el.Len()))
	prev := int32(0)
	for i := range el.Src {
		buf.WriteUvarint(uint64(el.Src[i] - prev))
		buf.WriteUvarint(uint64(el.Dst[i]))
		if el.Weighted() {
			buf.WriteFloat64(el.W[i])
		}
		prev = el.Src[i]
	}

	var flags byte
	if el.Directed {
		flags |= flagDirected
	}
	if el.Weighted() {
		flags |= flagWeighted
	}

	header := make([]byte, 0, headerSize)
	header = append(header, binaryMagic[:]...)
	header = append(header, binaryVersion, flags)
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(snappy.Encode(nil, buf.Bytes())); err != nil {
		return fmt.Errorf("failed to write payload: %w", err)
	}
	return nil
}

// DecodeBinary parses a complete binary edge file.
func DecodeBinary(data []byte) (*graph.SortedEdgeList, error) {
	if len(data) < headerSize || !bytes.Equal(data[:4], binaryMagic[:]) {
		return nil, ErrBadFormat
	}
	if data[4] != binaryVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVer, data[4])
	}
	flags := data[5]

	payload, err := snappy.Decode(nil, data[headerSize:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}

	r := bytes.NewReader(payload)
	n, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("%w: vertex count: %v", ErrBadFormat, err)
	}
	arcs, err := binary.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("%w: arc count: %v", ErrBadFormat, err)
	}
	if n > math.MaxInt32 || arcs > uint64(len(payload)) {
		return nil, fmt.Errorf("%w: header counts out of range", ErrBadFormat)
	}

	weighted := flags&flagWeighted != 0
	src := make([]int32, arcs)
	dst := make([]int32, arcs)
	var w []float64
	if weighted {
		w = make([]float64, arcs)
	}

	var word [8]byte
	prev := uint64(0)
	for i := uint64(0); i < arcs; i++ {
		delta, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, fmt.Errorf("%w: arc %d: %v", ErrBadFormat, i, err)
		}
		target, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, fmt.Errorf("%w: arc %d: %v", ErrBadFormat, i, err)
		}
		prev += delta
		if prev > n || target > n {
			return nil, fmt.Errorf("arc %d (%d,%d): %w", i, prev, target, ErrInvalidVertex)
		}
		src[i], dst[i] = int32(prev), int32(target)

		if weighted {
			if _, err := io.ReadFull(r, word[:]); err != nil {
				return nil, fmt.Errorf("%w: arc %d weight: %v", ErrBadFormat, i, err)
			}
			w[i] = math.Float64frombits(binary.LittleEndian.Uint64(word[:]))
			if !(w[i] > 0) || math.IsInf(w[i], 1) {
				return nil, fmt.Errorf("arc %d: %w", i, ErrInvalidWeight)
			}
		}
	}

	return graph.NewSortedEdgeListFromArcs(int(n), flags&flagDirected != 0, src, dst, w)
}

// ReadBinary reads and decodes a binary edge file from r.
func ReadBinary(r io.Reader) (*graph.SortedEdgeList, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read binary edges: %w", err)
	}
	return DecodeBinary(data)
}
