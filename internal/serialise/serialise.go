// Package serialise reads and writes the sxbp binary spiral file format.
//
// A spiral file is a 37-byte header followed by one 4-byte record per
// segment. The header is the magic string "SAXBOSPIRAL\n", three version
// bytes and a newline, then big-endian segment count (u64), solved count
// (u64) and seconds-spent (u32), closed by a final newline. Each segment
// record packs the direction into the top 2 bits and the length into the
// low 30 bits, big-endian.
package serialise

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/saxbophone/sxbp/internal/figure"
)

const (
	headerSize  = 37
	segmentSize = 4
)

var magic = []byte("SAXBOSPIRAL\n")

// Version is the file format version written by this library.
var Version = [3]uint8{0, 54, 0}

// minVersion is the oldest file format version this library accepts.
var minVersion = [3]uint8{0, 13, 0}

var (
	// ErrBadHeader is returned when a buffer is too small to hold a header
	// and at least one segment record.
	ErrBadHeader = errors.New("serialise: header truncated")

	// ErrBadMagic is returned when the magic string is missing.
	ErrBadMagic = errors.New("serialise: not a spiral file")

	// ErrBadVersion is returned for files older than the minimum supported
	// format version.
	ErrBadVersion = errors.New("serialise: unsupported file version")

	// ErrBadDataSize is returned when the data section does not match the
	// segment count declared in the header.
	ErrBadDataSize = errors.New("serialise: data section size mismatch")

	// ErrLengthOverflow is returned by Dump when a segment length does not
	// fit the 30-bit field. Lengths are never silently truncated.
	ErrLengthOverflow = errors.New("serialise: segment length exceeds 30 bits")
)

// versionOrdinal collapses a version triple into one comparable number.
func versionOrdinal(v [3]uint8) uint32 {
	return uint32(v[0])<<16 | uint32(v[1])<<8 | uint32(v[2])
}

// Dump serialises a figure to the spiral file format.
func Dump(fig *figure.Figure) ([]byte, error) {
	if err := fig.Validate(); err != nil {
		return nil, err
	}
	buf := make([]byte, headerSize+segmentSize*fig.Size())
	copy(buf, magic)
	buf[12] = Version[0]
	buf[13] = Version[1]
	buf[14] = Version[2]
	buf[15] = '\n'
	binary.BigEndian.PutUint64(buf[16:], uint64(fig.Size()))
	binary.BigEndian.PutUint64(buf[24:], uint64(fig.Solved))
	binary.BigEndian.PutUint32(buf[32:], fig.SecondsSpent)
	buf[36] = '\n'
	for i, seg := range fig.Segments {
		if seg.Length > figure.MaxLength {
			return nil, fmt.Errorf("%w: segment %d has length %d", ErrLengthOverflow, i, seg.Length)
		}
		record := uint32(seg.Direction)<<30 | seg.Length
		binary.BigEndian.PutUint32(buf[headerSize+i*segmentSize:], record)
	}
	return buf, nil
}

// Load deserialises a figure from the spiral file format.
func Load(data []byte) (*figure.Figure, error) {
	if len(data) < headerSize+segmentSize {
		return nil, ErrBadHeader
	}
	if !bytes.HasPrefix(data, magic) {
		return nil, ErrBadMagic
	}
	version := [3]uint8{data[12], data[13], data[14]}
	if versionOrdinal(version) < versionOrdinal(minVersion) {
		return nil, fmt.Errorf("%w: %d.%d.%d", ErrBadVersion, version[0], version[1], version[2])
	}
	size := binary.BigEndian.Uint64(data[16:])
	// compare by division so a huge declared count cannot wrap the
	// multiplication and slip past the check
	dataLen := uint64(len(data) - headerSize)
	if dataLen%segmentSize != 0 || dataLen/segmentSize != size {
		return nil, fmt.Errorf("%w: %d segments declared, %d bytes of data",
			ErrBadDataSize, size, dataLen)
	}
	fig := &figure.Figure{
		Segments:     make([]figure.Segment, size),
		Solved:       int(binary.BigEndian.Uint64(data[24:])),
		SecondsSpent: binary.BigEndian.Uint32(data[32:]),
	}
	for i := range fig.Segments {
		record := binary.BigEndian.Uint32(data[headerSize+i*segmentSize:])
		fig.Segments[i] = figure.Segment{
			Direction: figure.Direction(record >> 30),
			Length:    record & figure.MaxLength,
		}
	}
	if err := fig.Validate(); err != nil {
		return nil, err
	}
	return fig, nil
}
