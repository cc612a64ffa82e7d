// Package figure provides the core data model for sxbp spirals: cardinal
// directions, rotations, line segments and the figure built from input bits.
// It contains no external dependencies to keep the solver logic pure and
// testable.
package figure

import (
	"errors"
	"fmt"
)

// Direction is one of the four cardinal directions a segment can run in.
type Direction uint8

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Vector is a unit step in the plane.
type Vector struct {
	X, Y int64
}

// vectors maps each direction to its unit vector, indexed by Direction.
var vectors = [4]Vector{
	{0, 1},  // Up
	{1, 0},  // Right
	{0, -1}, // Down
	{-1, 0}, // Left
}

// Vector returns the unit vector for this direction.
func (d Direction) Vector() Vector {
	return vectors[d]
}

// Horizontal returns true if the direction runs along the x axis.
func (d Direction) Horizontal() bool {
	return d == Left || d == Right
}

// Parallel returns true if d and other run on the same axis.
func (d Direction) Parallel(other Direction) bool {
	return d%2 == other%2
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// Rotation is a quarter-turn applied to a direction.
type Rotation int8

const (
	Clockwise     Rotation = 1
	Anticlockwise Rotation = -1
)

// Turn returns the direction faced after turning from d by r.
func (d Direction) Turn(r Rotation) Direction {
	return Direction((int8(d) + int8(r) + 4) % 4)
}

// MaxLength is the largest segment length the serialised form can hold.
// Lengths are packed into 30 bits alongside a 2-bit direction.
const MaxLength uint32 = 1<<30 - 1

// Segment is one direction+length unit of a figure. A length of zero marks
// a segment whose final length has not been solved yet.
type Segment struct {
	Direction Direction
	Length    uint32
}

// Figure is the ordered sequence of segments being solved. Segment 0 always
// runs up and exists purely for orientation; the remaining segments carry one
// bit of input data each.
type Figure struct {
	Segments []Segment

	// Solved is the count of leading segments whose lengths are final,
	// which is also the index of the next segment to solve.
	Solved int

	// SecondsSpent accumulates solving time across sessions. It is carried
	// in the file header so interrupted solves keep their tally.
	SecondsSpent uint32
}

// ErrEmptyInput is returned by Begin when given no data.
var ErrEmptyInput = errors.New("figure: empty input data")

// Begin builds an unsolved figure from a byte sequence. Each bit of the
// input, MSB first per byte, selects a quarter turn from the previous
// heading: 0 turns clockwise, 1 turns anticlockwise. One leading up segment
// is prepended for orientation, so the result has 8*len(data)+1 segments,
// all with length 0.
func Begin(data []byte) (*Figure, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	fig := &Figure{
		Segments: make([]Segment, len(data)*8+1),
	}
	current := Up
	fig.Segments[0] = Segment{Direction: current}
	for s, b := range data {
		for bit := 0; bit < 8; bit++ {
			rotation := Clockwise
			if b&(1<<(7-bit)) != 0 {
				rotation = Anticlockwise
			}
			current = current.Turn(rotation)
			fig.Segments[s*8+bit+1] = Segment{Direction: current}
		}
	}
	return fig, nil
}

// Size returns the number of segments in the figure.
func (f *Figure) Size() int {
	return len(f.Segments)
}

// FullySolved returns true once every segment has a final length.
func (f *Figure) FullySolved() bool {
	return f.Solved >= len(f.Segments)
}

// Validate checks structural invariants that every figure must satisfy
// regardless of solve progress.
func (f *Figure) Validate() error {
	if f == nil || len(f.Segments) == 0 {
		return errors.New("figure: nil or empty figure")
	}
	if f.Segments[0].Direction != Up {
		return errors.New("figure: first segment must run up")
	}
	if f.Solved < 0 || f.Solved > len(f.Segments) {
		return fmt.Errorf("figure: solved count %d out of range [0, %d]", f.Solved, len(f.Segments))
	}
	for i := 0; i < f.Solved; i++ {
		if f.Segments[i].Length < 1 {
			return fmt.Errorf("figure: solved segment %d has length %d", i, f.Segments[i].Length)
		}
	}
	return nil
}
