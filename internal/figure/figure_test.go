package figure

import (
	"errors"
	"testing"
)

func TestDirectionTurn(t *testing.T) {
	tests := []struct {
		name     string
		from     Direction
		rotation Rotation
		want     Direction
	}{
		{"up clockwise", Up, Clockwise, Right},
		{"right clockwise", Right, Clockwise, Down},
		{"down clockwise", Down, Clockwise, Left},
		{"left clockwise wraps", Left, Clockwise, Up},
		{"up anticlockwise wraps", Up, Anticlockwise, Left},
		{"left anticlockwise", Left, Anticlockwise, Down},
		{"down anticlockwise", Down, Anticlockwise, Right},
		{"right anticlockwise", Right, Anticlockwise, Up},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.Turn(tt.rotation); got != tt.want {
				t.Errorf("Turn(%v, %v) = %v, want %v", tt.from, tt.rotation, got, tt.want)
			}
		})
	}
}

func TestDirectionVector(t *testing.T) {
	tests := []struct {
		dir  Direction
		want Vector
	}{
		{Up, Vector{0, 1}},
		{Right, Vector{1, 0}},
		{Down, Vector{0, -1}},
		{Left, Vector{-1, 0}},
	}
	for _, tt := range tests {
		if got := tt.dir.Vector(); got != tt.want {
			t.Errorf("%v.Vector() = %v, want %v", tt.dir, got, tt.want)
		}
	}
}

func TestDirectionParallel(t *testing.T) {
	if !Up.Parallel(Down) {
		t.Error("Up should be parallel to Down")
	}
	if !Left.Parallel(Right) {
		t.Error("Left should be parallel to Right")
	}
	if Up.Parallel(Right) {
		t.Error("Up should not be parallel to Right")
	}
	if Down.Parallel(Left) {
		t.Error("Down should not be parallel to Left")
	}
}

func TestBeginEmptyInput(t *testing.T) {
	_, err := Begin(nil)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Begin(nil) error = %v, want ErrEmptyInput", err)
	}
	_, err = Begin([]byte{})
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Begin(empty) error = %v, want ErrEmptyInput", err)
	}
}

func TestBeginSegmentCount(t *testing.T) {
	for _, n := range []int{1, 2, 7} {
		data := make([]byte, n)
		fig, err := Begin(data)
		if err != nil {
			t.Fatalf("Begin(%d bytes) error: %v", n, err)
		}
		if got, want := fig.Size(), n*8+1; got != want {
			t.Errorf("Begin(%d bytes) size = %d, want %d", n, got, want)
		}
		if fig.Solved != 0 {
			t.Errorf("new figure Solved = %d, want 0", fig.Solved)
		}
	}
}

func TestBeginAllZeroBits(t *testing.T) {
	// every 0 bit turns clockwise, so the headings cycle up, right, down,
	// left forever after the orientation segment
	fig, err := Begin([]byte{0x00})
	if err != nil {
		t.Fatalf("Begin error: %v", err)
	}
	want := []Direction{Up, Right, Down, Left, Up, Right, Down, Left, Up}
	for i, dir := range want {
		if fig.Segments[i].Direction != dir {
			t.Errorf("segment %d direction = %v, want %v", i, fig.Segments[i].Direction, dir)
		}
		if fig.Segments[i].Length != 0 {
			t.Errorf("segment %d length = %d, want 0 (unsolved)", i, fig.Segments[i].Length)
		}
	}
}

func TestBeginAllOneBits(t *testing.T) {
	fig, err := Begin([]byte{0xFF})
	if err != nil {
		t.Fatalf("Begin error: %v", err)
	}
	want := []Direction{Up, Left, Down, Right, Up, Left, Down, Right, Up}
	for i, dir := range want {
		if fig.Segments[i].Direction != dir {
			t.Errorf("segment %d direction = %v, want %v", i, fig.Segments[i].Direction, dir)
		}
	}
}

func TestBeginMixedBits(t *testing.T) {
	// 0b10110100: anticlockwise, clockwise, anticlockwise, anticlockwise,
	// clockwise, anticlockwise, clockwise, clockwise
	fig, err := Begin([]byte{0xB4})
	if err != nil {
		t.Fatalf("Begin error: %v", err)
	}
	want := []Direction{Up, Left, Up, Left, Down, Left, Down, Left, Up}
	for i, dir := range want {
		if fig.Segments[i].Direction != dir {
			t.Errorf("segment %d direction = %v, want %v", i, fig.Segments[i].Direction, dir)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		fig     *Figure
		wantErr bool
	}{
		{
			"valid unsolved",
			&Figure{Segments: []Segment{{Up, 0}, {Right, 0}}},
			false,
		},
		{
			"valid partially solved",
			&Figure{Segments: []Segment{{Up, 1}, {Right, 2}, {Up, 0}}, Solved: 2},
			false,
		},
		{
			"empty",
			&Figure{},
			true,
		},
		{
			"first segment not up",
			&Figure{Segments: []Segment{{Right, 0}}},
			true,
		},
		{
			"solved count too large",
			&Figure{Segments: []Segment{{Up, 1}}, Solved: 2},
			true,
		},
		{
			"solved segment with zero length",
			&Figure{Segments: []Segment{{Up, 0}}, Solved: 1},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fig.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFullySolved(t *testing.T) {
	fig := &Figure{Segments: []Segment{{Up, 1}, {Right, 1}}}
	if fig.FullySolved() {
		t.Error("unsolved figure reported as fully solved")
	}
	fig.Solved = 2
	if !fig.FullySolved() {
		t.Error("fully solved figure not reported as such")
	}
}
