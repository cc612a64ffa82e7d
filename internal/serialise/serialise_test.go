package serialise

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/saxbophone/sxbp/internal/figure"
)

func sampleFigure() *figure.Figure {
	return &figure.Figure{
		Segments: []figure.Segment{
			{Direction: figure.Up, Length: 1},
			{Direction: figure.Left, Length: 2},
			{Direction: figure.Down, Length: 3},
			{Direction: figure.Right, Length: 1},
			{Direction: figure.Up, Length: 0},
		},
		Solved:       4,
		SecondsSpent: 90,
	}
}

func TestDumpHeader(t *testing.T) {
	fig := sampleFigure()
	data, err := Dump(fig)
	if err != nil {
		t.Fatalf("Dump error: %v", err)
	}
	if got, want := len(data), headerSize+segmentSize*fig.Size(); got != want {
		t.Fatalf("dump is %d bytes, want %d", got, want)
	}
	if !bytes.HasPrefix(data, []byte("SAXBOSPIRAL\n")) {
		t.Errorf("dump does not start with magic: %q", data[:12])
	}
	if data[12] != Version[0] || data[13] != Version[1] || data[14] != Version[2] {
		t.Errorf("version bytes = %v, want %v", data[12:15], Version)
	}
	if data[15] != '\n' || data[36] != '\n' {
		t.Error("header newline separators missing")
	}
	if got := binary.BigEndian.Uint64(data[16:]); got != uint64(fig.Size()) {
		t.Errorf("header segment count = %d, want %d", got, fig.Size())
	}
	if got := binary.BigEndian.Uint64(data[24:]); got != uint64(fig.Solved) {
		t.Errorf("header solved count = %d, want %d", got, fig.Solved)
	}
	if got := binary.BigEndian.Uint32(data[32:]); got != fig.SecondsSpent {
		t.Errorf("header seconds = %d, want %d", got, fig.SecondsSpent)
	}
}

func TestDumpSegmentRecords(t *testing.T) {
	fig := sampleFigure()
	data, err := Dump(fig)
	if err != nil {
		t.Fatalf("Dump error: %v", err)
	}
	// direction in the top 2 bits, length in the low 30
	first := binary.BigEndian.Uint32(data[headerSize:])
	if first != uint32(figure.Up)<<30|1 {
		t.Errorf("record 0 = %#08x", first)
	}
	second := binary.BigEndian.Uint32(data[headerSize+segmentSize:])
	if second != uint32(figure.Left)<<30|2 {
		t.Errorf("record 1 = %#08x", second)
	}
}

func TestRoundTrip(t *testing.T) {
	fig := sampleFigure()
	data, err := Dump(fig)
	if err != nil {
		t.Fatalf("Dump error: %v", err)
	}
	got, err := Load(data)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got.Solved != fig.Solved {
		t.Errorf("Solved = %d, want %d", got.Solved, fig.Solved)
	}
	if got.SecondsSpent != fig.SecondsSpent {
		t.Errorf("SecondsSpent = %d, want %d", got.SecondsSpent, fig.SecondsSpent)
	}
	if len(got.Segments) != len(fig.Segments) {
		t.Fatalf("loaded %d segments, want %d", len(got.Segments), len(fig.Segments))
	}
	for i := range fig.Segments {
		if got.Segments[i] != fig.Segments[i] {
			t.Errorf("segment %d = %+v, want %+v", i, got.Segments[i], fig.Segments[i])
		}
	}
}

func TestRoundTripMaxLength(t *testing.T) {
	fig := &figure.Figure{
		Segments: []figure.Segment{
			{Direction: figure.Up, Length: figure.MaxLength},
			{Direction: figure.Left, Length: 1},
		},
		Solved: 2,
	}
	data, err := Dump(fig)
	if err != nil {
		t.Fatalf("Dump error: %v", err)
	}
	got, err := Load(data)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got.Segments[0].Length != figure.MaxLength {
		t.Errorf("max length survived as %d", got.Segments[0].Length)
	}
	if got.Segments[0].Direction != figure.Up {
		t.Errorf("direction survived as %v", got.Segments[0].Direction)
	}
}

func TestDumpRejectsOversizedLength(t *testing.T) {
	fig := &figure.Figure{
		Segments: []figure.Segment{
			{Direction: figure.Up, Length: figure.MaxLength + 1},
		},
		Solved: 1,
	}
	_, err := Dump(fig)
	if !errors.Is(err, ErrLengthOverflow) {
		t.Errorf("Dump error = %v, want ErrLengthOverflow", err)
	}
}

func TestLoadErrors(t *testing.T) {
	valid, err := Dump(sampleFigure())
	if err != nil {
		t.Fatalf("Dump error: %v", err)
	}

	t.Run("truncated header", func(t *testing.T) {
		_, err := Load(valid[:headerSize])
		if !errors.Is(err, ErrBadHeader) {
			t.Errorf("error = %v, want ErrBadHeader", err)
		}
	})

	t.Run("bad magic", func(t *testing.T) {
		data := bytes.Clone(valid)
		data[0] = 'X'
		_, err := Load(data)
		if !errors.Is(err, ErrBadMagic) {
			t.Errorf("error = %v, want ErrBadMagic", err)
		}
	})

	t.Run("version too old", func(t *testing.T) {
		data := bytes.Clone(valid)
		data[12], data[13], data[14] = 0, 12, 0
		_, err := Load(data)
		if !errors.Is(err, ErrBadVersion) {
			t.Errorf("error = %v, want ErrBadVersion", err)
		}
	})

	t.Run("data size mismatch", func(t *testing.T) {
		data := bytes.Clone(valid)
		data = append(data, 0xDE, 0xAD)
		_, err := Load(data)
		if !errors.Is(err, ErrBadDataSize) {
			t.Errorf("error = %v, want ErrBadDataSize", err)
		}
	})

	t.Run("declared count mismatch", func(t *testing.T) {
		data := bytes.Clone(valid)
		binary.BigEndian.PutUint64(data[16:], 99)
		_, err := Load(data)
		if !errors.Is(err, ErrBadDataSize) {
			t.Errorf("error = %v, want ErrBadDataSize", err)
		}
	})

	t.Run("huge declared count", func(t *testing.T) {
		// a count chosen so count*4 wraps uint64 back to the actual data
		// size; must be rejected, not fed to make()
		fig := &figure.Figure{
			Segments: []figure.Segment{{Direction: figure.Up, Length: 1}},
			Solved:   1,
		}
		data, err := Dump(fig)
		if err != nil {
			t.Fatalf("Dump error: %v", err)
		}
		binary.BigEndian.PutUint64(data[16:], 1<<62+1)
		_, err = Load(data)
		if !errors.Is(err, ErrBadDataSize) {
			t.Errorf("error = %v, want ErrBadDataSize", err)
		}
	})

	t.Run("invalid figure inside", func(t *testing.T) {
		data := bytes.Clone(valid)
		// rewrite segment 0's direction so the figure fails validation
		record := uint32(figure.Right)<<30 | 1
		binary.BigEndian.PutUint32(data[headerSize:], record)
		if _, err := Load(data); err == nil {
			t.Error("Load of invalid figure did not error")
		}
	})
}

func TestMinVersionAccepted(t *testing.T) {
	data, err := Dump(sampleFigure())
	if err != nil {
		t.Fatalf("Dump error: %v", err)
	}
	data[12], data[13], data[14] = minVersion[0], minVersion[1], minVersion[2]
	if _, err := Load(data); err != nil {
		t.Errorf("Load at minimum version error: %v", err)
	}
}
