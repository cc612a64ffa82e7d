package solve

import (
	"github.com/saxbophone/sxbp/internal/figure"
	"github.com/saxbophone/sxbp/internal/plot"
)

// suggestLength proposes a new length for the segment before the one that
// just collided ("previous"), given the earlier segment it collided with
// ("rigid"). When the two run on the same axis the exact extension needed to
// clear the rigid segment can be read off their plotted endpoints; when they
// are perpendicular no such shortcut is known and the previous length is
// simply incremented.
//
// threshold caps how long a rigid segment may be before the exact
// computation is skipped in favour of the increment (a negative threshold
// means no cap). The suggestion is not guaranteed to be collision free:
// every application must be followed by a fresh collision check.
func suggestLength(
	prev, rigid figure.Segment,
	pa, ra, rb plot.Coord,
	threshold int,
) uint32 {
	if !prev.Direction.Parallel(rigid.Direction) {
		return prev.Length + 1
	}
	if threshold >= 0 && rigid.Length > uint32(threshold) {
		return prev.Length + 1
	}
	extra := rigid.Length + 1
	switch {
	case prev.Direction == figure.Up && rigid.Direction == figure.Up:
		return clampSuggestion(ra.Y-pa.Y, extra, prev.Length)
	case prev.Direction == figure.Up && rigid.Direction == figure.Down:
		return clampSuggestion(rb.Y-pa.Y, extra, prev.Length)
	case prev.Direction == figure.Right && rigid.Direction == figure.Right:
		return clampSuggestion(ra.X-pa.X, extra, prev.Length)
	case prev.Direction == figure.Right && rigid.Direction == figure.Left:
		return clampSuggestion(rb.X-pa.X, extra, prev.Length)
	case prev.Direction == figure.Down && rigid.Direction == figure.Up:
		return clampSuggestion(pa.Y-rb.Y, extra, prev.Length)
	case prev.Direction == figure.Down && rigid.Direction == figure.Down:
		return clampSuggestion(pa.Y-ra.Y, extra, prev.Length)
	case prev.Direction == figure.Left && rigid.Direction == figure.Right:
		return clampSuggestion(pa.X-rb.X, extra, prev.Length)
	default: // left vs left
		return clampSuggestion(pa.X-ra.X, extra, prev.Length)
	}
}

// clampSuggestion applies the exact formula offset+extra, falling back to a
// plain increment whenever the geometry yields no forward progress (the
// offset can be negative when the rigid segment lies behind the previous
// one's origin). Suggestions past the serialisable maximum saturate just
// above it rather than wrapping, so the solver's overflow check sees them.
func clampSuggestion(offset int64, extra uint32, prevLength uint32) uint32 {
	suggested := offset + int64(extra)
	if suggested <= int64(prevLength) {
		return prevLength + 1
	}
	if suggested > int64(figure.MaxLength) {
		return figure.MaxLength + 1
	}
	return uint32(suggested)
}
