package solve

import (
	"github.com/saxbophone/sxbp/internal/figure"
	"github.com/saxbophone/sxbp/internal/plot"
)

// noCollision is returned by detectCollision when the newest segment's cells
// are all unoccupied.
const noCollision = -1

// detectCollision checks whether the cells covered by segment index coincide
// with any cell contributed by an earlier segment (or the origin point). The
// cache must be valid through index. It returns the lowest earlier segment
// index that occupies one of the newest segment's cells, or noCollision.
//
// Occupied cells are looked up through a hash map rather than the pairwise
// scan this replaces; the answer and the earliest-segment tie-break are the
// same, only the probe cost changes.
func detectCollision(fig *figure.Figure, cache *plot.Cache, index int) int {
	// with fewer than 4 segments plotted the path cannot turn back on
	// itself yet, so skip the scan entirely
	if index < 3 {
		return noCollision
	}
	first, last := cache.SegmentPoints(fig, index)
	// occupied maps each earlier cell to the segment that traced it first.
	// The origin belongs to segment 0.
	occupied := make(map[plot.Coord]int, first)
	occupied[cache.Point(0)] = 0
	pos := 1
	for seg := 0; seg < index; seg++ {
		for j := uint32(0); j < fig.Segments[seg].Length; j++ {
			p := cache.Point(pos)
			if _, taken := occupied[p]; !taken {
				occupied[p] = seg
			}
			pos++
		}
	}
	collided := noCollision
	for i := first; i <= last; i++ {
		if seg, taken := occupied[cache.Point(i)]; taken {
			if collided == noCollision || seg < collided {
				collided = seg
			}
		}
	}
	return collided
}
