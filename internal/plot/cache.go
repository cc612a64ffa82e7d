// Package plot maintains the coordinate cache: an incrementally-valid memo
// of the integer points traced by a prefix of a figure's segments. The cache
// owns no independent truth, it is always recomputable from the figure.
package plot

import (
	"fmt"

	"github.com/saxbophone/sxbp/internal/figure"
)

// Coord is an integer point in the plane, relative to the figure's origin.
type Coord struct {
	X, Y int64
}

// Step returns the coordinate one unit along v from c.
func (c Coord) Step(v figure.Vector) Coord {
	return Coord{X: c.X + v.X, Y: c.Y + v.Y}
}

// Bounds is the axis-aligned box containing a set of coordinates.
type Bounds struct {
	MinX, MinY int64
	MaxX, MaxY int64
}

// Cache holds the traced points of the first validity segments of a figure.
// Invariant: len(points) == 1 + sum of lengths of segments [0, validity);
// the extra point is the origin.
type Cache struct {
	points   []Coord
	validity int
}

// NewCache returns an empty cache positioned at the origin.
func NewCache() *Cache {
	return &Cache{points: []Coord{{0, 0}}}
}

// Validity returns the count of leading segments whose traced points are
// currently trusted.
func (c *Cache) Validity() int {
	return c.validity
}

// Len returns the number of cached points.
func (c *Cache) Len() int {
	return len(c.points)
}

// Point returns the cached point at position i along the traced path.
func (c *Cache) Point(i int) Coord {
	return c.points[i]
}

// Invalidate marks every segment from index onward as untrusted. This is the
// only way trusted prefix data is ever discarded; Revalidate alone never
// drops it. Callers must invalidate before revalidating whenever a segment's
// length changes.
func (c *Cache) Invalidate(index int) {
	if index < c.validity {
		c.validity = index
	}
}

// sumLengths returns 1 + the total length of segments [0, limit), which is
// the number of points needed to trace that prefix.
func sumLengths(fig *figure.Figure, limit int) int {
	size := 1
	for i := 0; i < limit; i++ {
		size += int(fig.Segments[i].Length)
	}
	return size
}

// Revalidate extends the cache so that the points of segments [0, limit) are
// all present and correct, resuming from the last trusted point rather than
// retracing from the origin. After the call Validity() >= limit.
func (c *Cache) Revalidate(fig *figure.Figure, limit int) error {
	if limit < 0 || limit > fig.Size() {
		return fmt.Errorf("plot: revalidate limit %d out of range [0, %d]", limit, fig.Size())
	}
	if limit <= c.validity {
		return nil
	}
	// drop any stale points beyond the trusted prefix, keep the rest
	trusted := sumLengths(fig, c.validity)
	c.points = c.points[:trusted]
	current := c.points[trusted-1]
	for i := c.validity; i < limit; i++ {
		v := fig.Segments[i].Direction.Vector()
		for j := uint32(0); j < fig.Segments[i].Length; j++ {
			current = current.Step(v)
			c.points = append(c.points, current)
		}
	}
	c.validity = limit
	return nil
}

// SegmentStart returns the point the given segment begins at. The cache must
// be valid through at least that segment's predecessors.
func (c *Cache) SegmentStart(fig *figure.Figure, index int) Coord {
	return c.points[sumLengths(fig, index)-1]
}

// SegmentEnd returns the point the given segment ends at. The cache must be
// valid through that segment.
func (c *Cache) SegmentEnd(fig *figure.Figure, index int) Coord {
	return c.points[sumLengths(fig, index+1)-1]
}

// SegmentPoints returns the cache positions [first, last] of the points
// contributed by the given segment. A zero-length segment contributes no
// points, signalled by first > last.
func (c *Cache) SegmentPoints(fig *figure.Figure, index int) (first, last int) {
	start := sumLengths(fig, index) - 1
	return start + 1, start + int(fig.Segments[index].Length)
}

// Bounds returns the bounding box of all cached points.
func (c *Cache) Bounds() Bounds {
	var b Bounds
	for _, p := range c.points {
		if p.X < b.MinX {
			b.MinX = p.X
		}
		if p.Y < b.MinY {
			b.MinY = p.Y
		}
		if p.X > b.MaxX {
			b.MaxX = p.X
		}
		if p.Y > b.MaxY {
			b.MaxY = p.Y
		}
	}
	return b
}
