package solve

import (
	"testing"

	"github.com/saxbophone/sxbp/internal/figure"
	"github.com/saxbophone/sxbp/internal/plot"
)

// plotted builds a cache covering all segments of a hand-solved figure.
func plotted(t *testing.T, fig *figure.Figure) *plot.Cache {
	t.Helper()
	cache := plot.NewCache()
	if err := cache.Revalidate(fig, fig.Size()); err != nil {
		t.Fatalf("Revalidate error: %v", err)
	}
	return cache
}

func TestDetectCollisionFastPath(t *testing.T) {
	// with fewer than four segments the path cannot reach itself, even
	// when lengths are degenerate
	fig := &figure.Figure{
		Segments: []figure.Segment{
			{Direction: figure.Up, Length: 1},
			{Direction: figure.Right, Length: 1},
			{Direction: figure.Down, Length: 1},
		},
		Solved: 3,
	}
	cache := plotted(t, fig)
	for i := 0; i < 3; i++ {
		if got := detectCollision(fig, cache, i); got != noCollision {
			t.Errorf("detectCollision(%d) = %d, want no collision", i, got)
		}
	}
}

func TestDetectCollisionNone(t *testing.T) {
	// up 2, right 2, down 2, left 1 stops short of the path
	fig := &figure.Figure{
		Segments: []figure.Segment{
			{Direction: figure.Up, Length: 2},
			{Direction: figure.Right, Length: 2},
			{Direction: figure.Down, Length: 2},
			{Direction: figure.Left, Length: 1},
		},
		Solved: 4,
	}
	cache := plotted(t, fig)
	if got := detectCollision(fig, cache, 3); got != noCollision {
		t.Errorf("detectCollision(3) = %d, want no collision", got)
	}
}

func TestDetectCollisionWithOrigin(t *testing.T) {
	// up 2, right 2, down 2, left 2 closes the loop onto the origin,
	// which belongs to segment 0
	fig := &figure.Figure{
		Segments: []figure.Segment{
			{Direction: figure.Up, Length: 2},
			{Direction: figure.Right, Length: 2},
			{Direction: figure.Down, Length: 2},
			{Direction: figure.Left, Length: 2},
		},
		Solved: 4,
	}
	cache := plotted(t, fig)
	if got := detectCollision(fig, cache, 3); got != 0 {
		t.Errorf("detectCollision(3) = %d, want 0", got)
	}
}

func TestDetectCollisionWithMiddleSegment(t *testing.T) {
	// the final up segment passes back through a cell traced by segment 1
	fig := &figure.Figure{
		Segments: []figure.Segment{
			{Direction: figure.Up, Length: 1},
			{Direction: figure.Right, Length: 2},
			{Direction: figure.Down, Length: 2},
			{Direction: figure.Left, Length: 1},
			{Direction: figure.Up, Length: 2},
		},
		Solved: 5,
	}
	cache := plotted(t, fig)
	if got := detectCollision(fig, cache, 4); got != 1 {
		t.Errorf("detectCollision(4) = %d, want 1", got)
	}
}

func TestDetectCollisionAdjacencyIsNotCollision(t *testing.T) {
	// consecutive segments share a corner point; that shared point belongs
	// to the earlier segment and must not count against the newer one
	fig := &figure.Figure{
		Segments: []figure.Segment{
			{Direction: figure.Up, Length: 3},
			{Direction: figure.Right, Length: 1},
			{Direction: figure.Down, Length: 1},
			{Direction: figure.Right, Length: 1},
		},
		Solved: 4,
	}
	cache := plotted(t, fig)
	if got := detectCollision(fig, cache, 3); got != noCollision {
		t.Errorf("detectCollision(3) = %d, want no collision", got)
	}
}
