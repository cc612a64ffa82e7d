package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/saxbophone/sxbp/internal/figure"
	"github.com/saxbophone/sxbp/internal/plot"
)

// svgUnit is the number of SVG user units per figure unit. Matching the
// bitmap's 2x scaling keeps vector and raster output the same size.
const svgUnit = 2

// WriteSVG draws the figure's line as a single SVG path element on a white
// background. Unlike the raster encoders this works from the segment
// geometry directly, so the output stays crisp at any zoom.
func WriteSVG(fig *figure.Figure, w io.Writer) error {
	if err := checkSolved(fig); err != nil {
		return err
	}
	cache := plot.NewCache()
	if err := cache.Revalidate(fig, fig.Size()); err != nil {
		return err
	}
	bounds := cache.Bounds()
	width := (bounds.MaxX-bounds.MinX+2)*svgUnit + 1
	height := (bounds.MaxY-bounds.MinY+2)*svgUnit + 1
	// svg's y axis grows downward, the figure's grows upward
	toImage := func(p plot.Coord) (int64, int64) {
		x := (p.X-bounds.MinX+1)*svgUnit + 1
		y := height - 1 - ((p.Y-bounds.MinY+1)*svgUnit + 1)
		return x, y
	}
	var path strings.Builder
	startX, startY := toImage(plot.Coord{})
	fmt.Fprintf(&path, "M %d %d", startX, startY)
	current := plot.Coord{}
	for _, seg := range fig.Segments {
		v := seg.Direction.Vector()
		current = plot.Coord{
			X: current.X + v.X*int64(seg.Length),
			Y: current.Y + v.Y*int64(seg.Length),
		}
		x, y := toImage(current)
		fmt.Fprintf(&path, " L %d %d", x, y)
	}
	_, err := fmt.Fprintf(w, `<?xml version="1.0"?>
<svg version="1.1"
     viewBox="0 0 %d %d"
     xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="white"/>
<path d="%s" fill="none" stroke="black" stroke-width="1"/>
</svg>
`, width, height, path.String())
	if err != nil {
		return fmt.Errorf("render: writing svg: %w", err)
	}
	return nil
}
