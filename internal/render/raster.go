// Package render converts a fully-solved figure into image output. The
// figure is first rasterised to a monochrome Bitmap, which the PBM and PNG
// encoders consume; the SVG encoder draws the path directly from the
// figure's geometry.
package render

import (
	"errors"
	"fmt"

	"github.com/saxbophone/sxbp/internal/figure"
	"github.com/saxbophone/sxbp/internal/plot"
)

// Bitmap is a monochrome image: Pixels[x][y] is true where the spiral's
// line passes.
type Bitmap struct {
	Width  int
	Height int
	Pixels [][]bool
}

// ErrUnsolved is returned when rendering is attempted on a figure whose
// segment lengths are not all final.
var ErrUnsolved = errors.New("render: figure is not fully solved")

// checkSolved verifies the renderer's input contract: every segment length
// final and at least 1.
func checkSolved(fig *figure.Figure) error {
	if fig == nil || fig.Size() == 0 {
		return errors.New("render: nil or empty figure")
	}
	if !fig.FullySolved() {
		return fmt.Errorf("%w: %d of %d segments solved", ErrUnsolved, fig.Solved, fig.Size())
	}
	for i, seg := range fig.Segments {
		if seg.Length < 1 {
			return fmt.Errorf("%w: segment %d has length 0", ErrUnsolved, i)
		}
	}
	return nil
}

// Rasterise plots the figure's line onto a bitmap. Every unit of line
// becomes two pixels plus a shared corner pixel, so the image is twice the
// figure's bounding box plus one in each dimension; this leaves a one-pixel
// gap between passes of the line. The y axis is flipped so the first
// segment points up in image space, and the second pixel of the orientation
// segment is left blank to mark the start of the path.
func Rasterise(fig *figure.Figure) (*Bitmap, error) {
	if err := checkSolved(fig); err != nil {
		return nil, err
	}
	cache := plot.NewCache()
	if err := cache.Revalidate(fig, fig.Size()); err != nil {
		return nil, err
	}
	bounds := cache.Bounds()
	offsetX := -bounds.MinX
	offsetY := -bounds.MinY
	bmp := &Bitmap{
		Width:  int(bounds.MaxX+offsetX+1)*2 + 1,
		Height: int(bounds.MaxY+offsetY+1)*2 + 1,
	}
	bmp.Pixels = make([][]bool, bmp.Width)
	for x := range bmp.Pixels {
		bmp.Pixels[x] = make([]bool, bmp.Height)
	}
	current := plot.Coord{}
	for i, seg := range fig.Segments {
		v := seg.Direction.Vector()
		steps := int(seg.Length)*2 + 1
		for j := 0; j < steps; j++ {
			x := current.X + offsetX*2 + 1
			y := current.Y + offsetY*2 + 1
			// the second pixel of the first segment marks path start
			if !(i == 0 && j == 1) {
				bmp.Pixels[x][int64(bmp.Height)-1-y] = true
			}
			if j != steps-1 {
				current = current.Step(v)
			}
		}
	}
	return bmp, nil
}
