package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
)

// WritePNG encodes the bitmap as a black-on-white grayscale PNG.
func WritePNG(bmp *Bitmap, w io.Writer) error {
	img := image.NewGray(image.Rect(0, 0, bmp.Width, bmp.Height))
	for x := 0; x < bmp.Width; x++ {
		for y := 0; y < bmp.Height; y++ {
			shade := color.Gray{Y: 0xff}
			if bmp.Pixels[x][y] {
				shade = color.Gray{Y: 0x00}
			}
			img.SetGray(x, y, shade)
		}
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("render: encoding png: %w", err)
	}
	return nil
}
