package render

import (
	"fmt"
	"io"
)

// WritePBM encodes the bitmap as a binary (P4) netpbm image. Rows are
// packed eight pixels per byte, most significant bit first, with each row
// padded to a whole byte as the format requires.
func WritePBM(bmp *Bitmap, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "P4\n%d %d\n", bmp.Width, bmp.Height); err != nil {
		return fmt.Errorf("render: writing pbm header: %w", err)
	}
	bytesPerRow := (bmp.Width + 7) / 8
	row := make([]byte, bytesPerRow)
	for y := 0; y < bmp.Height; y++ {
		for i := range row {
			row[i] = 0
		}
		for x := 0; x < bmp.Width; x++ {
			if bmp.Pixels[x][y] {
				row[x/8] |= 0x80 >> (x % 8)
			}
		}
		if _, err := w.Write(row); err != nil {
			return fmt.Errorf("render: writing pbm row %d: %w", y, err)
		}
	}
	return nil
}
