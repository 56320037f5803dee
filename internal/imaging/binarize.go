package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/segment"

	"github.com/ironsheep/lattice-grouper/internal/raster"
)

// Binarize thresholds a page image into an ink mask: 255 where the pixel
// luminance is below level (dark ink on a light page), 0 elsewhere. With
// invert the roles are swapped for light text on a dark background.
func Binarize(img image.Image, level uint8, invert bool) *raster.Array[uint8] {
	// Threshold maps luminance >= level to white
	th := segment.Threshold(img, level)
	b := th.Bounds()
	out := raster.New[uint8](b.Dx(), b.Dy())
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			light := th.Pix[th.PixOffset(b.Min.X+x, b.Min.Y+y)] != 0
			if light == invert {
				out.Pix[y*out.Width+x] = 255
			}
		}
	}
	return out
}
