package segmentation

import (
	"image"
	"image/color"

	"github.com/ironsheep/lattice-grouper/internal/raster"
)

// Decode unpacks a segmentation stored as an RGB image, label = R<<16 | G<<8 | B.
// Alpha is ignored. The result keeps white as 0xFFFFFF; call
// MakeLineSegmentationBlack to turn it into background.
func Decode(img image.Image) *LabelImage {
	b := img.Bounds()
	out := raster.New[int](b.Dx(), b.Dy())
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			out.Pix[y*out.Width+x] = int(r>>8)<<16 | int(g>>8)<<8 | int(bl>>8)
		}
	}
	return out
}

// Encode packs a label image into an opaque RGB image, the inverse of Decode.
func Encode(a *LabelImage) *image.NRGBA {
	img := image.NewNRGBA(a.Bounds())
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			v := a.Pix[y*a.Width+x]
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(v >> 16),
				G: uint8(v >> 8),
				B: uint8(v),
				A: 255,
			})
		}
	}
	return img
}
