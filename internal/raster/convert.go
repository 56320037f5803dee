package raster

import (
	"image"

	"github.com/disintegration/imaging"
)

// FromImage converts img to an 8-bit grayscale array. The image origin is
// moved to (0,0).
func FromImage(img image.Image) *Array[uint8] {
	gray := imaging.Grayscale(img)
	b := gray.Bounds()
	a := New[uint8](b.Dx(), b.Dy())
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			// Grayscale leaves R == G == B
			a.Pix[y*a.Width+x] = gray.Pix[gray.PixOffset(b.Min.X+x, b.Min.Y+y)]
		}
	}
	return a
}

// ToGray renders any array as an 8-bit grayscale image, clamping values
// into 0..255.
func ToGray[T Pixel](a *Array[T]) *image.Gray {
	img := image.NewGray(a.Bounds())
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			v := float64(a.Pix[y*a.Width+x])
			switch {
			case v < 0:
				v = 0
			case v > 255:
				v = 255
			}
			img.Pix[y*img.Stride+x] = uint8(v)
		}
	}
	return img
}

// Convert copies a into a new array of element type U.
func Convert[U, T Pixel](a *Array[T]) *Array[U] {
	out := New[U](a.Width, a.Height)
	for i, v := range a.Pix {
		out.Pix[i] = U(v)
	}
	return out
}
