package raster

import (
	"github.com/anthonynsimon/bild/convolution"
)

// diskKernel returns a (2r+1)×(2r+1) kernel of ones inside the disk
// dx*dx+dy*dy <= r*r and zeros outside it.
func diskKernel(radius int) *convolution.Kernel {
	size := 2*radius + 1
	k := convolution.NewKernel(size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := x-radius, y-radius
			if dx*dx+dy*dy <= radius*radius {
				k.Matrix[y*size+x] = 1
			}
		}
	}
	return k
}

// Dilate grows the set pixels of a binary mask by a disk of the given radius
// and returns a new mask holding 0 or 255. A radius of zero or less returns
// a copy.
func Dilate(mask *Array[uint8], radius int) *Array[uint8] {
	if radius <= 0 || mask.Width == 0 || mask.Height == 0 {
		return mask.Clone()
	}
	// any set pixel under the disk saturates the sum; edge extension only
	// repeats pixels that are already closer than the radius
	grown := convolution.Convolve(ToGray(mask), diskKernel(radius), &convolution.Options{KeepAlpha: true})
	out := New[uint8](mask.Width, mask.Height)
	b := grown.Bounds()
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			if grown.Pix[grown.PixOffset(b.Min.X+x, b.Min.Y+y)] > 0 {
				out.Pix[y*out.Width+x] = 255
			}
		}
	}
	return out
}
