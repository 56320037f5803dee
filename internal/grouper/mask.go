package grouper

import (
	"fmt"
	"image"

	"github.com/ironsheep/lattice-grouper/internal/raster"
)

// maskAtLimit bounds the coordinates accepted by MaskAt.
var maskAtLimit = image.Rect(-1000, -1000, 10000, 10000)

// Mask returns the extraction box of candidate i and a mask of the same size
// holding 255 where a member label is present. The box is the candidate box
// grown by grow pixels and clipped to the image; with FullHeight it spans
// the image height. A positive grow also dilates the mask by that radius.
func (g *SimpleGrouper) Mask(i, grow int) (image.Rectangle, *raster.Array[uint8], error) {
	if err := g.checkIndex(i); err != nil {
		return image.Rectangle{}, nil, err
	}
	if grow < 0 {
		return image.Rectangle{}, nil, fmt.Errorf("%w: negative grow %d", ErrInvalidArgument, grow)
	}
	r := g.candidates[i].box.Inset(-grow).Intersect(g.labels.Bounds())
	if g.opts.FullHeight {
		r.Min.Y = 0
		r.Max.Y = g.labels.Height
	}

	mask := raster.New[uint8](r.Dx(), r.Dy())
	start, end := g.Start(i), g.End(i)
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			if l := g.labels.At(r.Min.X+x, r.Min.Y+y); l >= start && l <= end {
				mask.Pix[y*mask.Width+x] = 255
			}
		}
	}
	if grow > 0 {
		mask = raster.Dilate(mask, grow)
	}
	return r, mask, nil
}

// MaskAt builds the member mask of candidate i over an arbitrary rectangle.
// Pixels of r that fall outside the image stay unset.
func (g *SimpleGrouper) MaskAt(i int, r image.Rectangle) (*raster.Array[uint8], error) {
	if err := g.checkIndex(i); err != nil {
		return nil, err
	}
	if !r.In(maskAtLimit) {
		return nil, fmt.Errorf("%w: mask rectangle %v outside %v", ErrInvalidArgument, r, maskAtLimit)
	}
	mask := raster.New[uint8](r.Dx(), r.Dy())
	start, end := g.Start(i), g.End(i)
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			lx, ly := r.Min.X+x, r.Min.Y+y
			if !g.labels.InBounds(lx, ly) {
				continue
			}
			if l := g.labels.At(lx, ly); l >= start && l <= end {
				mask.Pix[y*mask.Width+x] = 255
			}
		}
	}
	return mask, nil
}
