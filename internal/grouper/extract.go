package grouper

import (
	"fmt"

	"github.com/ironsheep/lattice-grouper/internal/raster"
)

// ExtractMasked copies the pixels of src under the mask of candidate i into
// an array the size of the extraction box; everything else is zero. The
// mask is returned as well.
func ExtractMasked[T raster.Pixel](g Grouper, src *raster.Array[T], i, grow int) (*raster.Array[T], *raster.Array[uint8], error) {
	var zero T
	return extract(g, src, zero, i, grow, false)
}

// ExtractWithBackground is ExtractMasked with dflt outside the mask.
func ExtractWithBackground[T raster.Pixel](g Grouper, src *raster.Array[T], dflt T, i, grow int) (*raster.Array[T], error) {
	out, _, err := extract(g, src, dflt, i, grow, false)
	return out, err
}

// ExtractSlicedMasked keeps the full height of src and restricts only the
// horizontal span, so rows stay aligned with the source. Pixels outside the
// mask are zero.
func ExtractSlicedMasked[T raster.Pixel](g Grouper, src *raster.Array[T], i, grow int) (*raster.Array[T], *raster.Array[uint8], error) {
	var zero T
	return extract(g, src, zero, i, grow, true)
}

// ExtractSlicedWithBackground is ExtractSlicedMasked with dflt outside the mask.
func ExtractSlicedWithBackground[T raster.Pixel](g Grouper, src *raster.Array[T], dflt T, i, grow int) (*raster.Array[T], error) {
	out, _, err := extract(g, src, dflt, i, grow, true)
	return out, err
}

func extract[T raster.Pixel](g Grouper, src *raster.Array[T], dflt T, i, grow int, sliced bool) (*raster.Array[T], *raster.Array[uint8], error) {
	if src == nil || src.Bounds() != g.Bounds() {
		return nil, nil, fmt.Errorf("%w: source dimensions do not match the segmentation %v", ErrInvalidArgument, g.Bounds())
	}
	r, mask, err := g.Mask(i, grow)
	if err != nil {
		return nil, nil, err
	}

	h, dy := r.Dy(), 0
	if sliced {
		h, dy = src.Height, r.Min.Y
	}
	out := raster.New[T](r.Dx(), h)
	out.Fill(dflt)
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			if mask.Pix[y*mask.Width+x] != 0 {
				out.Set(x, y+dy, src.At(r.Min.X+x, r.Min.Y+y))
			}
		}
	}
	return out, mask, nil
}
