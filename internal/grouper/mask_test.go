package grouper

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/lattice-grouper/internal/raster"
)

func TestMask_Members(t *testing.T) {
	g := latticeGrouper(t)

	r, mask, err := g.Mask(1, 0)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 2, 20, 12), r)
	assert.Equal(t, 20, mask.Width)
	assert.Equal(t, 10, mask.Height)
	assert.Equal(t, uint8(255), mask.At(0, 0))
	assert.Equal(t, uint8(0), mask.At(10, 0), "gap between the members")
	assert.Equal(t, uint8(255), mask.At(12, 9))
	assert.Equal(t, 180, mask.Count())
}

func TestMask_GrowClipsAndDilates(t *testing.T) {
	g := latticeGrouper(t)

	_, plain, err := g.Mask(0, 0)
	require.NoError(t, err)

	r, grown, err := g.Mask(0, 2)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 12, 14), r)
	assert.Equal(t, 12, grown.Width)
	assert.Equal(t, 14, grown.Height)
	assert.Equal(t, uint8(255), grown.At(10, 5))
	assert.Greater(t, grown.Count(), plain.Count())

	_, _, err = g.Mask(0, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMask_GrowIsRound(t *testing.T) {
	g := newGrouper(t, nil)
	require.NoError(t, g.SetSegmentation(paint(20, 20, image.Rect(10, 10, 11, 11))))

	r, mask, err := g.Mask(0, 3)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(7, 7, 14, 14), r)
	assert.Equal(t, uint8(255), mask.At(3, 3))
	assert.Equal(t, uint8(255), mask.At(0, 3))
	assert.Equal(t, uint8(0), mask.At(0, 0), "corner outside the disk")
	assert.Equal(t, uint8(0), mask.At(6, 6), "corner outside the disk")
	assert.Equal(t, 29, mask.Count())
}

func TestMask_FullHeight(t *testing.T) {
	g := newGrouper(t, func(o *Options) { o.FullHeight = true })
	require.NoError(t, g.SetSegmentation(threeComponents()))

	r, mask, err := g.Mask(0, 0)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 10, 14), r)
	assert.Equal(t, uint8(0), mask.At(0, 0))
	assert.Equal(t, uint8(255), mask.At(0, 2))
}

func TestMaskAt(t *testing.T) {
	g := latticeGrouper(t)

	mask, err := g.MaskAt(0, image.Rect(-5, -5, 5, 5))
	require.NoError(t, err)
	assert.Equal(t, 10, mask.Width)
	assert.Equal(t, uint8(0), mask.At(0, 0), "outside the image")
	assert.Equal(t, uint8(0), mask.At(5, 5), "background")
	assert.Equal(t, uint8(255), mask.At(5, 7))
	assert.Equal(t, uint8(255), mask.At(9, 9))

	_, err = g.MaskAt(0, image.Rect(-2000, 0, 0, 1))
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = g.MaskAt(7, image.Rect(0, 0, 1, 1))
	assert.ErrorIs(t, err, ErrIndex)
}

// ramp returns a source whose pixel (x, y) is x + 100*y.
func ramp(w, h int) *raster.Array[float32] {
	a := raster.New[float32](w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a.Set(x, y, float32(x+100*y))
		}
	}
	return a
}

func TestExtract(t *testing.T) {
	g := latticeGrouper(t)
	src := ramp(60, 14)

	out, mask, err := ExtractMasked(g, src, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 20, out.Width)
	assert.Equal(t, 10, out.Height)
	assert.Equal(t, mask.Width, out.Width)
	assert.Equal(t, float32(200), out.At(0, 0))
	assert.Equal(t, float32(0), out.At(10, 0))
	assert.Equal(t, float32(512), out.At(12, 3))

	out, err = ExtractWithBackground(g, src, -1, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, float32(-1), out.At(10, 0))
	assert.Equal(t, float32(200), out.At(0, 0))
}

func TestExtractSliced(t *testing.T) {
	g := latticeGrouper(t)
	src := ramp(60, 14)

	out, mask, err := ExtractSlicedMasked(g, src, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 20, out.Width)
	assert.Equal(t, 14, out.Height, "rows stay aligned with the source")
	assert.Equal(t, 10, mask.Height)
	assert.Equal(t, float32(200), out.At(0, 2))
	assert.Equal(t, float32(0), out.At(0, 0))

	out, err = ExtractSlicedWithBackground(g, src, -1, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, float32(-1), out.At(0, 0))
	assert.Equal(t, float32(-1), out.At(0, 13))
	assert.Equal(t, float32(1100), out.At(0, 11))
}

func TestExtract_Bytes(t *testing.T) {
	g := latticeGrouper(t)
	src := raster.New[uint8](60, 14)
	src.Fill(9)

	out, err := ExtractWithBackground(g, src, 255, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, 15, out.Width)
	assert.Equal(t, uint8(9), out.At(0, 0))
}

func TestExtract_DimensionMismatch(t *testing.T) {
	g := latticeGrouper(t)

	_, _, err := ExtractMasked(g, ramp(10, 10), 0, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = ExtractSlicedWithBackground(g, ramp(60, 13), 0, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
