package grouper

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironsheep/lattice-grouper/internal/raster"
	"github.com/ironsheep/lattice-grouper/internal/segmentation"
)

// paint builds a w×h label image where rects[k] is filled with label k+1.
func paint(w, h int, rects ...image.Rectangle) *segmentation.LabelImage {
	a := raster.New[int](w, h)
	for k, r := range rects {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				a.Set(x, y, k+1)
			}
		}
	}
	return a
}

// threeComponents has boxes x∈[0,10), [12,20), [40,55), all rows 2..11 of a
// 60×14 image: gaps of 2 and 20 pixels.
func threeComponents() *segmentation.LabelImage {
	return paint(60, 14,
		image.Rect(0, 2, 10, 12),
		image.Rect(12, 2, 20, 12),
		image.Rect(40, 2, 55, 12),
	)
}

func newGrouper(t *testing.T, mutate func(*Options)) *SimpleGrouper {
	t.Helper()
	opts := DefaultOptions()
	if mutate != nil {
		mutate(&opts)
	}
	g, err := NewSimpleGrouper(opts)
	require.NoError(t, err)
	return g
}

func candidateSets(g *SimpleGrouper) [][]int {
	out := make([][]int, g.Length())
	for i := range out {
		out[i] = g.Segments(i)
	}
	return out
}
