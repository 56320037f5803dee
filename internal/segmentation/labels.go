package segmentation

import (
	"fmt"
	"sort"

	"github.com/ironsheep/lattice-grouper/internal/raster"
)

// LabelImage is a segmentation: one integer label per pixel, 0 is background.
type LabelImage = raster.Array[int]

const (
	// MaxLabelValue bounds every label value (exclusive).
	MaxLabelValue = 100000
	// White is the packed RGB value used for background in segmentation files.
	White = 0xffffff
)

// MakeLineSegmentationBlack maps white background pixels to label 0 in place.
func MakeLineSegmentationBlack(a *LabelImage) {
	for i, v := range a.Pix {
		if v == White {
			a.Pix[i] = 0
		}
	}
}

// CheckLabels returns ErrLabelRange if any label is negative or not below
// MaxLabelValue.
func CheckLabels(a *LabelImage) error {
	for i, v := range a.Pix {
		if v < 0 || v >= MaxLabelValue {
			return fmt.Errorf("%w: %d at (%d,%d)", ErrLabelRange, v, i%a.Width, i/a.Width)
		}
	}
	return nil
}

// MaxLabel returns the largest label, 0 for an image of pure background.
func MaxLabel(a *LabelImage) int {
	if len(a.Pix) == 0 {
		return 0
	}
	return a.Max()
}

// Renumber compacts the non-zero labels of a in place to start, start+1, ...
// keeping their relative order, and returns one past the last label used.
// Background stays 0.
func Renumber(a *LabelImage, start int) int {
	seen := make(map[int]struct{})
	for _, v := range a.Pix {
		if v != 0 {
			seen[v] = struct{}{}
		}
	}
	values := make([]int, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Ints(values)
	remap := make(map[int]int, len(values))
	for i, v := range values {
		remap[v] = start + i
	}
	for i, v := range a.Pix {
		if v != 0 {
			a.Pix[i] = remap[v]
		}
	}
	return start + len(values)
}
