package segmentation

import (
	"fmt"
	"math"
	"sort"
)

// maxSortLabels bounds the label count accepted by SortByXCenter.
const maxSortLabels = 10000

// SortByXCenter relabels the components of a in place so that label 1 has
// the leftmost mean x coordinate, label 2 the next, and so on. Labels with no
// pixels disappear. White background is mapped to 0 first.
func SortByXCenter(a *LabelImage) error {
	MakeLineSegmentationBlack(a)
	if err := CheckLabels(a); err != nil {
		return err
	}
	n := MaxLabel(a) + 1
	if n >= maxSortLabels {
		return fmt.Errorf("%w: %d labels, limit %d", ErrLabelRange, n, maxSortLabels)
	}

	centers := make([]float64, n)
	counts := make([]int, n)
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			l := a.Pix[y*a.Width+x]
			centers[l] += float64(x)
			counts[l]++
		}
	}
	counts[0] = 0
	for i := range centers {
		if counts[i] > 0 {
			centers[i] /= float64(counts[i])
		} else {
			centers[i] = math.Inf(1)
		}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return centers[order[i]] < centers[order[j]] })
	rank := make([]int, n)
	for r, l := range order {
		rank[l] = r
	}

	for i, l := range a.Pix {
		if counts[l] == 0 {
			a.Pix[i] = 0
		} else {
			a.Pix[i] = rank[l] + 1
		}
	}
	return nil
}
