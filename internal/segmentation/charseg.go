package segmentation

import (
	"fmt"
	"image"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// BoxesToCharSeg builds a character segmentation from character boxes: every
// component of seg is assigned to the box containing most of its pixels, and
// its pixels receive that box's index + 1. Components that fall in no box
// become background. seg itself is not modified.
func BoxesToCharSeg(seg *LabelImage, boxes []image.Rectangle) (*LabelImage, error) {
	if len(boxes) == 0 {
		return nil, fmt.Errorf("%w: no character boxes", ErrEmpty)
	}
	labels := seg.Clone()
	MakeLineSegmentationBlack(labels)
	if err := CheckLabels(labels); err != nil {
		return nil, err
	}

	n := MaxLabel(labels) + 1
	counts := mat.NewDense(n, len(boxes), nil)
	for y := 0; y < labels.Height; y++ {
		for x := 0; x < labels.Width; x++ {
			l := labels.Pix[y*labels.Width+x]
			if l == 0 {
				continue
			}
			p := image.Pt(x, y)
			for k, b := range boxes {
				if p.In(b) {
					counts.Set(l, k, counts.At(l, k)+1)
				}
			}
		}
	}

	valuemap := make([]int, n)
	row := make([]float64, len(boxes))
	for i := 1; i < n; i++ {
		mat.Row(row, i, counts)
		if floats.Max(row) == 0 {
			continue
		}
		valuemap[i] = floats.MaxIdx(row) + 1
	}

	for i, l := range labels.Pix {
		labels.Pix[i] = valuemap[l]
	}
	return labels, nil
}
