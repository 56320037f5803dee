package segmentation

import (
	"fmt"
	"image"
)

// BoundingBoxes returns one box per label value 0..MaxLabel(a). Box i is the
// smallest half-open rectangle containing every pixel labelled i; labels that
// do not occur get the zero Rectangle.
func BoundingBoxes(a *LabelImage) []image.Rectangle {
	boxes := make([]image.Rectangle, MaxLabel(a)+1)
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			l := a.Pix[y*a.Width+x]
			px := image.Rect(x, y, x+1, y+1)
			if boxes[l].Empty() {
				boxes[l] = px
			} else {
				boxes[l] = boxes[l].Union(px)
			}
		}
	}
	return boxes
}

// CheckApproximatelySorted verifies that no component box lies entirely to
// the left of its predecessor. Index 0 (background) and empty boxes are
// skipped.
func CheckApproximatelySorted(boxes []image.Rectangle) error {
	prev := 0
	for i := 1; i < len(boxes); i++ {
		if boxes[i].Empty() {
			continue
		}
		if prev > 0 && boxes[i].Max.X < boxes[prev].Min.X {
			return fmt.Errorf("%w: box %d is to the left of box %d", ErrUnsorted, i, prev)
		}
		prev = i
	}
	return nil
}
