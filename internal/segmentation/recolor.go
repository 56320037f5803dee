package segmentation

import (
	"image"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// goldenAngle spreads successive label hues around the colour wheel so that
// neighbouring labels get visibly different colours.
const goldenAngle = 137.50776405

// LabelColor returns the display colour of a label. Background is black.
func LabelColor(label int) color.NRGBA {
	if label == 0 {
		return color.NRGBA{A: 255}
	}
	hue := math.Mod(float64(label)*goldenAngle, 360)
	sat := 0.65 + 0.3*float64(label%3)/2
	r, g, b := colorful.Hsv(hue, sat, 0.95).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// Recolor renders a label image for inspection, one distinct colour per label.
func Recolor(a *LabelImage) *image.NRGBA {
	img := image.NewNRGBA(a.Bounds())
	cache := make(map[int]color.NRGBA)
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			l := a.Pix[y*a.Width+x]
			c, ok := cache[l]
			if !ok {
				c = LabelColor(l)
				cache[l] = c
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}
