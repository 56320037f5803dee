package grouper

import (
	"fmt"
	"image"

	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/lattice-grouper/internal/segmentation"
)

// candidate is a run of consecutive labels considered as one symbol.
type candidate struct {
	box  image.Rectangle
	segs []int
}

// SimpleGrouper merges runs of neighbouring components under geometric limits.
type SimpleGrouper struct {
	opts Options

	labels     *segmentation.LabelImage
	rboxes     []image.Rectangle
	candidates []candidate

	classes [][]Hypothesis
	spaces  [][2]float64

	gtTranscript []rune
	gtSegments   [][]int
}

// NewSimpleGrouper returns a grouper configured with opts.
func NewSimpleGrouper(opts Options) (*SimpleGrouper, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &SimpleGrouper{opts: opts}, nil
}

// Name implements Grouper.
func (g *SimpleGrouper) Name() string { return "simplegrouper" }

// Options returns the current configuration.
func (g *SimpleGrouper) Options() Options { return g.opts }

// SetOptions replaces the configuration. It takes effect with the next
// segmentation.
func (g *SimpleGrouper) SetOptions(opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	g.opts = opts
	return nil
}

// SetSegmentation implements Grouper. The input is copied; white pixels are
// treated as background. All earlier candidates, classifications and
// ground truth are discarded, also when the new segmentation is rejected.
func (g *SimpleGrouper) SetSegmentation(seg *segmentation.LabelImage) error {
	return g.install(seg, g.opts.MaxRange, g.opts.MaxDist)
}

// SetCSegmentation implements Grouper with MaxRange=1 and MaxDist=2.
func (g *SimpleGrouper) SetCSegmentation(cseg *segmentation.LabelImage) error {
	return g.install(cseg, 1, 2)
}

func (g *SimpleGrouper) install(seg *segmentation.LabelImage, maxRange, maxDist int) error {
	g.reset()
	if seg == nil {
		return fmt.Errorf("%w: nil segmentation", ErrInvalidArgument)
	}
	labels := seg.Clone()
	segmentation.MakeLineSegmentationBlack(labels)
	if err := segmentation.CheckLabels(labels); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	boxes := segmentation.BoundingBoxes(labels)
	if g.opts.CheckOrder {
		if err := segmentation.CheckApproximatelySorted(boxes); err != nil {
			return fmt.Errorf("%w: %w", ErrInvariant, err)
		}
	}
	g.labels = labels
	g.rboxes = boxes
	g.computeGroups(maxRange, maxDist)
	return nil
}

func (g *SimpleGrouper) reset() {
	g.labels = nil
	g.rboxes = nil
	g.candidates = nil
	g.classes = nil
	g.spaces = nil
	g.gtTranscript = nil
	g.gtSegments = nil
}

// computeGroups enumerates, for every anchor label, each merge range that
// passes the gap and shape limits. Each range is judged on its own.
func (g *SimpleGrouper) computeGroups(maxRange, maxDist int) {
	n := len(g.rboxes)
	maxWidth := meanHeight(g.rboxes) * g.opts.MaxWidth

	// label 0 is background
	for i := 1; i < n; i++ {
		for r := 1; r <= maxRange && i+r <= n; r++ {
			box := g.rboxes[i]
			segs := make([]int, 0, r)
			ok := true
			for j := i; j < i+r; j++ {
				if j > i && g.rboxes[j].Min.X-g.rboxes[j-1].Max.X > maxDist {
					ok = false
					break
				}
				box = box.Union(g.rboxes[j])
				segs = append(segs, j)
			}
			if !ok {
				continue
			}
			if r > 1 && float64(box.Dx())/float64(box.Dy()) > g.opts.MaxAspect {
				continue
			}
			if r > 1 && float64(box.Dx()) > maxWidth {
				continue
			}
			g.candidates = append(g.candidates, candidate{box: box, segs: segs})
		}
	}
}

// meanHeight averages the heights of all non-background boxes.
func meanHeight(boxes []image.Rectangle) float64 {
	if len(boxes) < 2 {
		return 0
	}
	heights := make([]float64, 0, len(boxes)-1)
	for _, b := range boxes[1:] {
		heights = append(heights, float64(b.Dy()))
	}
	return stat.Mean(heights, nil)
}

// Bounds implements Grouper.
func (g *SimpleGrouper) Bounds() image.Rectangle {
	if g.labels == nil {
		return image.Rectangle{}
	}
	return g.labels.Bounds()
}

// Length returns the number of candidates.
func (g *SimpleGrouper) Length() int { return len(g.candidates) }

// BoundingBox returns the union box of candidate i.
func (g *SimpleGrouper) BoundingBox(i int) image.Rectangle { return g.candidates[i].box }

// Start returns the smallest member label of candidate i.
func (g *SimpleGrouper) Start(i int) int { return g.candidates[i].segs[0] }

// End returns the largest member label of candidate i.
func (g *SimpleGrouper) End(i int) int {
	segs := g.candidates[i].segs
	return segs[len(segs)-1]
}

// Segments returns a copy of the member labels of candidate i.
func (g *SimpleGrouper) Segments(i int) []int {
	return append([]int(nil), g.candidates[i].segs...)
}

// PixelSpace implements Grouper.
func (g *SimpleGrouper) PixelSpace(i int) int {
	end := g.End(i)
	if end >= len(g.rboxes)-1 {
		return -1
	}
	return g.rboxes[end+1].Min.X - g.rboxes[end].Max.X
}

func (g *SimpleGrouper) checkIndex(i int) error {
	if g.labels == nil {
		return ErrNoSegmentation
	}
	if i < 0 || i >= len(g.candidates) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrIndex, i, len(g.candidates))
	}
	return nil
}
