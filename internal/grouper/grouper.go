package grouper

import (
	"fmt"
	"image"

	"github.com/ironsheep/lattice-grouper/internal/raster"
	"github.com/ironsheep/lattice-grouper/internal/segmentation"
)

// Transducer is the graph a lattice is written into.
type Transducer interface {
	Clear()
	NewState() int
	SetStart(s int)
	SetAccept(s int)
	AddTransition(from, to int, input rune, cost float64, output int)
}

// Hypothesis is one classifier answer for a candidate.
type Hypothesis struct {
	Class string  `json:"class"`
	Cost  float64 `json:"cost"`
}

// Grouper enumerates candidate character groups over a segmentation and
// compiles classifier output for them into a lattice.
//
// Accessors taking a candidate index panic when it is outside [0, Length()),
// like slice indexing; operations that return an error report ErrIndex instead.
type Grouper interface {
	// Name identifies the grouping strategy.
	Name() string

	// SetSegmentation installs a new segmentation and enumerates candidates.
	SetSegmentation(seg *segmentation.LabelImage) error
	// SetCSegmentation installs a character segmentation: every candidate is
	// a single label.
	SetCSegmentation(cseg *segmentation.LabelImage) error
	// SetSegmentationAndGT installs seg and aligns it with a ground-truth
	// character segmentation and its transcript.
	SetSegmentationAndGT(seg, cseg *segmentation.LabelImage, transcript string) error

	// Bounds is the rectangle of the installed label image.
	Bounds() image.Rectangle
	Length() int
	BoundingBox(i int) image.Rectangle
	Start(i int) int
	End(i int) int
	Segments(i int) []int
	// PixelSpace is the gap between candidate i and the next label, -1 when
	// i ends at the last label.
	PixelSpace(i int) int

	Mask(i, grow int) (image.Rectangle, *raster.Array[uint8], error)
	MaskAt(i int, r image.Rectangle) (*raster.Array[uint8], error)

	SetClass(i int, cls string, cost float64) error
	SetSpaceCost(i int, yes, no float64) error
	ClearLattice()
	Lattice(t Transducer) error

	// GTIndex returns the ground-truth label matching candidate i, or -1.
	GTIndex(i int) int
	// GTClass returns the transcript character of candidate i, or -1 when
	// it does not match a ground-truth character.
	GTClass(i int) (rune, error)
}

// New returns the grouper registered under name. Both "simplegrouper" and
// "standardgrouper" (and the empty name) select SimpleGrouper.
func New(name string, opts Options) (Grouper, error) {
	switch name {
	case "", "simplegrouper", "standardgrouper":
		g, err := NewSimpleGrouper(opts)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("%w: unknown grouper %q", ErrInvalidArgument, name)
	}
}
