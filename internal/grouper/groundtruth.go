package grouper

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
	"gonum.org/v1/gonum/floats"

	"github.com/ironsheep/lattice-grouper/internal/raster"
	"github.com/ironsheep/lattice-grouper/internal/segmentation"
)

// maxCorrespondenceLabels bounds the label values of both images given to
// the overlap counts.
const maxCorrespondenceLabels = 10000

// SetSegmentationAndGT installs seg like SetSegmentation and then aligns it
// with the character segmentation cseg, whose label k is the k-th character
// of transcript.
//
// The transcript is NFC-normalised and cut at its first newline. If its
// length then differs from the largest cseg label, whitespace is removed as
// well, for transcripts written against character segmentations without
// space labels. A remaining mismatch is a *TranscriptError.
func (g *SimpleGrouper) SetSegmentationAndGT(seg, cseg *segmentation.LabelImage, transcript string) error {
	if err := g.SetSegmentation(seg); err != nil {
		return err
	}
	if cseg == nil || !raster.SameDims(g.labels, cseg) {
		return fmt.Errorf("%w: character segmentation does not match the segmentation %v", ErrInvalidArgument, g.Bounds())
	}
	chars := cseg.Clone()
	segmentation.MakeLineSegmentationBlack(chars)
	if err := segmentation.CheckLabels(chars); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	want := segmentation.MaxLabel(chars)
	text := chomp(norm.NFC.String(transcript))
	if len([]rune(text)) != want {
		text = removeSpaces(text)
	}
	runes := []rune(text)
	if len(runes) != want {
		return &TranscriptError{Transcript: text, Length: len(runes), Labels: want}
	}

	groups, err := correspondences(g.labels, chars)
	if err != nil {
		return err
	}
	g.gtTranscript = runes
	g.gtSegments = groups
	return nil
}

// correspondences assigns every label of seg to the cseg label it overlaps
// most, ties going to the lower cseg label, and returns the seg labels
// grouped by cseg label. Every seg label, background included, lands in
// exactly one group.
func correspondences(seg, cseg *segmentation.LabelImage) ([][]int, error) {
	nseg := segmentation.MaxLabel(seg) + 1
	ncseg := segmentation.MaxLabel(cseg) + 1
	if nseg > maxCorrespondenceLabels || ncseg > maxCorrespondenceLabels {
		return nil, fmt.Errorf("%w: too many labels for correspondence (%d, %d)", ErrInvalidArgument, nseg, ncseg)
	}

	// only label pairs that actually overlap are stored
	overlaps := make([]map[int]float64, nseg)
	for i, sl := range seg.Pix {
		if overlaps[sl] == nil {
			overlaps[sl] = make(map[int]float64)
		}
		overlaps[sl][cseg.Pix[i]]++
	}

	groups := make([][]int, ncseg)
	row := make([]float64, ncseg)
	for i := 0; i < nseg; i++ {
		for c, n := range overlaps[i] {
			row[c] = n
		}
		j := floats.MaxIdx(row)
		if j < 0 || j >= ncseg {
			return nil, fmt.Errorf("%w: no correspondence for label %d", ErrInvariant, i)
		}
		groups[j] = append(groups[j], i)
		for c := range overlaps[i] {
			row[c] = 0
		}
	}
	return groups, nil
}

// GTIndex returns the character-segmentation label whose overlap group is
// exactly the member list of candidate i, or -1 when there is none or no
// ground truth is set.
func (g *SimpleGrouper) GTIndex(i int) int {
	segs := g.candidates[i].segs
	for j, group := range g.gtSegments {
		if slices.Equal(group, segs) {
			return j
		}
	}
	return -1
}

// GTClass returns the transcript character of candidate i, or -1 when
// GTIndex is -1. An index outside [0, Length()) is ErrIndex.
func (g *SimpleGrouper) GTClass(i int) (rune, error) {
	if err := g.checkIndex(i); err != nil {
		return -1, err
	}
	match := g.GTIndex(i)
	if match < 0 {
		return -1, nil
	}
	pos := match - 1
	if pos < 0 || pos >= len(g.gtTranscript) {
		return -1, fmt.Errorf("%w: transcript / cseg mismatch: label %d, transcript length %d",
			ErrInvariant, match, len(g.gtTranscript))
	}
	return g.gtTranscript[pos], nil
}

// GTGroups returns a copy of the segmentation labels grouped by the
// character label they overlap most, or nil without ground truth.
func (g *SimpleGrouper) GTGroups() [][]int {
	if g.gtSegments == nil {
		return nil
	}
	out := make([][]int, len(g.gtSegments))
	for j, group := range g.gtSegments {
		out[j] = append([]int(nil), group...)
	}
	return out
}

// Transcript returns the normalised ground-truth transcript.
func (g *SimpleGrouper) Transcript() string {
	return string(g.gtTranscript)
}

// chomp cuts s at its first newline.
func chomp(s string) string {
	before, _, _ := strings.Cut(s, "\n")
	return before
}

func removeSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
