package grouper

import (
	"errors"
	"image"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/lattice-grouper/internal/raster"
)

func TestGroundTruth_OneToOne(t *testing.T) {
	seg := paint(30, 10, image.Rect(0, 0, 5, 10), image.Rect(10, 0, 15, 10))
	cseg := paint(30, 10, image.Rect(0, 0, 5, 10), image.Rect(10, 0, 15, 10))

	g := newGrouper(t, nil)
	require.NoError(t, g.SetSegmentationAndGT(seg, cseg, "ab\nignored"))
	require.Equal(t, [][]int{{1}, {2}}, candidateSets(g))

	assert.Equal(t, "ab", g.Transcript())
	assert.Equal(t, 1, g.GTIndex(0))
	assert.Equal(t, 2, g.GTIndex(1))

	c, err := g.GTClass(0)
	require.NoError(t, err)
	assert.Equal(t, 'a', c)
	c, err = g.GTClass(1)
	require.NoError(t, err)
	assert.Equal(t, 'b', c)

	assert.Equal(t, [][]int{{0}, {1}, {2}}, g.GTGroups())
}

func TestGroundTruth_OverSegmented(t *testing.T) {
	seg := paint(40, 10,
		image.Rect(0, 0, 4, 10),
		image.Rect(5, 0, 9, 10),
		image.Rect(20, 0, 25, 10),
	)
	cseg := paint(40, 10,
		image.Rect(0, 0, 9, 10),
		image.Rect(20, 0, 25, 10),
	)

	g := newGrouper(t, nil)
	require.NoError(t, g.SetSegmentationAndGT(seg, cseg, "ab"))
	require.Equal(t, [][]int{{1}, {1, 2}, {2}, {3}}, candidateSets(g))

	want := []rune{-1, 'a', -1, 'b'}
	for i, w := range want {
		c, err := g.GTClass(i)
		require.NoError(t, err)
		assert.Equal(t, w, c, "candidate %d", i)
	}

	// every segmentation label, background included, is in exactly one group
	var all []int
	for _, group := range g.GTGroups() {
		all = append(all, group...)
	}
	sort.Ints(all)
	assert.Equal(t, []int{0, 1, 2, 3}, all)
}

func TestGroundTruth_Transcripts(t *testing.T) {
	two := paint(30, 10, image.Rect(0, 0, 5, 10), image.Rect(10, 0, 15, 10))
	three := paint(30, 10, image.Rect(0, 0, 5, 10), image.Rect(6, 0, 9, 10), image.Rect(10, 0, 15, 10))

	tests := []struct {
		name       string
		cseg       int
		transcript string
		want       string
	}{
		{"spaces dropped when cseg has none", 2, "a b", "ab"},
		{"spaces kept when labelled", 3, "a b", "a b"},
		{"trailing newline", 2, "ab\n", "ab"},
		{"decomposed accent", 2, "e\u0301b", "\u00e9b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cseg := two
			if tt.cseg == 3 {
				cseg = three
			}
			g := newGrouper(t, nil)
			require.NoError(t, g.SetSegmentationAndGT(cseg, cseg, tt.transcript))
			assert.Equal(t, tt.want, g.Transcript())
		})
	}
}

func TestGroundTruth_Mismatch(t *testing.T) {
	seg := paint(30, 10, image.Rect(0, 0, 5, 10), image.Rect(10, 0, 15, 10))

	g := newGrouper(t, nil)
	err := g.SetSegmentationAndGT(seg, seg, "abc")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTranscriptMismatch)

	var te *TranscriptError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 3, te.Length)
	assert.Equal(t, 2, te.Labels)
	assert.Equal(t, "abc", te.Transcript)
}

func TestGroundTruth_Errors(t *testing.T) {
	seg := paint(30, 10, image.Rect(0, 0, 5, 10))
	g := newGrouper(t, nil)

	err := g.SetSegmentationAndGT(seg, paint(31, 10), "a")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	err = g.SetSegmentationAndGT(seg, nil, "a")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGroundTruth_Unset(t *testing.T) {
	g := latticeGrouper(t)
	assert.Equal(t, -1, g.GTIndex(0))
	c, err := g.GTClass(0)
	require.NoError(t, err)
	assert.Equal(t, rune(-1), c)
	assert.Nil(t, g.GTGroups())
}

func TestGroundTruth_ClassIndex(t *testing.T) {
	seg := paint(30, 10, image.Rect(0, 0, 5, 10))
	g := newGrouper(t, nil)
	require.NoError(t, g.SetSegmentationAndGT(seg, seg, "a"))
	require.Equal(t, 1, g.Length())

	for _, i := range []int{-1, 1, 5} {
		c, err := g.GTClass(i)
		assert.ErrorIs(t, err, ErrIndex, "index %d", i)
		assert.Equal(t, rune(-1), c)
	}

	_, err := newGrouper(t, nil).GTClass(0)
	assert.ErrorIs(t, err, ErrNoSegmentation)
}

func TestCorrespondences_SparseLabels(t *testing.T) {
	seg, err := raster.FromRows([][]int{{1, 1, 9999, 0}})
	require.NoError(t, err)
	cseg, err := raster.FromRows([][]int{{1, 2, 9999, 0}})
	require.NoError(t, err)

	groups, err := correspondences(seg, cseg)
	require.NoError(t, err)
	require.Len(t, groups, 10000)
	assert.Equal(t, []int{1}, groups[1], "ties go to the lower label")
	assert.Empty(t, groups[2])
	assert.Equal(t, []int{9999}, groups[9999])
	// background plus the absent labels 2..9998
	assert.Len(t, groups[0], 9998)
	assert.Equal(t, 0, groups[0][0])

	big, err := raster.FromRows([][]int{{10000}})
	require.NoError(t, err)
	_, err = correspondences(big, big)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
