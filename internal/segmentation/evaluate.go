package segmentation

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Evaluation counts the disagreements between a model (ground truth)
// segmentation and a produced one.
type Evaluation struct {
	// Over counts model components split into a significant second piece.
	Over int `json:"over"`
	// Under counts produced components that swallow a significant part of a second model component.
	Under int `json:"under"`
	// Misc counts small stray overlaps at or below the tolerance.
	Misc int `json:"misc"`
}

// Evaluate compares image against model. Both are copied, white is mapped to
// background and labels are compacted before the overlap table is built.
// tolerance is the fraction of a component's pixels that a secondary overlap
// must exceed to count as an over- or under-segmentation.
func Evaluate(model, image *LabelImage, tolerance float64) (Evaluation, error) {
	var ev Evaluation
	if model.Width != image.Width || model.Height != image.Height {
		return ev, fmt.Errorf("%w: model %dx%d, image %dx%d",
			ErrDims, model.Width, model.Height, image.Width, image.Height)
	}

	m := model.Clone()
	MakeLineSegmentationBlack(m)
	nmodel := Renumber(m, 1)
	if nmodel >= MaxLabelValue {
		return ev, fmt.Errorf("%w: %d model labels", ErrLabelRange, nmodel)
	}
	im := image.Clone()
	MakeLineSegmentationBlack(im)
	nimage := Renumber(im, 1)
	if nimage >= MaxLabelValue {
		return ev, fmt.Errorf("%w: %d image labels", ErrLabelRange, nimage)
	}

	table := mat.NewDense(nmodel, nimage, nil)
	for i := range m.Pix {
		r, c := m.Pix[i], im.Pix[i]
		table.Set(r, c, table.At(r, c)+1)
	}

	row := make([]float64, nimage)
	for i := 1; i < nmodel; i++ {
		mat.Row(row, i, table)
		row[0] = 0
		over, misc := countSecondary(row, tolerance)
		ev.Over += over
		ev.Misc += misc
	}
	col := make([]float64, nmodel)
	for j := 1; j < nimage; j++ {
		mat.Col(col, j, table)
		col[0] = 0
		under, misc := countSecondary(col, tolerance)
		ev.Under += under
		ev.Misc += misc
	}
	return ev, nil
}

// countSecondary inspects every non-zero entry of v other than its maximum
// and splits them into significant (> tolerance of the total) and minor ones.
func countSecondary(v []float64, tolerance float64) (significant, minor int) {
	total := floats.Sum(v)
	if total == 0 {
		return 0, 0
	}
	match := floats.MaxIdx(v)
	for k := 1; k < len(v); k++ {
		if k == match || v[k] == 0 {
			continue
		}
		if v[k]/total > tolerance {
			significant++
		} else {
			minor++
		}
	}
	return significant, minor
}
