package segmentation

import "errors"

var (
	// ErrLabelRange indicates a label value outside 0..MaxLabelValue-1.
	ErrLabelRange = errors.New("segmentation: label out of range")
	// ErrDims indicates two label images with different dimensions.
	ErrDims = errors.New("segmentation: dimensions do not match")
	// ErrEmpty indicates an empty input where at least one element is required.
	ErrEmpty = errors.New("segmentation: empty input")
	// ErrUnsorted indicates component boxes that are not approximately sorted left to right.
	ErrUnsorted = errors.New("segmentation: boxes are not approximately sorted")
)
