// Package segmentation holds the label-image utilities used around the
// grouper: normalising line segmentations, validating labels, computing
// per-label bounding boxes, connected-component labelling, relabelling by
// x-centre, projecting character boxes onto a segmentation and scoring one
// segmentation against another.
//
// A label image is a raster.Array[int] where every connected component
// carries a positive integer and 0 is background. On disk, segmentations are
// RGB images with the label packed as R<<16 | G<<8 | B; pure white
// (0xFFFFFF) is background and is mapped to 0 by MakeLineSegmentationBlack.
//
// Errors:
//
//   - ErrLabelRange: a label is negative or not below MaxLabelValue.
//   - ErrDims: two images that must align have different sizes.
//   - ErrEmpty: an operation needs at least one box or pixel.
//   - ErrUnsorted: component boxes are not approximately left-to-right.
package segmentation
