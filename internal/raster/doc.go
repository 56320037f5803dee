// Package raster provides the small two-dimensional array type shared by the
// segmentation and grouper packages.
//
// An Array stores pixels row-major with (0,0) at the top-left corner; X grows
// rightward and Y downward, matching the image package. The element type is a
// type parameter so that byte images, float feature maps and integer label
// images all use the same code paths.
//
// Conversions to and from image.Image go through disintegration/imaging, and
// binary dilation by a disk runs through bild's convolution.
package raster
