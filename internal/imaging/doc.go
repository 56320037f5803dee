// Package imaging loads page and segmentation images from disk and encodes
// raster results for transport.
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner. Regions
// are half-open: Min is inclusive, Max exclusive.
//
// Segmentation images store one label per pixel packed as R<<16 | G<<8 | B;
// white (0xFFFFFF) is background. PNG, JPEG, GIF and TIFF inputs are
// supported. Everything loaded goes through an ImageCache so a page used by
// several tool calls is decoded once.
package imaging
