package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/lattice-grouper/internal/raster"
)

// EncodedImage is a PNG ready to be returned from a tool call.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Encode renders img as base64 PNG, scaled by scale when it is positive and
// not 1. Nearest-neighbour resampling keeps label colours intact.
func Encode(img image.Image, scale float64) (*EncodedImage, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("cannot encode empty image %v", b)
	}

	out := img
	if scale != 1.0 && scale > 0 {
		w := max(1, int(float64(b.Dx())*scale))
		h := max(1, int(float64(b.Dy())*scale))
		out = imaging.Resize(img, w, h, imaging.NearestNeighbor)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &EncodedImage{
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// EncodeArray renders a raster as base64 grayscale PNG, clamping values into
// 0..255.
func EncodeArray[T raster.Pixel](a *raster.Array[T], scale float64) (*EncodedImage, error) {
	return Encode(raster.ToGray(a), scale)
}

// Crop cuts r out of img. r must lie within the image bounds.
func Crop(img image.Image, r image.Rectangle) (image.Image, error) {
	bounds := img.Bounds()
	if r.Empty() {
		return nil, fmt.Errorf("invalid crop region %v", r)
	}
	if !r.In(bounds) {
		return nil, fmt.Errorf("crop region %v outside image bounds %v", r, bounds)
	}
	return imaging.Crop(img, r), nil
}

// Save writes img to path in the format implied by its extension and
// replaces any cached copy of path with img.
func (c *ImageCache) Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	c.mu.Lock()
	c.images[path] = img
	c.mu.Unlock()
	return nil
}
