package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/ironsheep/lattice-grouper/internal/raster"
)

func decodeResult(t *testing.T, r *EncodedImage) image.Image {
	t.Helper()
	data, err := base64.StdEncoding.DecodeString(r.ImageBase64)
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("invalid png: %v", err)
	}
	return img
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name          string
		scale         float64
		width, height int
	}{
		{"unscaled", 1.0, 40, 20},
		{"zero scale ignored", 0, 40, 20},
		{"doubled", 2.0, 80, 40},
		{"halved", 0.5, 20, 10},
	}
	img := solidImage(40, 20, color.RGBA{10, 20, 30, 255})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Encode(img, tt.scale)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if r.Width != tt.width || r.Height != tt.height {
				t.Errorf("size: got %dx%d, want %dx%d", r.Width, r.Height, tt.width, tt.height)
			}
			if r.MimeType != "image/png" {
				t.Errorf("MimeType: got %s", r.MimeType)
			}
			if b := decodeResult(t, r).Bounds(); b.Dx() != tt.width || b.Dy() != tt.height {
				t.Errorf("decoded size: got %v", b)
			}
		})
	}
}

func TestEncode_Empty(t *testing.T) {
	if _, err := Encode(image.NewRGBA(image.Rectangle{}), 1); err == nil {
		t.Error("Encode should fail for an empty image")
	}
}

func TestEncodeArray(t *testing.T) {
	a := raster.New[float32](3, 1)
	a.Pix[0], a.Pix[1], a.Pix[2] = -5, 100, 300

	r, err := EncodeArray(a, 1)
	if err != nil {
		t.Fatalf("EncodeArray failed: %v", err)
	}
	img := decodeResult(t, r)
	want := []uint8{0, 100, 255}
	for x, w := range want {
		if got := color.GrayModel.Convert(img.At(x, 0)).(color.Gray).Y; got != w {
			t.Errorf("pixel %d: got %d, want %d", x, got, w)
		}
	}
}

func TestCrop(t *testing.T) {
	img := labelImage()

	out, err := Crop(img, image.Rect(3, 0, 5, 2))
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if b := out.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Errorf("crop size: got %v", b)
	}
	if got := color.NRGBAModel.Convert(out.At(0, 0)).(color.NRGBA); got != (color.NRGBA{G: 1, B: 2, A: 255}) {
		t.Errorf("crop content: got %v", got)
	}

	if _, err := Crop(img, image.Rect(3, 0, 6, 2)); err == nil {
		t.Error("Crop should fail outside the image")
	}
	if _, err := Crop(img, image.Rect(3, 0, 3, 2)); err == nil {
		t.Error("Crop should fail for an empty region")
	}
}

func TestImageCache_Save(t *testing.T) {
	cache := NewImageCache()
	path := t.TempDir() + "/labels.png"
	img := labelImage()

	if err := cache.Save(img, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	cache.Evict(path)

	labels, err := cache.LoadLabels(path)
	if err != nil {
		t.Fatalf("LoadLabels failed: %v", err)
	}
	if got := labels.At(3, 0); got != 258 {
		t.Errorf("label after save: got %d, want 258", got)
	}
}
