package raster

import "image"

// Pixel is the set of element types an Array can hold.
type Pixel interface {
	~uint8 | ~int | ~int32 | ~float32 | ~float64
}

// Array is a dense Width×Height grid of pixels stored row-major.
type Array[T Pixel] struct {
	Width, Height int
	Pix           []T
}

// New allocates a zero-filled w×h array. Negative sizes are treated as zero.
func New[T Pixel](w, h int) *Array[T] {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Array[T]{Width: w, Height: h, Pix: make([]T, w*h)}
}

// FromRows builds an array from rows[y][x]. The input is copied.
func FromRows[T Pixel](rows [][]T) (*Array[T], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmpty
	}
	w := len(rows[0])
	a := New[T](w, len(rows))
	for y, row := range rows {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
		copy(a.Pix[y*w:(y+1)*w], row)
	}
	return a, nil
}

// At returns the pixel at (x, y). It panics when (x, y) is outside the array.
func (a *Array[T]) At(x, y int) T {
	return a.Pix[y*a.Width+x]
}

// Set stores v at (x, y).
func (a *Array[T]) Set(x, y int, v T) {
	a.Pix[y*a.Width+x] = v
}

// InBounds reports whether (x, y) addresses a pixel of the array.
func (a *Array[T]) InBounds(x, y int) bool {
	return x >= 0 && x < a.Width && y >= 0 && y < a.Height
}

// Bounds returns the rectangle (0,0)-(Width,Height).
func (a *Array[T]) Bounds() image.Rectangle {
	return image.Rect(0, 0, a.Width, a.Height)
}

// Fill sets every pixel to v.
func (a *Array[T]) Fill(v T) {
	for i := range a.Pix {
		a.Pix[i] = v
	}
}

// Clone returns a deep copy.
func (a *Array[T]) Clone() *Array[T] {
	c := &Array[T]{Width: a.Width, Height: a.Height, Pix: make([]T, len(a.Pix))}
	copy(c.Pix, a.Pix)
	return c
}

// Max returns the largest pixel value, or the zero value for an empty array.
func (a *Array[T]) Max() T {
	var m T
	for i, v := range a.Pix {
		if i == 0 || v > m {
			m = v
		}
	}
	return m
}

// Count returns the number of pixels that are not zero.
func (a *Array[T]) Count() int {
	n := 0
	for _, v := range a.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

// SameDims reports whether a and b have identical width and height.
func SameDims[T, U Pixel](a *Array[T], b *Array[U]) bool {
	return a.Width == b.Width && a.Height == b.Height
}
