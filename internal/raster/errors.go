package raster

import "errors"

var (
	// ErrEmpty indicates an input with no rows or no columns.
	ErrEmpty = errors.New("raster: input must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("raster: all rows must have the same length")
)
