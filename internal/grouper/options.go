package grouper

import (
	"fmt"
	"strconv"
)

// Options tunes candidate enumeration and extraction.
type Options struct {
	// MaxRange is the largest number of consecutive labels merged into one candidate.
	MaxRange int
	// MaxDist is the largest horizontal gap in pixels between neighbouring members.
	MaxDist int
	// MaxAspect bounds width/height of multi-label candidates.
	MaxAspect float64
	// MaxWidth bounds the width of multi-label candidates, as a multiple of
	// the mean component height.
	MaxWidth float64
	// FullHeight makes extraction boxes span the whole image height.
	FullHeight bool
	// CheckOrder rejects segmentations whose boxes are not approximately
	// sorted left to right.
	CheckOrder bool
}

// DefaultOptions returns MaxRange=4, MaxDist=2, MaxAspect=2.5, MaxWidth=2.5,
// FullHeight=false, CheckOrder=true.
func DefaultOptions() Options {
	return Options{
		MaxRange:   4,
		MaxDist:    2,
		MaxAspect:  2.5,
		MaxWidth:   2.5,
		FullHeight: false,
		CheckOrder: true,
	}
}

// Validate checks that the numeric limits are usable.
func (o Options) Validate() error {
	if o.MaxRange < 1 {
		return fmt.Errorf("%w: maxrange must be at least 1, got %d", ErrInvalidArgument, o.MaxRange)
	}
	if o.MaxAspect <= 0 {
		return fmt.Errorf("%w: maxaspect must be positive, got %g", ErrInvalidArgument, o.MaxAspect)
	}
	if o.MaxWidth <= 0 {
		return fmt.Errorf("%w: maxwidth must be positive, got %g", ErrInvalidArgument, o.MaxWidth)
	}
	return nil
}

// Set assigns one option by its parameter name: maxrange, maxdist,
// maxaspect, maxwidth, fullheight or checkorder.
func (o *Options) Set(name, value string) error {
	var err error
	switch name {
	case "maxrange":
		o.MaxRange, err = strconv.Atoi(value)
	case "maxdist":
		o.MaxDist, err = strconv.Atoi(value)
	case "maxaspect":
		o.MaxAspect, err = strconv.ParseFloat(value, 64)
	case "maxwidth":
		o.MaxWidth, err = strconv.ParseFloat(value, 64)
	case "fullheight":
		o.FullHeight, err = strconv.ParseBool(value)
	case "checkorder":
		o.CheckOrder, err = strconv.ParseBool(value)
	default:
		return fmt.Errorf("%w: unknown option %q", ErrInvalidArgument, name)
	}
	if err != nil {
		return fmt.Errorf("%w: option %s=%q: %v", ErrInvalidArgument, name, value, err)
	}
	return nil
}
