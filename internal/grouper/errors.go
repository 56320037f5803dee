package grouper

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument indicates bad input: label values out of range,
	// mismatched array dimensions, unknown options.
	ErrInvalidArgument = errors.New("grouper: invalid argument")
	// ErrInvariant indicates state that should be impossible for a well-formed
	// segmentation; the current image should be skipped.
	ErrInvariant = errors.New("grouper: invariant violation")
	// ErrTranscriptMismatch indicates ground-truth data that disagrees with itself.
	ErrTranscriptMismatch = errors.New("grouper: transcript doesn't agree with cseg")
	// ErrIndex indicates a candidate index outside [0, Length()).
	ErrIndex = errors.New("grouper: candidate index out of range")
	// ErrNoSegmentation indicates an operation that needs a segmentation before one was set.
	ErrNoSegmentation = errors.New("grouper: no segmentation set")
)

// TranscriptError reports a transcript whose length does not match the
// number of labels in the character segmentation.
type TranscriptError struct {
	// Transcript is the transcript after normalisation.
	Transcript string
	// Length is the number of characters in Transcript.
	Length int
	// Labels is the largest label of the character segmentation.
	Labels int
}

func (e *TranscriptError) Error() string {
	return fmt.Sprintf("%v (transcript %d, cseg %d)", ErrTranscriptMismatch, e.Length, e.Labels)
}

func (e *TranscriptError) Unwrap() error {
	return ErrTranscriptMismatch
}
