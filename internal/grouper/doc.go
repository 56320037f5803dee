// Package grouper turns a labelled line segmentation into a recognition
// lattice.
//
// A Grouper session runs in four steps:
//
//  1. SetSegmentation installs a label image and enumerates candidate groups:
//     every run of 1..MaxRange consecutive labels whose neighbouring boxes are
//     at most MaxDist pixels apart and, for runs longer than one, whose union
//     box is not too wide (MaxAspect, MaxWidth × mean component height).
//  2. The caller extracts masks or pixel regions for each candidate
//     (Mask, MaskAt, ExtractMasked, ExtractWithBackground and the sliced
//     variants) and runs its own classifier over them.
//  3. The classifier output goes back in with SetClass (any number of
//     alternatives per candidate) and SetSpaceCost.
//  4. Lattice compiles everything into a Transducer: one state per label
//     boundary, a chain of single-character arcs per hypothesis tagged with
//     the candidate's (start<<16 | end) provenance id, and an optional
//     trailing space branch.
//
// For training, SetSegmentationAndGT additionally aligns the segmentation with
// a ground-truth character segmentation by pixel-overlap voting; GTIndex and
// GTClass then report which ground-truth character, if any, a candidate
// corresponds to exactly.
//
// A Grouper is a single-threaded session object. Callers that share one
// across goroutines must serialise access themselves.
//
// Errors wrap one of ErrInvalidArgument, ErrInvariant, ErrTranscriptMismatch,
// ErrIndex or ErrNoSegmentation; test them with errors.Is.
package grouper
