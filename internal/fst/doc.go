// Package fst is the weighted transducer the grouper compiles its lattice
// into.
//
// States are dense integers handed out by NewState. Every arc carries an
// input symbol (a rune), a cost, and an integer output used as a provenance
// tag. One start state and any number of accept states can be marked. The
// package only stores the graph; searching it is left to a decoder.
package fst
