package grouper

import (
	"math"

	"github.com/ironsheep/lattice-grouper/internal/segmentation"
)

// costCutoff is the cost at or above which an arc is considered implausible
// and left out of the lattice.
const costCutoff = 1000.0

// ClearLattice drops all classifications and space costs but keeps the
// candidates.
func (g *SimpleGrouper) ClearLattice() {
	g.classes = make([][]Hypothesis, len(g.candidates))
	g.spaces = make([][2]float64, len(g.candidates))
	for i := range g.spaces {
		g.spaces[i] = [2]float64{math.Inf(1), math.Inf(1)}
	}
}

func (g *SimpleGrouper) maybeInit() {
	if len(g.classes) != len(g.candidates) {
		g.ClearLattice()
	}
}

// SetClass appends a classifier hypothesis for candidate i. Repeated calls
// add alternatives.
func (g *SimpleGrouper) SetClass(i int, cls string, cost float64) error {
	if err := g.checkIndex(i); err != nil {
		return err
	}
	g.maybeInit()
	g.classes[i] = append(g.classes[i], Hypothesis{Class: cls, Cost: cost})
	return nil
}

// SetSpaceCost records the cost of a space after candidate i (yes) and of no
// space (no). Candidates without a space cost are read as "no space, free".
func (g *SimpleGrouper) SetSpaceCost(i int, yes, no float64) error {
	if err := g.checkIndex(i); err != nil {
		return err
	}
	g.maybeInit()
	g.spaces[i] = [2]float64{yes, no}
	return nil
}

// Hypotheses returns a copy of the hypotheses stored for candidate i.
func (g *SimpleGrouper) Hypotheses(i int) []Hypothesis {
	if i >= len(g.classes) {
		return nil
	}
	return append([]Hypothesis(nil), g.classes[i]...)
}

// SpaceCost returns the (space, no space) costs of candidate i; both are
// +Inf when unset.
func (g *SimpleGrouper) SpaceCost(i int) (yes, no float64) {
	if i >= len(g.spaces) {
		return math.Inf(1), math.Inf(1)
	}
	return g.spaces[i][0], g.spaces[i][1]
}

// Lattice clears t and writes the recognition lattice into it.
//
// State k-1 stands for the boundary before label k, for k = 1..max+1; the
// boundary before label 1 is the start state, the one after the last label
// accepts. A hypothesis of n characters for candidate [start,end] becomes a
// chain of n arcs from boundary start to boundary end+1 through n-1 fresh
// states, all tagged with the candidate's provenance id. The hypothesis cost
// sits on the first arc, the no-space cost on the last. When a space is
// plausible the last character also forks into a fresh state followed by a
// ' ' arc carrying the space cost.
func (g *SimpleGrouper) Lattice(t Transducer) error {
	if g.labels == nil {
		return ErrNoSegmentation
	}
	t.Clear()

	final := segmentation.MaxLabel(g.labels) + 1
	states := make([]int, final+1)
	states[0] = -1
	for i := 1; i <= final; i++ {
		states[i] = t.NewState()
	}
	t.SetStart(states[1])
	t.SetAccept(states[final])

	for i, c := range g.candidates {
		if len(c.segs) == 0 {
			// nothing to anchor the chain to
			continue
		}
		id := ProvenanceID(c.segs)
		start, end := g.Start(i), g.End(i)

		yes, no := g.SpaceCost(i)
		// no evidence either way: assume no space
		if math.IsInf(yes, 1) && math.IsInf(no, 1) {
			no = 0
		}

		for _, h := range g.Hypotheses(i) {
			chars := []rune(h.Class)
			n := len(chars)
			state := states[start]
			for k, ch := range chars {
				next := states[end+1]
				if k < n-1 {
					next = t.NewState()
				}
				cost := 0.0
				if k == 0 {
					cost += h.Cost
				}
				if k == n-1 {
					cost += no
				}
				if cost < costCutoff {
					t.AddTransition(state, next, ch, cost, id)
				}
				if k == n-1 && yes < costCutoff {
					cost = 0
					if k == 0 {
						cost = h.Cost
					}
					space := t.NewState()
					t.AddTransition(state, space, ch, cost, id)
					t.AddTransition(space, next, ' ', yes, 0)
				}
				state = next
			}
		}
	}
	return nil
}

// ProvenanceID packs the label range of segs as start<<16 | end, or 0 for
// an empty set.
func ProvenanceID(segs []int) int {
	if len(segs) == 0 {
		return 0
	}
	lo, hi := segs[0], segs[0]
	for _, s := range segs[1:] {
		lo = min(lo, s)
		hi = max(hi, s)
	}
	return lo<<16 | hi
}

// SplitProvenance is the inverse of ProvenanceID.
func SplitProvenance(id int) (start, end int) {
	return id >> 16, id & 0xffff
}
