package fst

import "fmt"

// NoState marks an unset start state.
const NoState = -1

// Arc is one weighted, labelled transition.
type Arc struct {
	From   int     `json:"from"`
	To     int     `json:"to"`
	Input  rune    `json:"input"`
	Cost   float64 `json:"cost"`
	Output int     `json:"output"`
}

// String renders the arc for debugging, e.g. "3 -a/1.5:65538-> 4".
func (a Arc) String() string {
	return fmt.Sprintf("%d -%c/%g:%d-> %d", a.From, a.Input, a.Cost, a.Output, a.To)
}

// Graph is a mutable weighted transducer. It is not safe for concurrent use.
type Graph struct {
	states int
	start  int
	accept map[int]bool
	arcs   []Arc
}

// New returns an empty transducer.
func New() *Graph {
	return &Graph{start: NoState, accept: make(map[int]bool)}
}

// Clear removes all states and arcs.
func (g *Graph) Clear() {
	g.states = 0
	g.start = NoState
	g.accept = make(map[int]bool)
	g.arcs = g.arcs[:0]
}

// NewState allocates a state and returns its id.
func (g *Graph) NewState() int {
	g.states++
	return g.states - 1
}

// SetStart marks s as the start state. It panics if s does not exist.
func (g *Graph) SetStart(s int) {
	g.mustExist(s)
	g.start = s
}

// SetAccept marks s as an accept state. It panics if s does not exist.
func (g *Graph) SetAccept(s int) {
	g.mustExist(s)
	g.accept[s] = true
}

// AddTransition adds an arc from one existing state to another.
func (g *Graph) AddTransition(from, to int, input rune, cost float64, output int) {
	g.mustExist(from)
	g.mustExist(to)
	g.arcs = append(g.arcs, Arc{From: from, To: to, Input: input, Cost: cost, Output: output})
}

// NumStates returns the number of allocated states.
func (g *Graph) NumStates() int { return g.states }

// Start returns the start state, or NoState.
func (g *Graph) Start() int { return g.start }

// IsAccept reports whether s is an accept state.
func (g *Graph) IsAccept(s int) bool { return g.accept[s] }

// Accepts returns the accept states in increasing order.
func (g *Graph) Accepts() []int {
	out := make([]int, 0, len(g.accept))
	for s := 0; s < g.states; s++ {
		if g.accept[s] {
			out = append(out, s)
		}
	}
	return out
}

// Arcs returns a copy of all arcs in insertion order.
func (g *Graph) Arcs() []Arc {
	out := make([]Arc, len(g.arcs))
	copy(out, g.arcs)
	return out
}

// ArcsFrom returns the arcs leaving s in insertion order.
func (g *Graph) ArcsFrom(s int) []Arc {
	var out []Arc
	for _, a := range g.arcs {
		if a.From == s {
			out = append(out, a)
		}
	}
	return out
}

// Equal reports whether g and o have the same states, marks and arcs in the
// same order.
func (g *Graph) Equal(o *Graph) bool {
	if g.states != o.states || g.start != o.start || len(g.arcs) != len(o.arcs) {
		return false
	}
	for s := 0; s < g.states; s++ {
		if g.accept[s] != o.accept[s] {
			return false
		}
	}
	for i := range g.arcs {
		if g.arcs[i] != o.arcs[i] {
			return false
		}
	}
	return true
}

func (g *Graph) mustExist(s int) {
	if s < 0 || s >= g.states {
		panic(fmt.Sprintf("fst: state %d out of range [0,%d)", s, g.states))
	}
}

// Snapshot is a JSON-friendly view of a Graph.
type Snapshot struct {
	States  int   `json:"states"`
	Start   int   `json:"start"`
	Accepts []int `json:"accepts"`
	Arcs    []Arc `json:"arcs"`
}

// Snapshot captures the current graph.
func (g *Graph) Snapshot() Snapshot {
	return Snapshot{
		States:  g.states,
		Start:   g.start,
		Accepts: g.Accepts(),
		Arcs:    g.Arcs(),
	}
}
