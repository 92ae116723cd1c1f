package reachability

import (
	"github.com/pflow-xyz/go-synth/petri"
)

// defaultMaxStates bounds exploration when the caller sets no budget.
// Termination on an unbounded net is a caller obligation; the cap only
// truncates the build, it does not detect unboundedness.
const defaultMaxStates = 10000

// Builder explores all markings reachable from an initial marking.
type Builder struct {
	net       *petri.PetriNet
	initial   petri.Marking
	maxStates int
}

// NewBuilder creates a reachability builder seeded with the net's own
// initial marking.
func NewBuilder(net *petri.PetriNet) *Builder {
	return &Builder{
		net:       net,
		initial:   net.InitialMarking(),
		maxStates: defaultMaxStates,
	}
}

// WithInitialMarking sets a custom start marking.
func (b *Builder) WithInitialMarking(marking petri.Marking) *Builder {
	b.initial = marking.Copy()
	return b
}

// WithMaxStates sets the maximum number of distinct markings to visit.
func (b *Builder) WithMaxStates(max int) *Builder {
	b.maxStates = max
	return b
}

// Result contains the built graph and exploration metadata.
type Result struct {
	Graph       *Graph
	StateCount  int
	EdgeCount   int
	MaxDepth    int
	Truncated   bool
	TruncateMsg string
	IsComplete  bool // full state space explored, no truncation
}

// Build runs the worklist exploration.
//
// FIFO worklist seeded with the initial marking; pop a marking, skip it if
// already visited (markings are rediscovered through different firing
// sequences, and without the check the worklist never drains on a cyclic
// net), otherwise record it and push the result of every enabled firing.
// Firings with no effect (successor equals current marking) and edges
// already recorded are skipped.
func (b *Builder) Build() *Result {
	graph := NewGraph(b.net, b.initial)
	result := &Result{Graph: graph}

	queue := []petri.Marking{b.initial}
	visited := make(map[string]bool)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		hash := current.Hash()
		if visited[hash] {
			continue
		}
		if len(visited) >= b.maxStates {
			result.Truncated = true
			result.TruncateMsg = "state limit reached"
			break
		}
		visited[hash] = true
		state := graph.AddState(current)

		for _, trans := range state.Enabled {
			next := b.net.Fire(trans, current)
			if next.Equals(current) {
				continue // no-effect firing, self-loops add no information
			}
			nextState := graph.AddState(next)
			if graph.HasEdge(state, trans, nextState) {
				continue
			}
			graph.AddEdge(state, nextState, trans)
			queue = append(queue, next)
		}
	}

	result.IsComplete = !result.Truncated
	result.StateCount = graph.StateCount()
	result.EdgeCount = graph.EdgeCount()
	result.MaxDepth = graph.MaxDepth()
	return result
}
