// Package reachability builds the state space of a Petri net: the
// deduplicated graph of all markings reachable from a start marking and
// the transition firings connecting them. The net is the generative rule;
// the graph is the memoized exploration of its state space, built once
// per query and immutable afterwards.
package reachability

import (
	"github.com/pflow-xyz/go-synth/petri"
)

// Graph represents the reachability graph of a Petri net from one fixed
// start marking.
type Graph struct {
	Net     *petri.PetriNet
	Initial petri.Marking
	States  map[string]*State
	Edges   []*Edge
	Root    *State

	stateList []*State // ordered by discovery
}

// State represents a node in the reachability graph: one distinct marking.
type State struct {
	ID           int
	Marking      petri.Marking
	Hash         string
	Enabled      []string // enabled transitions, net declaration order
	Successors   []*Edge
	Predecessors []*Edge
	IsInitial    bool
	IsTerminal   bool // no enabled transitions
	Depth        int  // distance from the initial state
}

// Edge represents a transition firing from one state to another.
type Edge struct {
	From       *State
	To         *State
	Transition string
}

// NewGraph creates a new empty reachability graph.
func NewGraph(net *petri.PetriNet, initial petri.Marking) *Graph {
	return &Graph{
		Net:     net,
		Initial: initial.Copy(),
		States:  make(map[string]*State),
		Edges:   make([]*Edge, 0),
	}
}

// AddState adds a state for the marking, deduplicating by marking hash.
func (g *Graph) AddState(marking petri.Marking) *State {
	hash := marking.Hash()
	if existing, ok := g.States[hash]; ok {
		return existing
	}

	state := &State{
		ID:           len(g.States),
		Marking:      marking.Copy(),
		Hash:         hash,
		Enabled:      g.Net.Enabled(marking),
		Successors:   make([]*Edge, 0),
		Predecessors: make([]*Edge, 0),
		IsInitial:    len(g.States) == 0,
		Depth:        -1,
	}
	state.IsTerminal = len(state.Enabled) == 0

	g.States[hash] = state
	g.stateList = append(g.stateList, state)

	if state.IsInitial {
		g.Root = state
		state.Depth = 0
	}

	return state
}

// AddEdge records a transition firing between two states.
func (g *Graph) AddEdge(from, to *State, transition string) *Edge {
	edge := &Edge{From: from, To: to, Transition: transition}
	from.Successors = append(from.Successors, edge)
	to.Predecessors = append(to.Predecessors, edge)
	g.Edges = append(g.Edges, edge)

	if from.Depth >= 0 && (to.Depth < 0 || to.Depth > from.Depth+1) {
		to.Depth = from.Depth + 1
	}

	return edge
}

// HasEdge reports whether the exact firing (from, transition, to) was
// already recorded. Used to dedup parallel discoveries of the same edge.
func (g *Graph) HasEdge(from *State, transition string, to *State) bool {
	for _, e := range from.Successors {
		if e.Transition == transition && e.To == to {
			return true
		}
	}
	return false
}

// GetState retrieves a state by its marking, or nil.
func (g *Graph) GetState(marking petri.Marking) *State {
	return g.States[marking.Hash()]
}

// Successor returns the state reached by firing the transition from the
// given state, or nil if no such edge was recorded.
func (s *State) Successor(transition string) *State {
	for _, e := range s.Successors {
		if e.Transition == transition {
			return e.To
		}
	}
	return nil
}

// StateCount returns the number of distinct markings.
func (g *Graph) StateCount() int {
	return len(g.States)
}

// EdgeCount returns the number of recorded firings.
func (g *Graph) EdgeCount() int {
	return len(g.Edges)
}

// StatesList returns all states in order of discovery.
func (g *Graph) StatesList() []*State {
	return g.stateList
}

// TerminalStates returns all states with no enabled transitions.
func (g *Graph) TerminalStates() []*State {
	var terminal []*State
	for _, state := range g.stateList {
		if state.IsTerminal {
			terminal = append(terminal, state)
		}
	}
	return terminal
}

// MaxDepth returns the maximum depth in the graph.
func (g *Graph) MaxDepth() int {
	max := 0
	for _, state := range g.stateList {
		if state.Depth > max {
			max = state.Depth
		}
	}
	return max
}
