// Package petri implements the Petri net model behind type-directed
// program synthesis. Places are types, transitions are components, and
// weighted edges carry token multiplicities: a component consuming two
// int parameters has an input edge of weight 2 from place "int".
//
// The model is deliberately restricted: every transition has at most one
// outgoing edge, mirroring components with a single return value.
package petri

// Place represents a type, modeled as a token-holding node. Its token
// count lives in a Marking, not on the place itself; Initial only seeds
// the net's starting marking.
type Place struct {
	Name    string
	Initial int
}

// Transition represents a component that consumes tokens from its input
// places and produces tokens on its single output place when fired.
type Transition struct {
	Name string
}

// Edge is a directed arc between a place and a transition (input edge) or
// a transition and a place (output edge), with a positive token weight.
type Edge struct {
	Source string
	Target string
	Weight int
}

// PetriNet owns the places, transitions, and weighted edges of one model,
// plus the initial token supply. Declaration order of places, transitions,
// and edges is preserved so that enabled sets and discovered paths are
// deterministic.
type PetriNet struct {
	Places      map[string]*Place
	Transitions map[string]*Transition
	Edges       []*Edge

	placeOrder []string
	transOrder []string

	inputs  map[string][]*Edge // transition -> input edges, declaration order
	outputs map[string]*Edge   // transition -> its single output edge
}

// NewPetriNet creates an empty net.
func NewPetriNet() *PetriNet {
	return &PetriNet{
		Places:      make(map[string]*Place),
		Transitions: make(map[string]*Transition),
		Edges:       make([]*Edge, 0),
		inputs:      make(map[string][]*Edge),
		outputs:     make(map[string]*Edge),
	}
}

// AddPlace declares a place with its initial token count.
func (n *PetriNet) AddPlace(name string, initial int) (*Place, error) {
	if n.hasNode(name) {
		return nil, ErrDuplicateNode
	}
	p := &Place{Name: name, Initial: initial}
	n.Places[name] = p
	n.placeOrder = append(n.placeOrder, name)
	return p, nil
}

// AddTransition declares a transition.
func (n *PetriNet) AddTransition(name string) (*Transition, error) {
	if n.hasNode(name) {
		return nil, ErrDuplicateNode
	}
	t := &Transition{Name: name}
	n.Transitions[name] = t
	n.transOrder = append(n.transOrder, name)
	return t, nil
}

// AddEdge connects a place to a transition (input edge) or a transition to
// a place (output edge). Edges between two nodes of the same kind, edges
// referencing undeclared nodes, non-positive weights, and a second output
// edge on a transition are construction-time errors.
func (n *PetriNet) AddEdge(source, target string, weight int) (*Edge, error) {
	if weight < 1 {
		return nil, ErrNonPositiveWeight
	}

	_, srcPlace := n.Places[source]
	_, srcTrans := n.Transitions[source]
	_, dstPlace := n.Places[target]
	_, dstTrans := n.Transitions[target]

	switch {
	case srcPlace && dstPlace, srcTrans && dstTrans:
		return nil, ErrInvalidEdge
	case srcPlace && dstTrans:
		e := &Edge{Source: source, Target: target, Weight: weight}
		n.Edges = append(n.Edges, e)
		n.inputs[target] = append(n.inputs[target], e)
		return e, nil
	case srcTrans && dstPlace:
		if n.outputs[source] != nil {
			return nil, ErrMultipleOutputs
		}
		e := &Edge{Source: source, Target: target, Weight: weight}
		n.Edges = append(n.Edges, e)
		n.outputs[source] = e
		return e, nil
	case !srcPlace && !srcTrans && !dstPlace && !dstTrans:
		return nil, ErrPlaceNotFound
	case srcPlace || dstPlace:
		return nil, ErrTransitionNotFound
	default:
		return nil, ErrPlaceNotFound
	}
}

func (n *PetriNet) hasNode(name string) bool {
	if _, ok := n.Places[name]; ok {
		return true
	}
	_, ok := n.Transitions[name]
	return ok
}

// HasPlace reports whether a place is declared.
func (n *PetriNet) HasPlace(name string) bool {
	_, ok := n.Places[name]
	return ok
}

// HasTransition reports whether a transition is declared.
func (n *PetriNet) HasTransition(name string) bool {
	_, ok := n.Transitions[name]
	return ok
}

// PlaceNames returns place names in declaration order.
func (n *PetriNet) PlaceNames() []string {
	names := make([]string, len(n.placeOrder))
	copy(names, n.placeOrder)
	return names
}

// TransitionNames returns transition names in declaration order.
func (n *PetriNet) TransitionNames() []string {
	names := make([]string, len(n.transOrder))
	copy(names, n.transOrder)
	return names
}

// InputEdges returns a transition's input edges in declaration order.
func (n *PetriNet) InputEdges(transition string) []*Edge {
	return n.inputs[transition]
}

// OutputEdge returns a transition's single output edge, or nil.
func (n *PetriNet) OutputEdge(transition string) *Edge {
	return n.outputs[transition]
}

// InitialMarking builds the net's starting marking from place declarations.
func (n *PetriNet) InitialMarking() Marking {
	m := make(Marking, len(n.placeOrder))
	for _, name := range n.placeOrder {
		m[name] = n.Places[name].Initial
	}
	return m
}

// Enabled returns the transitions that can fire under the marking, in
// declaration order. A transition is enabled iff every one of its input
// places holds at least the corresponding edge weight. Computed by a single
// scan over input edges, so answering "what can fire next" is O(edges).
func (n *PetriNet) Enabled(m Marking) []string {
	blocked := make(map[string]bool)
	for _, e := range n.Edges {
		if _, ok := n.Places[e.Source]; !ok {
			continue // output edge
		}
		if m.Get(e.Source) < e.Weight {
			blocked[e.Target] = true
		}
	}

	enabled := make([]string, 0, len(n.transOrder))
	for _, t := range n.transOrder {
		if !blocked[t] {
			enabled = append(enabled, t)
		}
	}
	return enabled
}

// IsEnabled checks a single transition against the marking.
func (n *PetriNet) IsEnabled(transition string, m Marking) bool {
	if !n.HasTransition(transition) {
		return false
	}
	for _, e := range n.inputs[transition] {
		if m.Get(e.Source) < e.Weight {
			return false
		}
	}
	return true
}

// Fire applies a transition to a marking and returns the resulting marking.
// Firing is atomic and all-or-nothing: if the transition is not enabled
// (or not declared), the input marking is returned unchanged, never an
// error. Callers that must distinguish "fired" from "blocked" check
// IsEnabled first. The input marking is never mutated; the reachability
// builder branches one marking into many successors without aliasing.
func (n *PetriNet) Fire(transition string, m Marking) Marking {
	if !n.IsEnabled(transition, m) {
		return m
	}

	next := m.Copy()
	for _, e := range n.inputs[transition] {
		next.Sub(e.Source, e.Weight)
	}
	if out := n.outputs[transition]; out != nil {
		next.Add(out.Target, out.Weight)
	}
	return next
}
