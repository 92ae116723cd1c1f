package petri

// Builder provides a fluent API for constructing Petri nets. The first
// construction error is retained and returned by Done.
//
// Example:
//
//	net, err := petri.Build().
//	    Place("int", 2).
//	    Transition("add").
//	    Edge("int", "add", 2).
//	    Edge("add", "int", 1).
//	    Done()
type Builder struct {
	net *PetriNet
	err error
}

// Build creates a new Builder for constructing a Petri net.
func Build() *Builder {
	return &Builder{net: NewPetriNet()}
}

// Place adds a place with the given name and initial token count.
func (b *Builder) Place(name string, initial int) *Builder {
	if b.err == nil {
		_, b.err = b.net.AddPlace(name, initial)
	}
	return b
}

// Transition adds a transition with the given name.
func (b *Builder) Transition(name string) *Builder {
	if b.err == nil {
		_, b.err = b.net.AddTransition(name)
	}
	return b
}

// Edge adds an edge from source to target with the given weight.
func (b *Builder) Edge(source, target string, weight int) *Builder {
	if b.err == nil {
		_, b.err = b.net.AddEdge(source, target, weight)
	}
	return b
}

// Flow adds the common pattern place -> transition -> place with a single
// weight on both edges.
func (b *Builder) Flow(fromPlace, transition, toPlace string, weight int) *Builder {
	return b.Edge(fromPlace, transition, weight).Edge(transition, toPlace, weight)
}

// Chain creates a sequential chain of places connected by transitions:
// Chain(1, "P1", "T1", "P2", "T2", "P3") builds P1(1) -> T1 -> P2 -> T2 -> P3.
// Elements must alternate place, transition, place.
func (b *Builder) Chain(initialTokens int, elements ...string) *Builder {
	if len(elements) < 3 || len(elements)%2 == 0 {
		return b
	}

	b.Place(elements[0], initialTokens)
	for i := 1; i < len(elements); i += 2 {
		b.Transition(elements[i])
		b.Place(elements[i+1], 0)
		b.Edge(elements[i-1], elements[i], 1)
		b.Edge(elements[i], elements[i+1], 1)
	}
	return b
}

// Done returns the completed net, or the first construction error.
func (b *Builder) Done() (*PetriNet, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.net, nil
}
