package reachability

import (
	"sort"
	"testing"

	"github.com/pflow-xyz/go-synth/petri"
)

// Helper: two firings of t1 move two tokens from A to B.
func createSimpleNet(t *testing.T) *petri.PetriNet {
	t.Helper()
	net, err := petri.Build().
		Place("A", 2).
		Place("B", 0).
		Transition("t1").
		Edge("A", "t1", 1).
		Edge("t1", "B", 1).
		Done()
	if err != nil {
		t.Fatalf("build net: %v", err)
	}
	return net
}

// Helper: cyclic mutex net idle <-> working.
func createCyclicNet(t *testing.T) *petri.PetriNet {
	t.Helper()
	net, err := petri.Build().
		Place("idle", 1).
		Place("working", 0).
		Transition("start").
		Transition("finish").
		Edge("idle", "start", 1).
		Edge("start", "working", 1).
		Edge("working", "finish", 1).
		Edge("finish", "idle", 1).
		Done()
	if err != nil {
		t.Fatalf("build net: %v", err)
	}
	return net
}

func TestBuildSimple(t *testing.T) {
	net := createSimpleNet(t)
	result := NewBuilder(net).Build()

	// A=2,B=0 -> A=1,B=1 -> A=0,B=2
	if result.StateCount != 3 {
		t.Errorf("Expected 3 states, got %d", result.StateCount)
	}
	if result.EdgeCount != 2 {
		t.Errorf("Expected 2 edges, got %d", result.EdgeCount)
	}
	if !result.IsComplete {
		t.Error("Small net should be fully explored")
	}
	if len(result.Graph.TerminalStates()) != 1 {
		t.Errorf("Expected 1 terminal state, got %d", len(result.Graph.TerminalStates()))
	}

	final := result.Graph.GetState(petri.Marking{"A": 0, "B": 2})
	if final == nil {
		t.Fatal("Final marking should be reachable")
	}
	if !final.IsTerminal {
		t.Error("Final marking should be terminal")
	}
}

func TestBuildCyclicTerminates(t *testing.T) {
	net := createCyclicNet(t)
	result := NewBuilder(net).Build()

	// Two markings, cycling forever: dedup must drain the worklist.
	if result.StateCount != 2 {
		t.Errorf("Expected 2 states, got %d", result.StateCount)
	}
	if result.EdgeCount != 2 {
		t.Errorf("Expected 2 edges, got %d", result.EdgeCount)
	}
	if !result.IsComplete {
		t.Error("Cyclic net with finite state space should complete")
	}
}

// Building twice from the same net yields node/edge sets equal under
// marking equality.
func TestBuildIdempotent(t *testing.T) {
	net := createCyclicNet(t)
	r1 := NewBuilder(net).Build()
	r2 := NewBuilder(net).Build()

	if r1.StateCount != r2.StateCount || r1.EdgeCount != r2.EdgeCount {
		t.Fatalf("Rebuild changed graph size: %d/%d vs %d/%d",
			r1.StateCount, r1.EdgeCount, r2.StateCount, r2.EdgeCount)
	}

	hashes := func(g *Graph) []string {
		var hs []string
		for h := range g.States {
			hs = append(hs, h)
		}
		sort.Strings(hs)
		return hs
	}
	h1, h2 := hashes(r1.Graph), hashes(r2.Graph)
	for i := range h1 {
		if h1[i] != h2[i] {
			t.Fatalf("State sets differ at %d: %s vs %s", i, h1[i], h2[i])
		}
	}

	edgeKeys := func(g *Graph) []string {
		var ks []string
		for _, e := range g.Edges {
			ks = append(ks, e.From.Hash+"/"+e.Transition+"/"+e.To.Hash)
		}
		sort.Strings(ks)
		return ks
	}
	e1, e2 := edgeKeys(r1.Graph), edgeKeys(r2.Graph)
	for i := range e1 {
		if e1[i] != e2[i] {
			t.Fatalf("Edge sets differ at %d: %s vs %s", i, e1[i], e2[i])
		}
	}
}

func TestBuildMaxStates(t *testing.T) {
	net, err := petri.Build().
		Place("A", 100).
		Place("B", 0).
		Transition("t1").
		Edge("A", "t1", 1).
		Edge("t1", "B", 1).
		Done()
	if err != nil {
		t.Fatalf("build net: %v", err)
	}

	result := NewBuilder(net).WithMaxStates(10).Build()
	if !result.Truncated {
		t.Error("Should be marked as truncated")
	}
	if result.IsComplete {
		t.Error("Truncated build must not report complete")
	}
}

func TestBuildCustomInitialMarking(t *testing.T) {
	net := createSimpleNet(t)
	result := NewBuilder(net).
		WithInitialMarking(petri.Marking{"A": 1, "B": 0}).
		Build()

	if result.StateCount != 2 {
		t.Errorf("Expected 2 states from custom start, got %d", result.StateCount)
	}
}

func TestSuccessorLookup(t *testing.T) {
	net := createSimpleNet(t)
	result := NewBuilder(net).Build()

	root := result.Graph.Root
	if root == nil {
		t.Fatal("Graph should have a root")
	}
	mid := root.Successor("t1")
	if mid == nil {
		t.Fatal("Root should have a t1 successor")
	}
	if !mid.Marking.Equals(petri.Marking{"A": 1, "B": 1}) {
		t.Errorf("Unexpected successor marking: %v", mid.Marking)
	}
	if root.Successor("ghost") != nil {
		t.Error("Unknown transition should have no successor")
	}
}

func TestSuccessorsFollowDeclarationOrder(t *testing.T) {
	net, err := petri.Build().
		Place("int", 2).
		Transition("Multiplication").
		Transition("Addition").
		Transition("Subtraction").
		Edge("int", "Multiplication", 2).
		Edge("Multiplication", "int", 1).
		Edge("int", "Addition", 2).
		Edge("Addition", "int", 1).
		Edge("int", "Subtraction", 2).
		Edge("Subtraction", "int", 1).
		Done()
	if err != nil {
		t.Fatalf("build net: %v", err)
	}

	result := NewBuilder(net).Build()
	root := result.Graph.Root

	want := []string{"Multiplication", "Addition", "Subtraction"}
	if len(root.Successors) != len(want) {
		t.Fatalf("Expected %d successors, got %d", len(want), len(root.Successors))
	}
	for i, name := range want {
		if root.Successors[i].Transition != name {
			t.Errorf("Successor[%d]: expected %s, got %s", i, name, root.Successors[i].Transition)
		}
	}
}

func TestEmptyNet(t *testing.T) {
	net := petri.NewPetriNet()
	result := NewBuilder(net).Build()

	if result.StateCount != 1 {
		t.Errorf("Empty net should have 1 state (empty marking), got %d", result.StateCount)
	}
}
