package attest

import (
	"testing"

	"github.com/pflow-xyz/go-synth/petri"
)

func chainNet(t *testing.T) *petri.PetriNet {
	t.Helper()
	net, err := petri.Build().
		Place("int", 2).
		Place("string", 0).
		Transition("add").
		Edge("int", "add", 2).
		Edge("add", "int", 1).
		Transition("itoa").
		Edge("int", "itoa", 1).
		Edge("itoa", "string", 1).
		Done()
	if err != nil {
		t.Fatalf("build net: %v", err)
	}
	return net
}

func TestProveAndVerifySequence(t *testing.T) {
	if testing.Short() {
		t.Skip("groth16 setup is slow")
	}
	net := chainNet(t)

	attestor, err := Compile(net, 4)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if attestor.Constraints() == 0 {
		t.Error("Expected a non-trivial constraint count")
	}

	// add then itoa, padded with two no-op steps.
	proof, err := attestor.Prove(net.InitialMarking(), []string{"add", "itoa"})
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if proof.Final.Get("string") != 1 || proof.Final.Get("int") != 0 {
		t.Errorf("Unexpected final marking: %v", proof.Final)
	}

	if err := attestor.Verify(proof); err != nil {
		t.Errorf("Verify: %v", err)
	}
}

func TestProveEmptySequence(t *testing.T) {
	if testing.Short() {
		t.Skip("groth16 setup is slow")
	}
	net := chainNet(t)

	attestor, err := Compile(net, 2)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	// All-padding witness: final equals initial.
	proof, err := attestor.Prove(net.InitialMarking(), nil)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if !proof.Final.Equals(net.InitialMarking()) {
		t.Errorf("Empty sequence should leave the marking unchanged: %v", proof.Final)
	}
	if err := attestor.Verify(proof); err != nil {
		t.Errorf("Verify: %v", err)
	}
}

func TestAssignmentRejectsInvalidSequences(t *testing.T) {
	net := chainNet(t)
	circuit := NewSequenceCircuit(net, 2)
	initial := net.InitialMarking()

	if _, _, err := circuit.Assignment(initial, []string{"add", "itoa", "itoa"}); err == nil {
		t.Error("Expected error for path exceeding step budget")
	}
	if _, _, err := circuit.Assignment(initial, []string{"mystery"}); err == nil {
		t.Error("Expected error for unknown transition")
	}
	// itoa twice drains the int place; add then needs 2 tokens.
	if _, _, err := circuit.Assignment(initial, []string{"itoa", "add"}); err == nil {
		t.Error("Expected error for disabled firing")
	}
}

func TestAssignmentReplaysTokenGame(t *testing.T) {
	net := chainNet(t)
	circuit := NewSequenceCircuit(net, 3)

	w, final, err := circuit.Assignment(net.InitialMarking(), []string{"add", "itoa"})
	if err != nil {
		t.Fatalf("Assignment: %v", err)
	}
	if final.Get("int") != 0 || final.Get("string") != 1 {
		t.Errorf("Unexpected final marking: %v", final)
	}

	// Step rows: one-hot for add, one-hot for itoa, all-zero padding.
	if len(w.Steps) != 3 {
		t.Fatalf("Expected 3 step rows, got %d", len(w.Steps))
	}
	wantRows := [][]int{{1, 0}, {0, 1}, {0, 0}}
	for s, want := range wantRows {
		for tr, sel := range want {
			if w.Steps[s][tr] != sel {
				t.Errorf("Step %d selector %d: expected %d, got %v", s, tr, sel, w.Steps[s][tr])
			}
		}
	}
}
