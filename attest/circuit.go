// Package attest produces zero-knowledge attestations of synthesis
// results. A Groth16 proof certifies that some firing sequence of a known
// net transforms a public initial marking into a public final marking,
// without revealing which components fired. The net topology is baked
// into the circuit; the sequence itself is the secret witness.
package attest

import (
	"fmt"

	"github.com/consensys/gnark/frontend"

	"github.com/pflow-xyz/go-synth/petri"
)

// SequenceCircuit proves the token-game replay of a firing sequence.
//
// The circuit has a fixed shape: one slot per step, one selector per
// transition per step. A step fires the transition whose selector is 1;
// an all-zero selector row is a padding no-op, so shorter sequences
// prove in a circuit sized for longer ones.
type SequenceCircuit struct {
	Initial []frontend.Variable `gnark:",public"`
	Final   []frontend.Variable `gnark:",public"`

	// Steps[s][t] is the one-hot transition selector for step s.
	Steps [][]frontend.Variable

	// Net topology, fixed at compile time. consume[t][p] and produce[t][p]
	// are the edge weights between transition t and place p.
	places      []string
	transitions []string
	consume     [][]int
	produce     [][]int
}

// tokenBits bounds place token counts inside the circuit; range checks
// decompose remaining-token values into this many bits.
const tokenBits = 32

// NewSequenceCircuit allocates a circuit for the net with the given
// number of step slots. The same constructor produces both the shape
// passed to the compiler and the template for witness assignments.
func NewSequenceCircuit(net *petri.PetriNet, steps int) *SequenceCircuit {
	places := net.PlaceNames()
	transitions := net.TransitionNames()

	placeIndex := make(map[string]int, len(places))
	for i, p := range places {
		placeIndex[p] = i
	}

	consume := make([][]int, len(transitions))
	produce := make([][]int, len(transitions))
	for t, name := range transitions {
		consume[t] = make([]int, len(places))
		produce[t] = make([]int, len(places))
		for _, e := range net.InputEdges(name) {
			consume[t][placeIndex[e.Source]] = e.Weight
		}
		if out := net.OutputEdge(name); out != nil {
			produce[t][placeIndex[out.Target]] = out.Weight
		}
	}

	c := &SequenceCircuit{
		Initial:     make([]frontend.Variable, len(places)),
		Final:       make([]frontend.Variable, len(places)),
		Steps:       make([][]frontend.Variable, steps),
		places:      places,
		transitions: transitions,
		consume:     consume,
		produce:     produce,
	}
	for s := range c.Steps {
		c.Steps[s] = make([]frontend.Variable, len(transitions))
	}
	return c
}

// Define enforces the token game: every step selects at most one
// transition, consumed tokens never exceed the tokens on hand, and the
// marking after the last step equals the public final marking.
func (c *SequenceCircuit) Define(api frontend.API) error {
	current := make([]frontend.Variable, len(c.Initial))
	copy(current, c.Initial)

	for _, row := range c.Steps {
		// Selector row is one-hot or all-zero.
		sum := frontend.Variable(0)
		for _, sel := range row {
			api.AssertIsBoolean(sel)
			sum = api.Add(sum, sel)
		}
		api.AssertIsBoolean(sum)

		for p := range current {
			consumed := frontend.Variable(0)
			produced := frontend.Variable(0)
			for t, sel := range row {
				if w := c.consume[t][p]; w > 0 {
					consumed = api.Add(consumed, api.Mul(sel, w))
				}
				if w := c.produce[t][p]; w > 0 {
					produced = api.Add(produced, api.Mul(sel, w))
				}
			}

			remaining := api.Sub(current[p], consumed)
			// Non-negativity: remaining must fit in tokenBits bits.
			api.ToBinary(remaining, tokenBits)

			current[p] = api.Add(remaining, produced)
		}
	}

	for p := range current {
		api.AssertIsEqual(current[p], c.Final[p])
	}
	return nil
}

// Assignment fills a witness for the circuit: the initial marking, the
// marking produced by replaying path, and the one-hot selector rows. The
// path must fit the step budget and every firing must be enabled.
func (c *SequenceCircuit) Assignment(initial petri.Marking, path []string) (*SequenceCircuit, petri.Marking, error) {
	if len(path) > len(c.Steps) {
		return nil, nil, fmt.Errorf("path length %d exceeds %d step slots", len(path), len(c.Steps))
	}
	transIndex := make(map[string]int, len(c.transitions))
	for i, t := range c.transitions {
		transIndex[t] = i
	}

	w := &SequenceCircuit{
		Initial: make([]frontend.Variable, len(c.places)),
		Final:   make([]frontend.Variable, len(c.places)),
		Steps:   make([][]frontend.Variable, len(c.Steps)),
	}
	for i, p := range c.places {
		w.Initial[i] = initial.Get(p)
	}

	m := initial.Copy()
	for s := range c.Steps {
		row := make([]frontend.Variable, len(c.transitions))
		for t := range row {
			row[t] = 0
		}
		if s < len(path) {
			name := path[s]
			t, ok := transIndex[name]
			if !ok {
				return nil, nil, fmt.Errorf("unknown transition %q at step %d", name, s)
			}
			next, err := fire(c, t, m)
			if err != nil {
				return nil, nil, fmt.Errorf("step %d: %w", s, err)
			}
			row[t] = 1
			m = next
		}
		w.Steps[s] = row
	}

	for i, p := range c.places {
		w.Final[i] = m.Get(p)
	}
	return w, m, nil
}

// fire replays one transition over the marking using the baked matrices,
// failing if any place would go negative.
func fire(c *SequenceCircuit, t int, m petri.Marking) (petri.Marking, error) {
	next := m.Copy()
	for p, place := range c.places {
		remaining := next.Get(place) - c.consume[t][p]
		if remaining < 0 {
			return nil, fmt.Errorf("transition %q not enabled: place %q underflows", c.transitions[t], place)
		}
		next.Set(place, remaining+c.produce[t][p])
	}
	return next, nil
}
