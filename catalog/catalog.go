// Package catalog describes typed components and builds the Petri net a
// synthesis query searches over. A component is a statically-defined
// descriptor of a callable: its parameter types (with names) and its
// single return type. The engine never inspects callables directly; a
// signature inspector on the caller's side produces these descriptors.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/pflow-xyz/go-synth/petri"
)

// NoneType is the sentinel output type for components that return nothing.
const NoneType = "None"

// ErrUnnamedComponent is returned for components without a name.
var ErrUnnamedComponent = errors.New("component has no name")

// Component describes one typed component. Inputs maps a type name to the
// parameter names of that type: add(a int, b int) int has Inputs
// {"int": ["a", "b"]} and Output "int".
type Component struct {
	Name   string              `json:"name"`
	Inputs map[string][]string `json:"inputs"`
	Output string              `json:"output,omitempty"`
}

// Arity returns the total parameter count.
func (c Component) Arity() int {
	n := 0
	for _, params := range c.Inputs {
		n += len(params)
	}
	return n
}

// OutputType returns the component's return type, or NoneType for
// components without a return value.
func (c Component) OutputType() string {
	if c.Output == "" {
		return NoneType
	}
	return c.Output
}

// InputTypes returns the component's parameter types in sorted order.
func (c Component) InputTypes() []string {
	types := make([]string, 0, len(c.Inputs))
	for typ := range c.Inputs {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}

// Signature is the desired input/output shape of the program being
// synthesized: the typed values available at the start and the type the
// sketch must produce.
type Signature struct {
	Inputs map[string][]string `json:"inputs"`
	Output string              `json:"output"`
}

// InputTypes returns the signature's parameter types in sorted order.
func (s Signature) InputTypes() []string {
	types := make([]string, 0, len(s.Inputs))
	for typ := range s.Inputs {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}

// BuildNet assembles the synthesis net: one place per type, one transition
// per component, input edges weighted by parameter count per type, and a
// single weight-1 output edge. The initial marking is seeded from the
// target signature's inputs: one token per available parameter value.
func BuildNet(components []Component, target Signature) (*petri.PetriNet, error) {
	net := petri.NewPetriNet()

	ensurePlace := func(name string, initial int) error {
		if net.HasPlace(name) {
			return nil
		}
		_, err := net.AddPlace(name, initial)
		if err != nil {
			return fmt.Errorf("place %q: %w", name, err)
		}
		return nil
	}

	for _, typ := range target.InputTypes() {
		if err := ensurePlace(typ, len(target.Inputs[typ])); err != nil {
			return nil, err
		}
	}
	if target.Output != "" {
		if err := ensurePlace(target.Output, 0); err != nil {
			return nil, err
		}
	}

	for _, c := range components {
		if c.Name == "" {
			return nil, ErrUnnamedComponent
		}
		for _, typ := range c.InputTypes() {
			if err := ensurePlace(typ, 0); err != nil {
				return nil, err
			}
		}
		if err := ensurePlace(c.OutputType(), 0); err != nil {
			return nil, err
		}

		if _, err := net.AddTransition(c.Name); err != nil {
			return nil, fmt.Errorf("component %q: %w", c.Name, err)
		}
		for _, typ := range c.InputTypes() {
			if _, err := net.AddEdge(typ, c.Name, len(c.Inputs[typ])); err != nil {
				return nil, fmt.Errorf("component %q input %q: %w", c.Name, typ, err)
			}
		}
		if _, err := net.AddEdge(c.Name, c.OutputType(), 1); err != nil {
			return nil, fmt.Errorf("component %q output: %w", c.Name, err)
		}
	}

	return net, nil
}

// GoalMarking is the marking a successful sketch must reach: a single
// token of the target's output type, everything else consumed.
func GoalMarking(net *petri.PetriNet, target Signature) petri.Marking {
	m := make(petri.Marking, len(net.PlaceNames()))
	for _, name := range net.PlaceNames() {
		m[name] = 0
	}
	m[target.Output] = 1
	return m
}

// Arities maps component names to their total parameter counts, the shape
// the sketch emitter consumes.
func Arities(components []Component) map[string]int {
	arities := make(map[string]int, len(components))
	for _, c := range components {
		arities[c.Name] = c.Arity()
	}
	return arities
}
