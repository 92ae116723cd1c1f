package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-synth/catalog"
	"github.com/pflow-xyz/go-synth/parser"
	"github.com/pflow-xyz/go-synth/reachability"
)

func explore(args []string) error {
	fs := flag.NewFlagSet("explore", flag.ExitOnError)
	maxStates := fs.Int("max-states", 0, "Exploration cap (0 = default)")
	showStates := fs.Bool("states", false, "Print every reachable marking")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: synth explore <catalog.json> [options]

Build the reachability graph for the catalog's synthesis net and print
its size, depth, and terminal markings.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("catalog file required")
	}

	doc, err := parser.LoadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	net, err := catalog.BuildNet(doc.Components, doc.Target)
	if err != nil {
		return fmt.Errorf("build net: %w", err)
	}

	builder := reachability.NewBuilder(net)
	if *maxStates > 0 {
		builder = builder.WithMaxStates(*maxStates)
	}
	result := builder.Build()

	fmt.Printf("=== Reachability: %s ===\n\n", targetString(doc))
	fmt.Printf("Places:      %d\n", len(net.PlaceNames()))
	fmt.Printf("Transitions: %d\n", len(net.TransitionNames()))
	fmt.Printf("States:      %d\n", result.StateCount)
	fmt.Printf("Edges:       %d\n", result.EdgeCount)
	fmt.Printf("Max depth:   %d\n", result.MaxDepth)
	if result.Truncated {
		fmt.Printf("Truncated:   %s\n", result.TruncateMsg)
	}

	goal := catalog.GoalMarking(net, doc.Target)
	if result.Graph.GetState(goal) != nil {
		fmt.Println("\nTarget marking is reachable.")
	} else {
		fmt.Println("\nTarget marking is NOT reachable.")
	}

	terminals := result.Graph.TerminalStates()
	fmt.Printf("\nTerminal markings (%d):\n", len(terminals))
	for _, s := range terminals {
		fmt.Printf("  %s\n", s.Marking)
	}

	if *showStates {
		fmt.Printf("\nAll markings:\n")
		for _, s := range result.Graph.StatesList() {
			fmt.Printf("  depth %d: %s\n", s.Depth, s.Marking)
		}
	}
	return nil
}
