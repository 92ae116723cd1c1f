package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "plan":
		if err := plan(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "ants":
		if err := ants(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "explore":
		if err := explore(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "prove":
		if err := prove(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "runs":
		if err := runs(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("synth version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`synth - type-directed program sketch synthesis

Usage:
  synth <command> [options]

Commands:
  plan       Enumerate every sketch for a catalog via exact search
  ants       Run ant-colony stochastic search over a catalog
  explore    Build and summarize the reachability graph of a catalog
  prove      Generate a zero-knowledge attestation for a sketch
  runs       List or export persisted synthesis runs
  help       Show this help message
  version    Show version information

Examples:
  # Enumerate all sketches
  synth plan catalog.json

  # Stochastic search with a fixed seed and trace output
  synth ants catalog.json --seed 42 --trace rollouts.csv

  # Inspect the state space
  synth explore catalog.json

  # Prove a sketch without revealing it
  synth prove catalog.json --steps add,itoa

For command-specific help, run:
  synth <command> --help`)
}
