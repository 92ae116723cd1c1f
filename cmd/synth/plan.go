package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-synth/parser"
	"github.com/pflow-xyz/go-synth/store"
	"github.com/pflow-xyz/go-synth/synth"
)

func plan(args []string) error {
	fs := flag.NewFlagSet("plan", flag.ExitOnError)
	maxStates := fs.Int("max-states", 0, "Reachability exploration cap (0 = default)")
	maxDepth := fs.Int("max-depth", 0, "Maximum sketch length (0 = unbounded)")
	dbPath := fs.String("db", "", "Persist the run to this SQLite database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: synth plan <catalog.json> [options]

Enumerate every program sketch for the catalog's target signature using
exhaustive depth-first search.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # All sketches
  synth plan catalog.json

  # Bound sketch length and persist the run
  synth plan catalog.json --max-depth 5 --db runs.db
`)
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

	engine := synth.NewEngine(0)
	result, err := engine.Synthesize(doc.Components, doc.Target, synth.Options{
		Method:    synth.MethodExact,
		MaxStates: *maxStates,
		MaxDepth:  *maxDepth,
	})
	if err != nil {
		return err
	}

	printResult(result, doc)

	if *dbPath != "" {
		if err := persistRun(*dbPath, result, doc); err != nil {
			return fmt.Errorf("persist run: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Saved run %s to %s\n", result.RunID, *dbPath)
	}
	return nil
}

func printResult(result *synth.Result, doc *parser.Document) {
	fmt.Printf("=== Synthesis: %s ===\n\n", targetString(doc))
	fmt.Printf("Method: %s\n", result.Method)
	fmt.Printf("States: %d  Edges: %d", result.States, result.Edges)
	if !result.Complete {
		fmt.Printf("  (truncated)")
	}
	fmt.Println()
	fmt.Println()

	if len(result.Sketches) == 0 {
		fmt.Println("No sketches found.")
		return
	}

	fmt.Printf("Sketches (%d):\n", len(result.Sketches))
	for i, s := range result.Sketches {
		fmt.Printf("  %d.", i+1)
		for _, call := range s.Calls {
			fmt.Printf(" %s", call)
		}
		fmt.Println()
	}
}

func targetString(doc *parser.Document) string {
	return fmt.Sprintf("%v -> %s", doc.Target.InputTypes(), doc.Target.Output)
}

func persistRun(dbPath string, result *synth.Result, doc *parser.Document) error {
	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	run := &store.Run{
		ID:         result.RunID,
		Method:     string(result.Method),
		Target:     targetString(doc),
		Components: len(doc.Components),
		States:     result.States,
		Edges:      result.Edges,
		Complete:   result.Complete,
	}
	if _, err := db.SaveRun(run); err != nil {
		return err
	}

	paths := make([]store.Path, 0, len(result.Sketches))
	for _, s := range result.Sketches {
		paths = append(paths, store.Path{Steps: s.Steps, Hamming: result.Hamming, Reached: result.Reached})
	}
	if err := db.SavePaths(result.RunID, paths); err != nil {
		return err
	}
	return db.FinishRun(result.RunID)
}
