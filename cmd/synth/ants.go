package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pflow-xyz/go-synth/colony"
	"github.com/pflow-xyz/go-synth/parser"
	"github.com/pflow-xyz/go-synth/synth"
	"github.com/pflow-xyz/go-synth/tracelog"
)

func ants(args []string) error {
	fs := flag.NewFlagSet("ants", flag.ExitOnError)
	antsN := fs.Int("ants", 20, "Rollouts per iteration")
	iterations := fs.Int("iterations", 50, "Number of iterations")
	alpha := fs.Float64("alpha", 1.0, "Pheromone exponent")
	evaporation := fs.Float64("evaporation", 0.1, "Pheromone evaporation rate")
	seed := fs.Int64("seed", 0, "Random seed (0 = from clock)")
	maxStates := fs.Int("max-states", 0, "Reachability exploration cap (0 = default)")
	tracePath := fs.String("trace", "", "Write rollout trace to this file (.csv or .jsonl)")
	dbPath := fs.String("db", "", "Persist the run to this SQLite database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: synth ants <catalog.json> [options]

Search for a program sketch with pheromone-guided random rollouts. The
result is best-effort: the closest sketch found within the budget.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Reproducible search
  synth ants catalog.json --seed 42

  # Bigger budget with trace logging
  synth ants catalog.json --ants 50 --iterations 200 --trace rollouts.csv
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

	opts := synth.Options{
		Method:    synth.MethodAnts,
		MaxStates: *maxStates,
		Seed:      *seed,
		Colony: colony.Params{
			Ants:        *antsN,
			Iterations:  *iterations,
			Alpha:       *alpha,
			Evaporation: *evaporation,
		},
	}

	var collector *tracelog.Collector
	if *tracePath != "" {
		collector = tracelog.NewCollector("")
		opts.Tracer = collector
	}

	engine := synth.NewEngine(0)
	result, err := engine.Synthesize(doc.Components, doc.Target, opts)
	if err != nil {
		return err
	}

	printResult(result, doc)
	if len(result.Sketches) > 0 && !result.Reached {
		fmt.Printf("\nBest effort: %d place(s) short of the target\n", result.Hamming)
	}

	if collector != nil {
		collector.RunID = result.RunID
		for i := range collector.Log.Records {
			collector.Log.Records[i].RunID = result.RunID
		}
		if err := saveTrace(collector.Log, *tracePath); err != nil {
			return fmt.Errorf("write trace: %w", err)
		}
		s := collector.Log.Summarize()
		fmt.Fprintf(os.Stderr, "Traced %d rollouts (%d reached) to %s\n", s.Rollouts, s.Reached, *tracePath)
	}

	if *dbPath != "" {
		if err := persistRun(*dbPath, result, doc); err != nil {
			return fmt.Errorf("persist run: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Saved run %s to %s\n", result.RunID, *dbPath)
	}
	return nil
}

func saveTrace(log *tracelog.Log, path string) error {
	if strings.HasSuffix(path, ".jsonl") {
		return log.SaveJSONL(path)
	}
	return log.SaveCSV(path)
}
