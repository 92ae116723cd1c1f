package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pflow-xyz/go-synth/store"
)

func runs(args []string) error {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	dbPath := fs.String("db", "runs.db", "SQLite database file")
	limit := fs.Int("limit", 10, "Number of runs to list")
	export := fs.String("export", "", "Export one run (and its paths) as JSON by ID")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: synth runs [options]

List persisted synthesis runs, newest first, or export one as JSON.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := store.Open(*dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if *export != "" {
		data, err := db.ExportRunJSON(*export)
		if err != nil {
			return fmt.Errorf("export run %s: %w", *export, err)
		}
		fmt.Println(string(data))
		return nil
	}

	list, err := db.RecentRuns(*limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(list) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	for _, r := range list {
		fmt.Printf("%s  %-5s  %-30s  states=%d", r.ID, r.Method, r.Target, r.States)
		if !r.Complete {
			fmt.Printf(" (truncated)")
		}
		fmt.Printf("  %s\n", r.StartedAt.Format("2006-01-02 15:04:05"))

		paths, err := db.PathsForRun(r.ID)
		if err != nil {
			return fmt.Errorf("paths for %s: %w", r.ID, err)
		}
		for _, p := range paths {
			fmt.Printf("    %d. %s\n", p.Rank+1, strings.Join(p.Steps, " -> "))
		}
	}
	return nil
}
