// Package pathfind enumerates firing sequences through a reachability
// graph. It performs exhaustive depth-first backtracking, returning every
// simple path from a start marking to a desired marking.
package pathfind

import (
	"github.com/pflow-xyz/go-synth/petri"
	"github.com/pflow-xyz/go-synth/reachability"
)

type config struct {
	maxDepth int
}

// Option configures a search.
type Option func(*config)

// WithMaxDepth bounds the length of enumerated paths. Zero means no bound;
// the graph's simple-path property already guarantees termination.
func WithMaxDepth(depth int) Option {
	return func(c *config) { c.maxDepth = depth }
}

// FindAll returns every simple path of transitions leading from the start
// marking to the desired marking. "No path" is a normal outcome and yields
// an empty result.
//
// The visited set is path-local, cloned per branch: the same marking may
// legitimately appear on two different solution paths, only cycling back
// to an ancestor within the same path is forbidden. This keeps the search
// finite on cyclic graphs while still finding every distinct acyclic
// solution. Paths are returned following edge order at each branch point,
// which is transition declaration order in the net.
func FindAll(graph *reachability.Graph, start, desired petri.Marking, opts ...Option) [][]string {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	startState := graph.GetState(start)
	if startState == nil {
		return nil
	}
	desiredHash := desired.Hash()

	var paths [][]string
	var walk func(state *reachability.State, visited map[string]bool, path []string)
	walk = func(state *reachability.State, visited map[string]bool, path []string) {
		if state.Hash == desiredHash {
			// Record and backtrack; the enumeration continues elsewhere.
			found := make([]string, len(path))
			copy(found, path)
			paths = append(paths, found)
			return
		}
		if cfg.maxDepth > 0 && len(path) >= cfg.maxDepth {
			return
		}

		for _, edge := range state.Successors {
			if visited[edge.To.Hash] {
				continue
			}
			branch := make(map[string]bool, len(visited)+1)
			for hash := range visited {
				branch[hash] = true
			}
			branch[edge.To.Hash] = true

			next := make([]string, len(path), len(path)+1)
			copy(next, path)
			walk(edge.To, branch, append(next, edge.Transition))
		}
	}

	walk(startState, map[string]bool{startState.Hash: true}, nil)
	return paths
}
