// Package synth is the front door of the engine: it turns a component
// catalog and a target signature into candidate program sketches. It
// wires net construction, reachability analysis, path search, and sketch
// emission into one call, memoizing built graphs across queries.
package synth

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/pflow-xyz/go-synth/cache"
	"github.com/pflow-xyz/go-synth/catalog"
	"github.com/pflow-xyz/go-synth/colony"
	"github.com/pflow-xyz/go-synth/pathfind"
	"github.com/pflow-xyz/go-synth/petri"
	"github.com/pflow-xyz/go-synth/reachability"
	"github.com/pflow-xyz/go-synth/sketch"
)

// Method selects the path-search strategy.
type Method string

const (
	// MethodExact enumerates every simple path via depth-first search.
	MethodExact Method = "exact"
	// MethodAnts runs the pheromone-guided stochastic search.
	MethodAnts Method = "ants"
)

// Options tunes one synthesis query.
type Options struct {
	Method    Method
	MaxStates int           // reachability exploration cap; 0 keeps the builder default
	MaxDepth  int           // exact search depth cap; 0 is unbounded
	Colony    colony.Params // stochastic search budget; zero value takes defaults
	Seed      int64         // stochastic search seed; 0 seeds from the clock
	Tracer    colony.Tracer // optional rollout observer
}

// Sketch is one candidate program: the component firing order and the
// rendered call lines.
type Sketch struct {
	Steps []string
	Calls []string
}

// Result is the outcome of one synthesis query.
type Result struct {
	RunID    string
	Method   Method
	Sketches []Sketch
	States   int
	Edges    int
	Complete bool // reachability exploration was not truncated

	// Stochastic-only fields.
	Hamming int
	Reached bool
}

// Engine answers synthesis queries, caching reachability graphs so that
// repeated queries against the same catalog skip re-exploration.
type Engine struct {
	graphs *cache.GraphCache
}

// NewEngine creates an engine with the given graph-cache capacity.
// Capacity 0 means unlimited.
func NewEngine(cacheSize int) *Engine {
	return &Engine{graphs: cache.NewGraphCache(cacheSize)}
}

// CacheStats reports graph-cache effectiveness.
func (e *Engine) CacheStats() cache.Stats {
	return e.graphs.Stats()
}

// Synthesize searches for component sequences that transform the target
// signature's inputs into its output. Exact queries return every simple
// path in net-declaration order; stochastic queries return at most one
// best-effort path.
func (e *Engine) Synthesize(components []catalog.Component, target catalog.Signature, opts Options) (*Result, error) {
	if target.Output == "" {
		return nil, fmt.Errorf("target signature has no output type")
	}
	if opts.Method == "" {
		opts.Method = MethodExact
	}

	net, err := catalog.BuildNet(components, target)
	if err != nil {
		return nil, fmt.Errorf("build net: %w", err)
	}
	initial := net.InitialMarking()
	goal := catalog.GoalMarking(net, target)

	built := e.buildGraph(net, initial, opts.MaxStates)

	result := &Result{
		RunID:    uuid.New().String(),
		Method:   opts.Method,
		States:   built.StateCount,
		Edges:    built.EdgeCount,
		Complete: built.IsComplete,
	}

	arities := catalog.Arities(components)
	switch opts.Method {
	case MethodExact:
		var pathOpts []pathfind.Option
		if opts.MaxDepth > 0 {
			pathOpts = append(pathOpts, pathfind.WithMaxDepth(opts.MaxDepth))
		}
		for _, path := range pathfind.FindAll(built.Graph, initial, goal, pathOpts...) {
			result.Sketches = append(result.Sketches, makeSketch(path, arities))
		}
		result.Reached = len(result.Sketches) > 0

	case MethodAnts:
		params := opts.Colony
		if params.Ants <= 0 || params.Iterations <= 0 {
			params = colony.DefaultParams()
		}
		searchOpts := []colony.Option{}
		if opts.Seed != 0 {
			searchOpts = append(searchOpts, colony.WithRand(rand.New(rand.NewSource(opts.Seed))))
		}
		if opts.Tracer != nil {
			searchOpts = append(searchOpts, colony.WithTracer(opts.Tracer))
		}
		best := colony.New(built.Graph, params, searchOpts...).Run(initial, goal)
		if best != nil {
			result.Sketches = append(result.Sketches, makeSketch(best.Path, arities))
			result.Hamming = best.Hamming
			result.Reached = best.Reached
		}

	default:
		return nil, fmt.Errorf("unknown method %q", opts.Method)
	}

	return result, nil
}

// buildGraph returns the cached reachability result for the net and
// marking, building and caching it on a miss.
func (e *Engine) buildGraph(net *petri.PetriNet, initial petri.Marking, maxStates int) *reachability.Result {
	if cached := e.graphs.Get(net, initial); cached != nil {
		return cached
	}

	builder := reachability.NewBuilder(net).WithInitialMarking(initial)
	if maxStates > 0 {
		builder = builder.WithMaxStates(maxStates)
	}
	built := builder.Build()
	e.graphs.Put(net, initial, built)
	return built
}

func makeSketch(path []string, arities map[string]int) Sketch {
	return Sketch{
		Steps: append([]string(nil), path...),
		Calls: sketch.Emit(path, arities),
	}
}
