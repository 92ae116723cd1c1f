// Package colony implements a pheromone-guided stochastic search for
// firing sequences over a reachability graph. It is the scalable
// alternative to exhaustive enumeration: randomized rollouts biased by a
// per-transition pheromone table, reinforced over a fixed iteration
// budget. Results are best-effort; a returned path minimizes marking
// disagreement with the target under the budget, it is not guaranteed to
// reach the target exactly.
package colony

import (
	"math"
	"math/rand"
	"time"

	"github.com/pflow-xyz/go-synth/petri"
	"github.com/pflow-xyz/go-synth/reachability"
)

// Params controls the search budget and pheromone dynamics.
type Params struct {
	Ants        int     // rollouts per round
	Iterations  int     // rounds
	Alpha       float64 // pheromone exponent in selection probability
	Evaporation float64 // rho in [0,1): per-round pheromone decay factor
	MaxSteps    int     // rollout step cap; 0 derives a cap from graph size
}

// DefaultParams returns a budget suitable for small and medium nets.
func DefaultParams() Params {
	return Params{
		Ants:        20,
		Iterations:  50,
		Alpha:       1.0,
		Evaporation: 0.1,
	}
}

// Tracer observes every rollout. Implementations must not retain path.
type Tracer interface {
	Rollout(iteration, ant int, path []string, hamming int, reached bool)
}

// Search runs ant-colony rollouts over one reachability graph. The
// pheromone table is scoped to a single Run call: constructed, used, and
// discarded, never shared across runs or goroutines.
type Search struct {
	graph  *reachability.Graph
	params Params
	rng    *rand.Rand
	tracer Tracer
}

// Option configures a Search.
type Option func(*Search)

// WithRand injects the randomness source. Runs with the same seeded source
// are reproducible; tests depend on this.
func WithRand(rng *rand.Rand) Option {
	return func(s *Search) { s.rng = rng }
}

// WithTracer registers a rollout observer.
func WithTracer(tracer Tracer) Option {
	return func(s *Search) { s.tracer = tracer }
}

// New creates a search over the graph.
func New(graph *reachability.Graph, params Params, opts ...Option) *Search {
	s := &Search{graph: graph, params: params}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// Result is the best rollout found across all rounds.
type Result struct {
	Path    []string
	Final   petri.Marking
	Hamming int  // places disagreeing with the desired marking
	Reached bool // Hamming == 0
}

// Run executes the full iteration x ant budget and returns the best path
// found, or nil if no rollout ever produced a path. Rollouts are compared
// by Hamming distance of their final marking to desired, ties broken by
// shorter path.
func (s *Search) Run(start, desired petri.Marking) *Result {
	startState := s.graph.GetState(start)
	if startState == nil {
		return nil
	}

	pheromone := make(map[string]float64)
	for _, trans := range s.graph.Net.TransitionNames() {
		pheromone[trans] = 1.0
	}

	maxSteps := s.params.MaxSteps
	if maxSteps <= 0 {
		// Bound rollouts on cyclic graphs; a simple path can visit each
		// state at most once, so twice the state count is generous.
		maxSteps = 2 * s.graph.StateCount()
	}

	var best *Result
	for iter := 0; iter < s.params.Iterations; iter++ {
		round := make([][]string, 0, s.params.Ants)

		for ant := 0; ant < s.params.Ants; ant++ {
			path, final := s.rollout(startState, desired, pheromone, maxSteps)
			round = append(round, path)

			hamming := final.Hamming(desired)
			if s.tracer != nil {
				s.tracer.Rollout(iter, ant, path, hamming, hamming == 0)
			}
			if len(path) == 0 {
				continue
			}
			if best == nil || hamming < best.Hamming ||
				(hamming == best.Hamming && len(path) < len(best.Path)) {
				best = &Result{
					Path:    append([]string(nil), path...),
					Final:   final.Copy(),
					Hamming: hamming,
					Reached: hamming == 0,
				}
			}
		}

		s.updatePheromone(pheromone, round)
	}

	return best
}

// rollout walks the graph from start, sampling one outgoing transition at
// a time, until the desired marking is reached, no transition is
// available, or the step cap is hit. A dead end is an incomplete path,
// not an error.
func (s *Search) rollout(start *reachability.State, desired petri.Marking, pheromone map[string]float64, maxSteps int) ([]string, petri.Marking) {
	desiredHash := desired.Hash()
	state := start
	var path []string

	for step := 0; step < maxSteps; step++ {
		if state.Hash == desiredHash {
			break
		}
		edges := state.Successors
		if len(edges) == 0 {
			break
		}
		edge := s.selectEdge(edges, pheromone)
		state = edge.To
		path = append(path, edge.Transition)
	}

	return path, state.Marking
}

// selectEdge samples one edge by cumulative-probability roulette, with
// selection probability proportional to pheromone^alpha normalized over
// the available set only.
func (s *Search) selectEdge(edges []*reachability.Edge, pheromone map[string]float64) *reachability.Edge {
	weights := make([]float64, len(edges))
	total := 0.0
	for i, edge := range edges {
		weights[i] = math.Pow(pheromone[edge.Transition], s.params.Alpha)
		total += weights[i]
	}
	if total <= 0 {
		return edges[s.rng.Intn(len(edges))]
	}

	r := s.rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if r < cumulative {
			return edges[i]
		}
	}
	return edges[len(edges)-1]
}

// updatePheromone evaporates every transition's weight by (1-rho), then
// deposits 1/len(path) onto each transition occurrence of every rollout
// path from the round. The deposit is applied whether or not the rollout
// reached the target, biasing toward short paths in general rather than
// specifically toward successful ones.
func (s *Search) updatePheromone(pheromone map[string]float64, round [][]string) {
	for trans := range pheromone {
		pheromone[trans] *= 1 - s.params.Evaporation
	}
	for _, path := range round {
		if len(path) == 0 {
			continue
		}
		deposit := 1.0 / float64(len(path))
		for _, trans := range path {
			pheromone[trans] += deposit
		}
	}
}
