// Package tracelog records, writes, and parses stochastic-search rollout
// traces. One record per rollout captures which transitions an ant fired
// and how close its final marking came to the target; CSV and JSONL
// encodings support offline analysis of a search run.
package tracelog

import (
	"sort"
	"time"
)

// Record is one rollout of one ant in one iteration.
type Record struct {
	RunID     string    `json:"run_id"`
	Iteration int       `json:"iteration"`
	Ant       int       `json:"ant"`
	Reached   bool      `json:"reached"`
	Hamming   int       `json:"hamming"`
	Path      []string  `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// Better reports whether r beats other under the search objective:
// lower Hamming distance first, shorter path on ties.
func (r Record) Better(other Record) bool {
	if r.Hamming != other.Hamming {
		return r.Hamming < other.Hamming
	}
	return len(r.Path) < len(other.Path)
}

// Log is an in-memory collection of rollout records.
type Log struct {
	Records []Record
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{Records: make([]Record, 0)}
}

// Append adds a record.
func (l *Log) Append(r Record) {
	l.Records = append(l.Records, r)
}

// Best returns the best non-empty rollout in the log, or nil.
func (l *Log) Best() *Record {
	var best *Record
	for i := range l.Records {
		r := &l.Records[i]
		if len(r.Path) == 0 {
			continue
		}
		if best == nil || r.Better(*best) {
			best = r
		}
	}
	return best
}

// BestPerIteration returns the best non-empty rollout of each iteration,
// ordered by iteration. Useful for plotting convergence.
func (l *Log) BestPerIteration() []Record {
	byIter := make(map[int]*Record)
	for i := range l.Records {
		r := &l.Records[i]
		if len(r.Path) == 0 {
			continue
		}
		if cur, ok := byIter[r.Iteration]; !ok || r.Better(*cur) {
			byIter[r.Iteration] = r
		}
	}

	iters := make([]int, 0, len(byIter))
	for it := range byIter {
		iters = append(iters, it)
	}
	sort.Ints(iters)

	out := make([]Record, 0, len(iters))
	for _, it := range iters {
		out = append(out, *byIter[it])
	}
	return out
}

// Summary provides basic statistics about a search run.
type Summary struct {
	Rollouts    int
	Reached     int
	Iterations  int
	BestHamming int
	BestLength  int
}

// Summarize computes summary statistics for the log.
func (l *Log) Summarize() Summary {
	s := Summary{Rollouts: len(l.Records), BestHamming: -1}

	iters := make(map[int]bool)
	for _, r := range l.Records {
		iters[r.Iteration] = true
		if r.Reached {
			s.Reached++
		}
	}
	s.Iterations = len(iters)

	if best := l.Best(); best != nil {
		s.BestHamming = best.Hamming
		s.BestLength = len(best.Path)
	}
	return s
}

// Collector implements the colony search's Tracer interface, stamping
// each rollout with a run ID and the current time.
type Collector struct {
	RunID string
	Log   *Log

	// Now is the clock; overridable in tests. Defaults to time.Now.
	Now func() time.Time
}

// NewCollector creates a collector for one search run.
func NewCollector(runID string) *Collector {
	return &Collector{RunID: runID, Log: NewLog(), Now: time.Now}
}

// Rollout records one rollout. The path slice is copied, not retained.
func (c *Collector) Rollout(iteration, ant int, path []string, hamming int, reached bool) {
	c.Log.Append(Record{
		RunID:     c.RunID,
		Iteration: iteration,
		Ant:       ant,
		Reached:   reached,
		Hamming:   hamming,
		Path:      append([]string(nil), path...),
		Timestamp: c.Now(),
	})
}
