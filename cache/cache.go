// Package cache provides memoization for reachability graph construction.
// Graph building dominates query cost, and repeated queries against the
// same component catalog produce identical nets; caching the built graph
// keyed by net topology and start marking avoids re-exploration. Graphs
// are immutable after construction, so cached values are safe to share.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/pflow-xyz/go-synth/petri"
	"github.com/pflow-xyz/go-synth/reachability"
)

// GraphCache caches built reachability results keyed by net/marking hash.
type GraphCache struct {
	mu        sync.RWMutex
	cache     map[string]*reachability.Result
	order     []string // insertion order for FIFO eviction
	maxSize   int
	hits      int64
	misses    int64
	evictions int64
}

// NewGraphCache creates a cache with the specified maximum size. When the
// cache is full, the oldest entry is evicted. Set maxSize to 0 for an
// unlimited cache.
func NewGraphCache(maxSize int) *GraphCache {
	return &GraphCache{
		cache:   make(map[string]*reachability.Result),
		maxSize: maxSize,
	}
}

// Key builds a deterministic hash of the net topology plus the start
// marking. Places, transitions, and edges enter the hash in declaration
// order, so structurally identical nets key equal.
func Key(net *petri.PetriNet, initial petri.Marking) string {
	h := sha256.New()
	buf := make([]byte, 8)

	for _, name := range net.PlaceNames() {
		h.Write([]byte("p:" + name))
	}
	for _, name := range net.TransitionNames() {
		h.Write([]byte("t:" + name))
	}
	for _, e := range net.Edges {
		h.Write([]byte("e:" + e.Source + ">" + e.Target))
		binary.BigEndian.PutUint64(buf, uint64(e.Weight))
		h.Write(buf)
	}
	h.Write([]byte("m:" + initial.Hash()))

	return fmt.Sprintf("%x", h.Sum(nil))
}

// Get retrieves a cached result, or nil.
func (c *GraphCache) Get(net *petri.PetriNet, initial petri.Marking) *reachability.Result {
	key := Key(net, initial)

	c.mu.Lock()
	defer c.mu.Unlock()

	if result, ok := c.cache[key]; ok {
		c.hits++
		return result
	}
	c.misses++
	return nil
}

// Put stores a built result.
func (c *GraphCache) Put(net *petri.PetriNet, initial petri.Marking, result *reachability.Result) {
	key := Key(net, initial)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.cache[key]; ok {
		return
	}
	if c.maxSize > 0 && len(c.cache) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.cache, oldest)
		c.evictions++
	}
	c.cache[key] = result
	c.order = append(c.order, key)
}

// Stats reports cache effectiveness.
type Stats struct {
	Size      int
	Hits      int64
	Misses    int64
	Evictions int64
}

// Stats returns a snapshot of the cache counters.
func (c *GraphCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{
		Size:      len(c.cache),
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

// Clear empties the cache, keeping the counters.
func (c *GraphCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]*reachability.Result)
	c.order = nil
}
