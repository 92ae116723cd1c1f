package petri

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sort"
	"strings"
)

// Marking represents a state of the Petri net: how many values of each
// type are currently available. It maps place names to token counts.
// Markings compare by content, never by identity.
type Marking map[string]int

// Copy creates a deep copy of the marking.
func (m Marking) Copy() Marking {
	result := make(Marking, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}

// Equals checks if two markings are identical. Absent places count as zero,
// so {A:1} and {A:1, B:0} are equal.
func (m Marking) Equals(other Marking) bool {
	for k, v := range m {
		if other[k] != v {
			return false
		}
	}
	for k, v := range other {
		if m[k] != v {
			return false
		}
	}
	return true
}

// Hash returns a deterministic hash of the marking, built from its sorted
// (place, count) pairs. Zero-count places are skipped so that structurally
// equal markings hash equal regardless of which places were materialized.
func (m Marking) Hash() string {
	keys := m.SortedKeys()
	h := sha256.New()
	buf := make([]byte, 8)
	for _, k := range keys {
		if m[k] == 0 {
			continue
		}
		h.Write([]byte(k))
		binary.BigEndian.PutUint64(buf, uint64(m[k]))
		h.Write(buf)
	}
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}

// String returns a human-readable representation.
func (m Marking) String() string {
	keys := m.SortedKeys()
	var parts []string
	for _, k := range keys {
		if m[k] > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", k, m[k]))
		}
	}
	if len(parts) == 0 {
		return "(empty)"
	}
	return strings.Join(parts, ", ")
}

// SortedKeys returns place names in sorted order.
func (m Marking) SortedKeys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Total returns the sum of all tokens.
func (m Marking) Total() int {
	sum := 0
	for _, v := range m {
		sum += v
	}
	return sum
}

// Get returns the token count for a place (0 if not present).
func (m Marking) Get(place string) int {
	return m[place]
}

// Set sets the token count for a place.
func (m Marking) Set(place string, tokens int) {
	m[place] = tokens
}

// Add adds tokens to a place.
func (m Marking) Add(place string, tokens int) {
	m[place] += tokens
}

// Sub subtracts tokens from a place.
func (m Marking) Sub(place string, tokens int) {
	m[place] -= tokens
}

// Hamming counts the places whose token counts differ between m and other.
// It is the disagreement objective used by the stochastic path search.
func (m Marking) Hamming(other Marking) int {
	distance := 0
	for k, v := range m {
		if other[k] != v {
			distance++
		}
	}
	for k, v := range other {
		if _, ok := m[k]; !ok && v != 0 {
			distance++
		}
	}
	return distance
}

// Max returns the maximum token count in any place.
func (m Marking) Max() int {
	max := 0
	for _, v := range m {
		if v > max {
			max = v
		}
	}
	return max
}

// IsZero returns true if all places have zero tokens.
func (m Marking) IsZero() bool {
	for _, v := range m {
		if v != 0 {
			return false
		}
	}
	return true
}
