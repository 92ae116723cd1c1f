package petri

import "testing"

func TestMarkingCopy(t *testing.T) {
	m := Marking{"int": 5, "string": 3}
	c := m.Copy()

	c["int"] = 99
	if m["int"] != 5 {
		t.Error("Copy should not affect original")
	}
}

func TestMarkingEquals(t *testing.T) {
	m1 := Marking{"A": 5, "B": 3}
	m2 := Marking{"A": 5, "B": 3}
	m3 := Marking{"A": 5, "B": 4}

	if !m1.Equals(m2) {
		t.Error("Equal markings should be equal")
	}
	if m1.Equals(m3) {
		t.Error("Different markings should not be equal")
	}
}

func TestMarkingEqualsTreatsAbsentAsZero(t *testing.T) {
	m1 := Marking{"A": 1, "B": 0}
	m2 := Marking{"A": 1}

	if !m1.Equals(m2) {
		t.Error("Zero-count places should not affect equality")
	}
	if m1.Hash() != m2.Hash() {
		t.Error("Zero-count places should not affect the hash")
	}
}

func TestMarkingHash(t *testing.T) {
	m1 := Marking{"A": 5, "B": 3}
	m2 := Marking{"B": 3, "A": 5} // same content, different declaration order
	m3 := Marking{"A": 5, "B": 4}

	if m1.Hash() != m2.Hash() {
		t.Error("Same marking should have same hash regardless of order")
	}
	if m1.Hash() == m3.Hash() {
		t.Error("Different markings should have different hashes")
	}
}

func TestMarkingHamming(t *testing.T) {
	m1 := Marking{"A": 2, "B": 1, "C": 0}
	m2 := Marking{"A": 0, "B": 1, "C": 0}

	if d := m1.Hamming(m2); d != 1 {
		t.Errorf("Expected distance 1, got %d", d)
	}
	if d := m1.Hamming(m1); d != 0 {
		t.Errorf("Distance to self should be 0, got %d", d)
	}

	// Places absent on one side count as zero there.
	m3 := Marking{"A": 2, "B": 1}
	if d := m1.Hamming(m3); d != 0 {
		t.Errorf("Zero-count place should not add distance, got %d", d)
	}
	m4 := Marking{"A": 2, "B": 1, "D": 4}
	if d := m1.Hamming(m4); d != 1 {
		t.Errorf("Expected distance 1 for extra place, got %d", d)
	}
}

func TestMarkingTotal(t *testing.T) {
	m := Marking{"A": 5, "B": 3, "C": 2}
	if m.Total() != 10 {
		t.Errorf("Expected total 10, got %d", m.Total())
	}
}
