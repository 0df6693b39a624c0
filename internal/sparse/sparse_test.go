package sparse

import "testing"

func TestInsertAndContains(t *testing.T) {
	s := NewSet(100)
	s.Insert(5)
	s.Insert(50)
	s.Insert(99)

	for _, v := range []uint32{5, 50, 99} {
		if !s.Contains(v) {
			t.Errorf("Contains(%d) = false after Insert", v)
		}
	}
	for _, v := range []uint32{0, 4, 51, 98} {
		if s.Contains(v) {
			t.Errorf("Contains(%d) = true, never inserted", v)
		}
	}
	if s.Size() != 3 {
		t.Errorf("Size() = %d, want 3", s.Size())
	}
}

func TestInsertDuplicate(t *testing.T) {
	s := NewSet(10)
	s.Insert(7)
	s.Insert(7)
	s.Insert(7)
	if s.Size() != 1 {
		t.Errorf("Size() = %d after duplicate inserts, want 1", s.Size())
	}
}

func TestInsertOutOfRange(t *testing.T) {
	s := NewSet(10)
	s.Insert(10)
	s.Insert(1000)
	if s.Size() != 0 {
		t.Errorf("Size() = %d after out-of-range inserts, want 0", s.Size())
	}
	if s.Contains(1000) {
		t.Error("Contains(1000) = true for out-of-range value")
	}
}

func TestClear(t *testing.T) {
	s := NewSet(10)
	s.Insert(1)
	s.Insert(2)
	s.Clear()
	if s.Size() != 0 {
		t.Errorf("Size() = %d after Clear, want 0", s.Size())
	}
	if s.Contains(1) || s.Contains(2) {
		t.Error("cleared set still contains values")
	}
	// Stale sparse entries must not leak membership after reuse.
	s.Insert(2)
	if s.Contains(1) {
		t.Error("Contains(1) = true after Clear and unrelated Insert")
	}
}

func TestValuesInsertionOrder(t *testing.T) {
	s := NewSet(20)
	order := []uint32{13, 2, 19, 0, 7}
	for _, v := range order {
		s.Insert(v)
	}
	got := s.Values()
	if len(got) != len(order) {
		t.Fatalf("len(Values()) = %d, want %d", len(got), len(order))
	}
	for i, v := range order {
		if got[i] != v {
			t.Errorf("Values()[%d] = %d, want %d", i, got[i], v)
		}
	}
}

func TestZeroCapacity(t *testing.T) {
	s := NewSet(0)
	s.Insert(0)
	if s.Size() != 0 {
		t.Errorf("Size() = %d for zero-capacity set, want 0", s.Size())
	}
}
