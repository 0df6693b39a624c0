// Package sparse provides a sparse set data structure for efficient membership testing.
//
// A sparse set supports O(1) insertion and membership testing while
// maintaining a dense list of elements, and clears in O(1). It is used to
// track visited NFA states during epsilon-closure computation, where the
// universe (the NFA state count) is known up front.
package sparse

// Set is a set of uint32 values below a fixed capacity.
// It maintains both a sparse array (for membership testing) and a dense
// array (for iteration in insertion order).
type Set struct {
	sparse []uint32 // maps value -> index in dense
	dense  []uint32 // the values, in insertion order
	size   uint32
}

// NewSet creates a new sparse set able to hold values in [0, capacity).
func NewSet(capacity uint32) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds a value to the set; inserting a present value is a no-op.
// Values at or above capacity are ignored.
func (s *Set) Insert(value uint32) {
	if s.Contains(value) {
		return
	}
	if value >= uint32(len(s.sparse)) {
		return
	}
	s.dense = append(s.dense, value)
	s.sparse[value] = s.size
	s.size++
}

// Contains returns true if the value is in the set
func (s *Set) Contains(value uint32) bool {
	if value >= uint32(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return idx < s.size && s.dense[idx] == value
}

// Clear removes all elements from the set in O(1) time
func (s *Set) Clear() {
	s.size = 0
	s.dense = s.dense[:0]
}

// Size returns the number of elements in the set
func (s *Set) Size() int {
	return int(s.size)
}

// Values returns the values in insertion order.
// The returned slice is valid until the next mutation.
func (s *Set) Values() []uint32 {
	return s.dense[:s.size]
}
