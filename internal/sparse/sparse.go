// Package sparse provides a sparse set of small non-negative integers.
//
// A sparse set supports O(1) insertion, deletion, membership testing and
// clearing while keeping a dense list of its members. The pattern engine uses
// it to track which alternatives of a choice group are still live while a
// stream is being matched.
package sparse

// Set is a set of ints in [0, capacity) supporting O(1) operations.
// The sparse slice maps a value to its index in dense.
type Set struct {
	sparse []int
	dense  []int
}

// NewSet creates an empty set able to hold values in [0, capacity).
func NewSet(capacity int) *Set {
	return &Set{
		sparse: make([]int, capacity),
		dense:  make([]int, 0, capacity),
	}
}

// Cap returns the exclusive upper bound of storable values.
func (s *Set) Cap() int {
	return len(s.sparse)
}

// Insert adds a value to the set. Inserting a present value is a no-op.
// Panics if value is out of range.
func (s *Set) Insert(value int) {
	if s.Contains(value) {
		return
	}
	s.sparse[value] = len(s.dense)
	s.dense = append(s.dense, value)
}

// Contains reports whether value is in the set.
func (s *Set) Contains(value int) bool {
	if value < 0 || value >= len(s.sparse) {
		return false
	}
	idx := s.sparse[value]
	return idx < len(s.dense) && s.dense[idx] == value
}

// Remove deletes value from the set. Removing an absent value is a no-op.
func (s *Set) Remove(value int) {
	if !s.Contains(value) {
		return
	}

	// swap with the last member and pop
	idx := s.sparse[value]
	last := s.dense[len(s.dense)-1]
	s.dense[idx] = last
	s.sparse[last] = idx
	s.dense = s.dense[:len(s.dense)-1]
}

// Fill makes the set contain exactly 0..Cap()-1, in ascending order.
func (s *Set) Fill() {
	s.dense = s.dense[:0]
	for v := range s.sparse {
		s.sparse[v] = v
		s.dense = append(s.dense, v)
	}
}

// Clear removes all elements in O(1) time.
func (s *Set) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of elements in the set.
func (s *Set) Len() int {
	return len(s.dense)
}

// IsEmpty reports whether the set has no elements.
func (s *Set) IsEmpty() bool {
	return len(s.dense) == 0
}

// Values returns the members of the set. The order is unspecified and the
// slice is only valid until the next mutation.
func (s *Set) Values() []int {
	return s.dense
}
