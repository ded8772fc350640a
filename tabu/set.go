package tabu

import (
	"slices"

	"github.com/katalvlaran/lkh/tour"
)

// Best is the best tour a Set has seen.
type Best struct {
	Length float64
	Order  []int
	// Index is the insertion count at which it was discovered (1-based);
	// 0 means the set is empty.
	Index int
}

// Set is the tabu set of one metaheuristic run: canonical hashes of every
// visited tour plus the best (length, tour) seen.
//
// With a positive capacity the hashes form a FIFO window: inserting into a
// full set evicts the oldest hash. Capacity ≤ 0 keeps every hash. Merged
// hashes from other workers take part in Contains and in the window, but
// never change the best tour.
//
// A Set is not safe for concurrent use. It implements kopt.Memory.
type Set struct {
	capacity int
	hashes   map[uint64]struct{}
	fifo     []uint64 // insertion order; head is the oldest live hash
	head     int
	inserts  int
	best     Best
}

// NewSet returns an empty set holding at most capacity hashes (≤ 0 = unbounded).
func NewSet(capacity int) *Set {
	return &Set{
		capacity: capacity,
		hashes:   make(map[uint64]struct{}),
	}
}

// Contains reports whether the tour with canonical hash h is tabu.
func (s *Set) Contains(h uint64) bool {
	_, ok := s.hashes[h]
	return ok
}

// ContainsOrder is Contains on a visiting order.
func (s *Set) ContainsOrder(order []int) bool { return s.Contains(tour.HashOrder(order)) }

// Insert adds the tour and updates the best one. It returns false, changing
// nothing, when the tour is already tabu.
//
// Complexity: O(n) for hashing; amortised O(1) otherwise.
func (s *Set) Insert(length float64, order []int) bool {
	h := tour.HashOrder(order)
	if !s.add(h) {
		return false
	}
	s.inserts++
	if s.best.Index == 0 || length < s.best.Length {
		s.best = Best{Length: length, Order: slices.Clone(order), Index: s.inserts}
	}

	return true
}

// add stores h, evicting the oldest hash when the window is full.
func (s *Set) add(h uint64) bool {
	if _, ok := s.hashes[h]; ok {
		return false
	}
	if s.capacity > 0 && len(s.hashes) >= s.capacity {
		old := s.fifo[s.head]
		s.head++
		delete(s.hashes, old)
		if s.head > len(s.fifo)/2 {
			s.fifo = slices.Delete(s.fifo, 0, s.head)
			s.head = 0
		}
	}
	s.hashes[h] = struct{}{}
	s.fifo = append(s.fifo, h)

	return true
}

// Best returns the best tour inserted so far.
func (s *Set) Best() Best {
	b := s.best
	b.Order = slices.Clone(b.Order)

	return b
}

// Len returns the number of live hashes.
func (s *Set) Len() int { return len(s.hashes) }

// Hashes returns the live hashes, oldest first.
func (s *Set) Hashes() []uint64 { return slices.Clone(s.fifo[s.head:]) }

// Merge adds hashes discovered elsewhere; known ones are skipped.
func (s *Set) Merge(hashes []uint64) {
	for _, h := range hashes {
		s.add(h)
	}
}
