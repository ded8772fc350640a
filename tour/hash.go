package tour

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Hash returns the canonical fingerprint of the cycle.
//
// Canonical form: rotation puts node 0 first, and the direction is chosen so
// that the node after 0 is smaller than the node before it. Two tours that
// describe the same cycle therefore hash equally whatever their starting
// position or orientation. The canonical sequence is hashed with xxhash64 over
// little-endian uint32 node ids.
//
// Complexity: O(n) time, one O(n) byte buffer.
func (t *Tour) Hash() uint64 {
	return hashFrom(t.order, t.pos[0])
}

// HashOrder is Hash for a raw visiting order that is known to be a permutation.
func HashOrder(order []int) uint64 {
	p := 0
	for i, v := range order {
		if v == 0 {
			p = i
			break
		}
	}

	return hashFrom(order, p)
}

func hashFrom(order []int, p0 int) uint64 {
	n := len(order)
	if n == 0 {
		return xxhash.Sum64(nil)
	}
	step := 1
	if n > 2 && order[(p0+1)%n] > order[(p0-1+n)%n] {
		step = n - 1 // walk backwards
	}

	buf := make([]byte, 4*n)
	var (
		i int
		p = p0
	)
	for i = 0; i < n; i++ {
		binary.LittleEndian.PutUint32(buf[4*i:], uint32(order[p]))
		p = (p + step) % n
	}

	return xxhash.Sum64(buf)
}
