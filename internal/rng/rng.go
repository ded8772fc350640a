// Package rng centralizes deterministic random generation for the search.
//
// Goals:
//   - Determinism: same seed ⇒ identical restarts and perturbations.
//   - Encapsulation: a single RNG factory; no time-based sources hidden anywhere.
//   - Independent streams for parallel workers via SplitMix64 seed mixing.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Every worker derives its own stream
//     with Derive during setup and never shares it.
package rng

import "math/rand"

// DefaultSeed is the fixed "zero" seed used when callers pass seed==0.
const DefaultSeed int64 = 1

// FromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ DefaultSeed; otherwise the provided seed verbatim.
//
// Complexity: O(1).
func FromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// mix folds a parent seed and a stream identifier into a new 64-bit seed
// using the SplitMix64 finalizer constants.
//
// Complexity: O(1).
func mix(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// Derive creates an independent deterministic stream from base and a stream id.
// base.Int63() is consumed once so two derivations with the same id still differ.
// If base==nil, DefaultSeed is used as the parent.
//
// Call during setup, not in hot loops.
func Derive(base *rand.Rand, stream uint64) *rand.Rand {
	parent := DefaultSeed
	if base != nil {
		parent = base.Int63()
	}
	return rand.New(rand.NewSource(mix(parent, stream)))
}

// Pick returns a uniformly random element of a; ok is false when a is empty.
func Pick(a []int, r *rand.Rand) (v int, ok bool) {
	if len(a) == 0 {
		return -1, false
	}
	return a[r.Intn(len(a))], true
}

// SwapPairs performs count random transpositions of distinct positions in a.
// It is the perturbation used between tabu restarts. Slices shorter than 2 are
// left untouched.
//
// Complexity: O(count).
func SwapPairs(a []int, count int, r *rand.Rand) {
	n := len(a)
	if n < 2 {
		return
	}
	var i, x, y int
	for i = 0; i < count; i++ {
		x = r.Intn(n)
		y = r.Intn(n - 1)
		if y >= x {
			y++ // distinct from x without rejection sampling
		}
		a[x], a[y] = a[y], a[x]
	}
}
