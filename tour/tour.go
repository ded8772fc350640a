package tour

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pkg/errors"

	"github.com/katalvlaran/lkh/matrix"
)

// Tour is a Hamiltonian cycle over nodes 0..n-1.
// order[i] is the node visited at position i; pos is its inverse.
type Tour struct {
	order []int
	pos   []int
}

// ValidatePermutation checks that perm is a permutation of {0..n-1} of length n.
// It does not allocate besides a single O(n) boolean marker slice.
//
// Complexity: O(n) time, O(n) space.
func ValidatePermutation(perm []int, n int) error {
	if len(perm) != n || n <= 0 {
		return errors.Wrapf(ErrNotPermutation, "len=%d, n=%d", len(perm), n)
	}
	seen := make([]bool, n)

	var (
		i int
		v int
	)
	for i = 0; i < n; i++ {
		v = perm[i]
		if v < 0 || v >= n {
			return errors.Wrapf(ErrNotPermutation, "node %d out of range at %d", v, i)
		}
		if seen[v] {
			return errors.Wrapf(ErrNotPermutation, "node %d repeated at %d", v, i)
		}
		seen[v] = true
	}

	return nil
}

// New validates order and returns a Tour owning a copy of it.
// Complexity: O(n).
func New(order []int) (*Tour, error) {
	if err := ValidatePermutation(order, len(order)); err != nil {
		return nil, err
	}

	return fromTrusted(slices.Clone(order)), nil
}

// Identity returns the tour 0,1,...,n-1.
func Identity(n int) *Tour {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	return fromTrusted(order)
}

// fromTrusted adopts order without validation and builds the position index.
func fromTrusted(order []int) *Tour {
	pos := make([]int, len(order))
	for i, v := range order {
		pos[v] = i
	}

	return &Tour{order: order, pos: pos}
}

// Len returns the number of nodes.
func (t *Tour) Len() int { return len(t.order) }

// At returns the node at position i, taken cyclically (negative i allowed).
func (t *Tour) At(i int) int {
	n := len(t.order)
	i %= n
	if i < 0 {
		i += n
	}

	return t.order[i]
}

// Index returns the position of node.
func (t *Tour) Index(node int) int { return t.pos[node] }

// Succ returns the node following node.
func (t *Tour) Succ(node int) int {
	p := t.pos[node] + 1
	if p == len(t.order) {
		p = 0
	}

	return t.order[p]
}

// Pred returns the node preceding node.
func (t *Tour) Pred(node int) int {
	p := t.pos[node] - 1
	if p < 0 {
		p = len(t.order) - 1
	}

	return t.order[p]
}

// Around returns both tour neighbours of node: successor first.
func (t *Tour) Around(node int) (succ, pred int) {
	return t.Succ(node), t.Pred(node)
}

// Adjacent reports whether a and b are consecutive in the cycle.
// Complexity: O(1).
func (t *Tour) Adjacent(a, b int) bool {
	n := len(t.order)
	d := t.pos[a] - t.pos[b]
	if d < 0 {
		d = -d
	}

	return d == 1 || (n > 2 && d == n-1)
}

// Contains reports whether e is an edge of the tour.
func (t *Tour) Contains(e Edge) bool { return t.Adjacent(e.A, e.B) }

// Between reports whether x lies strictly inside the forward arc from a to b,
// i.e. x is met after a and before b walking along successors. a == b yields
// an empty arc.
// Complexity: O(1).
func (t *Tour) Between(a, b, x int) bool {
	n := len(t.order)
	pa := t.pos[a]
	db := t.pos[b] - pa
	if db < 0 {
		db += n
	}
	dx := t.pos[x] - pa
	if dx < 0 {
		dx += n
	}

	return dx > 0 && dx < db
}

// Flip reverses the forward path a..b (inclusive). When that path is longer
// than half the tour the complementary path is reversed instead, which yields
// the same cycle traversed in the opposite direction. Callers must therefore
// re-derive orientation (Succ vs Pred) after a flip.
//
// Complexity: O(min(L, n-L)) where L is the path length.
func (t *Tour) Flip(a, b int) {
	n := len(t.order)
	i, j := t.pos[a], t.pos[b]
	length := j - i
	if length < 0 {
		length += n
	}
	length++
	if 2*length > n {
		i, j = j+1, i-1
		if i == n {
			i = 0
		}
		if j < 0 {
			j = n - 1
		}
		length = n - length
	}

	var (
		k, x, y int
		u, v    int
	)
	for k = 0; k < length/2; k++ {
		x = (i + k) % n
		y = (j - k + n) % n
		u, v = t.order[x], t.order[y]
		t.order[x], t.order[y] = v, u
		t.pos[v], t.pos[u] = x, y
	}
}

// Clone returns an independent copy.
func (t *Tour) Clone() *Tour {
	return &Tour{order: slices.Clone(t.order), pos: slices.Clone(t.pos)}
}

// Order returns a copy of the visiting order.
func (t *Tour) Order() []int { return slices.Clone(t.order) }

// Edges returns the n edges of the cycle in visiting order.
func (t *Tour) Edges() []Edge {
	n := len(t.order)
	out := make([]Edge, n)
	for i := 0; i < n; i++ {
		out[i] = NewEdge(t.order[i], t.order[(i+1)%n])
	}

	return out
}

// Length sums the weights of all tour edges, closing edge included.
// Complexity: O(n).
func (t *Tour) Length(w matrix.Weights) float64 {
	return OrderLength(w, t.order)
}

// OrderLength is Length for a raw visiting order.
func OrderLength(w matrix.Weights, order []int) float64 {
	n := len(order)
	if n < 2 {
		return 0
	}
	var (
		sum float64
		i   int
	)
	for i = 0; i < n-1; i++ {
		sum += w.At(order[i], order[i+1])
	}

	return sum + w.At(order[n-1], order[0])
}

// String renders the order, e.g. "[0 3 1 2]".
func (t *Tour) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range t.order {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d", v)
	}
	sb.WriteByte(']')

	return sb.String()
}
