// Package candidate builds the per-node candidate lists that restrict the
// k-opt search to promising edges.
//
// Two sources are supported: alpha-nearness (LKH) and plain distance (LK).
// Lists are built once per instance and are read-only afterwards, so they may
// be shared by any number of engines.
package candidate

import (
	"cmp"
	"slices"

	"github.com/pkg/errors"

	"github.com/katalvlaran/lkh/matrix"
)

// DefaultSize is the candidate-list length used by LK.
const DefaultSize = 5

// ErrCandidateSize is returned when a requested list size is infeasible
// (size ≤ 0 or size ≥ n).
var ErrCandidateSize = errors.New("candidate: invalid candidate list size")

// Entry is one candidate neighbour.
type Entry struct {
	Node   int
	Alpha  float64
	Weight float64
}

// Lists holds the candidate entries of every node, best first.
type Lists struct {
	entries [][]Entry
}

// Len returns the number of nodes.
func (l *Lists) Len() int { return len(l.entries) }

// Of returns the candidate entries of node i. Callers must not modify it.
func (l *Lists) Of(i int) []Entry { return l.entries[i] }

// Nodes returns just the neighbour ids of node i, best first.
func (l *Lists) Nodes(i int) []int {
	out := make([]int, len(l.entries[i]))
	for k, e := range l.entries[i] {
		out[k] = e.Node
	}

	return out
}

// Has reports whether j is a candidate of i.
func (l *Lists) Has(i, j int) bool {
	return slices.ContainsFunc(l.entries[i], func(e Entry) bool { return e.Node == j })
}

// MaxLen returns the length of the longest list.
func (l *Lists) MaxLen() int {
	m := 0
	for _, es := range l.entries {
		m = max(m, len(es))
	}

	return m
}

// DefaultExcess returns factor·oneTreeCost/n, the alpha cutoff used when no
// explicit excess is configured. factor ≤ 0 is treated as 1.
func DefaultExcess(oneTreeCost float64, n int, factor float64) float64 {
	if factor <= 0 {
		factor = 1
	}

	return factor * oneTreeCost / float64(n)
}

// FromAlpha links every pair i<j with alpha(i,j) < excess in both directions
// and orders each list by (alpha, weight, node id). limit > 0 truncates the
// lists; limit ≤ 0 keeps every qualifying edge.
//
// Complexity: O(n² + Σ k log k) where k is the list length.
func FromAlpha(alpha, w matrix.Weights, excess float64, limit int) *Lists {
	n := alpha.N()
	l := &Lists{entries: make([][]Entry, n)}

	var (
		i, j int
		a    float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			a = alpha.At(i, j)
			if a < excess {
				l.entries[i] = append(l.entries[i], Entry{Node: j, Alpha: a, Weight: w.At(i, j)})
				l.entries[j] = append(l.entries[j], Entry{Node: i, Alpha: a, Weight: w.At(i, j)})
			}
		}
	}
	for i = 0; i < n; i++ {
		slices.SortFunc(l.entries[i], compareEntries)
		if limit > 0 && len(l.entries[i]) > limit {
			l.entries[i] = slices.Clip(l.entries[i][:limit])
		}
	}

	return l
}

// Nearest builds distance-ranked lists of exactly size entries per node,
// ties broken by node id. Alpha is left at zero.
//
// Complexity: O(n² log n).
func Nearest(w matrix.Weights, size int) (*Lists, error) {
	n := w.N()
	if size <= 0 || size >= n {
		return nil, errors.Wrapf(ErrCandidateSize, "size=%d, n=%d", size, n)
	}
	l := &Lists{entries: make([][]Entry, n)}
	var i, j int
	for i = 0; i < n; i++ {
		row := make([]Entry, 0, n-1)
		for j = 0; j < n; j++ {
			if j != i {
				row = append(row, Entry{Node: j, Weight: w.At(i, j)})
			}
		}
		slices.SortFunc(row, compareEntries)
		l.entries[i] = slices.Clip(row[:size])
	}

	return l, nil
}

func compareEntries(a, b Entry) int {
	if c := cmp.Compare(a.Alpha, b.Alpha); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Weight, b.Weight); c != 0 {
		return c
	}

	return cmp.Compare(a.Node, b.Node)
}
