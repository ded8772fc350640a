package matrix

import (
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// SymTol is the absolute tolerance used by validation for symmetry and the
// zero diagonal.
const SymTol = 1e-9

// Weights is the read-only view every search component consumes.
// Implementations must be symmetric: At(i,j) == At(j,i).
type Weights interface {
	N() int
	At(i, j int) float64
}

// Dense is a symmetric n×n weight matrix in row-major order.
// data holds n*n elements; Set keeps both halves in sync.
type Dense struct {
	n    int       // number of nodes
	data []float64 // flat backing storage, len == n*n
}

// New creates an n×n zero matrix.
// Complexity: O(n²) time and memory.
func New(n int) (*Dense, error) {
	if n <= 0 {
		return nil, errors.Wrapf(ErrDimension, "New(%d)", n)
	}

	return &Dense{n: n, data: make([]float64, n*n)}, nil
}

// FromRows copies a square [][]float64 into a Dense and validates it.
// Stage 1 (Validate): square shape.
// Stage 2 (Execute): copy rows into the flat buffer.
// Stage 3 (Finalize): Validate the metric properties.
// Complexity: O(n²).
func FromRows(rows [][]float64) (*Dense, error) {
	n := len(rows)
	if n == 0 {
		return nil, errors.Wrap(ErrDimension, "FromRows: no rows")
	}
	m := &Dense{n: n, data: make([]float64, n*n)}
	var i int
	for i = 0; i < n; i++ {
		if len(rows[i]) != n {
			return nil, errors.Wrapf(ErrDimension, "FromRows: row %d has %d columns, want %d", i, len(rows[i]), n)
		}
		copy(m.data[i*n:(i+1)*n], rows[i])
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// N returns the number of nodes.
func (m *Dense) N() int { return m.n }

// At returns w[i][j]. Hot path: no checks beyond the slice's own.
func (m *Dense) At(i, j int) float64 { return m.data[i*m.n+j] }

// Set assigns w[i][j] = w[j][i] = v.
func (m *Dense) Set(i, j int, v float64) {
	m.data[i*m.n+j] = v
	m.data[j*m.n+i] = v
}

// Row returns a read-only slice aliasing row i. Callers must not modify it.
func (m *Dense) Row(i int) []float64 { return m.data[i*m.n : (i+1)*m.n] }

// Clone returns a deep copy; parallel workers each receive their own.
// Complexity: O(n²).
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{n: m.n, data: cp}
}

// Equal reports whether o holds bit-identical values.
func (m *Dense) Equal(o *Dense) bool {
	if o == nil || m.n != o.n {
		return false
	}
	for k := range m.data {
		if math.Float64bits(m.data[k]) != math.Float64bits(o.data[k]) {
			return false
		}
	}

	return true
}

// Validate checks the properties the search relies on: finite entries,
// non-negative weights, zero diagonal and symmetry within SymTol.
// Complexity: O(n²).
func (m *Dense) Validate() error {
	var (
		i, j int
		a, b float64
	)
	for i = 0; i < m.n; i++ {
		if math.Abs(m.data[i*m.n+i]) > SymTol {
			return errors.Wrapf(ErrNonZeroDiagonal, "w[%d][%d]=%g", i, i, m.data[i*m.n+i])
		}
		for j = i + 1; j < m.n; j++ {
			a, b = m.data[i*m.n+j], m.data[j*m.n+i]
			switch {
			case math.IsNaN(a) || math.IsInf(a, 0) || math.IsNaN(b) || math.IsInf(b, 0):
				return errors.Wrapf(ErrNaN, "w[%d][%d]", i, j)
			case a < 0:
				return errors.Wrapf(ErrNegativeWeight, "w[%d][%d]=%g", i, j, a)
			case math.Abs(a-b) > SymTol:
				return errors.Wrapf(ErrAsymmetric, "w[%d][%d]=%g, w[%d][%d]=%g", i, j, a, j, i, b)
			}
		}
	}

	return nil
}

// String implements fmt.Stringer for debugging small instances.
func (m *Dense) String() string {
	var sb strings.Builder
	var i, j int
	for i = 0; i < m.n; i++ {
		sb.WriteByte('[')
		for j = 0; j < m.n; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.n+j])
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}

// Penalized is a read-only view of base with node penalties applied:
// At(i,j) = base.At(i,j) + pi[i] + pi[j] for i != j. The diagonal is passed
// through unchanged. Removing the penalty is simply dropping the view.
type Penalized struct {
	base Weights
	pi   []float64
}

// Penalize wraps base with penalties pi. pi is aliased, not copied: the
// subgradient loop updates it in place between 1-tree builds.
func Penalize(base Weights, pi []float64) (*Penalized, error) {
	if len(pi) != base.N() {
		return nil, errors.Wrapf(ErrPenaltyLength, "len(pi)=%d, n=%d", len(pi), base.N())
	}

	return &Penalized{base: base, pi: pi}, nil
}

// N returns the number of nodes of the underlying matrix.
func (p *Penalized) N() int { return p.base.N() }

// At returns the penalized weight.
func (p *Penalized) At(i, j int) float64 {
	if i == j {
		return p.base.At(i, i)
	}

	return p.base.At(i, j) + p.pi[i] + p.pi[j]
}

// Pi exposes the penalty vector backing the view.
func (p *Penalized) Pi() []float64 { return p.pi }
