// Package matrix: sentinel error set.
// Every message is prefixed with "matrix: ..." for consistency and easy
// grepping across logs. Callers match with errors.Is; constructors wrap the
// sentinel with the offending coordinates.

package matrix

import "github.com/pkg/errors"

var (
	// ErrDimension is returned when a matrix would have fewer than one row,
	// or when rows of a [][]float64 input have different lengths.
	ErrDimension = errors.New("matrix: invalid dimensions")

	// ErrAsymmetric signals w[i][j] != w[j][i] beyond SymTol.
	ErrAsymmetric = errors.New("matrix: matrix is not symmetric")

	// ErrNonZeroDiagonal signals a diagonal entry farther than SymTol from zero.
	ErrNonZeroDiagonal = errors.New("matrix: diagonal not zero")

	// ErrNegativeWeight signals a negative off-diagonal weight.
	ErrNegativeWeight = errors.New("matrix: negative weight")

	// ErrNaN signals a NaN or ±Inf entry; the search requires a complete metric.
	ErrNaN = errors.New("matrix: NaN or Inf encountered")

	// ErrPenaltyLength signals a penalty vector whose length differs from N().
	ErrPenaltyLength = errors.New("matrix: penalty vector length mismatch")
)
