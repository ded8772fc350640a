package kopt

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/lkh/candidate"
)

var (
	// ErrCandidateSize is returned at setup when the candidate-list size is
	// infeasible for the instance. It is the same sentinel as
	// candidate.ErrCandidateSize.
	ErrCandidateSize = candidate.ErrCandidateSize

	// ErrDrift signals that the tracked tour length diverged from the
	// recomputed one by more than DriftTolerance. It is an invariant
	// violation and is never retried.
	ErrDrift = errors.New("kopt: tracked length drifted from tour length")

	// ErrOptions reports an infeasible option set.
	ErrOptions = errors.New("kopt: invalid options")

	// ErrTourSize reports a tour whose length differs from the matrix size.
	ErrTourSize = errors.New("kopt: tour size does not match matrix")
)
