package tabu

import "github.com/pkg/errors"

var (
	// ErrConfig is returned for an infeasible search configuration.
	ErrConfig = errors.New("tabu: invalid configuration")

	// ErrNoResult is returned by Parallel.Run when every worker failed.
	ErrNoResult = errors.New("tabu: no worker produced a result")

	// ErrWorkerPanic wraps a recovered worker panic.
	ErrWorkerPanic = errors.New("tabu: worker panicked")
)
