package solver

import "errors"

var (
	// ErrNilModel is returned when Sample receives a nil model.
	ErrNilModel = errors.New("solver: model is nil")

	// ErrBadOption indicates an invalid option value (non-positive reads, sweeps, …).
	ErrBadOption = errors.New("solver: invalid option")

	// ErrSearchAborted is returned when the exact search stops before proving
	// its result (time limit or context cancellation). Partial results are
	// never returned as if they were exact.
	ErrSearchAborted = errors.New("solver: search aborted before completion")
)
