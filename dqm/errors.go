package dqm

import "errors"

// Sentinel errors. Every message carries the "dqm: " prefix; callers match
// them with errors.Is.
var (
	// ErrBuilderFinalized is returned by any Builder mutation after Build.
	ErrBuilderFinalized = errors.New("dqm: builder already finalized")

	// ErrEmptyLabel indicates a variable label of zero length.
	ErrEmptyLabel = errors.New("dqm: variable label is empty")

	// ErrDuplicateVariable indicates a label that is already registered.
	ErrDuplicateVariable = errors.New("dqm: duplicate variable label")

	// ErrBadCaseCount indicates a variable with fewer than one case.
	ErrBadCaseCount = errors.New("dqm: variable must have at least one case")

	// ErrOutOfRange indicates a variable or case index outside valid bounds.
	ErrOutOfRange = errors.New("dqm: variable or case index out of range")

	// ErrSelfInteraction indicates a quadratic term between a variable and itself.
	ErrSelfInteraction = errors.New("dqm: quadratic term on a single variable")

	// ErrNaNInf indicates a bias that is NaN or ±Inf.
	ErrNaNInf = errors.New("dqm: NaN or Inf bias")

	// ErrAssignmentLength indicates an assignment whose length differs from the variable count.
	ErrAssignmentLength = errors.New("dqm: assignment length does not match variable count")

	// ErrUnknownVariable indicates a label lookup that found nothing.
	ErrUnknownVariable = errors.New("dqm: unknown variable label")

	// ErrBadWire indicates a JSON document that does not describe a valid model.
	ErrBadWire = errors.New("dqm: malformed model encoding")
)
