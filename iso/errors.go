package iso

import "errors"

var (
	// ErrNilGraph indicates a nil *core.Graph argument.
	ErrNilGraph = errors.New("iso: graph is nil")

	// ErrNilSampler indicates NewMatcher was given no sampler.
	ErrNilSampler = errors.New("iso: sampler is nil")

	// ErrSizeMismatch is returned by Build when the graphs differ in node count.
	ErrSizeMismatch = errors.New("iso: graphs have different node counts")

	// ErrBadPenalty indicates a non-positive or non-finite penalty weight,
	// or a negative tolerance.
	ErrBadPenalty = errors.New("iso: invalid penalty configuration")

	// ErrNoSamples is returned when the sampler succeeds with an empty set.
	ErrNoSamples = errors.New("iso: sampler returned no samples")

	// ErrMalformedSample indicates an assignment of the wrong length or with
	// out-of-range cases.
	ErrMalformedSample = errors.New("iso: malformed sample")

	// ErrInconsistentSample indicates a sample at ground energy whose mapping
	// is not an isomorphism, i.e. the sampler misreported its energy.
	ErrInconsistentSample = errors.New("iso: ground-energy sample is not an isomorphism")
)
