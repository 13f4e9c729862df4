package iso

import (
	"fmt"
	"math"
)

// Offset selects the constant term of the model.
type Offset uint8

const (
	// OffsetBalanced adds A·n so that an isomorphism scores exactly 0.
	OffsetBalanced Offset = iota
	// OffsetZero leaves the constant at 0; an isomorphism scores −A·n.
	OffsetZero
)

// String implements fmt.Stringer.
func (o Offset) String() string {
	switch o {
	case OffsetBalanced:
		return "balanced"
	case OffsetZero:
		return "zero"
	default:
		return "unknown"
	}
}

const (
	// DefaultUniquenessPenalty is the default weight A.
	DefaultUniquenessPenalty = 1.0
	// DefaultEdgePenalty is the default weight B.
	DefaultEdgePenalty = 2.0
	// DefaultTolerance is the default ground-energy tolerance.
	DefaultTolerance = 1e-6
)

// Options holds the formulation parameters shared by Build and Matcher.
type Options struct {
	Uniqueness float64 // A > 0
	Edge       float64 // B > 0
	Offset     Offset
	Tolerance  float64 // ≥ 0

	err error
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns A = 1, B = 2, OffsetBalanced, tolerance 1e-6.
func DefaultOptions() Options {
	return Options{
		Uniqueness: DefaultUniquenessPenalty,
		Edge:       DefaultEdgePenalty,
		Offset:     OffsetBalanced,
		Tolerance:  DefaultTolerance,
	}
}

// WithUniquenessPenalty sets A.
func WithUniquenessPenalty(a float64) Option {
	return func(o *Options) {
		if !(a > 0) || math.IsInf(a, 0) {
			o.err = fmt.Errorf("%w: uniqueness penalty %g", ErrBadPenalty, a)
			return
		}
		o.Uniqueness = a
	}
}

// WithEdgePenalty sets B.
func WithEdgePenalty(b float64) Option {
	return func(o *Options) {
		if !(b > 0) || math.IsInf(b, 0) {
			o.err = fmt.Errorf("%w: edge penalty %g", ErrBadPenalty, b)
			return
		}
		o.Edge = b
	}
}

// WithOffset selects the offset convention.
func WithOffset(c Offset) Option {
	return func(o *Options) {
		if c != OffsetBalanced && c != OffsetZero {
			o.err = fmt.Errorf("%w: offset convention %d", ErrBadPenalty, c)
			return
		}
		o.Offset = c
	}
}

// WithTolerance sets the ground-energy tolerance.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if !(tol >= 0) || math.IsInf(tol, 0) {
			o.err = fmt.Errorf("%w: tolerance %g", ErrBadPenalty, tol)
			return
		}
		o.Tolerance = tol
	}
}

func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
		if o.err != nil {
			return Options{}, o.err
		}
	}

	return o, nil
}
