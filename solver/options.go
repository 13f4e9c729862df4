package solver

import (
	"fmt"
	"time"
)

const (
	// DefaultNumReads is the number of samples kept (Exact) or restarts run (Anneal).
	DefaultNumReads = 16

	// DefaultSweeps is the number of annealing sweeps per read.
	DefaultSweeps = 1000

	// DefaultEps is the energy tolerance used for pruning and improvement tests.
	DefaultEps = 1e-9
)

// Options configures both samplers. Fields a sampler does not use are ignored.
type Options struct {
	// NumReads: Exact keeps the NumReads lowest energies; Anneal runs NumReads restarts.
	NumReads int

	// TimeLimit bounds Exact; 0 means no limit beyond the context.
	TimeLimit time.Duration

	// Eps is the energy tolerance; must be ≥ 0.
	Eps float64

	// Sweeps is the number of annealing sweeps per read.
	Sweeps int

	// BetaStart and BetaEnd set the inverse-temperature schedule.
	// Both zero ⇒ derived from the model's biases.
	BetaStart float64
	BetaEnd   float64

	// Seed drives Anneal; 0 selects a fixed default stream.
	Seed int64

	// Workers caps concurrent reads in Anneal; 0 ⇒ NumReads.
	Workers int

	// internal error recorded during option parsing
	err error
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the defaults used by NewExact and NewAnneal.
func DefaultOptions() Options {
	return Options{
		NumReads: DefaultNumReads,
		Eps:      DefaultEps,
		Sweeps:   DefaultSweeps,
	}
}

// WithNumReads sets NumReads (must be > 0).
func WithNumReads(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: NumReads must be positive (%d)", ErrBadOption, n)
			return
		}
		o.NumReads = n
	}
}

// WithTimeLimit bounds the exact search (d ≥ 0; 0 disables the limit).
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: TimeLimit cannot be negative (%s)", ErrBadOption, d)
			return
		}
		o.TimeLimit = d
	}
}

// WithEps sets the energy tolerance (must be ≥ 0).
func WithEps(eps float64) Option {
	return func(o *Options) {
		if eps < 0 {
			o.err = fmt.Errorf("%w: Eps cannot be negative (%g)", ErrBadOption, eps)
			return
		}
		o.Eps = eps
	}
}

// WithSweeps sets the number of annealing sweeps per read (must be > 0).
func WithSweeps(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: Sweeps must be positive (%d)", ErrBadOption, n)
			return
		}
		o.Sweeps = n
	}
}

// WithBetaRange fixes the annealing schedule; both ends must be positive.
func WithBetaRange(start, end float64) Option {
	return func(o *Options) {
		if start <= 0 || end <= 0 {
			o.err = fmt.Errorf("%w: beta range must be positive (%g, %g)", ErrBadOption, start, end)
			return
		}
		o.BetaStart, o.BetaEnd = start, end
	}
}

// WithSeed sets the annealing seed.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithWorkers caps concurrent reads (n ≥ 0; 0 ⇒ one goroutine per read).
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: Workers cannot be negative (%d)", ErrBadOption, n)
			return
		}
		o.Workers = n
	}
}

// buildOptions applies opts over the defaults and reports the first violation.
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
