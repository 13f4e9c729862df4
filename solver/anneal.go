package solver

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/circuiteq/dqm"
)

// sweepsPerCheck is how often a read polls its context.
const sweepsPerCheck = 64

// Anneal is a simulated-annealing Sampler.
type Anneal struct {
	opts Options
}

// NewAnneal returns an annealing sampler configured by opts.
func NewAnneal(opts ...Option) (*Anneal, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	return &Anneal{opts: o}, nil
}

// Options returns the effective configuration.
func (a *Anneal) Options() Options { return a.opts }

// Sample runs NumReads independent reads and returns their final states,
// merged and ordered by energy. Cancelling ctx aborts every read and returns
// an error wrapping ErrSearchAborted.
func (a *Anneal) Sample(ctx context.Context, m *dqm.Model) (*SampleSet, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	reads := a.opts.NumReads
	workers := a.opts.Workers
	if workers == 0 || workers > reads {
		workers = reads
	}
	betaStart, betaEnd := a.opts.BetaStart, a.opts.BetaEnd
	if betaStart == 0 && betaEnd == 0 {
		betaStart, betaEnd = betaRange(m)
	}
	schedule := geometric(betaStart, betaEnd, a.opts.Sweeps)

	// Streams are derived on this goroutine so results do not depend on
	// worker scheduling.
	base := rngFromSeed(a.opts.Seed)
	rngs := make([]*rand.Rand, reads)
	for i := range rngs {
		rngs[i] = deriveRNG(base, uint64(i))
	}

	samples := make([]Sample, reads)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < reads; i++ {
		i := i
		g.Go(func() error {
			s, err := anneal(gctx, m, schedule, rngs[i])
			if err != nil {
				return err
			}
			samples[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchAborted, err)
	}

	return NewSampleSet(samples), nil
}

// anneal performs one read: random start, Metropolis sweeps along schedule,
// then greedy descent to the nearest local minimum.
func anneal(ctx context.Context, m *dqm.Model, schedule []float64, rng *rand.Rand) (Sample, error) {
	n := m.NumVariables()
	state := make([]int, n)
	for v := range state {
		state[v] = rng.Intn(m.NumCases(v))
	}

	for sweep, beta := range schedule {
		if sweep%sweepsPerCheck == 0 {
			if err := ctx.Err(); err != nil {
				return Sample{}, err
			}
		}
		for v := 0; v < n; v++ {
			k := m.NumCases(v)
			if k < 2 {
				continue
			}
			cur := state[v]
			next := rng.Intn(k - 1)
			if next >= cur {
				next++
			}
			delta := m.LocalField(v, next, state) - m.LocalField(v, cur, state)
			if delta <= 0 || rng.Float64() < math.Exp(-beta*delta) {
				state[v] = next
			}
		}
	}
	descend(m, state)

	energy, err := m.Energy(state)
	if err != nil {
		return Sample{}, err
	}

	return Sample{Assignment: state, Energy: energy, Occurrences: 1}, nil
}

// descend moves each variable to its best case until no move lowers the energy.
func descend(m *dqm.Model, state []int) {
	for improved := true; improved; {
		improved = false
		for v := range state {
			cur := state[v]
			bestC, bestF := cur, m.LocalField(v, cur, state)
			for c := 0; c < m.NumCases(v); c++ {
				if f := m.LocalField(v, c, state); f < bestF-DefaultEps {
					bestC, bestF = c, f
				}
			}
			if bestC != cur {
				state[v] = bestC
				improved = true
			}
		}
	}
}

// betaRange derives a schedule from the model's biases: the hot end accepts
// the largest possible uphill move with probability 1/2, the cold end rejects
// the smallest one with probability 99/100.
func betaRange(m *dqm.Model) (float64, float64) {
	maxField, minBias := 0.0, math.Inf(1)
	note := func(b float64) {
		if b = math.Abs(b); b > 0 && b < minBias {
			minBias = b
		}
	}
	for v := 0; v < m.NumVariables(); v++ {
		for c := 0; c < m.NumCases(v); c++ {
			lin := m.Linear(v, c)
			note(lin)
			f := math.Abs(lin)
			for _, t := range m.Interactions(v, c) {
				note(t.Bias)
				f += math.Abs(t.Bias)
			}
			if f > maxField {
				maxField = f
			}
		}
	}
	if maxField == 0 {
		return 1, 1
	}

	return math.Ln2 / maxField, math.Log(100) / minBias
}

// geometric returns n inverse temperatures from start to end.
func geometric(start, end float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = end
		return out
	}
	ratio := math.Pow(end/start, 1/float64(n-1))
	beta := start
	for i := range out {
		out[i] = beta
		beta *= ratio
	}

	return out
}
