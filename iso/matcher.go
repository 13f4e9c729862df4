package iso

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/circuiteq/core"
	"github.com/katalvlaran/circuiteq/solver"
)

// Result is the outcome of one query.
type Result struct {
	// Mapping sends every G1 node ID to a G2 node ID; nil unless Found.
	Mapping map[string]string

	// Found reports whether an acceptable mapping was produced.
	Found bool

	// BestEnergy is the energy of the first sample (0 when no model was built).
	BestEnergy float64

	// GroundEnergy is the acceptance threshold of the model.
	GroundEnergy float64

	// Scanned counts the samples inspected.
	Scanned int
}

// Matcher interprets the samples of a pluggable Sampler.
// It is safe for concurrent use if its Sampler is.
type Matcher struct {
	sampler solver.Sampler
	opts    Options
}

// NewMatcher binds a sampler to a formulation configuration.
func NewMatcher(s solver.Sampler, opts ...Option) (*Matcher, error) {
	if s == nil {
		return nil, ErrNilSampler
	}
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	return &Matcher{sampler: s, opts: o}, nil
}

// Options returns the formulation configuration.
func (m *Matcher) Options() Options { return m.opts }

// FindIsomorphism returns a mapping g1 → g2 preserving adjacency in both
// directions, or Found=false when the best sample proves none exists.
// Graphs of different sizes are rejected without calling the sampler.
func (m *Matcher) FindIsomorphism(ctx context.Context, g1, g2 *core.Graph) (Result, error) {
	return m.find(ctx, g1, g2, false)
}

// FindEquivalence is FindIsomorphism restricted to mappings that keep every
// node's Category. Ground-energy samples are tried in sampler order; the scan
// stops at the first sample above ground.
func (m *Matcher) FindEquivalence(ctx context.Context, c1, c2 *core.Graph) (Result, error) {
	return m.find(ctx, c1, c2, true)
}

func (m *Matcher) find(ctx context.Context, g1, g2 *core.Graph, labeled bool) (Result, error) {
	if g1 == nil || g2 == nil {
		return Result{}, ErrNilGraph
	}
	if g1.VertexCount() != g2.VertexCount() {
		return Result{}, nil
	}
	f, err := build(g1, g2, m.opts)
	if err != nil {
		return Result{}, err
	}
	set, err := m.sampler.Sample(ctx, f.Model)
	if err != nil {
		return Result{}, err
	}
	best, ok := set.First()
	if !ok {
		return Result{}, ErrNoSamples
	}

	res := Result{BestEnergy: best.Energy, GroundEnergy: f.GroundEnergy}
	for i := 0; i < set.Len(); i++ {
		s := set.At(i)
		res.Scanned++
		if !m.atGround(s.Energy, f.GroundEnergy) {
			if s.Energy < f.GroundEnergy {
				return res, fmt.Errorf("%w: energy %g below ground %g", ErrInconsistentSample, s.Energy, f.GroundEnergy)
			}
			break
		}
		mapping, err := f.Mapping(s.Assignment)
		if err != nil {
			return res, err
		}
		if !preservesAdjacency(g1, g2, mapping) {
			return res, fmt.Errorf("%w: sample %d at energy %g", ErrInconsistentSample, i, s.Energy)
		}
		if labeled && !preservesCategory(g1, g2, mapping) {
			continue
		}
		res.Mapping = mapping
		res.Found = true
		return res, nil
	}
	return res, nil
}

func (m *Matcher) atGround(energy, ground float64) bool {
	return math.Abs(energy-ground) < m.opts.Tolerance
}

// preservesAdjacency reports whether mapping is a bijection V1 → V2 under
// which edges and non-edges correspond.
func preservesAdjacency(g1, g2 *core.Graph, mapping map[string]string) bool {
	if len(mapping) != g2.VertexCount() {
		return false
	}
	inverse := make(map[string]string, len(mapping))
	for src, dst := range mapping {
		if !g2.HasVertex(dst) {
			return false
		}
		if _, dup := inverse[dst]; dup {
			return false
		}
		inverse[dst] = src
	}
	for _, e := range g1.Edges() {
		if !g2.HasEdge(mapping[e.From], mapping[e.To]) {
			return false
		}
	}
	for _, e := range g2.Edges() {
		if !g1.HasEdge(inverse[e.From], inverse[e.To]) {
			return false
		}
	}

	return true
}

func preservesCategory(g1, g2 *core.Graph, mapping map[string]string) bool {
	for src, dst := range mapping {
		c1, err1 := g1.Category(src)
		c2, err2 := g2.Category(dst)
		if err1 != nil || err2 != nil || c1 != c2 {
			return false
		}
	}

	return true
}
