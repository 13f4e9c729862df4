package iso

import (
	"fmt"

	"github.com/katalvlaran/circuiteq/core"
	"github.com/katalvlaran/circuiteq/dqm"
)

// Formulation is a built model together with the index tables needed to
// read its samples back.
type Formulation struct {
	// Model is the immutable energy function.
	Model *dqm.Model

	// Sources[v] is the G1 node behind variable v (BFS order).
	Sources []string

	// Targets[c] is the G2 node behind case c (sorted order).
	Targets []string

	// GroundEnergy is the energy of every isomorphism: offset − A·n.
	GroundEnergy float64
}

// Build returns the DQM whose ground states are exactly the isomorphisms
// g1 → g2. Sizes are compared before any term is created.
//
// Complexity: O(n³ + (|E1|+|E2|)·n²) terms.
func Build(g1, g2 *core.Graph, opts ...Option) (*Formulation, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	return build(g1, g2, o)
}

func build(g1, g2 *core.Graph, o Options) (*Formulation, error) {
	if g1 == nil || g2 == nil {
		return nil, ErrNilGraph
	}
	n := g1.VertexCount()
	if m := g2.VertexCount(); m != n {
		return nil, fmt.Errorf("%w: %d vs %d", ErrSizeMismatch, n, m)
	}

	sources := g1.BreadthFirstOrder()
	targets := g2.Vertices()
	srcIdx := indexOf(sources)
	tgtIdx := indexOf(targets)
	a, b := o.Uniqueness, o.Edge

	bld := dqm.NewBuilder()
	for _, id := range sources {
		if _, err := bld.AddVariable(id, n); err != nil {
			return nil, err
		}
	}

	// Uniqueness.
	for v := 0; v < n; v++ {
		for c := 0; c < n; c++ {
			if err := bld.AddLinear(v, c, -a); err != nil {
				return nil, err
			}
		}
	}
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			for t := 0; t < n; t++ {
				if err := bld.AddQuadratic(u, t, v, t, 2*a); err != nil {
					return nil, err
				}
			}
		}
	}

	// G1 edges landing on G2 non-edges.
	for _, e := range g1.Edges() {
		u, v := srcIdx[e.From], srcIdx[e.To]
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if g2.HasEdge(targets[i], targets[j]) {
					continue
				}
				if err := penalizePair(bld, u, v, i, j, b); err != nil {
					return nil, err
				}
			}
		}
	}

	// G2 edges pulled back onto G1 non-edges.
	for _, e := range g2.Edges() {
		p, q := tgtIdx[e.From], tgtIdx[e.To]
		for x := 0; x < n; x++ {
			for y := x + 1; y < n; y++ {
				if g1.HasEdge(sources[x], sources[y]) {
					continue
				}
				if err := penalizePair(bld, x, y, p, q, b); err != nil {
					return nil, err
				}
			}
		}
	}

	offset := 0.0
	if o.Offset == OffsetBalanced {
		offset = a * float64(n)
	}
	if err := bld.AddOffset(offset); err != nil {
		return nil, err
	}
	model, err := bld.Build()
	if err != nil {
		return nil, err
	}

	return &Formulation{
		Model:        model,
		Sources:      sources,
		Targets:      targets,
		GroundEnergy: offset - a*float64(n),
	}, nil
}

// penalizePair adds w on (u,i)·(v,j) and (u,j)·(v,i).
func penalizePair(bld *dqm.Builder, u, v, i, j int, w float64) error {
	if err := bld.AddQuadratic(u, i, v, j, w); err != nil {
		return err
	}

	return bld.AddQuadratic(u, j, v, i, w)
}

func indexOf(ids []string) map[string]int {
	idx := make(map[string]int, len(ids))
	for i, id := range ids {
		idx[id] = i
	}

	return idx
}

// Mapping translates an assignment into G1 ID → G2 ID.
// It fails with ErrMalformedSample on a wrong length or an out-of-range case.
func (f *Formulation) Mapping(assignment []int) (map[string]string, error) {
	if len(assignment) != len(f.Sources) {
		return nil, fmt.Errorf("%w: %d cases for %d variables", ErrMalformedSample, len(assignment), len(f.Sources))
	}
	mapping := make(map[string]string, len(assignment))
	for v, c := range assignment {
		if c < 0 || c >= len(f.Targets) {
			return nil, fmt.Errorf("%w: variable %q has case %d of %d", ErrMalformedSample, f.Sources[v], c, len(f.Targets))
		}
		mapping[f.Sources[v]] = f.Targets[c]
	}

	return mapping, nil
}
