package dqm

import (
	"math"
	"sort"
)

// caseKey addresses one quadratic entry; u < v always holds.
type caseKey struct {
	u, cu, v, cv int
}

// newCaseKey orders the two (variable, case) pairs so that u < v.
func newCaseKey(u, cu, v, cv int) caseKey {
	if v < u {
		u, cu, v, cv = v, cv, u, cu
	}

	return caseKey{u: u, cu: cu, v: v, cv: cv}
}

// Builder accumulates the terms of a discrete quadratic model.
//
// A Builder is not safe for concurrent use; it is owned by whoever is
// assembling the model until Build hands out the immutable result.
type Builder struct {
	labels []string
	index  map[string]int
	cases  []int
	linear [][]float64
	quad   map[caseKey]float64
	offset float64
	built  bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		index: make(map[string]int),
		quad:  make(map[caseKey]float64),
	}
}

// AddVariable registers a variable with the given number of cases and
// returns its index. Indices are assigned densely in registration order.
func (b *Builder) AddVariable(label string, cases int) (int, error) {
	if b.built {
		return 0, ErrBuilderFinalized
	}
	if label == "" {
		return 0, ErrEmptyLabel
	}
	if cases < 1 {
		return 0, ErrBadCaseCount
	}
	if _, dup := b.index[label]; dup {
		return 0, ErrDuplicateVariable
	}

	v := len(b.labels)
	b.labels = append(b.labels, label)
	b.index[label] = v
	b.cases = append(b.cases, cases)
	b.linear = append(b.linear, make([]float64, cases))

	return v, nil
}

// NumVariables returns the number of registered variables.
func (b *Builder) NumVariables() int { return len(b.labels) }

// AddLinear adds bias to the linear term of (v, c).
func (b *Builder) AddLinear(v, c int, bias float64) error {
	if b.built {
		return ErrBuilderFinalized
	}
	if err := b.checkCase(v, c); err != nil {
		return err
	}
	if !finite(bias) {
		return ErrNaNInf
	}
	b.linear[v][c] += bias

	return nil
}

// AddQuadratic adds bias to the interaction between (u, cu) and (v, cv).
// The term is symmetric: AddQuadratic(u, cu, v, cv, x) and
// AddQuadratic(v, cv, u, cu, x) touch the same entry.
func (b *Builder) AddQuadratic(u, cu, v, cv int, bias float64) error {
	if b.built {
		return ErrBuilderFinalized
	}
	if u == v {
		return ErrSelfInteraction
	}
	if err := b.checkCase(u, cu); err != nil {
		return err
	}
	if err := b.checkCase(v, cv); err != nil {
		return err
	}
	if !finite(bias) {
		return ErrNaNInf
	}
	b.quad[newCaseKey(u, cu, v, cv)] += bias

	return nil
}

// Quadratic returns the bias accumulated so far between (u, cu) and (v, cv).
func (b *Builder) Quadratic(u, cu, v, cv int) float64 {
	return b.quad[newCaseKey(u, cu, v, cv)]
}

// AddOffset adds delta to the constant energy offset.
func (b *Builder) AddOffset(delta float64) error {
	if b.built {
		return ErrBuilderFinalized
	}
	if !finite(delta) {
		return ErrNaNInf
	}
	b.offset += delta

	return nil
}

// Build finalizes the model. Zero-valued quadratic entries are dropped.
// After Build every mutating method returns ErrBuilderFinalized.
func (b *Builder) Build() (*Model, error) {
	if b.built {
		return nil, ErrBuilderFinalized
	}
	b.built = true

	m := &Model{
		labels: b.labels,
		index:  b.index,
		cases:  b.cases,
		linear: b.linear,
		quad:   make(map[caseKey]float64, len(b.quad)),
		offset: b.offset,
		adj:    make([][][]Interaction, len(b.labels)),
	}
	for v, n := range b.cases {
		m.adj[v] = make([][]Interaction, n)
	}
	for k, bias := range b.quad {
		if bias == 0 {
			continue
		}
		m.quad[k] = bias
		m.adj[k.u][k.cu] = append(m.adj[k.u][k.cu], Interaction{Var: k.v, Case: k.cv, Bias: bias})
		m.adj[k.v][k.cv] = append(m.adj[k.v][k.cv], Interaction{Var: k.u, Case: k.cu, Bias: bias})
	}
	// Map iteration is random; sort to keep float accumulation order stable.
	for v := range m.adj {
		for c := range m.adj[v] {
			terms := m.adj[v][c]
			sort.Slice(terms, func(i, j int) bool {
				if terms[i].Var != terms[j].Var {
					return terms[i].Var < terms[j].Var
				}
				return terms[i].Case < terms[j].Case
			})
		}
	}
	// Drop references so the Builder can no longer reach the model's storage.
	b.labels, b.index, b.cases, b.linear, b.quad = nil, nil, nil, nil, nil

	return m, nil
}

func (b *Builder) checkCase(v, c int) error {
	if v < 0 || v >= len(b.labels) || c < 0 || c >= b.cases[v] {
		return ErrOutOfRange
	}

	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
