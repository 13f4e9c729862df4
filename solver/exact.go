// Package solver: exact branch-and-bound sampler.
//
// Exact enumerates assignments depth-first and keeps the NumReads
// lowest-energy ones.
//
//  1. Variables are branched in model order; builders that emit structurally
//     adjacent variables next to each other get tight bounds early.
//  2. Each unassigned (v, c) keeps a local field: its linear bias plus every
//     quadratic partner already fixed. Assigning (v, c) adds f(v, c) to the
//     partial energy and pushes its interactions into the partners' fields.
//  3. Lower bound (admissible):
//     LB = offset + partial + Σ_{v unassigned} min_c f(v, c) + N(depth)
//     where N(depth) sums min(0, most negative bias) over every pair of
//     unassigned variables.
//     Once NumReads incumbents exist, prune whenever LB ≥ worst − eps.
//  4. Cases are tried in ascending local field (index tiebreak) so good
//     incumbents appear early and tighten the bound.
//  5. Rare deadline/context checks (every 4096 node events).
package solver

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/emirpasic/gods/trees/binaryheap"

	"github.com/katalvlaran/circuiteq/dqm"
)

// Exact is a deterministic, exhaustive Sampler.
type Exact struct {
	opts Options
}

// NewExact returns an exact sampler configured by opts.
func NewExact(opts ...Option) (*Exact, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}

	return &Exact{opts: o}, nil
}

// Options returns the effective configuration.
func (x *Exact) Options() Options { return x.opts }

// Sample returns the NumReads lowest-energy assignments of m (fewer when the
// model has fewer assignments), best first. Interruption by TimeLimit or ctx
// yields an error wrapping ErrSearchAborted.
func (x *Exact) Sample(ctx context.Context, m *dqm.Model) (*SampleSet, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	e := newExactEngine(ctx, m, x.opts)
	e.search(0, 0)
	if e.aborted != nil {
		return nil, e.aborted
	}

	vals := e.best.Values()
	samples := make([]Sample, 0, len(vals))
	for _, v := range vals {
		samples = append(samples, v.(Sample))
	}

	return NewSampleSet(samples), nil
}

// exactEngine holds all search state of one Sample call.
type exactEngine struct {
	ctx   context.Context
	m     *dqm.Model
	n     int
	eps   float64
	keep  int
	base  float64 // model offset
	steps int

	useDeadline bool
	deadline    time.Time

	assign    []int
	field     [][]float64 // field[v][c], meaningful for unassigned v
	suffixNeg []float64   // suffixNeg[d]: negative pair slack among variables ≥ d
	caseOrder [][]int     // scratch per depth

	best    *binaryheap.Heap // max-heap on energy: Peek is the worst incumbent
	aborted error
}

func newExactEngine(ctx context.Context, m *dqm.Model, o Options) *exactEngine {
	n := m.NumVariables()
	e := &exactEngine{
		ctx:       ctx,
		m:         m,
		n:         n,
		eps:       o.Eps,
		keep:      o.NumReads,
		base:      m.Offset(),
		assign:    make([]int, n),
		field:     make([][]float64, n),
		caseOrder: make([][]int, n),
		best:      binaryheap.NewWith(worstFirst),
	}
	if o.TimeLimit > 0 {
		e.useDeadline = true
		e.deadline = time.Now().Add(o.TimeLimit)
	}
	for v := 0; v < n; v++ {
		k := m.NumCases(v)
		e.assign[v] = -1
		e.field[v] = make([]float64, k)
		e.caseOrder[v] = make([]int, k)
		for c := 0; c < k; c++ {
			e.field[v][c] = m.Linear(v, c)
		}
	}
	e.precomputeSlack()

	return e
}

// worstFirst orders samples so the heap root is the highest energy
// (lexicographically largest assignment among ties).
func worstFirst(a, b interface{}) int {
	sa, sb := a.(Sample), b.(Sample)
	switch {
	case sa.Energy > sb.Energy:
		return -1
	case sa.Energy < sb.Energy:
		return 1
	case lessAssignment(sb.Assignment, sa.Assignment):
		return -1
	case lessAssignment(sa.Assignment, sb.Assignment):
		return 1
	default:
		return 0
	}
}

// precomputeSlack fills suffixNeg from the most negative bias of every
// variable pair.
func (e *exactEngine) precomputeSlack() {
	pairMin := make(map[[2]int]float64)
	for _, t := range e.m.QuadraticTerms() {
		key := [2]int{t.U, t.V}
		if cur, ok := pairMin[key]; !ok || t.Bias < cur {
			pairMin[key] = t.Bias
		}
	}
	rowNeg := make([]float64, e.n)
	for key, bias := range pairMin {
		if bias < 0 {
			rowNeg[key[0]] += bias
		}
	}
	e.suffixNeg = make([]float64, e.n+1)
	for d := e.n - 1; d >= 0; d-- {
		e.suffixNeg[d] = e.suffixNeg[d+1] + rowNeg[d]
	}
}

// checkAbort performs a rare deadline/context test.
func (e *exactEngine) checkAbort() bool {
	if e.aborted != nil {
		return true
	}
	e.steps++
	if e.steps&4095 != 0 {
		return false
	}
	if err := e.ctx.Err(); err != nil {
		e.aborted = fmt.Errorf("%w: %v", ErrSearchAborted, err)
		return true
	}
	if e.useDeadline && time.Now().After(e.deadline) {
		e.aborted = fmt.Errorf("%w: time limit exceeded", ErrSearchAborted)
		return true
	}

	return false
}

// lowerBound is the admissible bound for the subtree rooted at depth.
func (e *exactEngine) lowerBound(depth int, partial float64) float64 {
	lb := e.base + partial + e.suffixNeg[depth]
	for v := depth; v < e.n; v++ {
		minF := math.Inf(1)
		for _, f := range e.field[v] {
			if f < minF {
				minF = f
			}
		}
		lb += minF
	}

	return lb
}

func (e *exactEngine) search(depth int, partial float64) {
	if e.checkAbort() {
		return
	}
	if depth == e.n {
		e.offer(e.base + partial)
		return
	}
	full := e.best.Size() >= e.keep
	var worst float64
	if full {
		top, _ := e.best.Peek()
		worst = top.(Sample).Energy
		if e.lowerBound(depth, partial) >= worst-e.eps {
			return
		}
	}

	v := depth
	f := e.field[v]
	order := e.caseOrder[v]
	for c := range order {
		order[c] = c
	}
	sort.SliceStable(order, func(i, j int) bool { return f[order[i]] < f[order[j]] })

	for _, c := range order {
		gain := f[c]
		e.set(v, c, +1)
		e.search(depth+1, partial+gain)
		e.set(v, c, -1)
		if e.aborted != nil {
			return
		}
	}
}

// set assigns (sign=+1) or retracts (sign=-1) case c of variable v and
// updates the partners' local fields accordingly.
func (e *exactEngine) set(v, c int, sign float64) {
	if sign > 0 {
		e.assign[v] = c
	} else {
		e.assign[v] = -1
	}
	for _, t := range e.m.Interactions(v, c) {
		e.field[t.Var][t.Case] += sign * t.Bias
	}
}

// offer records the current full assignment if it beats the worst incumbent.
func (e *exactEngine) offer(energy float64) {
	if e.best.Size() >= e.keep {
		top, _ := e.best.Peek()
		if energy >= top.(Sample).Energy-e.eps {
			return
		}
		e.best.Pop()
	}
	e.best.Push(Sample{
		Assignment:  append([]int(nil), e.assign...),
		Energy:      energy,
		Occurrences: 1,
	})
}
