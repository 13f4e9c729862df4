package dqm

import "sort"

// Interaction is one quadratic partner of a (variable, case) pair.
type Interaction struct {
	Var  int
	Case int
	Bias float64
}

// QuadraticTerm is one non-zero quadratic entry with U < V.
type QuadraticTerm struct {
	U, CaseU int
	V, CaseV int
	Bias     float64
}

// Model is an immutable discrete quadratic model produced by Builder.Build.
// It is safe for concurrent readers.
type Model struct {
	labels []string
	index  map[string]int
	cases  []int
	linear [][]float64
	quad   map[caseKey]float64
	offset float64

	// adj[v][c] lists the quadratic partners of (v, c), sorted by (Var, Case).
	adj [][][]Interaction
}

// NumVariables returns the number of variables.
func (m *Model) NumVariables() int { return len(m.labels) }

// NumCases returns the case count of variable v (0 when v is out of range).
func (m *Model) NumCases(v int) int {
	if v < 0 || v >= len(m.cases) {
		return 0
	}

	return m.cases[v]
}

// Label returns the label of variable v ("" when v is out of range).
func (m *Model) Label(v int) string {
	if v < 0 || v >= len(m.labels) {
		return ""
	}

	return m.labels[v]
}

// Index returns the variable index registered under label.
func (m *Model) Index(label string) (int, error) {
	v, ok := m.index[label]
	if !ok {
		return 0, ErrUnknownVariable
	}

	return v, nil
}

// Offset returns the constant energy offset.
func (m *Model) Offset() float64 { return m.offset }

// Linear returns the linear bias of (v, c), or 0 when out of range.
func (m *Model) Linear(v, c int) float64 {
	if m.NumCases(v) <= c || c < 0 {
		return 0
	}

	return m.linear[v][c]
}

// Quadratic returns the bias between (u, cu) and (v, cv); symmetric.
func (m *Model) Quadratic(u, cu, v, cv int) float64 {
	return m.quad[newCaseKey(u, cu, v, cv)]
}

// NumInteractions returns the number of non-zero quadratic entries.
func (m *Model) NumInteractions() int { return len(m.quad) }

// Interactions returns the quadratic partners of (v, c).
// The returned slice is shared with the model and must not be modified.
func (m *Model) Interactions(v, c int) []Interaction {
	if m.NumCases(v) <= c || c < 0 {
		return nil
	}

	return m.adj[v][c]
}

// QuadraticTerms returns every non-zero quadratic entry sorted by (U, CaseU, V, CaseV).
func (m *Model) QuadraticTerms() []QuadraticTerm {
	out := make([]QuadraticTerm, 0, len(m.quad))
	for k, bias := range m.quad {
		out = append(out, QuadraticTerm{U: k.u, CaseU: k.cu, V: k.v, CaseV: k.cv, Bias: bias})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.U != b.U:
			return a.U < b.U
		case a.CaseU != b.CaseU:
			return a.CaseU < b.CaseU
		case a.V != b.V:
			return a.V < b.V
		default:
			return a.CaseV < b.CaseV
		}
	})

	return out
}

// Validate checks that assignment picks one in-range case for every variable.
func (m *Model) Validate(assignment []int) error {
	if len(assignment) != len(m.labels) {
		return ErrAssignmentLength
	}
	for v, c := range assignment {
		if c < 0 || c >= m.cases[v] {
			return ErrOutOfRange
		}
	}

	return nil
}

// Energy returns offset + linear + quadratic contributions of assignment.
//
// Complexity: O(V + Σ deg(v, a_v)).
func (m *Model) Energy(assignment []int) (float64, error) {
	if err := m.Validate(assignment); err != nil {
		return 0, err
	}
	e := m.offset
	for v, c := range assignment {
		e += m.linear[v][c]
		for _, t := range m.adj[v][c] {
			// Count each pair once, from its lower-index end.
			if t.Var > v && assignment[t.Var] == t.Case {
				e += t.Bias
			}
		}
	}

	return e, nil
}

// LocalField returns the energy contributed by choosing case c for variable
// v, given the cases every other variable holds in assignment: the linear
// bias plus all quadratic partners that are currently selected.
// assignment must be valid for m; assignment[v] itself is ignored.
func (m *Model) LocalField(v, c int, assignment []int) float64 {
	f := m.linear[v][c]
	for _, t := range m.adj[v][c] {
		if assignment[t.Var] == t.Case {
			f += t.Bias
		}
	}

	return f
}
