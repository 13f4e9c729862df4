package dqm_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/circuiteq/dqm"
)

// ModelSuite covers Builder validation, model queries and energy evaluation.
type ModelSuite struct {
	suite.Suite
}

// twoByTwo builds x∈{0,1,2}, y∈{0,1} with a handful of terms.
func twoByTwo(t require.TestingT) *dqm.Model {
	b := dqm.NewBuilder()
	x, err := b.AddVariable("x", 3)
	require.NoError(t, err)
	y, err := b.AddVariable("y", 2)
	require.NoError(t, err)
	require.NoError(t, b.AddLinear(x, 0, -1))
	require.NoError(t, b.AddLinear(x, 2, 0.5))
	require.NoError(t, b.AddLinear(y, 1, 2))
	require.NoError(t, b.AddQuadratic(x, 0, y, 1, 3))
	require.NoError(t, b.AddQuadratic(y, 0, x, 2, -4))
	require.NoError(t, b.AddOffset(10))
	m, err := b.Build()
	require.NoError(t, err)

	return m
}

func (s *ModelSuite) TestBuilderValidation() {
	b := dqm.NewBuilder()
	_, err := b.AddVariable("", 2)
	s.Require().ErrorIs(err, dqm.ErrEmptyLabel)
	_, err = b.AddVariable("a", 0)
	s.Require().ErrorIs(err, dqm.ErrBadCaseCount)

	a, err := b.AddVariable("a", 2)
	s.Require().NoError(err)
	s.Require().Equal(0, a)
	_, err = b.AddVariable("a", 2)
	s.Require().ErrorIs(err, dqm.ErrDuplicateVariable)
	c, err := b.AddVariable("c", 1)
	s.Require().NoError(err)
	s.Require().Equal(1, c)
	s.Require().Equal(2, b.NumVariables())

	s.Require().ErrorIs(b.AddLinear(a, 2, 1), dqm.ErrOutOfRange)
	s.Require().ErrorIs(b.AddLinear(5, 0, 1), dqm.ErrOutOfRange)
	s.Require().ErrorIs(b.AddLinear(a, 0, math.NaN()), dqm.ErrNaNInf)
	s.Require().ErrorIs(b.AddQuadratic(a, 0, a, 1, 1), dqm.ErrSelfInteraction)
	s.Require().ErrorIs(b.AddQuadratic(a, 0, c, 1, 1), dqm.ErrOutOfRange)
	s.Require().ErrorIs(b.AddQuadratic(a, 0, c, 0, math.Inf(1)), dqm.ErrNaNInf)
	s.Require().ErrorIs(b.AddOffset(math.Inf(-1)), dqm.ErrNaNInf)
}

func (s *ModelSuite) TestBuilderFinalized() {
	b := dqm.NewBuilder()
	v, err := b.AddVariable("v", 2)
	s.Require().NoError(err)
	_, err = b.Build()
	s.Require().NoError(err)

	_, err = b.AddVariable("w", 2)
	s.Require().ErrorIs(err, dqm.ErrBuilderFinalized)
	s.Require().ErrorIs(b.AddLinear(v, 0, 1), dqm.ErrBuilderFinalized)
	s.Require().ErrorIs(b.AddOffset(1), dqm.ErrBuilderFinalized)
	_, err = b.Build()
	s.Require().ErrorIs(err, dqm.ErrBuilderFinalized)
}

func (s *ModelSuite) TestQuadraticIsSymmetricAndAdditive() {
	b := dqm.NewBuilder()
	u, _ := b.AddVariable("u", 2)
	v, _ := b.AddVariable("v", 2)
	s.Require().NoError(b.AddQuadratic(u, 1, v, 0, 1.5))
	s.Require().NoError(b.AddQuadratic(v, 0, u, 1, 0.5))
	s.Require().Equal(2.0, b.Quadratic(v, 0, u, 1))

	// Entries that cancel out are dropped at Build.
	s.Require().NoError(b.AddQuadratic(u, 0, v, 1, 1))
	s.Require().NoError(b.AddQuadratic(u, 0, v, 1, -1))

	m, err := b.Build()
	s.Require().NoError(err)
	s.Require().Equal(2.0, m.Quadratic(u, 1, v, 0))
	s.Require().Equal(2.0, m.Quadratic(v, 0, u, 1))
	s.Require().Equal(1, m.NumInteractions())
	s.Require().Empty(m.Interactions(u, 0))
	s.Require().Equal([]dqm.Interaction{{Var: v, Case: 0, Bias: 2}}, m.Interactions(u, 1))
	s.Require().Equal([]dqm.Interaction{{Var: u, Case: 1, Bias: 2}}, m.Interactions(v, 0))
}

func (s *ModelSuite) TestQueries() {
	m := twoByTwo(s.T())
	s.Require().Equal(2, m.NumVariables())
	s.Require().Equal(3, m.NumCases(0))
	s.Require().Equal(2, m.NumCases(1))
	s.Require().Equal(0, m.NumCases(7))
	s.Require().Equal("y", m.Label(1))
	s.Require().Equal("", m.Label(-1))
	idx, err := m.Index("y")
	s.Require().NoError(err)
	s.Require().Equal(1, idx)
	_, err = m.Index("nope")
	s.Require().ErrorIs(err, dqm.ErrUnknownVariable)
	s.Require().Equal(10.0, m.Offset())
	s.Require().Equal(-1.0, m.Linear(0, 0))
	s.Require().Equal(0.0, m.Linear(0, 9))
	s.Require().Equal([]dqm.QuadraticTerm{
		{U: 0, CaseU: 0, V: 1, CaseV: 1, Bias: 3},
		{U: 0, CaseU: 2, V: 1, CaseV: 0, Bias: -4},
	}, m.QuadraticTerms())
}

func (s *ModelSuite) TestEnergy() {
	m := twoByTwo(s.T())
	cases := []struct {
		assign []int
		want   float64
	}{
		{[]int{0, 0}, 10 - 1},
		{[]int{0, 1}, 10 - 1 + 2 + 3},
		{[]int{1, 0}, 10},
		{[]int{2, 0}, 10 + 0.5 - 4},
		{[]int{2, 1}, 10 + 0.5 + 2},
	}
	for _, tc := range cases {
		e, err := m.Energy(tc.assign)
		s.Require().NoError(err)
		s.Require().InDelta(tc.want, e, 1e-12, "assignment %v", tc.assign)
	}

	_, err := m.Energy([]int{0})
	s.Require().ErrorIs(err, dqm.ErrAssignmentLength)
	_, err = m.Energy([]int{3, 0})
	s.Require().ErrorIs(err, dqm.ErrOutOfRange)
}

func (s *ModelSuite) TestLocalFieldMatchesEnergyDelta() {
	m := twoByTwo(s.T())
	assign := []int{0, 0}
	base, err := m.Energy(assign)
	s.Require().NoError(err)
	for c := 0; c < m.NumCases(0); c++ {
		next := []int{c, 0}
		e, err := m.Energy(next)
		s.Require().NoError(err)
		delta := m.LocalField(0, c, assign) - m.LocalField(0, assign[0], assign)
		s.Require().InDelta(e-base, delta, 1e-12)
	}
}

func (s *ModelSuite) TestJSONRoundTrip() {
	m := twoByTwo(s.T())
	data, err := json.Marshal(m)
	s.Require().NoError(err)

	var back dqm.Model
	s.Require().NoError(json.Unmarshal(data, &back))
	s.Require().Equal(m.NumVariables(), back.NumVariables())
	s.Require().Equal(m.QuadraticTerms(), back.QuadraticTerms())
	for _, a := range [][]int{{0, 0}, {0, 1}, {2, 0}, {2, 1}} {
		want, _ := m.Energy(a)
		got, err := back.Energy(a)
		s.Require().NoError(err)
		s.Require().Equal(want, got)
	}

	again, err := json.Marshal(&back)
	s.Require().NoError(err)
	s.Require().JSONEq(string(data), string(again))
}

func (s *ModelSuite) TestJSONRejectsBadWire() {
	bad := []string{
		`{"variables":[{"label":"a","cases":2}],"linear":[[1]],"quadratic":[],"offset":0}`,
		`{"variables":[{"label":"a","cases":2},{"label":"a","cases":2}]}`,
		`{"variables":[{"label":"a","cases":2}],"quadratic":[{"u":0,"cu":0,"v":0,"cv":1,"bias":1}]}`,
		`{"variables":[{"label":"a","cases":2}],"linear":[[1,2],[3,4]]}`,
		`[1,2,3]`,
	}
	for _, doc := range bad {
		var m dqm.Model
		s.Require().ErrorIs(json.Unmarshal([]byte(doc), &m), dqm.ErrBadWire, doc)
	}
}

func TestModelSuite(t *testing.T) {
	suite.Run(t, new(ModelSuite))
}
