package iso_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/circuiteq/core"
	"github.com/katalvlaran/circuiteq/dqm"
	"github.com/katalvlaran/circuiteq/iso"
	"github.com/katalvlaran/circuiteq/netlist"
	"github.com/katalvlaran/circuiteq/solver"
)

// countingSampler wraps a Sampler and counts calls.
type countingSampler struct {
	inner solver.Sampler
	calls int
}

func (c *countingSampler) Sample(ctx context.Context, m *dqm.Model) (*solver.SampleSet, error) {
	c.calls++
	return c.inner.Sample(ctx, m)
}

// CircuitSuite runs both queries over the CMOS gate fixtures with the exact sampler.
type CircuitSuite struct {
	suite.Suite
	sampler *countingSampler
	matcher *iso.Matcher
	nand    *core.Graph
}

func (s *CircuitSuite) load(name string) *core.Graph {
	g, err := netlist.ReadFile(filepath.Join("..", "testdata", "netlists", name))
	s.Require().NoError(err)
	return g
}

func (s *CircuitSuite) SetupTest() {
	x, err := solver.NewExact(solver.WithNumReads(4))
	s.Require().NoError(err)
	s.sampler = &countingSampler{inner: x}
	s.matcher, err = iso.NewMatcher(s.sampler)
	s.Require().NoError(err)
	s.nand = s.load("cmos_nand_1.txt")
}

func (s *CircuitSuite) TestSelfIsEquivalent() {
	res, err := s.matcher.FindEquivalence(context.Background(), s.nand, s.load("cmos_nand_1.txt"))
	s.Require().NoError(err)
	s.Require().True(res.Found)
	for src, dst := range res.Mapping {
		s.Require().Equal(src, dst)
	}
}

func (s *CircuitSuite) TestRenamedCopyMapsBack() {
	rename := map[string]string{}
	for _, id := range s.nand.Vertices() {
		rename[id] = "u_" + id
	}
	renamed, err := s.nand.Relabel(rename)
	s.Require().NoError(err)

	// The only polarity-preserving automorphism of the NAND is the identity.
	res, err := s.matcher.FindEquivalence(context.Background(), s.nand, renamed)
	s.Require().NoError(err)
	s.Require().True(res.Found)
	s.Require().Equal(rename, res.Mapping)
}

func (s *CircuitSuite) TestRelabeledNANDIsEquivalent() {
	other := s.load("cmos_nand_2.txt")
	ctx := context.Background()

	res, err := s.matcher.FindIsomorphism(ctx, s.nand, other)
	s.Require().NoError(err)
	s.Require().True(res.Found)
	s.Require().Len(res.Mapping, 10)

	res, err = s.matcher.FindEquivalence(ctx, s.nand, other)
	s.Require().NoError(err)
	s.Require().True(res.Found)
	s.Require().Equal(map[string]string{
		"pMOS1": "pMOS_a", "pMOS2": "pMOS_b", "nMOS1": "nMOS_a", "nMOS2": "nMOS_b",
		"out": "y", "A": "in1", "B": "in2", "VDD": "vdd", "x": "mid", "GND": "vss",
	}, res.Mapping)
}

// The NOR is the CMOS dual of the NAND: same graph, swapped polarities.
func (s *CircuitSuite) TestNORIsIsomorphicButNotEquivalent() {
	nor := s.load("cmos_nor_1.txt")
	ctx := context.Background()

	res, err := s.matcher.FindIsomorphism(ctx, s.nand, nor)
	s.Require().NoError(err)
	s.Require().True(res.Found)
	s.Require().Equal("VDD", res.Mapping["GND"])

	res, err = s.matcher.FindEquivalence(ctx, s.nand, nor)
	s.Require().NoError(err)
	s.Require().False(res.Found)
	s.Require().Equal(3, res.Scanned)
}

func (s *CircuitSuite) TestCorruptedNANDHasNoResult() {
	broken := s.load("cmos_nand_error.txt")
	ctx := context.Background()

	res, err := s.matcher.FindIsomorphism(ctx, s.nand, broken)
	s.Require().NoError(err)
	s.Require().False(res.Found)
	s.Require().Greater(res.BestEnergy, res.GroundEnergy)

	res, err = s.matcher.FindEquivalence(ctx, s.nand, broken)
	s.Require().NoError(err)
	s.Require().False(res.Found)
}

func (s *CircuitSuite) TestMissingTransistorSkipsSolver() {
	missing := s.load("cmos_nand_missing.txt")
	res, err := s.matcher.FindIsomorphism(context.Background(), s.nand, missing)
	s.Require().NoError(err)
	s.Require().False(res.Found)
	s.Require().Zero(s.sampler.calls)
}

func TestCircuitSuite(t *testing.T) {
	suite.Run(t, new(CircuitSuite))
}
