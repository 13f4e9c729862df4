// Package circuiteq checks transistor-level circuits for structural
// isomorphism and polarity-preserving equivalence by minimizing a discrete
// quadratic model.
//
// Pipeline:
//
//	netlist ─► core.Graph ─┐
//	                       ├─► iso.Build ─► dqm.Model ─► solver.Sampler ─► iso.Matcher ─► iso.Result
//	netlist ─► core.Graph ─┘
//
// Subpackages:
//
//	core/     thread-safe undirected graph with per-node Category (Net, NMOS, PMOS)
//	dqm/      discrete quadratic model: Builder, immutable Model, energy, JSON wire form
//	iso/      model construction (Build) and result interpretation (Matcher)
//	solver/   Sampler contract, exact branch-and-bound and simulated annealing
//	remote/   Sampler that forwards models to a solving service over HTTP
//	service/  HTTP solving service wrapping any Sampler
//	netlist/  netlist reader and cached Loader
//	config/   YAML, .env and environment configuration
//
// Binaries:
//
//	cmd/circuiteq  compare two netlists
//	cmd/dqmd       serve a local sampler over HTTP
//
// Quick start:
//
//	g1, _ := netlist.ReadFile("nand_a.txt")
//	g2, _ := netlist.ReadFile("nand_b.txt")
//	exact, _ := solver.NewExact()
//	m, _ := iso.NewMatcher(exact)
//	res, err := m.FindEquivalence(ctx, g1, g2)
//	if err == nil && res.Found {
//		fmt.Println(res.Mapping)
//	}
package circuiteq
