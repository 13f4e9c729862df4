// Package iso decides graph isomorphism and circuit equivalence by energy
// minimization.
//
// Build translates "is there a bijection G1→G2 preserving adjacency in both
// directions" into a dqm.Model with one variable per G1 node and one case per
// G2 node. Two penalty families shape the energy:
//
//	Uniqueness (A):  −A on every (v, c); +2A on (u, t)·(v, t) for u ≠ v.
//	Consistency (B): +B whenever an edge of one graph lands on a non-edge of
//	                 the other, in either direction.
//
// A permutation that realizes an isomorphism scores exactly
// GroundEnergy = offset − A·n and every other assignment scores strictly
// more, for any A > 0 and B > 0.
//
// Matcher hands the model to a solver.Sampler and interprets the ordered
// samples:
//
//   - FindIsomorphism accepts the best sample iff it sits at GroundEnergy.
//   - FindEquivalence additionally requires every mapped node to keep its
//     core.Category, scanning the ground-energy samples in order.
//
// A negative answer is Result{Found: false}; errors are reserved for invalid
// input, malformed solver output and solver failures, which propagate
// unchanged.
package iso
