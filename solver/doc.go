// Package solver defines the Sampler contract used to minimize a dqm.Model
// and ships two local implementations.
//
// A Sampler receives a model and returns a SampleSet: assignments ordered by
// ascending energy, best first. Callers rely only on that ordering; they never
// depend on which implementation produced it.
//
// Exact is a depth-first branch-and-bound that returns the NumReads
// lowest-energy assignments of any model. Exponential in the worst case,
// practical for circuit graphs of a few dozen nodes.
//
//	Complexity: O(Π cases) worst case, pruned by an admissible lower bound
//	Memory:     O(V·C) local fields + O(NumReads·V) incumbents
//
// Anneal runs NumReads independent Metropolis restarts over single-variable
// case changes, concurrently. It is a heuristic: the best sample is not
// guaranteed to be a global minimum.
//
//	Complexity: O(NumReads·Sweeps·Σ deg)
//
// Both samplers are deterministic for a fixed configuration (Anneal derives
// one RNG stream per read from Seed).
package solver
