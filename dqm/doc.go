// Package dqm implements a discrete quadratic model: variables that each take
// one of several cases, with a constant offset, per-(variable, case) linear
// biases and per-pair quadratic biases.
//
//	E(a) = offset + Σ_v linear[v][a_v] + Σ_{u<v} quadratic[(u,a_u),(v,a_v)]
//
// Models are assembled with a Builder, which owns all in-progress state and
// accumulates biases additively. Build returns an immutable *Model; the
// Builder cannot be mutated afterwards (ErrBuilderFinalized), so a half-built
// model never escapes.
//
// A Model precomputes, for every (variable, case), the list of quadratic
// partners (Interactions). Solvers use it to evaluate local fields in
// O(degree) without touching the sparse quadratic map.
//
// Models round-trip through JSON (MarshalJSON / UnmarshalJSON) so that they
// can be shipped to a remote solving service unchanged.
package dqm
